package caption

import (
	"github.com/zen-systems/captiongate/pkg/config"
)

// Selection names the backend and model chosen for one request.
type Selection struct {
	Backend string
	Model   string
	Tier    Tier
}

// Select chooses a backend and model for a request. An explicit backend
// override is honored verbatim; otherwise low-signal requests go to the
// cheapest backend and high-signal requests to the second-cheapest.
// Ranking ties are broken by the catalog's declared priority order,
// never by map iteration order.
func Select(req Request, catalog *config.CatalogConfig, aliases *config.ModelAliases) Selection {
	tier := Classify(req)

	sel := Selection{Tier: tier}
	if req.Preferences.Backend != "" {
		sel.Backend = req.Preferences.Backend
	} else {
		ranked := catalog.RankedBackends()
		switch {
		case len(ranked) == 0:
			return sel
		case req.highSignal() && len(ranked) > 1:
			sel.Backend = ranked[1]
		default:
			sel.Backend = ranked[0]
		}
	}

	if req.Preferences.Model != "" {
		sel.Model = aliases.Resolve(req.Preferences.Model)
		return sel
	}
	if model, ok := catalog.ModelFor(sel.Backend, string(tier)); ok {
		sel.Model = model
	}
	return sel
}
