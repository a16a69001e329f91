package caption

import (
	"github.com/zen-systems/captiongate/pkg/backend"
	"github.com/zen-systems/captiongate/pkg/config"
)

// CostEstimate is a monetary estimate for one completion.
type CostEstimate struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`

	// Approximate is true when token counts were derived from character
	// length instead of reported by the backend.
	Approximate bool `json:"approximate"`
}

// EstimateCost converts token usage into a monetary estimate using the
// catalog's per-1k pricing tables. Unknown models fall back to the
// backend's default pricing entry; a missing table yields a zero
// estimate rather than an error.
func EstimateCost(catalog *config.CatalogConfig, backendName, model string, usage backend.Usage) CostEstimate {
	entry, ok := catalog.PricingFor(backendName, model)
	if !ok {
		return CostEstimate{Currency: "USD"}
	}

	promptCost := float64(usage.PromptTokens) / 1000.0 * entry.PromptPer1K
	completionCost := float64(usage.CompletionTokens) / 1000.0 * entry.CompletionPer1K
	return CostEstimate{
		Amount:   promptCost + completionCost,
		Currency: "USD",
	}
}

// ApproximateUsage derives token usage from character counts when a
// backend reports none, at roughly four characters per token.
func ApproximateUsage(promptChars, completionChars int) backend.Usage {
	prompt := ceilDiv(promptChars, 4)
	completion := ceilDiv(completionChars, 4)
	return backend.Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
	}
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
