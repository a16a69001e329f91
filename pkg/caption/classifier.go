package caption

import (
	"github.com/zen-systems/captiongate/pkg/config"
	"github.com/zen-systems/captiongate/pkg/platform"
)

// Tier is the discrete complexity classification of a request.
type Tier string

const (
	TierSimple   Tier = config.TierSimple
	TierComplex  Tier = config.TierComplex
	TierCreative Tier = config.TierCreative
)

// Classify derives the complexity tier from request attributes. It is a
// pure function of the request; the ordinal mapping is fixed so provider
// costs stay reproducible across runs.
func Classify(req Request) Tier {
	score := 0
	if req.BrandVoice != nil {
		score++
	}
	if !req.ImageContext.Empty() {
		score++
	}
	if platform.HighCreativity(req.Platform) {
		score++
	}
	if req.Preferences.hasSamplingPrefs() {
		score++
	}

	switch {
	case score >= 3:
		return TierCreative
	case score >= 1:
		return TierComplex
	default:
		return TierSimple
	}
}
