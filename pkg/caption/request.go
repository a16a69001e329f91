// Package caption orchestrates caption generation: backend selection,
// prompt construction, bounded-fallback execution, and response scoring.
package caption

import (
	"github.com/zen-systems/captiongate/pkg/platform"
)

// Request is an immutable per-call value describing one caption to generate.
type Request struct {
	// Prompt is the caller's free-text description of the post.
	Prompt string `yaml:"prompt"`

	// Platform is the target destination format.
	Platform platform.Platform `yaml:"platform"`

	// BrandVoice constrains output style when present.
	BrandVoice *BrandVoice `yaml:"brand_voice,omitempty"`

	// ImageContext carries pre-computed image analysis when present.
	ImageContext *ImageContext `yaml:"image_context,omitempty"`

	Preferences Preferences `yaml:"preferences,omitempty"`
}

// BrandVoice is a caller-supplied tone/keyword/example profile.
type BrandVoice struct {
	Name     string   `yaml:"name"`
	Tone     string   `yaml:"tone"`
	Examples []string `yaml:"examples,omitempty"`
	Keywords []string `yaml:"keywords,omitempty"`
}

// ImageContext is the structured output of an upstream image analysis.
type ImageContext struct {
	Objects   []string `yaml:"objects,omitempty"`
	Colors    []string `yaml:"colors,omitempty"`
	Mood      string   `yaml:"mood,omitempty"`
	Text      string   `yaml:"text,omitempty"`
	FaceCount int      `yaml:"face_count,omitempty"`
}

// Empty reports whether the image context carries no usable fields.
func (ic *ImageContext) Empty() bool {
	if ic == nil {
		return true
	}
	return len(ic.Objects) == 0 && len(ic.Colors) == 0 &&
		ic.Mood == "" && ic.Text == "" && ic.FaceCount == 0
}

// Preferences holds optional caller overrides. Pointer fields distinguish
// "explicitly set" from "use the default".
type Preferences struct {
	// Backend forces a specific backend, bypassing cost heuristics.
	Backend string `yaml:"backend,omitempty"`

	// Model forces a specific model (or alias) on the chosen backend.
	Model string `yaml:"model,omitempty"`

	// Temperature is the explicit sampling temperature, if set.
	Temperature *float64 `yaml:"temperature,omitempty"`

	// MaxLength is the explicit maximum output length in tokens, if set.
	MaxLength *int `yaml:"max_length,omitempty"`

	// FallbackEnabled disables the secondary attempt when explicitly false.
	FallbackEnabled *bool `yaml:"fallback_enabled,omitempty"`

	// Variations is the desired number of independent generations.
	Variations int `yaml:"variations,omitempty"`
}

// hasSamplingPrefs reports whether the caller supplied an explicit
// temperature or max-length override.
func (p Preferences) hasSamplingPrefs() bool {
	return p.Temperature != nil || p.MaxLength != nil
}

// fallbackEnabled reports whether fallback is permitted; it defaults to
// true unless explicitly disabled.
func (p Preferences) fallbackEnabled() bool {
	return p.FallbackEnabled == nil || *p.FallbackEnabled
}

// highSignal reports whether the request carries any attribute that
// justifies a balanced quality/cost backend over the cheapest one.
func (r Request) highSignal() bool {
	return r.BrandVoice != nil || !r.ImageContext.Empty() || r.Preferences.hasSamplingPrefs()
}
