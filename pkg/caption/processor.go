package caption

import (
	"regexp"
	"strings"

	"github.com/zen-systems/captiongate/pkg/platform"
)

// Decay windows for closeness scoring outside the optimal range. The
// exact curve is a tunable constant, not a contract; linear decay over
// these windows approximates the production scoring arithmetic.
const (
	lengthDecayWindow  = 100.0
	hashtagDecayWindow = 5.0
)

var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// Processed holds the structured elements extracted from raw backend text.
type Processed struct {
	CleanText       string
	Hashtags        []string
	EmphasisMarkers []string
	FitScore        float64
	VoiceScore      float64
}

// Process extracts hashtags and emphasis markers from raw text and
// computes the platform-fit and brand-voice-match scores. Hashtags and
// emoji stay inline in CleanText; they are extracted, not stripped.
func Process(rawText string, req Request, profile platform.Profile) Processed {
	clean := strings.TrimSpace(rawText)
	return Processed{
		CleanText:       clean,
		Hashtags:        extractHashtags(clean),
		EmphasisMarkers: extractEmphasisMarkers(clean),
		FitScore:        fitScore(clean, profile),
		VoiceScore:      voiceScore(clean, req.BrandVoice),
	}
}

// extractHashtags returns hashtag bodies lower-cased, deduplicated, in
// order of first appearance.
func extractHashtags(text string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, match := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		tag := strings.ToLower(match[1])
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// extractEmphasisMarkers returns the emoji code points present,
// deduplicated, in order of first appearance.
func extractEmphasisMarkers(text string) []string {
	var markers []string
	seen := make(map[rune]bool)
	for _, r := range text {
		if !isEmoji(r) || seen[r] {
			continue
		}
		seen[r] = true
		markers = append(markers, string(r))
	}
	return markers
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols and pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x2600 && r <= 0x26FF: // miscellaneous symbols
		return true
	case r >= 0x2700 && r <= 0x27BF: // dingbats
		return true
	}
	return false
}

// fitScore measures how well the text fits the platform profile. Length
// and hashtag count each contribute a half-weighted component (0.5 base
// plus 0.5 scaled by closeness to the optimal range); the two components
// are averaged.
func fitScore(text string, profile platform.Profile) float64 {
	lengthComponent := 0.5 + 0.5*closeness(float64(len(text)),
		float64(profile.OptimalMin), float64(profile.OptimalMax), lengthDecayWindow)
	hashtagComponent := 0.5 + 0.5*closeness(float64(len(extractHashtags(text))),
		float64(profile.MinHashtags), float64(profile.MaxHashtags), hashtagDecayWindow)
	return (lengthComponent + hashtagComponent) / 2
}

// closeness is 1 inside [min, max] and decays linearly to 0 over window.
func closeness(n, min, max, window float64) float64 {
	var dist float64
	switch {
	case n < min:
		dist = min - n
	case n > max:
		dist = n - max
	default:
		return 1
	}
	if dist >= window {
		return 0
	}
	return 1 - dist/window
}

// voiceScore measures brand-voice match: full credit without a profile
// (nothing to match against), else 0.7 base plus 0.3 scaled by the
// fraction of keywords present, capped at 1.
func voiceScore(text string, voice *BrandVoice) float64 {
	if voice == nil || len(voice.Keywords) == 0 {
		return 1.0
	}
	lower := strings.ToLower(text)
	found := 0
	for _, keyword := range voice.Keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			found++
		}
	}
	score := 0.7 + 0.3*(float64(found)/float64(len(voice.Keywords)))
	if score > 1.0 {
		return 1.0
	}
	return score
}
