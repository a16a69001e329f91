package caption

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/zen-systems/captiongate/pkg/platform"
)

func TestExtractHashtagsDedupesInFirstAppearanceOrder(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"check this #Launch #innovation #launch", []string{"launch", "innovation"}},
		{"#a #b #a", []string{"a", "b"}},
		{"#under_score and #MixedCase", []string{"under_score", "mixedcase"}},
		{"no tags here", nil},
		{"#日本 #tokyo", []string{"日本", "tokyo"}},
	}

	for _, tt := range tests {
		if got := extractHashtags(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("extractHashtags(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExtractEmphasisMarkersDedupes(t *testing.T) {
	got := extractEmphasisMarkers("Big news 🚀 so big 🚀 really ✨")
	want := []string{"🚀", "✨"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("extractEmphasisMarkers = %v, want %v", got, want)
	}
}

func TestProcessKeepsExtractedElementsInline(t *testing.T) {
	raw := "  Launching today 🚀 #launch  "
	req := Request{Prompt: "launch", Platform: platform.FeedPost}

	got := Process(raw, req, platform.ProfileFor(req.Platform))

	if got.CleanText != "Launching today 🚀 #launch" {
		t.Fatalf("clean text should only trim whitespace, got %q", got.CleanText)
	}
	if !strings.Contains(got.CleanText, "#launch") {
		t.Fatalf("hashtags must stay inline")
	}
	if !strings.Contains(got.CleanText, "🚀") {
		t.Fatalf("emphasis markers must stay inline")
	}
}

func TestFitScoreFullCreditInsideOptimalRange(t *testing.T) {
	profile := platform.Profile{
		OptimalMin:  10,
		OptimalMax:  100,
		MinHashtags: 1,
		MaxHashtags: 3,
	}
	text := strings.Repeat("x", 40) + " #one #two"

	got := fitScore(text, profile)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected full fit score, got %f", got)
	}
}

func TestFitScoreDecaysLinearlyOutsideRange(t *testing.T) {
	profile := platform.Profile{
		OptimalMin:  10,
		OptimalMax:  20,
		MinHashtags: 0,
		MaxHashtags: 5,
	}

	// 70 characters: 50 past the optimal max, halfway through the
	// 100-character decay window. Hashtag count is in range.
	text := strings.Repeat("x", 70)
	got := fitScore(text, profile)
	want := ((0.5 + 0.5*0.5) + 1.0) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestFitScoreFloorsAtWindowEdge(t *testing.T) {
	profile := platform.Profile{
		OptimalMin:  10,
		OptimalMax:  20,
		MinHashtags: 5,
		MaxHashtags: 8,
	}

	// Way past both windows: both components bottom out at their base.
	text := strings.Repeat("x", 500)
	got := fitScore(text, profile)
	if math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected floor of 0.5, got %f", got)
	}
}

func TestVoiceScoreWithoutProfile(t *testing.T) {
	if got := voiceScore("anything at all", nil); got != 1.0 {
		t.Fatalf("no brand voice should score 1.0, got %f", got)
	}
	if got := voiceScore("anything", &BrandVoice{Tone: "warm"}); got != 1.0 {
		t.Fatalf("empty keyword list should score 1.0, got %f", got)
	}
}

func TestVoiceScoreKeywordFraction(t *testing.T) {
	voice := &BrandVoice{Keywords: []string{"Handmade", "sustainable", "local"}}

	tests := []struct {
		text string
		want float64
	}{
		{"our handmade and sustainable goods, made local", 1.0},
		{"our handmade and sustainable goods", 0.9},
		{"our handmade goods", 0.8},
		{"our goods", 0.7},
	}

	for _, tt := range tests {
		got := voiceScore(tt.text, voice)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("voiceScore(%q) = %f, want %f", tt.text, got, tt.want)
		}
	}
}
