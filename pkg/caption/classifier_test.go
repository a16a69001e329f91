package caption

import (
	"testing"

	"github.com/zen-systems/captiongate/pkg/platform"
)

func TestClassify(t *testing.T) {
	temp := 0.9
	maxLen := 200

	tests := []struct {
		name string
		req  Request
		want Tier
	}{
		{
			name: "low signal on plain platform",
			req:  Request{Prompt: "sale", Platform: platform.ProfessionalPost},
			want: TierSimple,
		},
		{
			name: "brand voice alone",
			req: Request{
				Prompt:     "sale",
				Platform:   platform.ProfessionalPost,
				BrandVoice: &BrandVoice{Tone: "warm"},
			},
			want: TierComplex,
		},
		{
			name: "image context alone",
			req: Request{
				Prompt:       "sale",
				Platform:     platform.FeedPost,
				ImageContext: &ImageContext{Objects: []string{"shoe"}},
			},
			want: TierComplex,
		},
		{
			name: "high creativity platform alone",
			req:  Request{Prompt: "sale", Platform: platform.ShortVideoCaption},
			want: TierComplex,
		},
		{
			name: "explicit temperature alone",
			req: Request{
				Prompt:      "sale",
				Platform:    platform.MicroBlog,
				Preferences: Preferences{Temperature: &temp},
			},
			want: TierComplex,
		},
		{
			name: "three signals reach creative",
			req: Request{
				Prompt:       "sale",
				Platform:     platform.ShortStory,
				BrandVoice:   &BrandVoice{Tone: "warm"},
				ImageContext: &ImageContext{Mood: "joyful"},
			},
			want: TierCreative,
		},
		{
			name: "all four signals stay creative",
			req: Request{
				Prompt:       "sale",
				Platform:     platform.ShortVideoCaption,
				BrandVoice:   &BrandVoice{Tone: "warm"},
				ImageContext: &ImageContext{Mood: "joyful"},
				Preferences:  Preferences{MaxLength: &maxLen},
			},
			want: TierCreative,
		},
		{
			name: "empty image context does not count",
			req: Request{
				Prompt:       "sale",
				Platform:     platform.MicroBlog,
				ImageContext: &ImageContext{},
			},
			want: TierSimple,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.req); got != tt.want {
				t.Fatalf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	req := Request{
		Prompt:     "launch day",
		Platform:   platform.ShortStory,
		BrandVoice: &BrandVoice{Tone: "bold", Keywords: []string{"launch"}},
	}

	first := Classify(req)
	for i := 0; i < 10; i++ {
		if got := Classify(req); got != first {
			t.Fatalf("classification changed between calls: %s then %s", first, got)
		}
	}
}
