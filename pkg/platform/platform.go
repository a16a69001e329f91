// Package platform holds the static per-destination constraint table used
// for prompt construction and platform-fit scoring.
package platform

// Platform identifies a target destination format.
type Platform string

const (
	FeedPost          Platform = "feed-post"
	ShortStory        Platform = "short-story"
	MicroBlog         Platform = "micro-blog"
	ProfessionalPost  Platform = "professional-post"
	ShortVideoCaption Platform = "short-video-caption"
	PinDescription    Platform = "pin-description"
)

// Profile holds per-platform constants: length bounds, recommended
// hashtag counts, and a stylistic descriptor used in prompts.
type Profile struct {
	Platform    Platform
	MaxLength   int
	OptimalMin  int
	OptimalMax  int
	MinHashtags int
	MaxHashtags int
	Style       string
}

// profiles is populated once and never mutated; concurrent reads are safe.
var profiles = map[Platform]Profile{
	FeedPost: {
		Platform:    FeedPost,
		MaxLength:   2200,
		OptimalMin:  100,
		OptimalMax:  200,
		MinHashtags: 5,
		MaxHashtags: 10,
		Style:       "visual-first, energetic, emoji-friendly",
	},
	ShortStory: {
		Platform:    ShortStory,
		MaxLength:   2200,
		OptimalMin:  20,
		OptimalMax:  80,
		MinHashtags: 0,
		MaxHashtags: 3,
		Style:       "casual, ephemeral, punchy",
	},
	MicroBlog: {
		Platform:    MicroBlog,
		MaxLength:   280,
		OptimalMin:  70,
		OptimalMax:  140,
		MinHashtags: 1,
		MaxHashtags: 2,
		Style:       "concise, witty, conversation-starting",
	},
	ProfessionalPost: {
		Platform:    ProfessionalPost,
		MaxLength:   3000,
		OptimalMin:  150,
		OptimalMax:  300,
		MinHashtags: 3,
		MaxHashtags: 5,
		Style:       "professional, insight-driven, no slang",
	},
	ShortVideoCaption: {
		Platform:    ShortVideoCaption,
		MaxLength:   2200,
		OptimalMin:  50,
		OptimalMax:  150,
		MinHashtags: 3,
		MaxHashtags: 6,
		Style:       "playful, trend-aware, hook-led",
	},
	PinDescription: {
		Platform:    PinDescription,
		MaxLength:   500,
		OptimalMin:  100,
		OptimalMax:  200,
		MinHashtags: 2,
		MaxHashtags: 5,
		Style:       "descriptive, search-friendly, actionable",
	},
}

// defaultProfile is the most permissive entry, used for unknown platforms.
var defaultProfile = Profile{
	Platform:    "",
	MaxLength:   3000,
	OptimalMin:  50,
	OptimalMax:  300,
	MinHashtags: 0,
	MaxHashtags: 10,
	Style:       "clear, engaging, audience-appropriate",
}

// ProfileFor resolves the constraint profile for a platform. Unknown
// platforms get the default profile; this is a total function.
func ProfileFor(p Platform) Profile {
	if profile, ok := profiles[p]; ok {
		return profile
	}
	return defaultProfile
}

// All returns every registered platform in a fixed display order.
func All() []Platform {
	return []Platform{
		FeedPost,
		ShortStory,
		MicroBlog,
		ProfessionalPost,
		ShortVideoCaption,
		PinDescription,
	}
}

// HighCreativity reports whether a platform favors creative generation.
func HighCreativity(p Platform) bool {
	return p == ShortVideoCaption || p == ShortStory
}
