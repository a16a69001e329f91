package caption

import (
	"fmt"
	"strings"

	"github.com/zen-systems/captiongate/pkg/backend"
	"github.com/zen-systems/captiongate/pkg/platform"
)

// BuildPrompt assembles the backend-agnostic instruction pair for a
// request. The system instruction phrases platform and brand-voice
// constraints as hard requirements and demands only the final caption,
// so downstream parsing never has to strip narration.
func BuildPrompt(req Request, profile platform.Profile) backend.Prompt {
	return backend.Prompt{
		System: buildSystemInstruction(req, profile),
		User:   buildUserInstruction(req),
	}
}

func buildSystemInstruction(req Request, profile platform.Profile) string {
	var sb strings.Builder

	sb.WriteString("You write social media captions.\n")
	sb.WriteString(fmt.Sprintf("Style: %s.\n", profile.Style))
	sb.WriteString(fmt.Sprintf("The caption must be at most %d characters; aim for %d-%d characters.\n",
		profile.MaxLength, profile.OptimalMin, profile.OptimalMax))
	sb.WriteString(fmt.Sprintf("Include between %d and %d hashtags.\n",
		profile.MinHashtags, profile.MaxHashtags))

	if voice := req.BrandVoice; voice != nil {
		sb.WriteString("\nThe caption must match this brand voice:\n")
		if voice.Tone != "" {
			sb.WriteString(fmt.Sprintf("Tone: %s\n", voice.Tone))
		}
		if len(voice.Examples) > 0 {
			sb.WriteString("Example posts in this voice:\n")
			for _, example := range voice.Examples {
				sb.WriteString(fmt.Sprintf("- %s\n", example))
			}
		}
		if len(voice.Keywords) > 0 {
			sb.WriteString(fmt.Sprintf("Work in these keywords: %s\n", strings.Join(voice.Keywords, ", ")))
		}
	}

	sb.WriteString("\nRespond with only the final caption text. No preamble, no commentary, no reasoning.")
	return sb.String()
}

func buildUserInstruction(req Request) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write a caption for: %s", req.Prompt))

	if ic := req.ImageContext; !ic.Empty() {
		sb.WriteString("\n\nThe attached image shows:\n")
		if len(ic.Objects) > 0 {
			sb.WriteString(fmt.Sprintf("Objects: %s\n", strings.Join(ic.Objects, ", ")))
		}
		if len(ic.Colors) > 0 {
			sb.WriteString(fmt.Sprintf("Dominant colors: %s\n", strings.Join(ic.Colors, ", ")))
		}
		if ic.Mood != "" {
			sb.WriteString(fmt.Sprintf("Mood: %s\n", ic.Mood))
		}
		if ic.Text != "" {
			sb.WriteString(fmt.Sprintf("Text in image: %s\n", ic.Text))
		}
		if ic.FaceCount > 0 {
			sb.WriteString(fmt.Sprintf("People visible: %d\n", ic.FaceCount))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
