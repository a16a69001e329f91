package backend

import "context"

// Backend defines the uniform capability every generative provider exposes.
// The orchestrator never sees a provider-specific request or response shape;
// each adapter maps to this interface immediately after the raw call.
type Backend interface {
	// Complete sends a system/user instruction pair to the model and returns
	// the generated text with normalized usage.
	Complete(ctx context.Context, model string, prompt Prompt, params SamplingParams) (*Completion, error)

	// Name returns the backend's identifier.
	Name() string

	// Models returns the list of supported models.
	Models() []string
}

// Prompt is a backend-agnostic instruction pair.
type Prompt struct {
	System string
	User   string
}

// SamplingParams carries optional generation parameters.
// Zero values mean "use the backend default".
type SamplingParams struct {
	Temperature float64
	MaxTokens   int
}

// Usage captures normalized token usage for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion wraps a backend's generated text and optional usage data.
// Usage is nil when the provider reports no token counts; callers
// approximate from character length in that case.
type Completion struct {
	Text  string
	Usage *Usage
}
