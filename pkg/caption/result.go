package caption

import (
	"time"

	"github.com/zen-systems/captiongate/pkg/backend"
)

// Failure describes a terminal generation failure. It is a value, not an
// escaping error: backend problems never panic out of the orchestrator.
type Failure struct {
	// Kind is the terminal failure kind, usually all_attempts_failed.
	Kind backend.Kind `json:"kind"`

	// Cause is the last underlying backend error's kind, kept for
	// diagnostics when Kind is all_attempts_failed.
	Cause backend.Kind `json:"cause,omitempty"`

	Message string `json:"message"`
}

// Metadata summarizes how a result was produced.
type Metadata struct {
	RequestID    string        `json:"request_id"`
	Backend      string        `json:"backend"`
	Model        string        `json:"model"`
	Tier         Tier          `json:"tier"`
	Cost         CostEstimate  `json:"cost"`
	Elapsed      time.Duration `json:"elapsed"`
	FitScore     float64       `json:"fit_score"`
	VoiceScore   float64       `json:"voice_score"`
	FallbackUsed bool          `json:"fallback_used"`
}

// Result is the externally visible outcome of one orchestration call.
// On failure, Failure is set and Text is empty.
type Result struct {
	Text            string   `json:"text"`
	Hashtags        []string `json:"hashtags"`
	EmphasisMarkers []string `json:"emphasis_markers"`
	Metadata        Metadata `json:"metadata"`
	Failure         *Failure `json:"failure,omitempty"`
}

// Succeeded reports whether the call produced a caption.
func (r *Result) Succeeded() bool {
	return r != nil && r.Failure == nil
}
