package backend

import (
	"context"
	"fmt"
	"time"
)

// MockBackend returns deterministic completions for local runs and tests.
type MockBackend struct {
	name       string
	response   string
	usage      *Usage
	err        error
	delay      time.Duration
	calls      int
	lastModel  string
	lastPrompt Prompt
}

// NewMockBackend creates a mock backend with a canned response.
func NewMockBackend(name, response string) *MockBackend {
	if name == "" {
		name = "mock"
	}
	return &MockBackend{name: name, response: response}
}

// WithUsage sets the usage reported on each completion.
func (b *MockBackend) WithUsage(usage Usage) *MockBackend {
	b.usage = &usage
	return b
}

// WithError makes every call fail with err.
func (b *MockBackend) WithError(err error) *MockBackend {
	b.err = err
	return b
}

// WithDelay makes every call block for d before responding, honoring
// context cancellation.
func (b *MockBackend) WithDelay(d time.Duration) *MockBackend {
	b.delay = d
	return b
}

// Name returns the backend identifier.
func (b *MockBackend) Name() string {
	return b.name
}

// Models returns the list of supported mock models.
func (b *MockBackend) Models() []string {
	return []string{"mock-1"}
}

// Calls returns how many times Complete was invoked.
func (b *MockBackend) Calls() int {
	return b.calls
}

// LastPrompt returns the prompt from the most recent call.
func (b *MockBackend) LastPrompt() Prompt {
	return b.lastPrompt
}

// LastModel returns the model from the most recent call.
func (b *MockBackend) LastModel() string {
	return b.lastModel
}

// Complete returns the canned completion, or the configured error.
func (b *MockBackend) Complete(ctx context.Context, model string, prompt Prompt, _ SamplingParams) (*Completion, error) {
	b.calls++
	b.lastModel = model
	b.lastPrompt = prompt

	if b.delay > 0 {
		timer := time.NewTimer(b.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, NewError(KindOf(ctx.Err()), ctx.Err())
		case <-timer.C:
		}
	}

	if b.err != nil {
		return nil, b.err
	}

	text := b.response
	if text == "" {
		text = fmt.Sprintf("mock response:\n%s", prompt.User)
	}
	var usage *Usage
	if b.usage != nil {
		u := *b.usage
		usage = &u
	}
	return &Completion{Text: text, Usage: usage}, nil
}
