package caption

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zen-systems/captiongate/pkg/backend"
	"github.com/zen-systems/captiongate/pkg/config"
)

// attempt records one backend invocation. Attempts never leave the
// executor; callers only see the summary in Result metadata.
type attempt struct {
	backendName string
	model       string
	text        string
	usage       *backend.Usage
	duration    time.Duration
	err         *backend.Error
}

// outcome is the executor's terminal state: the winning attempt plus
// whether the fallback backend produced it.
type outcome struct {
	win          attempt
	fallbackUsed bool
	elapsed      time.Duration
}

// executor runs the attempt state machine: a primary attempt, then at
// most one fallback attempt against the catalog's designated backend.
// Bounded fallback, never a retry loop.
type executor struct {
	backends map[string]backend.Backend
	catalog  *config.CatalogConfig
	timeout  time.Duration
	log      *zap.Logger
}

func newExecutor(backends map[string]backend.Backend, catalog *config.CatalogConfig, log *zap.Logger) *executor {
	timeout := time.Duration(catalog.AttemptTimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &executor{
		backends: backends,
		catalog:  catalog,
		timeout:  timeout,
		log:      log,
	}
}

// execute runs the primary attempt and, if it fails recoverably with
// fallback permitted, one attempt against the designated fallback
// backend. Self-fallback is skipped: when the primary already is the
// designated backend, a failure is terminal.
func (e *executor) execute(ctx context.Context, sel Selection, prompt backend.Prompt, params backend.SamplingParams, fallbackEnabled bool) (outcome, *backend.Error) {
	primary := e.runAttempt(ctx, sel.Backend, sel.Model, prompt, params)
	result := outcome{elapsed: primary.duration}
	if primary.err == nil {
		result.win = primary
		return result, nil
	}

	if ctx.Err() != nil {
		// Caller cancelled; do not start a fallback attempt.
		return result, primary.err
	}
	if !backend.Recoverable(primary.err.Kind) {
		return result, primary.err
	}

	fallbackName := e.catalog.Fallback
	if !fallbackEnabled || fallbackName == "" || fallbackName == sel.Backend {
		return result, &backend.Error{Kind: backend.KindAllAttemptsFailed, Err: primary.err}
	}

	fallbackModel, ok := e.catalog.ModelFor(fallbackName, string(sel.Tier))
	if !ok {
		return result, &backend.Error{Kind: backend.KindAllAttemptsFailed, Err: primary.err}
	}

	e.log.Warn("primary attempt failed, trying fallback",
		zap.String("primary", sel.Backend),
		zap.String("fallback", fallbackName),
		zap.String("error", primary.err.Error()))

	secondary := e.runAttempt(ctx, fallbackName, fallbackModel, prompt, params)
	result.elapsed += secondary.duration
	if secondary.err == nil {
		result.win = secondary
		result.fallbackUsed = true
		return result, nil
	}
	return result, &backend.Error{Kind: backend.KindAllAttemptsFailed, Err: secondary.err}
}

// runAttempt invokes one backend under the per-attempt timeout and
// classifies any failure.
func (e *executor) runAttempt(ctx context.Context, backendName, model string, prompt backend.Prompt, params backend.SamplingParams) attempt {
	a := attempt{backendName: backendName, model: model}

	impl, ok := e.backends[backendName]
	if !ok {
		a.err = &backend.Error{
			Kind: backend.KindUnsupported,
			Err:  fmt.Errorf("no adapter registered for backend %q", backendName),
		}
		return a
	}

	attemptCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	completion, err := impl.Complete(attemptCtx, model, prompt, params)
	a.duration = time.Since(start)

	if err != nil {
		a.err = backend.NewError(backend.KindOf(err), err)
		return a
	}
	if completion == nil || strings.TrimSpace(completion.Text) == "" {
		a.err = &backend.Error{
			Kind: backend.KindUnparseable,
			Err:  fmt.Errorf("backend %q returned empty text", backendName),
		}
		return a
	}

	a.text = completion.Text
	a.usage = completion.Usage
	e.log.Debug("attempt succeeded",
		zap.String("backend", backendName),
		zap.String("model", model),
		zap.Duration("duration", a.duration))
	return a
}
