package caption

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zen-systems/captiongate/pkg/backend"
	"github.com/zen-systems/captiongate/pkg/config"
	"github.com/zen-systems/captiongate/pkg/platform"
)

// Orchestrator is the caption generation entry point. It is stateless
// per call: the catalog and backend set are wired once at construction
// and only ever read, so concurrent calls need no synchronization.
type Orchestrator struct {
	backends map[string]backend.Backend
	catalog  *config.CatalogConfig
	aliases  *config.ModelAliases
	exec     *executor
	log      *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithAliases sets the model aliases used to resolve model overrides.
func WithAliases(aliases *config.ModelAliases) Option {
	return func(o *Orchestrator) {
		o.aliases = aliases
	}
}

// WithLogger sets the structured logger. Default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.log = log
	}
}

// New creates an orchestrator over an explicit backend set and catalog.
// Backends are injected here rather than constructed globally, so tests
// can substitute fakes for any of them.
func New(backends map[string]backend.Backend, catalog *config.CatalogConfig, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backends: backends,
		catalog:  catalog,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.exec = newExecutor(backends, catalog, o.log)
	return o
}

// Generate runs one orchestration call: select, prompt, execute with
// bounded fallback, then score and price the response. Backend failures
// are returned as a value in Result.Failure; the error return is non-nil
// only for invalid arguments and caller-side cancellation.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Prompt == "" {
		return nil, fmt.Errorf("request prompt is empty")
	}

	requestID := uuid.NewString()
	sel := Select(req, o.catalog, o.aliases)
	profile := platform.ProfileFor(req.Platform)
	prompt := BuildPrompt(req, profile)
	params := samplingParams(req.Preferences)

	o.log.Debug("routing request",
		zap.String("request_id", requestID),
		zap.String("backend", sel.Backend),
		zap.String("model", sel.Model),
		zap.String("tier", string(sel.Tier)))

	out, execErr := o.exec.execute(ctx, sel, prompt, params, req.Preferences.fallbackEnabled())
	if execErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return &Result{
			Metadata: Metadata{
				RequestID: requestID,
				Backend:   sel.Backend,
				Model:     sel.Model,
				Tier:      sel.Tier,
				Elapsed:   out.elapsed,
			},
			Failure: failureFrom(execErr),
		}, nil
	}

	processed := Process(out.win.text, req, profile)

	usage := backend.Usage{}
	approximate := false
	if out.win.usage != nil {
		usage = *out.win.usage
	} else {
		usage = ApproximateUsage(len(prompt.System)+len(prompt.User), len(out.win.text))
		approximate = true
	}
	cost := EstimateCost(o.catalog, out.win.backendName, out.win.model, usage)
	cost.Approximate = approximate

	return &Result{
		Text:            processed.CleanText,
		Hashtags:        processed.Hashtags,
		EmphasisMarkers: processed.EmphasisMarkers,
		Metadata: Metadata{
			RequestID:    requestID,
			Backend:      out.win.backendName,
			Model:        out.win.model,
			Tier:         sel.Tier,
			Cost:         cost,
			Elapsed:      out.elapsed,
			FitScore:     processed.FitScore,
			VoiceScore:   processed.VoiceScore,
			FallbackUsed: out.fallbackUsed,
		},
	}, nil
}

// GenerateVariations runs up to Preferences.Variations independent
// orchestration passes sequentially and returns every result, each with
// its own metadata. A count below one means a single pass.
func (o *Orchestrator) GenerateVariations(ctx context.Context, req Request) ([]*Result, error) {
	count := req.Preferences.Variations
	if count < 1 {
		count = 1
	}

	results := make([]*Result, 0, count)
	for i := 0; i < count; i++ {
		result, err := o.Generate(ctx, req)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func samplingParams(prefs Preferences) backend.SamplingParams {
	params := backend.SamplingParams{}
	if prefs.Temperature != nil {
		params.Temperature = *prefs.Temperature
	}
	if prefs.MaxLength != nil {
		params.MaxTokens = *prefs.MaxLength
	}
	return params
}

func failureFrom(err *backend.Error) *Failure {
	failure := &Failure{
		Kind:    err.Kind,
		Message: err.Error(),
	}
	if err.Kind == backend.KindAllAttemptsFailed {
		failure.Cause = backend.KindOf(err.Unwrap())
	}
	return failure
}
