package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Complexity tier keys used in catalog model maps. The caption package
// owns the tier semantics; the catalog only stores the mapping.
const (
	TierSimple   = "simple"
	TierComplex  = "complex"
	TierCreative = "creative"
)

// CatalogConfig holds the provider catalog: cost multipliers, tier-to-model
// mappings, the designated fallback backend, and pricing tables. It is
// configuration data, loadable without touching orchestration logic.
type CatalogConfig struct {
	Backends map[string]BackendProfile `yaml:"backends"`

	// Priority is the fixed tie-break order for backend ranking. Ranking
	// must never depend on map iteration order.
	Priority []string `yaml:"priority"`

	// Fallback names the single pre-designated most-reliable backend used
	// for the secondary attempt after a primary failure.
	Fallback string `yaml:"fallback"`

	Pricing PricingConfig `yaml:"pricing,omitempty"`

	// AttemptTimeoutMs bounds each backend invocation.
	AttemptTimeoutMs int `yaml:"attempt_timeout_ms,omitempty"`
}

// BackendProfile holds per-backend catalog constants.
type BackendProfile struct {
	// CostMultiplier is a dimensionless relative cost used for ranking only.
	CostMultiplier float64 `yaml:"cost_multiplier"`

	// Models maps complexity tier -> concrete model identifier.
	Models map[string]string `yaml:"models"`
}

// PricingConfig maps backend -> model -> pricing.
type PricingConfig map[string]map[string]ModelPricing

// ModelPricing defines per-1k unit pricing in USD.
type ModelPricing struct {
	PromptPer1K     float64 `yaml:"prompt_per_1k,omitempty"`
	CompletionPer1K float64 `yaml:"completion_per_1k,omitempty"`
}

// LoadCatalog reads a provider catalog from a YAML file.
func LoadCatalog(path string) (*CatalogConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyCatalogDefaults(&cfg)
	return &cfg, nil
}

// DefaultCatalog returns the built-in provider catalog.
func DefaultCatalog() *CatalogConfig {
	cfg := &CatalogConfig{
		Backends: map[string]BackendProfile{
			"anthropic": {
				CostMultiplier: 2.0,
				Models: map[string]string{
					TierSimple:   "claude-sonnet-4-20250514",
					TierComplex:  "claude-sonnet-4-20250514",
					TierCreative: "claude-opus-4-20250514",
				},
			},
			"openai": {
				CostMultiplier: 1.4,
				Models: map[string]string{
					TierSimple:   "gpt-5.2-instant",
					TierComplex:  "gpt-5.2-thinking",
					TierCreative: "gpt-5.2-pro",
				},
			},
			"google": {
				CostMultiplier: 1.0,
				Models: map[string]string{
					TierSimple:   "gemini-2.0-flash",
					TierComplex:  "gemini-2.0-flash",
					TierCreative: "gemini-2.0-pro",
				},
			},
		},
		Priority: []string{"openai", "anthropic", "google"},
		Fallback: "openai",
		Pricing: PricingConfig{
			"anthropic": {
				"claude-sonnet-4-20250514": {PromptPer1K: 0.003, CompletionPer1K: 0.015},
				"claude-opus-4-20250514":   {PromptPer1K: 0.015, CompletionPer1K: 0.075},
				"default":                  {PromptPer1K: 0.003, CompletionPer1K: 0.015},
			},
			"openai": {
				"gpt-5.2-instant":  {PromptPer1K: 0.0005, CompletionPer1K: 0.0015},
				"gpt-5.2-thinking": {PromptPer1K: 0.003, CompletionPer1K: 0.012},
				"gpt-5.2-pro":      {PromptPer1K: 0.01, CompletionPer1K: 0.04},
				"default":          {PromptPer1K: 0.003, CompletionPer1K: 0.012},
			},
			"google": {
				"gemini-2.0-flash": {PromptPer1K: 0.0001, CompletionPer1K: 0.0004},
				"gemini-2.0-pro":   {PromptPer1K: 0.00125, CompletionPer1K: 0.005},
				"default":          {PromptPer1K: 0.00125, CompletionPer1K: 0.005},
			},
		},
	}

	applyCatalogDefaults(cfg)
	return cfg
}

func applyCatalogDefaults(cfg *CatalogConfig) {
	if cfg == nil {
		return
	}
	if cfg.AttemptTimeoutMs <= 0 {
		cfg.AttemptTimeoutMs = 8000
	}
	if len(cfg.Priority) == 0 {
		names := make([]string, 0, len(cfg.Backends))
		for name := range cfg.Backends {
			names = append(names, name)
		}
		sort.Strings(names)
		cfg.Priority = names
	}
}

// ModelFor resolves the model for a backend and tier.
func (c *CatalogConfig) ModelFor(backendName, tier string) (string, bool) {
	if c == nil {
		return "", false
	}
	profile, ok := c.Backends[backendName]
	if !ok {
		return "", false
	}
	model, ok := profile.Models[tier]
	return model, ok
}

// RankedBackends returns backend names ordered by ascending cost
// multiplier, ties broken by the declared priority order.
func (c *CatalogConfig) RankedBackends() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Backends))
	for name := range c.Backends {
		names = append(names, name)
	}
	rank := make(map[string]int, len(c.Priority))
	for i, name := range c.Priority {
		rank[name] = i
	}
	sort.SliceStable(names, func(i, j int) bool {
		mi := c.Backends[names[i]].CostMultiplier
		mj := c.Backends[names[j]].CostMultiplier
		if mi == mj {
			return priorityRank(rank, names[i]) < priorityRank(rank, names[j])
		}
		return mi < mj
	})
	return names
}

func priorityRank(rank map[string]int, name string) int {
	if r, ok := rank[name]; ok {
		return r
	}
	return len(rank) + 1
}

// PricingFor resolves the pricing entry for a backend and model, falling
// back to the backend's documented "default" entry for unknown models.
func (c *CatalogConfig) PricingFor(backendName, model string) (ModelPricing, bool) {
	if c == nil || c.Pricing == nil {
		return ModelPricing{}, false
	}
	backendPricing, ok := c.Pricing[backendName]
	if !ok {
		return ModelPricing{}, false
	}
	if entry, ok := backendPricing[model]; ok {
		return entry, true
	}
	if entry, ok := backendPricing["default"]; ok {
		return entry, true
	}
	return ModelPricing{}, false
}

// Validate checks catalog integrity: every backend must map all three
// tiers, multipliers must be positive, the fallback backend must exist,
// and pricing must cover every mapped model.
func (c *CatalogConfig) Validate() []error {
	var errs []error
	if c == nil || len(c.Backends) == 0 {
		return []error{fmt.Errorf("catalog has no backends")}
	}

	tiers := []string{TierSimple, TierComplex, TierCreative}
	for _, name := range sortedBackendNames(c.Backends) {
		profile := c.Backends[name]
		if profile.CostMultiplier <= 0 {
			errs = append(errs, fmt.Errorf("backend %q: cost multiplier must be positive", name))
		}
		for _, tier := range tiers {
			model, ok := profile.Models[tier]
			if !ok || model == "" {
				errs = append(errs, fmt.Errorf("backend %q: no model for tier %q", name, tier))
				continue
			}
			if _, ok := c.PricingFor(name, model); !ok {
				errs = append(errs, fmt.Errorf("backend %q: no pricing for model %q", name, model))
			}
		}
	}

	if c.Fallback == "" {
		errs = append(errs, fmt.Errorf("catalog has no fallback backend"))
	} else if _, ok := c.Backends[c.Fallback]; !ok {
		errs = append(errs, fmt.Errorf("fallback backend %q is not in the catalog", c.Fallback))
	}

	for _, name := range c.Priority {
		if _, ok := c.Backends[name]; !ok {
			errs = append(errs, fmt.Errorf("priority entry %q is not in the catalog", name))
		}
	}

	return errs
}

func sortedBackendNames(backends map[string]BackendProfile) []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
