package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	catalog := DefaultCatalog()
	if errs := catalog.Validate(); len(errs) != 0 {
		t.Fatalf("default catalog must validate, got %v", errs)
	}
	if catalog.AttemptTimeoutMs <= 0 {
		t.Fatalf("expected a default attempt timeout")
	}
}

func TestRankedBackendsOrdersByMultiplier(t *testing.T) {
	catalog := DefaultCatalog()
	got := catalog.RankedBackends()
	want := []string{"google", "openai", "anthropic"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RankedBackends() = %v, want %v", got, want)
	}
}

func TestRankedBackendsTieBreaksByPriority(t *testing.T) {
	catalog := &CatalogConfig{
		Backends: map[string]BackendProfile{
			"aaa": {CostMultiplier: 1.0},
			"bbb": {CostMultiplier: 1.0},
			"ccc": {CostMultiplier: 1.0},
		},
		Priority: []string{"ccc", "aaa", "bbb"},
	}

	for i := 0; i < 20; i++ {
		got := catalog.RankedBackends()
		want := []string{"ccc", "aaa", "bbb"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: RankedBackends() = %v, want %v", i, got, want)
		}
	}
}

func TestModelFor(t *testing.T) {
	catalog := DefaultCatalog()

	model, ok := catalog.ModelFor("openai", TierCreative)
	if !ok || model != "gpt-5.2-pro" {
		t.Fatalf("ModelFor(openai, creative) = %q, %t", model, ok)
	}

	if _, ok := catalog.ModelFor("nonexistent", TierSimple); ok {
		t.Fatalf("unknown backend must not resolve a model")
	}
}

func TestPricingForFallsBackToDefaultEntry(t *testing.T) {
	catalog := DefaultCatalog()

	entry, ok := catalog.PricingFor("openai", "gpt-unreleased")
	if !ok {
		t.Fatalf("expected default pricing entry for unknown model")
	}
	want := catalog.Pricing["openai"]["default"]
	if entry != want {
		t.Fatalf("expected default rates %+v, got %+v", want, entry)
	}
}

func TestValidateCatchesProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CatalogConfig)
	}{
		{
			name: "missing tier model",
			mutate: func(c *CatalogConfig) {
				profile := c.Backends["google"]
				delete(profile.Models, TierCreative)
			},
		},
		{
			name: "nonpositive multiplier",
			mutate: func(c *CatalogConfig) {
				profile := c.Backends["openai"]
				profile.CostMultiplier = 0
				c.Backends["openai"] = profile
			},
		},
		{
			name: "unknown fallback",
			mutate: func(c *CatalogConfig) {
				c.Fallback = "imaginary"
			},
		},
		{
			name: "empty fallback",
			mutate: func(c *CatalogConfig) {
				c.Fallback = ""
			},
		},
		{
			name: "unknown priority entry",
			mutate: func(c *CatalogConfig) {
				c.Priority = append(c.Priority, "imaginary")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := DefaultCatalog()
			tt.mutate(catalog)
			if errs := catalog.Validate(); len(errs) == 0 {
				t.Fatalf("expected validation errors")
			}
		})
	}
}

func TestLoadCatalogAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := `backends:
  alpha:
    cost_multiplier: 1.0
    models:
      simple: alpha-1
      complex: alpha-1
      creative: alpha-2
  beta:
    cost_multiplier: 2.0
    models:
      simple: beta-1
      complex: beta-1
      creative: beta-1
fallback: beta
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if catalog.AttemptTimeoutMs != 8000 {
		t.Fatalf("expected default timeout, got %d", catalog.AttemptTimeoutMs)
	}
	if !reflect.DeepEqual(catalog.Priority, []string{"alpha", "beta"}) {
		t.Fatalf("expected sorted priority default, got %v", catalog.Priority)
	}
	if model, ok := catalog.ModelFor("alpha", TierCreative); !ok || model != "alpha-2" {
		t.Fatalf("ModelFor(alpha, creative) = %q, %t", model, ok)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
