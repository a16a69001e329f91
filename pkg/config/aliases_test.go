package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveAlias(t *testing.T) {
	aliases := DefaultAliases()

	tests := []struct {
		in   string
		want string
	}{
		{"fast", "gemini-2.0-flash"},
		{"best", "claude-opus-4-20250514"},
		{"gpt-5.2-pro", "gpt-5.2-pro"}, // canonical names pass through
		{"unknown", "unknown"},
	}

	for _, tt := range tests {
		if got := aliases.Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveOnNilAliases(t *testing.T) {
	var aliases *ModelAliases
	if got := aliases.Resolve("fast"); got != "fast" {
		t.Fatalf("nil aliases must pass input through, got %q", got)
	}
}

func TestIsAlias(t *testing.T) {
	aliases := DefaultAliases()
	if !aliases.IsAlias("quality") {
		t.Fatalf("expected quality to be an alias")
	}
	if aliases.IsAlias("claude-opus-4-20250514") {
		t.Fatalf("canonical model names are not aliases")
	}
}

func TestValidateModel(t *testing.T) {
	aliases := DefaultAliases()

	if err := aliases.ValidateModel("openai", "gpt-5.2-instant"); err != nil {
		t.Fatalf("expected valid model, got %v", err)
	}
	if err := aliases.ValidateModel("openai", "claude-opus-4-20250514"); err == nil {
		t.Fatalf("expected error for model on wrong backend")
	}
	if err := aliases.ValidateModel("imaginary", "any"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestValidateCatalogAgainstAliases(t *testing.T) {
	aliases := DefaultAliases()

	if errs := aliases.ValidateCatalog(DefaultCatalog()); len(errs) != 0 {
		t.Fatalf("default catalog must pass alias validation, got %v", errs)
	}

	broken := DefaultCatalog()
	profile := broken.Backends["google"]
	profile.Models[TierSimple] = "made-up-model"
	if errs := aliases.ValidateCatalog(broken); len(errs) == 0 {
		t.Fatalf("expected validation error for unknown model")
	}
}

func TestLoadAliasesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	data := `aliases:
  zippy: model-z
backends:
  zeta:
    - model-z
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write aliases: %v", err)
	}

	aliases, err := LoadAliases(path)
	if err != nil {
		t.Fatalf("LoadAliases: %v", err)
	}
	if got := aliases.Resolve("zippy"); got != "model-z" {
		t.Fatalf("Resolve(zippy) = %q", got)
	}
	if err := aliases.ValidateModel("zeta", "model-z"); err != nil {
		t.Fatalf("expected model-z to validate, got %v", err)
	}
}
