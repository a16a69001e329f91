package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ModelAliases manages model alias resolution and validation.
type ModelAliases struct {
	Aliases  map[string]string   `yaml:"aliases"`
	Backends map[string][]string `yaml:"backends"`
}

// LoadAliases reads model aliases from a YAML file.
func LoadAliases(path string) (*ModelAliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var aliases ModelAliases
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, err
	}

	if aliases.Aliases == nil {
		aliases.Aliases = make(map[string]string)
	}
	if aliases.Backends == nil {
		aliases.Backends = make(map[string][]string)
	}

	return &aliases, nil
}

// LoadAliasesWithFallback loads aliases from the user config dir, falling
// back to the built-in defaults if no file is found.
func LoadAliasesWithFallback() (*ModelAliases, error) {
	home, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(home, ".captiongate", "models.yaml")
		if _, err := os.Stat(userPath); err == nil {
			return LoadAliases(userPath)
		}
	}

	return DefaultAliases(), nil
}

// Resolve returns the canonical model name for an alias.
// If the input is not an alias, it returns the input unchanged.
func (a *ModelAliases) Resolve(modelOrAlias string) string {
	if a == nil || a.Aliases == nil {
		return modelOrAlias
	}
	if canonical, ok := a.Aliases[modelOrAlias]; ok {
		return canonical
	}
	return modelOrAlias
}

// IsAlias returns true if the given string is a known alias.
func (a *ModelAliases) IsAlias(name string) bool {
	if a == nil || a.Aliases == nil {
		return false
	}
	_, ok := a.Aliases[name]
	return ok
}

// ValidateModel checks if a model exists in the backend's list.
// Returns nil if valid, or an error describing the problem.
func (a *ModelAliases) ValidateModel(backendName, model string) error {
	if a == nil || a.Backends == nil {
		return nil // No validation possible without backend info
	}

	models, ok := a.Backends[backendName]
	if !ok {
		return fmt.Errorf("unknown backend %q", backendName)
	}

	for _, m := range models {
		if m == model {
			return nil
		}
	}

	return fmt.Errorf("model %q not in %s backend list", model, backendName)
}

// ListAliases returns a copy of the aliases map.
func (a *ModelAliases) ListAliases() map[string]string {
	if a == nil || a.Aliases == nil {
		return make(map[string]string)
	}
	result := make(map[string]string, len(a.Aliases))
	for k, v := range a.Aliases {
		result[k] = v
	}
	return result
}

// ListBackends returns a sorted list of backend names.
func (a *ModelAliases) ListBackends() []string {
	if a == nil || a.Backends == nil {
		return nil
	}
	backends := make([]string, 0, len(a.Backends))
	for b := range a.Backends {
		backends = append(backends, b)
	}
	sort.Strings(backends)
	return backends
}

// ValidateCatalog checks that all models in a provider catalog are valid.
// Returns a slice of validation errors (empty if all valid).
func (a *ModelAliases) ValidateCatalog(cfg *CatalogConfig) []error {
	if a == nil || cfg == nil {
		return nil
	}

	var errors []error
	for _, name := range sortedBackendNames(cfg.Backends) {
		profile := cfg.Backends[name]
		for _, tier := range []string{TierSimple, TierComplex, TierCreative} {
			model := a.Resolve(profile.Models[tier])
			if err := a.ValidateModel(name, model); err != nil {
				errors = append(errors, fmt.Errorf("backend %q tier %q: %w", name, tier, err))
			}
		}
	}

	return errors
}

// DefaultAliases returns the default model aliases configuration.
func DefaultAliases() *ModelAliases {
	return &ModelAliases{
		Aliases: map[string]string{
			// Google
			"fast": "gemini-2.0-flash",
			// OpenAI
			"balanced": "gpt-5.2-thinking",
			"snappy":   "gpt-5.2-instant",
			// Anthropic
			"quality": "claude-sonnet-4-20250514",
			"best":    "claude-opus-4-20250514",
		},
		Backends: map[string][]string{
			"anthropic": {"claude-sonnet-4-20250514", "claude-opus-4-20250514"},
			"openai":    {"gpt-5.2-instant", "gpt-5.2-thinking", "gpt-5.2-pro"},
			"google":    {"gemini-2.0-flash", "gemini-2.0-pro"},
		},
	}
}
