package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "backend-url").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Env is the environment variable that overrides the stored value.
	Env string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Normalize canonicalises a user-supplied value and rejects invalid ones.
	Normalize func(value string) (string, error)
}

// ModelProviders lists the accepted model-provider values.
var ModelProviders = []string{"openai", "gemini"}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "backend-url",
		Description: "Base URL of the REST provisioning API (required)",
		Env:         "INFRACHAT_BACKEND_URL",
		Get:         func(cfg *Config) string { return cfg.BackendURL },
		Set:         func(cfg *Config, v string) { cfg.BackendURL = v },
		Normalize:   normalizeURL,
	},
	{
		Name:        "storage-flow-url",
		Description: "Base URL of the storage bucket flow API",
		Env:         "INFRACHAT_STORAGE_FLOW_URL",
		Get:         func(cfg *Config) string { return cfg.StorageFlowURL },
		Set:         func(cfg *Config, v string) { cfg.StorageFlowURL = v },
		Normalize:   normalizeURL,
	},
	{
		Name:        "model-provider",
		Description: "Language model backend: openai or gemini",
		Env:         "INFRACHAT_MODEL_PROVIDER",
		Get:         func(cfg *Config) string { return cfg.ModelProvider },
		Set:         func(cfg *Config, v string) { cfg.ModelProvider = v },
		Normalize:   normalizeModelProvider,
	},
	{
		Name:        "model",
		Description: "Model name passed to the backend (defaults per backend)",
		Env:         "INFRACHAT_MODEL",
		Get:         func(cfg *Config) string { return cfg.Model },
		Set:         func(cfg *Config, v string) { cfg.Model = v },
		Normalize:   func(v string) (string, error) { return strings.TrimSpace(v), nil },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s (env %s)\n", maxLen, k.Name, k.Description, k.Env)
	}
	return b.String()
}

// normalizeURL trims whitespace and trailing slashes and requires an
// absolute http(s) URL. Case is preserved.
func normalizeURL(v string) (string, error) {
	v = strings.TrimRight(strings.TrimSpace(v), "/")
	u, err := url.Parse(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", v, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid URL %q: must be an absolute http or https URL", v)
	}
	return v, nil
}

func normalizeModelProvider(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if !slices.Contains(ModelProviders, v) {
		return "", fmt.Errorf("unknown model provider %q (valid: %s)", v, strings.Join(ModelProviders, ", "))
	}
	return v, nil
}
