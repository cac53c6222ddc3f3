package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultModelProvider is used when no model provider is configured.
const DefaultModelProvider = "openai"

// Settings is the effective configuration after environment overrides.
type Settings struct {
	BackendURL     string
	StorageFlowURL string
	ModelProvider  string
	Model          string
}

// Resolve loads a .env file from the working directory when present, reads
// the config file and overlays the INFRACHAT_* environment variables.
// The result is not validated; call Settings.Validate before use.
func Resolve() (Settings, error) {
	_ = godotenv.Load()

	cfg, err := Load()
	if err != nil {
		return Settings{}, err
	}
	return resolveFrom(cfg), nil
}

// resolveFrom overlays environment variables on cfg.
func resolveFrom(cfg *Config) Settings {
	merged := *cfg
	for _, k := range Keys {
		if v := strings.TrimSpace(os.Getenv(k.Env)); v != "" {
			k.Set(&merged, v)
		}
	}

	s := Settings{
		BackendURL:     strings.TrimRight(strings.TrimSpace(merged.BackendURL), "/"),
		StorageFlowURL: strings.TrimRight(strings.TrimSpace(merged.StorageFlowURL), "/"),
		ModelProvider:  strings.ToLower(strings.TrimSpace(merged.ModelProvider)),
		Model:          strings.TrimSpace(merged.Model),
	}
	if s.ModelProvider == "" {
		s.ModelProvider = DefaultModelProvider
	}
	return s
}

// Validate reports the first configuration problem. The backend URL is
// required; there is no built-in default host.
func (s Settings) Validate() error {
	if s.BackendURL == "" {
		return fmt.Errorf("config: backend-url is not set (run 'infrachat config set backend-url <url>' or set INFRACHAT_BACKEND_URL)")
	}
	if _, err := normalizeURL(s.BackendURL); err != nil {
		return fmt.Errorf("config: backend-url: %w", err)
	}
	if s.StorageFlowURL != "" {
		if _, err := normalizeURL(s.StorageFlowURL); err != nil {
			return fmt.Errorf("config: storage-flow-url: %w", err)
		}
	}
	if _, err := normalizeModelProvider(s.ModelProvider); err != nil {
		return fmt.Errorf("config: model-provider: %w", err)
	}
	return nil
}
