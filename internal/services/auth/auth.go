// Package auth stores the API keys of the language model backends.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/platform/providers"
	"nathanbeddoewebdev/infrachat/internal/util"
)

const ServiceName = "infrachat"

var ErrTokenNotFound = errors.New("auth token not found")

type Store interface {
	SetToken(provider string, token string) error
	GetToken(provider string) (string, error)
	DeleteToken(provider string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeProvider normalizes a provider name for consistent key lookup.
func NormalizeProvider(provider string) string {
	return util.NormalizeKey(provider)
}

// EnvVar returns the environment variable consulted for provider, or "".
func EnvVar(provider string) string {
	if spec := providers.Lookup(provider); spec != nil {
		return spec.EnvVar
	}
	return ""
}

// Source describes where a resolved key came from.
type Source string

const (
	SourceEnv     Source = "env"
	SourceKeyring Source = "keychain"
)

// ResolveAPIKey returns the key for provider. The provider's environment
// variable takes precedence over the store.
func ResolveAPIKey(store Store, provider string) (string, Source, error) {
	if name := EnvVar(provider); name != "" {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, SourceEnv, nil
		}
	}
	if store == nil {
		return "", "", ErrTokenNotFound
	}
	token, err := store.GetToken(provider)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return "", "", fmt.Errorf("%s api key not found (set %s or run 'infrachat auth login %s'): %w",
				provider, EnvVar(provider), NormalizeProvider(provider), err)
		}
		return "", "", err
	}
	return token, SourceKeyring, nil
}

// ProviderStatus reports whether an API key resolves for a provider.
type ProviderStatus struct {
	Provider string
	Source   Source
	Err      error
}

// OK reports whether a key was found.
func (s ProviderStatus) OK() bool { return s.Err == nil }

// Statuses resolves the key of every provider without returning the keys.
func Statuses(store Store, providers []string) []ProviderStatus {
	out := make([]ProviderStatus, 0, len(providers))
	for _, p := range providers {
		_, source, err := ResolveAPIKey(store, p)
		out = append(out, ProviderStatus{Provider: p, Source: source, Err: err})
	}
	return out
}
