// Package providers implements the language model backends used for intent
// extraction and a name-keyed registry to select one at runtime.
package providers

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"nathanbeddoewebdev/infrachat/internal/intent/domain"
	"nathanbeddoewebdev/infrachat/internal/services/auth"
	"nathanbeddoewebdev/infrachat/internal/util"
)

// Factory builds a Model. model may be empty, in which case the backend's
// default model is used.
type Factory func(ctx context.Context, store auth.Store, model string) (domain.Model, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds a model backend factory to the registry.
// It panics on empty name, nil factory, or duplicate registration
// (programmer errors detected at startup).
func Register(name string, factory Factory) {
	normalizedName := util.NormalizeKey(name)
	if normalizedName == "" {
		panic("intent/providers: empty provider name")
	}
	if factory == nil {
		panic("intent/providers: nil factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[normalizedName]; exists {
		panic(fmt.Sprintf("intent/providers: provider %q already registered", name))
	}

	registry[normalizedName] = factory
}

// Get constructs the Model registered under name.
func Get(ctx context.Context, name string, store auth.Store, model string) (domain.Model, error) {
	normalizedName := util.NormalizeKey(name)
	mu.RLock()
	factory, ok := registry[normalizedName]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("intent/providers: unknown provider %q", name)
	}

	return factory(ctx, store, model)
}

// List returns the sorted names of all registered model backends.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Reset clears the registry. Intended for use in tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]Factory{}
}

// RegisterAll registers every built-in backend.
func RegisterAll() {
	RegisterOpenAI()
	RegisterGemini()
}
