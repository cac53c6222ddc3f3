// Package services assembles the application services from resolved
// configuration.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/intent/providers"
	intent "nathanbeddoewebdev/infrachat/internal/intent/services"
	"nathanbeddoewebdev/infrachat/internal/logging"
	"nathanbeddoewebdev/infrachat/internal/provision/backends"
	provisioning "nathanbeddoewebdev/infrachat/internal/provision/services"
	"nathanbeddoewebdev/infrachat/internal/services/auth"
)

// ProvisioningOptions configures NewProvisioning.
type ProvisioningOptions struct {
	Store  auth.Store
	Logger *slog.Logger

	// WithoutModel skips the language model. Submit then fails with
	// ErrUpstreamModel; listing and bucket deletion still work.
	WithoutModel bool

	// Extra is appended to the service options.
	Extra []provisioning.Option
}

// NewProvisioning validates s and builds the provisioning service with its
// REST backend, the optional storage flow and the configured model.
func NewProvisioning(ctx context.Context, s config.Settings, opts ProvisioningOptions) (*provisioning.Service, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	svcOpts := []provisioning.Option{provisioning.WithLogger(logger)}
	if s.StorageFlowURL != "" {
		svcOpts = append(svcOpts, provisioning.WithStorageFlow(backends.NewFlowBackend(s.StorageFlowURL)))
	}

	if !opts.WithoutModel {
		store := opts.Store
		if store == nil {
			store = auth.DefaultStore()
		}
		model, err := providers.Get(ctx, s.ModelProvider, store, s.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize %s model: %w", s.ModelProvider, err)
		}
		logger.Debug("model ready", "provider", s.ModelProvider, "model", model.GetDisplayName())
		svcOpts = append(svcOpts, provisioning.WithExtractor(intent.NewExtractor(model)))
	}

	svcOpts = append(svcOpts, opts.Extra...)
	return provisioning.New(backends.NewRESTBackend(s.BackendURL), svcOpts...), nil
}
