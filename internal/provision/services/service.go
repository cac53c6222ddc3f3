// Package services provides the provisioning service layer.
//
// The Service type wraps a domain.Backend (and optionally a storage flow and
// an intent extractor) and adds default application, intent validation and
// result normalisation. CLI commands, the chat TUI and the HTTP API construct
// a Service from resolved configuration and call Submit or Execute rather
// than calling the backends directly.
package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	idomain "nathanbeddoewebdev/infrachat/internal/intent/domain"
	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// IntentExtractor turns a user message into a structured action.
type IntentExtractor interface {
	Extract(ctx context.Context, utterance string, declared domain.ResourceType) (idomain.Extraction, error)
}

// Service is the provisioning business logic layer. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	backend   domain.Backend
	flow      domain.StorageFlow
	extractor IntentExtractor
	logger    *slog.Logger
	now       func() time.Time

	verifyTimeout  time.Duration
	verifyObserver func(VerifyReport)
	verifying      sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithStorageFlow sets the flow backend used for storage buckets.
func WithStorageFlow(flow domain.StorageFlow) Option {
	return func(s *Service) {
		s.flow = flow
	}
}

// WithExtractor sets the intent extractor used by Submit.
func WithExtractor(e IntentExtractor) Option {
	return func(s *Service) {
		s.extractor = e
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for generated names and
// creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Service backed by the given REST backend.
func New(backend domain.Backend, opts ...Option) *Service {
	svc := &Service{
		backend:       backend,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:           time.Now,
		verifyTimeout: DefaultVerifyTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}
