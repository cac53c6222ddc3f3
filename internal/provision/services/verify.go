package services

import (
	"context"
	"slices"
	"time"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// DefaultVerifyTimeout bounds the post-create bucket verification.
const DefaultVerifyTimeout = 30 * time.Second

// VerifyReport is the outcome of a post-create bucket check.
type VerifyReport struct {
	Bucket string
	Found  bool
	Err    error
}

// WithVerifyObserver registers a callback invoked with the outcome of every
// post-create bucket check. It runs on the verification goroutine.
func WithVerifyObserver(fn func(VerifyReport)) Option {
	return func(s *Service) {
		s.verifyObserver = fn
	}
}

// WithVerifyTimeout overrides DefaultVerifyTimeout.
func WithVerifyTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.verifyTimeout = d
		}
	}
}

// verifyBucket lists buckets in the background to confirm a new bucket is
// visible. The outcome is logged and reported to the observer only; it can
// never change the create result. The check outlives the request context.
func (s *Service) verifyBucket(ctx context.Context, name string) {
	if s.flow == nil {
		return
	}

	s.verifying.Add(1)
	go func() {
		defer s.verifying.Done()

		report := VerifyReport{Bucket: name}
		defer func() {
			if r := recover(); r != nil {
				s.logger.Debug("bucket verification aborted", "bucket", name, "panic", r)
			}
		}()

		vctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.verifyTimeout)
		defer cancel()

		buckets, err := s.flow.ListBuckets(vctx)
		switch {
		case err != nil:
			report.Err = err
			s.logger.Debug("bucket verification failed", "bucket", name, "error", err)
		default:
			report.Found = slices.ContainsFunc(buckets, func(b domain.Bucket) bool { return b.Name == name })
			if !report.Found {
				s.logger.Warn("bucket not found in listing after creation", "bucket", name)
			} else {
				s.logger.Debug("bucket verified", "bucket", name)
			}
		}

		if s.verifyObserver != nil {
			s.verifyObserver(report)
		}
	}()
}

// Wait blocks until all background verifications have finished.
func (s *Service) Wait() {
	s.verifying.Wait()
}
