package domain

import (
	"fmt"

	"nathanbeddoewebdev/infrachat/internal/domain"
)

// Re-export shared sentinel errors so provisioning callers do not need to
// import the cross-domain package directly.
var (
	ErrNotFound       = domain.ErrNotFound
	ErrUnauthorized   = domain.ErrUnauthorized
	ErrRateLimited    = domain.ErrRateLimited
	ErrConflict       = domain.ErrConflict
	ErrInvalidInput   = domain.ErrInvalidInput
	ErrIntentMismatch = domain.ErrIntentMismatch
	ErrUpstreamModel  = domain.ErrUpstreamModel
	ErrBackendRequest = domain.ErrBackendRequest
	ErrBackendData    = domain.ErrBackendData
	ErrUnsupported    = domain.ErrUnsupported
)

// FlowError is an error node reported inside a storage flow response body.
// It is returned regardless of the HTTP status that carried it.
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("AWS Error: %s - %s", e.Code, e.Message)
}

// Unwrap classifies flow errors as backend data errors.
func (e *FlowError) Unwrap() error {
	return ErrBackendData
}
