package domain

import "errors"

// Sentinel errors for cross-component error classification.
// Backends and model clients wrap these so the CLI and the HTTP API can
// handle error categories uniformly without knowing which upstream failed.
//
//	return fmt.Errorf("failed to list databases: %w", domain.ErrBackendRequest)
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the request was rejected due to
	// invalid, expired, or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the upstream throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrConflict indicates a state or uniqueness conflict, such as
	// a bucket name that is already taken.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates a request that was rejected before any
	// upstream call, such as an empty message or an unknown resource type.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIntentMismatch indicates the model extracted an action for a
	// different resource type than the one the caller declared.
	ErrIntentMismatch = errors.New("resource type mismatch")

	// ErrUpstreamModel indicates the language model call failed or
	// returned arguments that could not be decoded.
	ErrUpstreamModel = errors.New("model request failed")

	// ErrBackendRequest indicates a provisioning backend call failed at
	// the transport level or returned a non-success status.
	ErrBackendRequest = errors.New("backend request failed")

	// ErrBackendData indicates a provisioning backend returned a payload
	// that could not be decoded or that reported an error in its body.
	ErrBackendData = errors.New("backend returned invalid data")

	// ErrUnsupported indicates an action or resource type the executor
	// does not handle.
	ErrUnsupported = errors.New("unsupported")
)
