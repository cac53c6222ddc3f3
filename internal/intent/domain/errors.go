package domain

import "nathanbeddoewebdev/infrachat/internal/domain"

// Re-export shared sentinel errors so model backends do not need to import
// the cross-domain package directly.
var (
	ErrUnauthorized  = domain.ErrUnauthorized
	ErrRateLimited   = domain.ErrRateLimited
	ErrInvalidInput  = domain.ErrInvalidInput
	ErrUpstreamModel = domain.ErrUpstreamModel
)
