package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every ValidationError via errors.Is
	ErrValidation = errors.New("validation failed")

	// ErrProductNotFound is returned when a product does not exist in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrCompetitorNotFound is returned when a competitor profile cannot be resolved
	ErrCompetitorNotFound = errors.New("competitor not found")

	// ErrUpstreamUnavailable is returned when an optional enrichment call fails or times out
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)

// ValidationError describes a missing or invalid request field.
// The message is safe to show to API callers.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
