package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Knowledge errors
	ErrKnowledgeNotFound = errors.New("knowledge entry not found")
	ErrEmptyContent      = errors.New("knowledge content must not be empty")
	ErrInvalidCategory   = errors.New("invalid knowledge category")

	// Request errors
	ErrInvalidRequestType = errors.New("invalid request type")
	ErrFeatureDisabled    = errors.New("feature is disabled for this use case")

	// Throttling errors
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrBudgetExceeded    = errors.New("monthly cost budget exceeded")
)

// ValidationError reports a malformed request or context field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

// ExternalDependencyError wraps a failure of one of the external
// collaborators (embedding provider, knowledge store, completion provider,
// cache backend). Callers receive it instead of a partial or degraded
// result.
type ExternalDependencyError struct {
	Dependency string
	Err        error
}

func (e *ExternalDependencyError) Error() string {
	return fmt.Sprintf("external dependency %q failed: %v", e.Dependency, e.Err)
}

func (e *ExternalDependencyError) Unwrap() error {
	return e.Err
}

// NewDependencyError wraps err as a failure of the named dependency.
func NewDependencyError(dependency string, err error) error {
	return &ExternalDependencyError{Dependency: dependency, Err: err}
}

// IsDependencyError reports whether err is (or wraps) an
// ExternalDependencyError.
func IsDependencyError(err error) bool {
	var depErr *ExternalDependencyError
	return errors.As(err, &depErr)
}
