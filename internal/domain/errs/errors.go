// Package errs holds the error taxonomy shared by the service and HTTP layers.
//
// Each type maps to exactly one HTTP status in middleware.ErrorHandler:
//
//	ValidationError       -> 400
//	AuthError             -> 401
//	UpstreamError         -> 502
//	CacheUnavailableError -> 500
package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports bad or contradictory request parameters.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidation returns a *ValidationError for field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// AuthError reports a missing or wrong X-Secret-Key.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

// UpstreamError wraps a failure of the sales database.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstream wraps err as an *UpstreamError; nil stays nil.
func NewUpstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Op: op, Err: err}
}

// CacheUnavailableError wraps a failure to reach the cache store.
type CacheUnavailableError struct {
	Op  string
	Err error
}

func (e *CacheUnavailableError) Error() string {
	return fmt.Sprintf("cache %s: %v", e.Op, e.Err)
}

func (e *CacheUnavailableError) Unwrap() error { return e.Err }

// NewCacheUnavailable wraps err as a *CacheUnavailableError; nil stays nil.
func NewCacheUnavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CacheUnavailableError{Op: op, Err: err}
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsUpstream reports whether err is or wraps an *UpstreamError.
func IsUpstream(err error) bool {
	var u *UpstreamError
	return errors.As(err, &u)
}

// IsCacheUnavailable reports whether err is or wraps a *CacheUnavailableError.
func IsCacheUnavailable(err error) bool {
	var c *CacheUnavailableError
	return errors.As(err, &c)
}
