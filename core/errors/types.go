// ABOUTME: Error taxonomy shared by the authenticators, the sync engine and the transport
// ABOUTME: Each kind is a struct type with an errors.As based predicate

package errors

import (
	"errors"
	"fmt"
)

// ConfigurationError reports missing or invalid inputs detected before any network call
type ConfigurationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
	return fmt.Sprintf("configuration error on '%s': %s", e.Field, e.Message)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// AuthenticationError reports a credential rejected by the server. Stage names the
// step that failed (probe, login, token or a data call).
type AuthenticationError struct {
	Stage   string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication failed at %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("authentication failed at %s: %s", e.Stage, e.Message)
}

// Unwrap returns the underlying cause
func (e *AuthenticationError) Unwrap() error {
	return e.Cause
}

// APIError represents a well-formed but semantically invalid server response
type APIError struct {
	Operation string
	Message   string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("api error during %s: %s", e.Operation, e.Message)
}

// ConsistencyError reports a violated client-side invariant. It always indicates a bug.
type ConsistencyError struct {
	Message string
}

// Error implements the error interface
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("internal consistency error: %s", e.Message)
}

// CapabilityError reports an operation the selected protocol cannot perform
type CapabilityError struct {
	Protocol  string
	Operation string
}

// Error implements the error interface
func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s protocol does not support %s", e.Protocol, e.Operation)
}

// HTTPError is returned by the transport for responses with a failing status code
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: %s", e.Status)
	}
	return fmt.Sprintf("http error: %s: %s", e.Status, e.Body)
}

// DecodeError is returned when a response body cannot be decoded
type DecodeError struct {
	ContentType string
	Cause       error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s body: %v", e.ContentType, e.Cause)
}

// Unwrap returns the underlying cause
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

// IsAPI checks if an error is an APIError
func IsAPI(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}

// IsConsistency checks if an error is a ConsistencyError
func IsConsistency(err error) bool {
	var target *ConsistencyError
	return errors.As(err, &target)
}

// IsCapability checks if an error is a CapabilityError
func IsCapability(err error) bool {
	var target *CapabilityError
	return errors.As(err, &target)
}

// IsHTTP checks if an error is an HTTPError
func IsHTTP(err error) bool {
	var target *HTTPError
	return errors.As(err, &target)
}

// IsDecode checks if an error is a DecodeError
func IsDecode(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an HTTPError
func StatusCode(err error) int {
	var target *HTTPError
	if errors.As(err, &target) {
		return target.StatusCode
	}
	return 0
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
