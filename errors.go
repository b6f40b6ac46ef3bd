// ABOUTME: Error predicates for the feedsync library
// ABOUTME: Re-exports the core error taxonomy so callers need only this package

package feedsync

import (
	"errors"

	coreerrors "feedsync/core/errors"
)

// Error types returned by the client
type (
	ConfigurationError  = coreerrors.ConfigurationError
	ValidationError     = coreerrors.ValidationError
	AuthenticationError = coreerrors.AuthenticationError
	APIError            = coreerrors.APIError
	ConsistencyError    = coreerrors.ConsistencyError
	CapabilityError     = coreerrors.CapabilityError
	HTTPError           = coreerrors.HTTPError
	DecodeError         = coreerrors.DecodeError
)

// ErrClientClosed is returned when operations are attempted on a closed client
var ErrClientClosed = errors.New("feedsync: client is closed")

// NewConfigurationError creates a ConfigurationError for field
func NewConfigurationError(field, message string) error {
	return &coreerrors.ConfigurationError{Field: field, Message: message}
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool { return coreerrors.IsConfiguration(err) }

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool { return coreerrors.IsValidation(err) }

// IsAuthenticationError checks if an error is an authentication error
func IsAuthenticationError(err error) bool { return coreerrors.IsAuthentication(err) }

// IsAPIError checks if an error reports an unexpected server answer
func IsAPIError(err error) bool { return coreerrors.IsAPI(err) }

// IsConsistencyError checks if an error reports a broken sync invariant
func IsConsistencyError(err error) bool { return coreerrors.IsConsistency(err) }

// IsCapabilityError checks if an error reports an operation the protocol lacks
func IsCapabilityError(err error) bool { return coreerrors.IsCapability(err) }

// IsHTTPError checks if an error is a failing HTTP status
func IsHTTPError(err error) bool { return coreerrors.IsHTTP(err) }

// IsDecodeError checks if an error is an undecodable response body
func IsDecodeError(err error) bool { return coreerrors.IsDecode(err) }
