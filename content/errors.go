package content

import (
	"errors"
	"fmt"
)

// ValidationError reports a client-side length or range violation. It is
// returned before any network activity so oversized input never reaches the
// upstream API.
type ValidationError struct {
	Field  string
	Limit  int
	Length int

	// Reason overrides the default "too long" wording for non-length
	// violations (rating range, missing session id).
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Length > 0 {
		return fmt.Sprintf("%s too long: %d characters, maximum %d allowed", e.Field, e.Length, e.Limit)
	}
	return fmt.Sprintf("%s is invalid", e.Field)
}

// APIError reports a non-2xx upstream response. Message is the upstream
// error body's message field when one could be parsed.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error: %d", e.Status)
}

// NetworkError reports a request that never produced an HTTP response
// (connection refused, DNS failure, timeout).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError reports a chatbot response whose session id does not match
// the session in progress. The response must not be applied.
type ProtocolError struct {
	Expected string
	Got      string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("session id mismatch: expected %s, got %s", e.Expected, e.Got)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNetwork reports whether err is (or wraps) a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAPI reports whether err is (or wraps) an APIError.
func IsAPI(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}
