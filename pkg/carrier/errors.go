package carrier

import (
	"errors"
	"fmt"
)

// ErrorCode is the closed taxonomy of carrier-layer failures.
type ErrorCode string

const (
	ErrCodeAuthFailed        ErrorCode = "AUTH_FAILED"
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeBadRequest        ErrorCode = "BAD_REQUEST"
	ErrCodeRateLimited       ErrorCode = "RATE_LIMITED"
	ErrCodeTimeout           ErrorCode = "TIMEOUT"
	ErrCodeNetwork           ErrorCode = "NETWORK_ERROR"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	ErrCodeCarrierAPI        ErrorCode = "CARRIER_API_ERROR"
	ErrCodeCarrierNotFound   ErrorCode = "CARRIER_NOT_FOUND"
	ErrCodeUnknown           ErrorCode = "UNKNOWN"
)

// CarrierError represents a classified failure from the carrier layer.
type CarrierError struct {
	Code       ErrorCode
	Message    string
	Carrier    CarrierCode
	HTTPStatus int
	Retryable  bool
	Details    map[string]any
	Cause      error
}

// Error implements the error interface.
func (e *CarrierError) Error() string {
	prefix := string(e.Code)
	if e.Carrier != "" {
		prefix = fmt.Sprintf("%s (%s)", e.Carrier, e.Code)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CarrierError) Unwrap() error {
	return e.Cause
}

// Is matches CarrierErrors by code.
func (e *CarrierError) Is(target error) bool {
	t, ok := target.(*CarrierError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewCarrierError creates a new CarrierError.
func NewCarrierError(code ErrorCode, message string) *CarrierError {
	return &CarrierError{
		Code:    code,
		Message: message,
	}
}

// WithCarrier attributes the error to a carrier.
func (e *CarrierError) WithCarrier(code CarrierCode) *CarrierError {
	e.Carrier = code
	return e
}

// WithStatus records the HTTP status that produced the error.
func (e *CarrierError) WithStatus(status int) *CarrierError {
	e.HTTPStatus = status
	return e
}

// WithRetryable marks whether a caller may retry the operation.
func (e *CarrierError) WithRetryable(retryable bool) *CarrierError {
	e.Retryable = retryable
	return e
}

// WithDetails attaches a structured detail payload.
func (e *CarrierError) WithDetails(details map[string]any) *CarrierError {
	e.Details = details
	return e
}

// WithCause adds an underlying cause to the error.
func (e *CarrierError) WithCause(err error) *CarrierError {
	e.Cause = err
	return e
}

// AsCarrierError unwraps err into a CarrierError if possible.
func AsCarrierError(err error) (*CarrierError, bool) {
	var ce *CarrierError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsRetryable returns true if the error is marked retryable. The flag is
// advisory: nothing in this layer retries beyond the single auth retry.
func IsRetryable(err error) bool {
	if ce, ok := AsCarrierError(err); ok {
		return ce.Retryable
	}
	return false
}

// ErrorMessage returns the human message of a CarrierError, or err.Error()
// for any other error. Used when downgrading failures to warnings.
func ErrorMessage(err error) string {
	if ce, ok := AsCarrierError(err); ok {
		return ce.Message
	}
	return err.Error()
}
