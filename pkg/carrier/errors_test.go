package carrier_test

import (
	"errors"
	"testing"

	"github.com/devacc8/cybership-carrier-service/pkg/carrier"
	"github.com/stretchr/testify/assert"
)

func TestCarrierError_Error(t *testing.T) {
	err := carrier.NewCarrierError(carrier.ErrCodeCarrierAPI, "Invalid postal code").
		WithCarrier(carrier.CarrierUPS)
	assert.Equal(t, "UPS (CARRIER_API_ERROR): Invalid postal code", err.Error())
}

func TestCarrierError_ErrorWithoutCarrier(t *testing.T) {
	err := carrier.NewCarrierError(carrier.ErrCodeValidation, "invalid rate request")
	assert.Equal(t, "VALIDATION_ERROR: invalid rate request", err.Error())
}

func TestCarrierError_ErrorWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := carrier.NewCarrierError(carrier.ErrCodeNetwork, "failed to connect to UPS API").
		WithCause(cause)
	assert.Contains(t, err.Error(), "failed to connect to UPS API")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCarrierError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := carrier.NewCarrierError(carrier.ErrCodeNetwork, "network failure").WithCause(cause)
	assert.True(t, errors.Is(err, cause))
}

func TestCarrierError_Is(t *testing.T) {
	err1 := carrier.NewCarrierError(carrier.ErrCodeRateLimited, "UPS rate limit exceeded").
		WithCarrier(carrier.CarrierUPS)
	err2 := carrier.NewCarrierError(carrier.ErrCodeRateLimited, "different message")

	// Same code should match regardless of message or carrier
	assert.True(t, errors.Is(err1, err2))
}

func TestCarrierError_IsNot(t *testing.T) {
	err1 := carrier.NewCarrierError(carrier.ErrCodeRateLimited, "rate limited")
	err2 := carrier.NewCarrierError(carrier.ErrCodeTimeout, "timed out")

	assert.False(t, errors.Is(err1, err2))
}

func TestCarrierError_WithStatus(t *testing.T) {
	err := carrier.NewCarrierError(carrier.ErrCodeAuthFailed, "Unauthorized").WithStatus(401)
	assert.Equal(t, 401, err.HTTPStatus)
}

func TestCarrierError_WithRetryable(t *testing.T) {
	err := carrier.NewCarrierError(carrier.ErrCodeRateLimited, "Too many requests").WithRetryable(true)
	assert.True(t, err.Retryable)
}

func TestCarrierError_WithDetails(t *testing.T) {
	err := carrier.NewCarrierError(carrier.ErrCodeValidation, "invalid rate request").
		WithDetails(map[string]any{"issues": []string{"packages: failed \"min\" constraint"}})
	assert.Contains(t, err.Details, "issues")
}

func TestIsRetryable(t *testing.T) {
	retryable := carrier.NewCarrierError(carrier.ErrCodeNetwork, "network failure").WithRetryable(true)
	assert.True(t, carrier.IsRetryable(retryable))

	terminal := carrier.NewCarrierError(carrier.ErrCodeValidation, "bad request")
	assert.False(t, carrier.IsRetryable(terminal))

	assert.False(t, carrier.IsRetryable(errors.New("plain error")))
}

func TestAsCarrierError_Wrapped(t *testing.T) {
	inner := carrier.NewCarrierError(carrier.ErrCodeTimeout, "timed out")
	wrapped := carrier.NewCarrierError(carrier.ErrCodeCarrierAPI, "outer").WithCause(inner)

	ce, ok := carrier.AsCarrierError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, carrier.ErrCodeCarrierAPI, ce.Code)
}

func TestErrorMessage(t *testing.T) {
	ce := carrier.NewCarrierError(carrier.ErrCodeNetwork, "failed to connect to UPS API").
		WithCarrier(carrier.CarrierUPS)
	assert.Equal(t, "failed to connect to UPS API", carrier.ErrorMessage(ce))
	assert.Equal(t, "plain error", carrier.ErrorMessage(errors.New("plain error")))
}
