package swiftype

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorKind(t *testing.T) {
	tests := []struct {
		status    int
		kind      ErrorKind
		sentinel  error
		retryable bool
	}{
		{http.StatusBadRequest, KindValidation, ErrValidation, false},
		{http.StatusUnauthorized, KindAuthentication, ErrUnauthorized, false},
		{http.StatusForbidden, KindAuthentication, ErrUnauthorized, false},
		{http.StatusNotFound, KindNotFound, ErrNotFound, false},
		{http.StatusConflict, KindRequest, nil, false},
		{http.StatusUnprocessableEntity, KindValidation, ErrValidation, false},
		{http.StatusTooManyRequests, KindRateLimited, ErrRateLimited, true},
		{http.StatusInternalServerError, KindService, ErrService, true},
		{http.StatusServiceUnavailable, KindService, ErrService, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := newAPIError(http.MethodGet, "engines.json", tt.status, nil)

			assert.Equal(t, tt.kind, err.Kind())
			assert.Equal(t, tt.retryable, err.IsRetryable())
			assert.Equal(t, tt.retryable, IsRetryable(fmt.Errorf("wrapped: %w", err)))
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			assert.NotErrorIs(t, err, ErrTransport)
			assert.Equal(t, tt.status == http.StatusNotFound, err.IsNotFound())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"error string", `{"error":"Unauthorized"}`, 401, "Unauthorized"},
		{"errors list", `{"errors":["a","b"]}`, 422, "a; b"},
		{"errors object", `{"errors":{"name":["taken"]}}`, 422, `{"name":["taken"]}`},
		{"message", `{"message":"slow down"}`, 429, "slow down"},
		{"plain text", `Service Unavailable`, 503, "Service Unavailable"},
		{"empty body", ``, 500, "Internal Server Error"},
		{"unknown json", `{"detail":"x"}`, 404, `{"detail":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body), tt.status))
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	cfgErr := &ConfigError{Reason: "missing"}
	assert.ErrorIs(t, cfgErr, ErrNoCredentials)
	assert.False(t, IsRetryable(cfgErr))

	cause := errors.New("connection refused")
	tErr := &TransportError{Method: http.MethodGet, URL: "http://x/api/v1/engines.json", Err: cause}
	assert.ErrorIs(t, tErr, ErrTransport)
	assert.ErrorIs(t, tErr, cause)
	assert.Contains(t, tErr.Error(), "connection refused")

	decErr := &DecodeError{StatusCode: 200, Err: cause}
	assert.ErrorIs(t, decErr, ErrDecode)
	assert.False(t, IsRetryable(decErr))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "unknown(42)", ErrorKind(42).String())
}
