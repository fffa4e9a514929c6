package swiftype

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Common errors. Every error returned by the client matches one of these
// through errors.Is.
var (
	// ErrNoCredentials indicates neither an API key nor an access token was configured
	ErrNoCredentials = errors.New("no API key or platform access token configured")
	// ErrTransport indicates the request could not be sent or no response arrived
	ErrTransport = errors.New("transport failure")
	// ErrUnauthorized indicates the service rejected the credentials (401/403)
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates the resource does not exist (404)
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates the service rejected the request payload (400/422)
	ErrValidation = errors.New("validation failed")
	// ErrRateLimited indicates the caller is being throttled (429)
	ErrRateLimited = errors.New("rate limited")
	// ErrService indicates a server-side failure (5xx)
	ErrService = errors.New("service error")
	// ErrDecode indicates a successful response carried an invalid JSON body
	ErrDecode = errors.New("invalid response body")
)

// ErrorKind classifies an APIError by its status code.
type ErrorKind int

const (
	KindRequest ErrorKind = iota
	KindAuthentication
	KindNotFound
	KindValidation
	KindRateLimited
	KindService
)

// String returns a human-readable representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate_limited"
	case KindService:
		return "service"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ConfigError is returned before dispatch when no credential could be resolved.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "swiftype configuration error: " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return ErrNoCredentials
}

// TransportError wraps a failure of the HTTP transport itself.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("swiftype %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// APIError is returned for every non-2xx response. Body is kept verbatim.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
	Body       []byte
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Message:    errorMessage(body, status),
		Body:       body,
	}
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("swiftype API error: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Kind classifies the error by status code.
func (e *APIError) Kind() ErrorKind {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return KindAuthentication
	case e.StatusCode == http.StatusNotFound:
		return KindNotFound
	case e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity:
		return KindValidation
	case e.StatusCode == http.StatusTooManyRequests:
		return KindRateLimited
	case e.StatusCode >= 500:
		return KindService
	default:
		return KindRequest
	}
}

// Is lets errors.Is match the sentinel for this error's kind.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind() == KindAuthentication
	case ErrNotFound:
		return e.Kind() == KindNotFound
	case ErrValidation:
		return e.Kind() == KindValidation
	case ErrRateLimited:
		return e.Kind() == KindRateLimited
	case ErrService:
		return e.Kind() == KindService
	}
	return false
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.Kind() == KindNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.Kind() == KindAuthentication
}

// IsRetryable reports whether a caller may reasonably retry the request.
// The client itself never retries.
func (e *APIError) IsRetryable() bool {
	k := e.Kind()
	return k == KindService || k == KindRateLimited
}

// DecodeError is returned when a 2xx response body is not valid JSON or does
// not fit the requested target.
type DecodeError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("swiftype: decode response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

// IsRetryable reports whether err is worth retrying by the caller: transport
// failures, 5xx and 429 responses.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}
	return errors.Is(err, ErrTransport)
}

// errorMessage pulls a human-readable message out of an error body without
// assuming a schema. The service uses "error", "errors" (string, list or
// object) and occasionally "message".
func errorMessage(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		res := gjson.ParseBytes(body)
		for _, key := range []string{"error", "errors", "message"} {
			v := res.Get(key)
			if !v.Exists() {
				continue
			}
			switch {
			case v.IsArray():
				parts := make([]string, 0, len(v.Array()))
				for _, item := range v.Array() {
					parts = append(parts, item.String())
				}
				return strings.Join(parts, "; ")
			case v.IsObject():
				return v.Raw
			default:
				if s := v.String(); s != "" {
					return s
				}
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		return text
	}
	return http.StatusText(status)
}
