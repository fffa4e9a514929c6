package swiftype

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Option configures a Client.
type Option func(*Client) error

// WithAPIKey overrides the Config API key for this client.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) error {
		c.creds.apiKey = apiKey
		return nil
	}
}

// WithPlatformAccessToken makes the client authenticate as a platform user.
// The token takes precedence over any API key at the same level.
func WithPlatformAccessToken(token string) Option {
	return func(c *Client) error {
		c.creds.accessToken = token
		return nil
	}
}

// WithHTTPClient sets the transport used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithTimeout sets the HTTP client timeout. It is forwarded to the transport
// as is; the client adds no timeout of its own.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout < 0 {
			return fmt.Errorf("timeout must be >= 0")
		}
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
		return nil
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		c.userAgent = userAgent
		return nil
	}
}

// WithDebugLogging dumps every request and response to the client logger at
// debug level. Credentials are redacted from the dumps, document bodies are not.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}

// WithMetrics registers request counters and latency histograms with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) error {
		m, err := newMetrics(reg)
		if err != nil {
			return err
		}
		c.metrics = m
		return nil
	}
}

// CallOption overrides client settings for a single call.
type CallOption func(*callOptions)

type callOptions struct {
	creds credentials
}

// CallAPIKey authenticates a single call with apiKey.
func CallAPIKey(apiKey string) CallOption {
	return func(o *callOptions) {
		o.creds.apiKey = apiKey
	}
}

// CallAccessToken authenticates a single call with a platform access token.
func CallAccessToken(token string) CallOption {
	return func(o *callOptions) {
		o.creds.accessToken = token
	}
}
