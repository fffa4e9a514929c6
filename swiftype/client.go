package swiftype

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

const defaultUserAgent = "stctl-swiftype-go"

// Client is a Swiftype API client. It is immutable after New and safe for
// concurrent use as long as the underlying http.Client is.
type Client struct {
	cfg        Config
	baseURL    *url.URL
	creds      credentials
	httpClient *http.Client
	logger     zerolog.Logger
	userAgent  string
	metrics    *metrics

	debug bool
}

// New creates a new Swiftype client from cfg. Credentials are not required
// here; a request without any resolvable credential fails with a ConfigError.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := cfg.BaseURL()
	if err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     zerolog.Nop(),
		userAgent:  defaultUserAgent,
	}
	if cfg.UserAgent != "" {
		c.userAgent = cfg.UserAgent
	}

	// Explicit options win over SWIFTYPE_DEBUG.
	if debugLoggingRequested() {
		opts = append([]Option{WithDebugLogging(true)}, opts...)
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.debug {
		hc := *c.httpClient
		hc.Transport = &debugTransport{base: hc.Transport, logger: c.logger}
		c.httpClient = &hc
	}

	return c, nil
}

// AsUser returns a copy of the client that authenticates with a platform
// user's access token instead of the API key.
func (c *Client) AsUser(accessToken string) *Client {
	cp := *c
	cp.creds = credentials{accessToken: accessToken}
	return &cp
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Config returns the configuration the client was built from.
func (c *Client) Config() Config {
	return c.cfg
}
