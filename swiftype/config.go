package swiftype

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// DefaultEndpoint is the base URL of the hosted API.
	DefaultEndpoint = "https://api.swiftype.com/api/v1/"

	defaultHost     = "api.swiftype.com"
	defaultProtocol = "https"
	apiPrefix       = "/api/v1/"
)

// Config holds the default credentials and addressing for a Client.
type Config struct {
	APIKey               string        `envconfig:"API_KEY"`
	PlatformClientID     string        `envconfig:"PLATFORM_CLIENT_ID"`
	PlatformClientSecret string        `envconfig:"PLATFORM_CLIENT_SECRET"`
	Endpoint             string        `envconfig:"ENDPOINT"`
	Host                 string        `envconfig:"HOST"`
	Protocol             string        `envconfig:"PROTOCOL"`
	Timeout              time.Duration `envconfig:"TIMEOUT"`
	UserAgent            string        `envconfig:"USER_AGENT"`
}

// DefaultConfig returns a Config pointing at the hosted API with no credentials.
func DefaultConfig() Config {
	return Config{Endpoint: DefaultEndpoint}
}

// ConfigFromEnv loads a Config from SWIFTYPE_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("swiftype", &cfg); err != nil {
		return Config{}, fmt.Errorf("load swiftype config from env: %w", err)
	}
	return cfg, nil
}

// BaseURL resolves the API base URL. Endpoint wins; otherwise Host and
// Protocol are combined with the versioned prefix.
func (c Config) BaseURL() (*url.URL, error) {
	raw := c.Endpoint
	if raw == "" {
		host := c.Host
		if host == "" {
			host = defaultHost
		}
		protocol := c.Protocol
		if protocol == "" {
			protocol = defaultProtocol
		}
		raw = protocol + "://" + strings.TrimRight(host, "/") + apiPrefix
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// credentials is the authentication resolved for one request.
type credentials struct {
	apiKey      string
	accessToken string
}

func (c credentials) bearer() bool { return c.accessToken != "" }

func (c credentials) empty() bool { return c.apiKey == "" && c.accessToken == "" }

// resolveCredentials picks the first layer (per-call, per-client, config
// default) carrying any credential. Within a layer the access token wins.
func resolveCredentials(layers ...credentials) (credentials, error) {
	for _, layer := range layers {
		if layer.empty() {
			continue
		}
		if layer.bearer() {
			return credentials{accessToken: layer.accessToken}, nil
		}
		return credentials{apiKey: layer.apiKey}, nil
	}
	return credentials{}, &ConfigError{Reason: "no API key or platform access token configured"}
}
