package config

import (
	"time"

	"github.com/s0up4200/stctl/swiftype"
)

// Config represents the complete configuration structure
type Config struct {
	Swiftype SwiftypeConfig `mapstructure:"swiftype"`
	Output   OutputConfig   `mapstructure:"output"`
	Import   ImportConfig   `mapstructure:"import"`
	Filters  FilterConfig   `mapstructure:"filters"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SwiftypeConfig holds Swiftype API connection details
type SwiftypeConfig struct {
	APIKey               string        `mapstructure:"api_key"`
	AccessToken          string        `mapstructure:"access_token"`
	PlatformClientID     string        `mapstructure:"platform_client_id"`
	PlatformClientSecret string        `mapstructure:"platform_client_secret"`
	Endpoint             string        `mapstructure:"endpoint"`
	Timeout              time.Duration `mapstructure:"timeout"`
	Debug                bool          `mapstructure:"debug"`
}

// ClientConfig converts the section into a client configuration. The access
// token is not part of it; it is applied as a client option.
func (s SwiftypeConfig) ClientConfig() swiftype.Config {
	cfg := swiftype.DefaultConfig()
	cfg.APIKey = s.APIKey
	cfg.PlatformClientID = s.PlatformClientID
	cfg.PlatformClientSecret = s.PlatformClientSecret
	cfg.Timeout = s.Timeout
	if s.Endpoint != "" {
		cfg.Endpoint = s.Endpoint
	}
	return cfg
}

// OutputConfig controls how command results are printed. An empty format
// prints tables to a terminal and JSON otherwise.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// ImportConfig tunes `documents import`. A max_retries of 0 disables retries.
type ImportConfig struct {
	BatchSize       int           `mapstructure:"batch_size"`
	Concurrency     int           `mapstructure:"concurrency"`
	MaxRetries      int           `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`
}

// FilterConfig maps filter names to expressions usable with --where
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Color      bool   `mapstructure:"color"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}
