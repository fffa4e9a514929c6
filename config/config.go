package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. STCTL_SWIFTYPE_API_KEY.
const EnvPrefix = "STCTL"

// Load loads the configuration from defaults, an optional config file and
// the environment. An explicit configPath must exist; the standard locations
// are optional.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The library's own variables work too.
	_ = v.BindEnv("swiftype.api_key", EnvPrefix+"_SWIFTYPE_API_KEY", "SWIFTYPE_API_KEY")
	_ = v.BindEnv("swiftype.platform_client_id", EnvPrefix+"_SWIFTYPE_PLATFORM_CLIENT_ID", "SWIFTYPE_PLATFORM_CLIENT_ID")
	_ = v.BindEnv("swiftype.platform_client_secret", EnvPrefix+"_SWIFTYPE_PLATFORM_CLIENT_SECRET", "SWIFTYPE_PLATFORM_CLIENT_SECRET")
	_ = v.BindEnv("swiftype.debug", EnvPrefix+"_SWIFTYPE_DEBUG", "SWIFTYPE_DEBUG")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".stctl"))
		}
		v.AddConfigPath("/etc/stctl/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("swiftype.api_key", "")
	v.SetDefault("swiftype.access_token", "")
	v.SetDefault("swiftype.platform_client_id", "")
	v.SetDefault("swiftype.platform_client_secret", "")
	v.SetDefault("swiftype.endpoint", "")
	v.SetDefault("swiftype.timeout", "30s")
	v.SetDefault("swiftype.debug", false)

	v.SetDefault("output.format", "")

	v.SetDefault("import.batch_size", 100)
	v.SetDefault("import.concurrency", 4)
	v.SetDefault("import.max_retries", 5)
	v.SetDefault("import.initial_interval", "500ms")
	v.SetDefault("import.max_elapsed_time", "2m")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
}

// Validate checks a configuration after command-line overrides were applied.
func Validate(cfg *Config) error {
	return validate(cfg)
}

func validate(cfg *Config) error {
	if cfg.Swiftype.Timeout < 0 {
		return fmt.Errorf("swiftype.timeout must not be negative")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	switch cfg.Output.Format {
	case "", "table", "json":
	default:
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", cfg.Output.Format)
	}

	if cfg.Import.BatchSize < 1 {
		return fmt.Errorf("import.batch_size must be at least 1")
	}
	if cfg.Import.Concurrency < 1 {
		return fmt.Errorf("import.concurrency must be at least 1")
	}
	if cfg.Import.MaxRetries < 0 {
		return fmt.Errorf("import.max_retries must not be negative")
	}

	for name, expression := range cfg.Filters {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filters.%s: expression is empty", name)
		}
	}

	return nil
}
