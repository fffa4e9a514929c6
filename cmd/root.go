package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/s0up4200/stctl/config"
	"github.com/s0up4200/stctl/filter"
	"github.com/s0up4200/stctl/swiftype"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *swiftype.Client
	filters *filter.Manager
	metrics *prometheus.Registry

	// Persistent flags
	outputFormat string
	apiKey       string
	accessToken  string
	endpoint     string
	debug        bool
	metricsFile  string

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stctl",
	Short: "Manage Swiftype search engines from the command line",
	Long: `stctl is a CLI for the Swiftype search API. It manages engines, document
types, documents and crawled domains, runs search and suggest queries, and
reads search analytics.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: writeMetrics,
}

// SetVersion records build information for `stctl --version` and `stctl update`.
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, built)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.stctl/config.yaml)")
	flags.StringVarP(&outputFormat, "output", "o", "", "output format: table or json (default: table on a terminal)")
	flags.StringVar(&apiKey, "api-key", "", "Swiftype API key (overrides config)")
	flags.StringVar(&accessToken, "access-token", "", "platform user access token (overrides the API key)")
	flags.StringVar(&endpoint, "endpoint", "", "API base URL (default https://api.swiftype.com/api/v1/)")
	flags.BoolVar(&debug, "debug", false, "log every HTTP request and response")
	flags.StringVar(&metricsFile, "metrics-file", "", "write request metrics in Prometheus text format to this file")
}

// initializeApp loads the configuration and builds the client
func initializeApp(cmd *cobra.Command, args []string) error {
	// help and shell completion need neither config nor client
	if cmd.Name() == "help" || (cmd.HasParent() && cmd.Parent().Name() == "completion") {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyFlagOverrides(cmd)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filters); err != nil {
		return fmt.Errorf("invalid filter in config: %w", err)
	}

	metrics = prometheus.NewRegistry()
	opts := []swiftype.Option{
		swiftype.WithLogger(logger.With().Str("component", "swiftype").Logger()),
		swiftype.WithUserAgent("stctl/" + version),
		swiftype.WithDebugLogging(cfg.Swiftype.Debug),
		swiftype.WithMetrics(metrics),
	}
	if cfg.Swiftype.AccessToken != "" {
		opts = append(opts, swiftype.WithPlatformAccessToken(cfg.Swiftype.AccessToken))
	}

	client, err = swiftype.New(cfg.Swiftype.ClientConfig(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create Swiftype client: %w", err)
	}

	logger.Debug().Str("endpoint", client.BaseURL()).Msg("Swiftype client ready")
	return nil
}

// applyFlagOverrides gives explicitly set flags precedence over the config file and environment
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Format = outputFormat
	}
	if flags.Changed("api-key") {
		cfg.Swiftype.APIKey = apiKey
	}
	if flags.Changed("access-token") {
		cfg.Swiftype.AccessToken = accessToken
	}
	if flags.Changed("endpoint") {
		cfg.Swiftype.Endpoint = endpoint
	}
	if flags.Changed("debug") {
		cfg.Swiftype.Debug = debug
		if debug {
			cfg.Logging.Level = "debug"
		}
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "json"
		if isatty.IsTerminal(os.Stdout.Fd()) {
			cfg.Output.Format = "table"
		}
	}
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	var console io.Writer = os.Stderr
	if cfg.Format != "json" {
		console = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
		}
	}

	if cfg.File == "" {
		return zerolog.New(console).With().Timestamp().Logger()
	}

	// The file always gets JSON lines.
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	return zerolog.New(zerolog.MultiLevelWriter(console, file)).With().Timestamp().Logger()
}

// writeMetrics dumps the request metrics collected during the command
func writeMetrics(cmd *cobra.Command, args []string) error {
	if metricsFile == "" || metrics == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(metricsFile, metrics); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	logger.Debug().Str("file", metricsFile).Msg("Wrote request metrics")
	return nil
}
