package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/stctl/config"
)

const releaseRepository = "s0up4200/stctl"

var checkOnly bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update stctl to the latest release",
	Args:  cobra.NoArgs,
	// Runs without an API client or credentials.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = setupLogger(config.LoggingConfig{Level: "info", Color: true})
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:               runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(releaseRepository))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for this platform")
	}

	if latest.LessOrEqual(current.String()) {
		logger.Info().Str("version", current.String()).Msg("Already up to date")
		return nil
	}

	logger.Info().
		Str("current", current.String()).
		Str("latest", latest.Version()).
		Msg("Update available")
	if checkOnly {
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	logger.Info().Str("version", latest.Version()).Msg("Updated successfully")
	return nil
}
