package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Check the connection and credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		auth := "none"
		switch {
		case cfg.Swiftype.AccessToken != "":
			auth = "platform access token"
		case client.Config().APIKey != "":
			auth = "api key"
		}

		logger.Info().
			Str("endpoint", client.BaseURL()).
			Str("auth", auth).
			Msg("Testing connection")

		engines, err := client.Engines(cmd.Context())
		if err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}

		p := newPrinter(cmd)
		if p.json() {
			return p.printJSON(map[string]any{
				"endpoint": client.BaseURL(),
				"auth":     auth,
				"engines":  len(engines),
			})
		}
		return p.Message("Connected to %s using %s (%d %s)", client.BaseURL(), auth, len(engines), plural("engine", len(engines)))
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}
