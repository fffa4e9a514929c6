package cmd

import (
	"github.com/spf13/cobra"
)

var clickthroughCmd = &cobra.Command{
	Use:   "clickthrough <engine> <document-type> <query> <external-id>",
	Short: "Record that a search result was selected",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.LogClickthrough(cmd.Context(), args[0], args[1], args[2], args[3]); err != nil {
			return err
		}
		return newPrinter(cmd).Message("Logged clickthrough on %s for %q", args[3], args[2])
	},
}

func init() {
	rootCmd.AddCommand(clickthroughCmd)
}
