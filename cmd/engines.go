package cmd

import (
	"github.com/spf13/cobra"
)

var assumeYes bool

var enginesCmd = &cobra.Command{
	Use:     "engines",
	Aliases: []string{"engine"},
	Short:   "Manage search engines",
}

var enginesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all engines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engines, err := client.Engines(cmd.Context())
		if err != nil {
			return err
		}
		return newPrinter(cmd).Records("engine", engines)
	},
}

var enginesGetCmd = &cobra.Command{
	Use:   "get <engine>",
	Short: "Show an engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := client.Engine(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Record(engine)
	},
}

var enginesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := client.CreateEngine(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		logger.Info().Str("engine", engine.StringField("slug")).Msg("Engine created")
		return newPrinter(cmd).Record(engine)
	},
}

var enginesDeleteCmd = &cobra.Command{
	Use:   "delete <engine>",
	Short: "Delete an engine and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !assumeYes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Delete engine "+args[0]+" and all of its documents?") {
			logger.Info().Msg("Deletion cancelled")
			return nil
		}
		if err := client.DestroyEngine(cmd.Context(), args[0]); err != nil {
			return err
		}
		return newPrinter(cmd).Message("Deleted engine %s", args[0])
	},
}

func init() {
	rootCmd.AddCommand(enginesCmd)
	enginesCmd.AddCommand(enginesListCmd, enginesGetCmd, enginesCreateCmd, enginesDeleteCmd)

	enginesDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompt")
}
