package cmd

import (
	"github.com/spf13/cobra"
)

var documentTypesCmd = &cobra.Command{
	Use:     "document-types",
	Aliases: []string{"document-type", "types"},
	Short:   "Manage the document types of an engine",
}

var documentTypesListCmd = &cobra.Command{
	Use:   "list <engine>",
	Short: "List document types",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := client.DocumentTypes(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Records("document type", types)
	},
}

var documentTypesGetCmd = &cobra.Command{
	Use:   "get <engine> <document-type>",
	Short: "Show a document type",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dt, err := client.DocumentType(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Record(dt)
	},
}

var documentTypesCreateCmd = &cobra.Command{
	Use:   "create <engine> <name>",
	Short: "Create a document type",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dt, err := client.CreateDocumentType(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Record(dt)
	},
}

var documentTypesDeleteCmd = &cobra.Command{
	Use:   "delete <engine> <document-type>",
	Short: "Delete a document type and its documents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !assumeYes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Delete document type "+args[1]+" and all of its documents?") {
			logger.Info().Msg("Deletion cancelled")
			return nil
		}
		if err := client.DestroyDocumentType(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		return newPrinter(cmd).Message("Deleted document type %s/%s", args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(documentTypesCmd)
	documentTypesCmd.AddCommand(documentTypesListCmd, documentTypesGetCmd, documentTypesCreateCmd, documentTypesDeleteCmd)

	documentTypesDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompt")
}
