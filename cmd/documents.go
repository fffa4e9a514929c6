package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/stctl/importer"
	"github.com/s0up4200/stctl/swiftype"
)

var (
	docPage       int
	docPerPage    int
	docWhere      string
	docFields     []string
	docUpsert     bool
	docUpdateFile string
	importOpts    importer.Options
	importCreate  bool
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"document", "docs"},
	Short:   "Manage the documents of a document type",
}

var documentsListCmd = &cobra.Command{
	Use:   "list <engine> <document-type>",
	Short: "List one page of documents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := client.Documents(cmd.Context(), args[0], args[1], docPage, docPerPage)
		if err != nil {
			return err
		}
		if docWhere != "" {
			docs, err = filters.Apply(cmd.Context(), docWhere, docs)
			if err != nil {
				return err
			}
		}
		return newPrinter(cmd).Records("document", docs)
	},
}

var documentsGetCmd = &cobra.Command{
	Use:   "get <engine> <document-type> <external-id>",
	Short: "Show a document",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := client.Document(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Record(doc)
	},
}

var documentsCreateCmd = &cobra.Command{
	Use:   "create <engine> <document-type> <file|->",
	Short: "Index a document, or an array of documents in one bulk request",
	Long: `Index documents read from a JSON file, or stdin with "-". A single object is
created with one request; an array is sent as one bulk request. Use
"documents import" for large files.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		records, isArray, err := readRecords(args[2], cmd.InOrStdin())
		if err != nil {
			return err
		}

		p := newPrinter(cmd)
		if !isArray {
			var doc swiftype.Record
			if docUpsert {
				doc, err = client.CreateOrUpdateDocument(ctx, args[0], args[1], records[0])
			} else {
				doc, err = client.CreateDocument(ctx, args[0], args[1], records[0])
			}
			if err != nil {
				return err
			}
			return p.Record(doc)
		}

		var results []any
		if docUpsert {
			results, err = client.CreateOrUpdateDocuments(ctx, args[0], args[1], records)
		} else {
			results, err = client.CreateDocuments(ctx, args[0], args[1], records)
		}
		if err != nil {
			return err
		}
		return p.Value(results)
	},
}

var documentsUpdateCmd = &cobra.Command{
	Use:   "update <engine> <document-type> [external-id]",
	Short: "Change fields of existing documents",
	Long: `Change fields of one document with --field key=value, or of many documents
with --file, a JSON array of objects each carrying an "external_id" and the
fields to change.`,
	Example: `  stctl documents update my-engine books 42 --field price=12.5 --field title="New title"
  stctl documents update my-engine books --file changes.json`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := newPrinter(cmd)

		if docUpdateFile != "" {
			if len(args) == 3 {
				return fmt.Errorf("--file cannot be combined with an external id")
			}
			records, _, err := readRecords(docUpdateFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			results, err := client.UpdateDocuments(ctx, args[0], args[1], records)
			if err != nil {
				return err
			}
			return p.Value(results)
		}

		if len(args) != 3 {
			return fmt.Errorf("an external id is required unless --file is given")
		}
		if len(docFields) == 0 {
			return fmt.Errorf("at least one --field is required")
		}
		fields, err := parseAssignments(docFields)
		if err != nil {
			return err
		}
		doc, err := client.UpdateDocument(ctx, args[0], args[1], args[2], fields)
		if err != nil {
			return err
		}
		return p.Record(doc)
	},
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete <engine> <document-type> <external-id>...",
	Short: "Delete documents; several ids are sent as one bulk request",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ids := args[2:]
		p := newPrinter(cmd)

		if len(ids) == 1 {
			if err := client.DestroyDocument(ctx, args[0], args[1], ids[0]); err != nil {
				return err
			}
			return p.Message("Deleted document %s", ids[0])
		}

		results, err := client.DestroyDocuments(ctx, args[0], args[1], ids)
		if err != nil {
			return err
		}
		return p.Value(results)
	},
}

var documentsImportCmd = &cobra.Command{
	Use:   "import <engine> <document-type> <file|->",
	Short: "Import a JSON array of documents in concurrent bulk batches",
	Long: `Import a JSON array of documents. The array is split into batches, each
sent as one bulk request, with several batches in flight at once. Batches
failing with a rate limit, server or network error are retried with
exponential backoff; other failures are reported and skipped.`,
	Args: cobra.ExactArgs(3),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	records, _, err := readRecords(args[2], cmd.InOrStdin())
	if err != nil {
		return err
	}

	opts := importer.Options{
		BatchSize:       cfg.Import.BatchSize,
		Concurrency:     cfg.Import.Concurrency,
		MaxRetries:      retryLimit(cfg.Import.MaxRetries),
		InitialInterval: cfg.Import.InitialInterval,
		MaxElapsedTime:  cfg.Import.MaxElapsedTime,
		CreateOnly:      importCreate,
	}
	flags := cmd.Flags()
	if flags.Changed("batch-size") {
		opts.BatchSize = importOpts.BatchSize
	}
	if flags.Changed("concurrency") {
		opts.Concurrency = importOpts.Concurrency
	}
	if flags.Changed("max-retries") {
		if importOpts.MaxRetries < 0 {
			return fmt.Errorf("--max-retries must not be negative")
		}
		opts.MaxRetries = retryLimit(importOpts.MaxRetries)
	}

	logger.Info().
		Int("documents", len(records)).
		Int("batch_size", opts.BatchSize).
		Int("concurrency", opts.Concurrency).
		Msg("Importing documents")

	result, err := importer.New(client, opts, logger).Run(cmd.Context(), args[0], args[1], records)
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	if p.json() {
		failed := make([]string, 0, len(result.Failed))
		for _, f := range result.Failed {
			failed = append(failed, f.Error())
		}
		summary := map[string]any{
			"requested": result.Requested,
			"batches":   result.Batches,
			"accepted":  result.Accepted,
			"rejected":  result.Rejected,
			"failed":    failed,
		}
		if err := p.printJSON(summary); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(p.w, "Imported %d of %d documents in %d batches\n", result.Accepted, result.Requested, result.Batches)
		if len(result.Rejected) > 0 {
			fmt.Fprintf(p.w, "Rejected by the service: %d document(s) at positions %v\n", len(result.Rejected), result.Rejected)
		}
		for _, f := range result.Failed {
			fmt.Fprintf(p.w, "✗ %v\n", f)
		}
	}

	if err := result.Err(); err != nil {
		return fmt.Errorf("%d batch(es) failed", len(result.Failed))
	}
	return nil
}

// retryLimit maps a configured retry count, where 0 means none, to
// importer options, where 0 means the default.
func retryLimit(n int) int {
	if n == 0 {
		return importer.NoRetries
	}
	return n
}

func init() {
	rootCmd.AddCommand(documentsCmd)
	documentsCmd.AddCommand(documentsListCmd, documentsGetCmd, documentsCreateCmd, documentsUpdateCmd, documentsDeleteCmd, documentsImportCmd)

	documentsListCmd.Flags().IntVar(&docPage, "page", 0, "page number")
	documentsListCmd.Flags().IntVar(&docPerPage, "per-page", 0, "documents per page")
	documentsListCmd.Flags().StringVarP(&docWhere, "where", "w", "", "filter expression or the name of a filter from the config")

	documentsCreateCmd.Flags().BoolVar(&docUpsert, "upsert", false, "replace documents with the same external id")
	documentsUpdateCmd.Flags().StringArrayVarP(&docFields, "field", "f", nil, "field to change as key=value (repeatable)")
	documentsUpdateCmd.Flags().StringVar(&docUpdateFile, "file", "", "JSON array of partial documents to update in one request (- for stdin)")

	documentsImportCmd.Flags().IntVar(&importOpts.BatchSize, "batch-size", importer.DefaultBatchSize, "documents per bulk request")
	documentsImportCmd.Flags().IntVar(&importOpts.Concurrency, "concurrency", importer.DefaultConcurrency, "bulk requests in flight")
	documentsImportCmd.Flags().IntVar(&importOpts.MaxRetries, "max-retries", importer.DefaultMaxRetries, "retries per batch for retryable failures (0 disables retries)")
	documentsImportCmd.Flags().BoolVar(&importCreate, "create-only", false, "use bulk create instead of create-or-update")
}
