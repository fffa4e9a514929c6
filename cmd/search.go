package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/stctl/swiftype"
)

var (
	searchTypes   []string
	searchPage    int
	searchPerPage int
	searchFilters []string
	searchFacets  []string
	searchFetch   []string
	searchFields  []string
	searchSort    string
	searchWhere   string
)

var searchCmd = &cobra.Command{
	Use:   "search <engine> <query>",
	Short: "Run a full-text search against an engine",
	Example: `  stctl search my-engine "lord of the rings"
  stctl search my-engine tolkien --type books --filter genre=fantasy --sort published_on:desc
  stctl search my-engine tolkien --facet books.genre --where 'daysSince(published_on) < 365'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, args, client.Search, client.SearchDocumentType)
	},
}

var suggestCmd = &cobra.Command{
	Use:     "suggest <engine> <prefix>",
	Aliases: []string{"autocomplete"},
	Short:   "Run a prefix (autocomplete) search against an engine",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, args, client.Suggest, client.SuggestDocumentType)
	},
}

type (
	engineQueryFunc func(ctx context.Context, engineID, query string, opts swiftype.SearchOptions, callOpts ...swiftype.CallOption) (*swiftype.ResultSet, error)
	typeQueryFunc   func(ctx context.Context, engineID, documentTypeID, query string, opts swiftype.SearchOptions, callOpts ...swiftype.CallOption) (*swiftype.ResultSet, error)
)

func runQuery(cmd *cobra.Command, args []string, engineQuery engineQueryFunc, typeQuery typeQueryFunc) error {
	ctx := cmd.Context()
	engineID, query := args[0], args[1]

	opts, err := buildSearchOptions()
	if err != nil {
		return err
	}

	var rs *swiftype.ResultSet
	if len(searchTypes) == 1 {
		rs, err = typeQuery(ctx, engineID, searchTypes[0], query, opts)
	} else {
		opts.DocumentTypes = searchTypes
		rs, err = engineQuery(ctx, engineID, query, opts)
	}
	if err != nil {
		return err
	}

	records := make(map[string][]swiftype.Record, len(rs.Collections()))
	for _, name := range rs.Collections() {
		matches := rs.Records(name)
		if searchWhere != "" {
			matches, err = filters.Apply(ctx, searchWhere, matches)
			if err != nil {
				return err
			}
		}
		records[name] = matches
	}

	logger.Debug().
		Str("engine", engineID).
		Str("query", query).
		Strs("collections", rs.Collections()).
		Msg("Query completed")

	return newPrinter(cmd).ResultSet(rs, records)
}

// buildSearchOptions turns the search flags into request options. Field
// flags take a "type.field" form; with a single --type the prefix may be
// left out.
func buildSearchOptions() (swiftype.SearchOptions, error) {
	opts := swiftype.SearchOptions{
		Page:    searchPage,
		PerPage: searchPerPage,
	}

	defaultType := ""
	if len(searchTypes) == 1 {
		defaultType = searchTypes[0]
	}

	if len(searchFilters) > 0 {
		opts.Filters = map[string]any{}
		for _, f := range searchFilters {
			typed, value, ok := strings.Cut(f, "=")
			if !ok {
				return opts, fmt.Errorf("invalid filter %q (expected type.field=value)", f)
			}
			docType, field, err := splitTypedField(typed, defaultType)
			if err != nil {
				return opts, err
			}
			addFilterValue(opts.Filters, docType, field, jsonOrString(value))
		}
	}

	var err error
	if opts.Facets, err = fieldsByType(searchFacets, defaultType); err != nil {
		return opts, err
	}
	if opts.FetchFields, err = fieldsByType(searchFetch, defaultType); err != nil {
		return opts, err
	}
	if opts.SearchFields, err = fieldsByType(searchFields, defaultType); err != nil {
		return opts, err
	}

	if searchSort != "" {
		typed, direction, hasDirection := strings.Cut(searchSort, ":")
		docType, field, err := splitTypedField(typed, defaultType)
		if err != nil {
			return opts, err
		}
		opts.SortField = map[string]string{docType: field}
		if hasDirection {
			direction = strings.ToLower(direction)
			if direction != "asc" && direction != "desc" {
				return opts, fmt.Errorf("invalid sort direction %q (expected asc or desc)", direction)
			}
			opts.SortDirection = map[string]string{docType: direction}
		}
	}

	return opts, nil
}

// addFilterValue sets filters[docType][field]; repeating a field collects
// its values into a list.
func addFilterValue(filters map[string]any, docType, field string, value any) {
	fields, ok := filters[docType].(map[string]any)
	if !ok {
		fields = map[string]any{}
		filters[docType] = fields
	}
	switch existing := fields[field].(type) {
	case nil:
		fields[field] = value
	case []any:
		fields[field] = append(existing, value)
	default:
		fields[field] = []any{existing, value}
	}
}

func fieldsByType(typedFields []string, defaultType string) (map[string][]string, error) {
	if len(typedFields) == 0 {
		return nil, nil
	}
	out := make(map[string][]string)
	for _, typed := range typedFields {
		docType, field, err := splitTypedField(typed, defaultType)
		if err != nil {
			return nil, err
		}
		out[docType] = append(out[docType], field)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(searchCmd, suggestCmd)

	for _, c := range []*cobra.Command{searchCmd, suggestCmd} {
		f := c.Flags()
		f.StringArrayVarP(&searchTypes, "type", "t", nil, "document type to search (repeatable)")
		f.IntVar(&searchPage, "page", 0, "result page")
		f.IntVar(&searchPerPage, "per-page", 0, "results per page")
		f.StringArrayVar(&searchFilters, "filter", nil, "type.field=value filter (repeatable)")
		f.StringArrayVar(&searchFacets, "facet", nil, "type.field to facet on (repeatable)")
		f.StringArrayVar(&searchFetch, "fetch", nil, "type.field to return (repeatable)")
		f.StringArrayVar(&searchFields, "search-field", nil, "type.field to match against (repeatable)")
		f.StringVar(&searchSort, "sort", "", "type.field[:asc|desc] to sort by")
		f.StringVarP(&searchWhere, "where", "w", "", "filter expression or the name of a filter from the config")
	}
}
