package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/stctl/swiftype"
)

var (
	analyticsFrom    string
	analyticsTo      string
	analyticsPage    int
	analyticsPerPage int
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show search analytics for an engine",
	Long: `Show search analytics for an engine. Dates use the YYYY-MM-DD form; without
--from and --to the service picks its default range.`,
}

type countReport func(ctx context.Context, engineID string, from, to *time.Time, opts ...swiftype.CallOption) (any, error)

type queryReport func(ctx context.Context, engineID string, options swiftype.AnalyticsOptions, opts ...swiftype.CallOption) (any, error)

func countCommand(use, short string, report func() countReport) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " <engine>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := analyticsRange()
			if err != nil {
				return err
			}
			out, err := report()(cmd.Context(), args[0], from, to)
			if err != nil {
				return err
			}
			return newPrinter(cmd).Value(out)
		},
	}
	c.Flags().StringVar(&analyticsFrom, "from", "", "first day (YYYY-MM-DD)")
	c.Flags().StringVar(&analyticsTo, "to", "", "last day (YYYY-MM-DD)")
	return c
}

func queryCommand(use, short string, report func() queryReport) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " <engine>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := analyticsRange()
			if err != nil {
				return err
			}
			options := swiftype.AnalyticsOptions{
				StartDate: from,
				EndDate:   to,
				Page:      analyticsPage,
				PerPage:   analyticsPerPage,
			}
			out, err := report()(cmd.Context(), args[0], options)
			if err != nil {
				return err
			}
			return newPrinter(cmd).Value(out)
		},
	}
	c.Flags().StringVar(&analyticsFrom, "from", "", "first day (YYYY-MM-DD)")
	c.Flags().StringVar(&analyticsTo, "to", "", "last day (YYYY-MM-DD)")
	c.Flags().IntVar(&analyticsPage, "page", 0, "result page")
	c.Flags().IntVar(&analyticsPerPage, "per-page", 0, "queries per page")
	return c
}

func analyticsRange() (*time.Time, *time.Time, error) {
	from, err := parseDay(analyticsFrom)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDay(analyticsTo)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("--to %s is before --from %s", analyticsTo, analyticsFrom)
	}
	return from, to, nil
}

func init() {
	rootCmd.AddCommand(analyticsCmd)

	// client is only built once the command runs, so reports are looked up late.
	analyticsCmd.AddCommand(
		countCommand("searches", "Daily search counts", func() countReport { return client.AnalyticsSearches }),
		countCommand("autoselects", "Daily autoselect counts", func() countReport { return client.AnalyticsAutoselects }),
		queryCommand("top-queries", "Most frequent queries", func() queryReport { return client.AnalyticsTopQueries }),
		queryCommand("top-no-result-queries", "Most frequent queries without results", func() queryReport { return client.AnalyticsTopNoResultQueries }),
	)
}
