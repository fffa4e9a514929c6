package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the named filters usable with --where",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		names := filters.ListFilters()

		out := make(map[string]string, len(names))
		for _, name := range names {
			f, _ := filters.GetFilter(name)
			out[name] = f.Expression()
		}
		if p.json() {
			return p.printJSON(out)
		}

		if len(names) == 0 {
			_, err := fmt.Fprintln(p.w, "No filters configured")
			return err
		}
		var sb strings.Builder
		for _, name := range names {
			fmt.Fprintf(&sb, "%-20s %s\n", name, out[name])
		}
		_, err := fmt.Fprint(p.w, sb.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}
