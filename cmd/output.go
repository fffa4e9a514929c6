package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/stctl/swiftype"
)

// printer renders command results as a tree for terminals or as JSON.
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(cmd *cobra.Command) *printer {
	format := "table"
	if cfg != nil {
		format = cfg.Output.Format
	}
	return &printer{w: cmd.OutOrStdout(), format: format}
}

func (p *printer) json() bool {
	return p.format == "json"
}

func (p *printer) printJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Record prints a single object.
func (p *printer) Record(r swiftype.Record) error {
	if p.json() {
		return p.printJSON(r)
	}
	var sb strings.Builder
	sb.WriteString(recordLabel(r))
	sb.WriteString("\n")
	writeFields(&sb, r, "    ")
	_, err := io.WriteString(p.w, sb.String())
	return err
}

// Records prints a listing under a "<noun>s (n):" header.
func (p *printer) Records(noun string, records []swiftype.Record) error {
	if p.json() {
		if records == nil {
			records = []swiftype.Record{}
		}
		return p.printJSON(records)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintf(p.w, "No %ss found\n", noun)
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d):\n\n", plural(noun, len(records)), len(records))
	writeTree(&sb, records)
	_, err := io.WriteString(p.w, sb.String())
	return err
}

// ResultSet prints search results per collection. records holds the
// collections to show, which may have been narrowed by --where.
func (p *printer) ResultSet(rs *swiftype.ResultSet, records map[string][]swiftype.Record) error {
	if p.json() {
		out := map[string]any{"records": records}
		if info := rs.Raw()["info"]; info != nil {
			out["info"] = info
		}
		if errs := rs.Errors(); errs != nil {
			out["errors"] = errs
		}
		return p.printJSON(out)
	}

	var sb strings.Builder
	names := slices.Sorted(maps.Keys(records))
	if len(names) == 0 {
		sb.WriteString("No results\n")
	}
	for _, name := range names {
		matches := records[name]
		fmt.Fprintf(&sb, "%s (%d", name, len(matches))
		if total, ok := rs.TotalResultCount(name); ok {
			fmt.Fprintf(&sb, " of %d", total)
		}
		if page, ok := rs.CurrentPage(name); ok {
			if pages, ok := rs.NumPages(name); ok {
				fmt.Fprintf(&sb, ", page %d/%d", page, pages)
			}
		}
		sb.WriteString("):\n")

		if e, ok := rs.Error(name); ok {
			fmt.Fprintf(&sb, "  error: %s\n", compact(e))
		}
		if facets := rs.Facets(name); len(facets) > 0 {
			for _, field := range slices.Sorted(maps.Keys(facets)) {
				fmt.Fprintf(&sb, "  facet %s: %s\n", field, compact(facets[field]))
			}
		}
		sb.WriteString("\n")
		writeTree(&sb, matches)
		sb.WriteString("\n")
	}
	_, err := io.WriteString(p.w, sb.String())
	return err
}

// Value prints an arbitrary decoded response, such as an analytics report.
// Lists of [date, count] pairs become two columns.
func (p *printer) Value(v any) error {
	if p.json() {
		return p.printJSON(v)
	}

	if rows, ok := v.([]any); ok && isPairList(rows) {
		var sb strings.Builder
		for _, row := range rows {
			pair := row.([]any)
			fmt.Fprintf(&sb, "%-30s %s\n", compact(pair[0]), compact(pair[1]))
		}
		_, err := io.WriteString(p.w, sb.String())
		return err
	}

	return p.printJSON(v)
}

// Message prints a confirmation line; JSON output gets a status object.
func (p *printer) Message(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if p.json() {
		return p.printJSON(map[string]string{"status": "ok", "message": msg})
	}
	_, err := fmt.Fprintln(p.w, "✓ "+msg)
	return err
}

func isPairList(rows []any) bool {
	for _, row := range rows {
		pair, ok := row.([]any)
		if !ok || len(pair) != 2 {
			return false
		}
	}
	return len(rows) > 0
}

func writeTree(sb *strings.Builder, records []swiftype.Record) {
	for i, r := range records {
		isLast := i == len(records)-1
		prefix, indent := "├", "│   "
		if isLast {
			prefix, indent = "╰", "    "
		}

		fmt.Fprintf(sb, "%s── %s\n", prefix, recordLabel(r))
		writeFields(sb, r, indent)
		if !isLast {
			sb.WriteString("│\n")
		}
	}
}

func writeFields(sb *strings.Builder, r swiftype.Record, indent string) {
	for _, key := range slices.Sorted(maps.Keys(r)) {
		if key == "id" || key == "external_id" {
			continue
		}
		fmt.Fprintf(sb, "%s%s: %s\n", indent, key, compact(r[key]))
	}
}

// recordLabel names a record by its external id, id or name.
func recordLabel(r swiftype.Record) string {
	id := r.StringField("external_id")
	if id == "" {
		id = r.ID()
	}
	for _, field := range []string{"name", "title", "submitted_url"} {
		if v := r.StringField(field); v != "" {
			if id == "" {
				return v
			}
			return fmt.Sprintf("%s (%s)", id, v)
		}
	}
	if id == "" {
		return "(no id)"
	}
	return id
}

func compact(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		return val
	case json.Number:
		return val.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func plural(noun string, n int) string {
	title := strings.ToUpper(noun[:1]) + noun[1:]
	if n == 1 {
		return title
	}
	return title + "s"
}
