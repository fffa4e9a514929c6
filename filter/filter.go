// Package filter evaluates expr-lang expressions against Swiftype records.
//
// Every record field is available as a variable, alongside helpers:
//
//	contains(title, "glass") and view_count > 100
//	has("published_on") and daysSince(parseDate(published_on)) < 30
//	startsWith(lower(Record["url"]), "https://")
package filter

import (
	"github.com/s0up4200/stctl/swiftype"
)

var defaultCompiler = NewExprCompiler(WithCache(100))

// CompileFilter compiles an expression with the shared caching compiler.
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the records matching f, in input order.
func Apply(f Filter, records []swiftype.Record) []swiftype.Record {
	matches := make([]swiftype.Record, 0, len(records))
	for _, record := range records {
		if f.Evaluate(record) {
			matches = append(matches, record)
		}
	}
	return matches
}
