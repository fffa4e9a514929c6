package filter

import (
	"context"

	"github.com/s0up4200/stctl/swiftype"
)

// Filter defines the basic interface for record filters
type Filter interface {
	// Evaluate checks if a record matches the filter criteria
	Evaluate(record swiftype.Record) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Match is Evaluate with the evaluation error reported
	Match(record swiftype.Record) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator evaluates filters against records
type Evaluator interface {
	// Evaluate returns the records matching filter, in input order
	Evaluate(ctx context.Context, filter Filter, records []swiftype.Record) ([]swiftype.Record, error)
}
