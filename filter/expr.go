package filter

import (
	"encoding/json"
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/stctl/swiftype"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression  string
	program     *vm.Program
	helperFuncs map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Record fields are unknown until evaluation; only helpers are typed.
	env := maps.Clone(c.helperFuncs)
	env["has"] = func(string) bool { return false }
	env["Record"] = map[string]any{}

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression:  expression,
		program:     program,
		helperFuncs: c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate reports whether the record matches. Records the expression cannot
// be evaluated against (a missing field compared to a number, say) do not match.
func (f *exprFilter) Evaluate(record swiftype.Record) bool {
	ok, err := f.Match(record)
	return err == nil && ok
}

// Match evaluates the filter against a record.
func (f *exprFilter) Match(record swiftype.Record) (bool, error) {
	env := createRuntimeEnvironment(record, f.helperFuncs)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			RecordID:   recordID(record),
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	// AsBool guarantees the result type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func recordID(record swiftype.Record) string {
	if id := record.StringField("external_id"); id != "" {
		return id
	}
	return record.ID()
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["parseDate"] = parseDate
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

// dateLayouts are the formats the service uses for date fields.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	swiftype.DateFormat,
}

// parseDate returns the zero time for values in none of the known layouts.
func parseDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// createRuntimeEnvironment exposes every record field as a variable, the
// whole record as Record, and the helpers. Helpers shadow fields of the same
// name; those stay reachable as Record["name"].
func createRuntimeEnvironment(record swiftype.Record, helpers map[string]any) map[string]any {
	fields := make(map[string]any, len(record))
	for k, v := range record {
		fields[k] = normalize(v)
	}

	env := make(map[string]any, len(fields)+len(helpers)+2)
	maps.Copy(env, fields)
	maps.Copy(env, helpers)
	env["Record"] = fields
	env["has"] = func(field string) bool {
		v, ok := fields[field]
		return ok && v != nil
	}
	return env
}

// normalize converts decoded JSON numbers so that expressions can compare
// them with literals.
func normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case swiftype.Record:
		return normalize(map[string]any(val))
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}
