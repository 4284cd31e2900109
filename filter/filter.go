// Package filter compiles expr expressions into predicates over mods,
// for client-side selection beyond what the API's query filters cover.
package filter

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/cfi2017/modio-go/modio"
)

// Filter is a compiled boolean expression over a mod. A Filter is
// immutable and safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithCache caps how many compiled filters are kept for reuse.
func WithCache(size int) Option {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// Compiler compiles filter expressions, optionally caching the compiled
// programs keyed by expression text.
type Compiler struct {
	helpers map[string]any
	cache   *lruCache
}

// NewCompiler creates a filter compiler.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{helpers: staticHelpers()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile parses and type-checks an expression. The expression must
// evaluate to a boolean.
func (c *Compiler) Compile(expression string) (*Filter, error) {
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

	program, err := expr.Compile(expression,
		expr.Env(c.helpers),
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

	filter := &Filter{expression: expression, program: program}
	if c.cache != nil {
		c.cache.Put(expression, filter)
	}
	return filter, nil
}

// Clear drops all cached filters.
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters.
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Match evaluates the filter against a mod. Runtime evaluation errors
// count as a non-match.
func (f *Filter) Match(mod modio.Mod) bool {
	result, err := expr.Run(f.program, runtimeEnv(mod))
	if err != nil {
		return false
	}
	return result.(bool)
}

// Expression returns the original expression text.
func (f *Filter) Expression() string {
	return f.expression
}

// Select returns the mods matching the filter, preserving order.
func (f *Filter) Select(mods []modio.Mod) []modio.Mod {
	var matched []modio.Mod
	for _, mod := range mods {
		if f.Match(mod) {
			matched = append(matched, mod)
		}
	}
	return matched
}
