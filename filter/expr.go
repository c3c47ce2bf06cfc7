package filter

import (
	"fmt"
	"maps"
	"path"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/holocron/swapi"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an ExprCompiler
type ExprCompilerOption func(*ExprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *ExprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// ExprCompiler compiles expr-language filters, optionally through an LRU cache
type ExprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) *ExprCompiler {
	c := &ExprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile compiles an expression into an executable filter
func (c *ExprCompiler) Compile(expression string) (CompiledFilter, error) {
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

	// Entity fields and vars are only known at run time
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
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

	f := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// Evaluate runs the filter with the entity's fields as variables
func (f *exprFilter) Evaluate(entity swapi.Entity, vars map[string]any) (bool, error) {
	env := make(map[string]any, len(entity)+len(f.helpers)+len(vars)+1)
	maps.Copy(env, entity)
	env["Entity"] = map[string]any(entity)
	maps.Copy(env, f.helpers)
	maps.Copy(env, vars)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			EntityURL:  entity.URL(),
			Err:        err,
		}
	}

	// AsBool only checks types known at compile time. A bare entity field
	// can still yield nil or a string here.
	b, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			EntityURL:  entity.URL(),
			Err:        fmt.Errorf("%w: got %T", ErrNotBool, result),
		}
	}
	return b, nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the helper functions available to every expression
func createHelperFunctions() map[string]any {
	return map[string]any{
		// contains, startsWith and endsWith are expr operators, so the
		// case-insensitive variants carry an i prefix
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"istartsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"iendsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		// hasRef reports whether a list field such as films holds ref
		"hasRef": func(list any, ref string) bool {
			items, ok := list.([]any)
			if !ok {
				return false
			}
			for _, item := range items {
				if s, ok := item.(string); ok && s == ref {
					return true
				}
			}
			return false
		},
		// refID extracts the numeric id from an entity URL
		"refID": func(ref string) string {
			return path.Base(strings.TrimRight(ref, "/"))
		},
	}
}
