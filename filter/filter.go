package filter

import (
	"context"

	"github.com/s0up4200/holocron/swapi"
)

var defaultCompiler Compiler = NewExprCompiler(WithCache(100))

// CompileFilter compiles an expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the entities the filter keeps, in input order. The first
// evaluation error aborts.
func Apply(ctx context.Context, f Filter, entities []swapi.Entity, vars map[string]any) ([]swapi.Entity, error) {
	kept := make([]swapi.Entity, 0, len(entities))

	for _, e := range entities {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ok, err := f.Evaluate(e, vars)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, e)
		}
	}

	return kept, nil
}
