package filter

import (
	"github.com/s0up4200/holocron/swapi"
)

// Filter decides whether an entity is kept
type Filter interface {
	// Evaluate checks an entity against the filter. vars are extra
	// variables visible to the expression, e.g. planetURL.
	Evaluate(entity swapi.Entity, vars map[string]any) (bool, error)
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

var _ Compiler = (*ExprCompiler)(nil)
