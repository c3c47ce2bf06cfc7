package filter

import (
	"errors"
	"fmt"
)

// ErrNotBool reports a filter that produced something other than a boolean
var ErrNotBool = errors.New("filter result is not a boolean")

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates a filter could not be evaluated
	EvaluationError struct {
		Expression string
		EntityURL  string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for '%s' on %s: %v", e.Expression, e.EntityURL, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
