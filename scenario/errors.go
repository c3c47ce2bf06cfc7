package scenario

import (
	"errors"
	"fmt"
)

// ErrAssertion marks a relationship in the remote data that did not hold
var ErrAssertion = errors.New("assertion failed")

// StepError reports which step halted the run
type StepError struct {
	Step int
	Name string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Name, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// check returns an ErrAssertion-wrapped error unless cond holds
func check(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrAssertion, fmt.Sprintf(format, args...))
}
