// Package ghost implements a stochastic local-search engine for constraint
// satisfaction and optimization problems (CSP/COP and their error-function
// variants).
package ghost

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the taxonomy the core can raise. Wrap with
// fmt.Errorf("%w: ...", Err..., details) and compare with errors.Is.
var (
	// ErrOutOfDomain is returned when a value is not a member of a
	// variable's domain.
	ErrOutOfDomain = errors.New("ghost: value not in domain")

	// ErrOutOfRange is returned when an index is outside [0, size) of a
	// domain or a variable slice.
	ErrOutOfRange = errors.New("ghost: index out of range")

	// ErrVariableOutOfScope is returned when a constraint is queried
	// about a variable it does not declare in its read set.
	ErrVariableOutOfScope = errors.New("ghost: variable out of constraint scope")

	// ErrDeltaNotDefined is returned by a constraint's DeltaError when it
	// does not support incremental delta evaluation. The driver recovers
	// from this on first occurrence by switching the constraint
	// permanently to the simulate-restore path.
	ErrDeltaNotDefined = errors.New("ghost: delta-error not defined")

	// ErrNaN is returned when a constraint or objective computation
	// yields NaN.
	ErrNaN = errors.New("ghost: computation produced NaN")

	// ErrDeadlineExpired names deadline-driven termination. Driver.Solve
	// does not return it: deadline expiry is a normal outcome, reported as
	// the best solution found so far with a nil error.
	ErrDeadlineExpired = errors.New("ghost: deadline expired")
)

// outOfDomain builds an ErrOutOfDomain wrapping error with the offending
// value attached.
func outOfDomain(value int) error {
	return fmt.Errorf("%w: %d", ErrOutOfDomain, value)
}

// outOfRange builds an ErrOutOfRange wrapping error with the offending
// index and bound attached.
func outOfRange(index, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, index, size)
}

// variableOutOfScope builds an ErrVariableOutOfScope wrapping error naming
// the constraint and the variable id it was asked about.
func variableOutOfScope(constraintID, variableID int) error {
	return fmt.Errorf("%w: constraint %d has no variable %d", ErrVariableOutOfScope, constraintID, variableID)
}
