package dag

import "errors"

// Construction errors. Build wraps these with the offending operator and
// blob names; callers can test for them with errors.Is.
var (
	// ErrDuplicateOperator indicates two declarations share the same name.
	ErrDuplicateOperator = errors.New("duplicate operator name")
	// ErrUnknownControlInput indicates a control_input references an
	// operator that has not been declared before the referencing one.
	ErrUnknownControlInput = errors.New("unknown control input")
	// ErrSelfDependency indicates an operator names itself as a control input.
	ErrSelfDependency = errors.New("operator depends on itself")
	// ErrCycle indicates the resulting graph is not acyclic.
	ErrCycle = errors.New("dependency cycle")
)
