package engine

import "fmt"

// DiagKind classifies a non-fatal diagnostic attached to a chunk result.
type DiagKind int

const (
	// DiagConfiguration marks an invalid option value that was coerced to a
	// usable default.
	DiagConfiguration DiagKind = iota
	// DiagBackendMismatch marks a chunk that requested a different
	// interpreter instance than the one already active.
	DiagBackendMismatch
)

// Diagnostic is a side-channel warning. Diagnostics never block execution.
type Diagnostic struct {
	Kind    DiagKind
	Message string
}

// ParseError wraps a guest-language syntax error. It is fatal to the whole
// chunk and surfaces before any unit executes.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExecError wraps a failure raised while executing one unit. It escalates
// only when the chunk runs with error=abort and errors are not captured.
type ExecError struct {
	StartLine int
	EndLine   int
	Message   string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("execution error at lines %d-%d: %s", e.StartLine, e.EndLine, e.Message)
}
