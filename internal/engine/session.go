package engine

import (
	"context"
	"strings"
)

// ExecutionResult is what one unit produced.
type ExecutionResult struct {
	// Text is everything written to the session's stdout during the unit,
	// including the auto-displayed representation of a produced value.
	Text string
	// ValueChanged is true when the unit produced a new value, detected by
	// comparing the last-value handle before and after execution.
	ValueChanged bool
	// IsError marks a captured failure.
	IsError bool
	// Message carries the failure message when IsError is set.
	Message string
}

// ExecutionSession executes units in order against the persistent
// interpreter state. It never runs units concurrently.
type ExecutionSession struct {
	interp        Interpreter
	captureErrors bool
}

// NewExecutionSession wraps an interpreter. captureErrors is true when the
// chunk explicitly requests error capture or when the engine runs outside
// a full document build.
func NewExecutionSession(interp Interpreter, captureErrors bool) *ExecutionSession {
	return &ExecutionSession{interp: interp, captureErrors: captureErrors}
}

// ExecuteUnit runs one unit. A unit whose text ends with a statement
// terminator runs in exec mode (no implicit display of a trailing
// expression); otherwise it runs in single mode. Raised failures are
// wrapped into the result when errors are captured and returned to the
// caller otherwise.
func (s *ExecutionSession) ExecuteUnit(ctx context.Context, unit SourceUnit) (ExecutionResult, error) {
	mode := EvalSingle
	if endsWithTerminator(unit.Text) {
		mode = EvalExec
	}

	prev := s.interp.LastValue()
	text, err := s.interp.Eval(ctx, unit.Text, mode)
	cur := s.interp.LastValue()

	res := ExecutionResult{
		Text:         text,
		ValueChanged: !SameHandle(prev, cur),
	}
	if err != nil {
		if !s.captureErrors {
			return res, &ExecError{StartLine: unit.StartLine, EndLine: unit.EndLine, Message: err.Error()}
		}
		res.IsError = true
		res.Message = err.Error()
	}
	return res, nil
}

// endsWithTerminator reports whether the unit's last code line ends in the
// guest statement terminator, ignoring trailing blank and comment lines.
func endsWithTerminator(text string) bool {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		t := strings.TrimSpace(lines[i])
		if t == "" || strings.HasPrefix(t, "//") {
			continue
		}
		return strings.HasSuffix(t, ";")
	}
	return false
}
