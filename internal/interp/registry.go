package interp

import (
	"fmt"

	"github.com/itsmostafa/weave/internal/engine"
)

// Registry owns the process-wide session. The first chunk to run binds the
// active interpreter instance; later chunks asking for a different
// engine path get the active one back together with a backend-mismatch
// diagnostic, and execution proceeds against it.
type Registry struct {
	active *Session
}

// NewRegistry returns an empty registry; the session is created lazily on
// first acquisition and torn down only at process exit.
func NewRegistry() *Registry {
	return &Registry{}
}

// Interpreter implements engine.InterpreterProvider.
func (r *Registry) Interpreter(enginePath string) (engine.Interpreter, *engine.Diagnostic, error) {
	if r.active == nil {
		s, err := NewSession(enginePath)
		if err != nil {
			return nil, nil, err
		}
		r.active = s
		return s, nil, nil
	}
	if enginePath != "" && enginePath != r.active.Path() {
		return r.active, &engine.Diagnostic{
			Kind: engine.DiagBackendMismatch,
			Message: fmt.Sprintf("interpreter %q requested but %q is already active; using the active instance",
				enginePath, r.active.Path()),
		}, nil
	}
	return r.active, nil, nil
}
