// Package engine is the incremental execution core: it splits a chunk of
// guest source into minimal executable units, runs them in order against a
// persistent interpreter session, captures textual and graphical output,
// and assembles the ordered output-record sequence consumed by the
// document renderer. Parsing, evaluation and graphic rendering are
// delegated to collaborator interfaces defined here.
package engine

import (
	"context"
	"io"
)

// EvalMode selects how the interpreter treats a trailing bare expression.
type EvalMode int

const (
	// EvalExec runs a unit without implicit display of a trailing
	// expression's value.
	EvalExec EvalMode = iota
	// EvalSingle captures a bare trailing expression as the produced value
	// and auto-displays it.
	EvalSingle
)

// Node is one top-level syntactic node reported by the Parser.
type Node struct {
	// StartLine is the 1-based line of the node itself.
	StartLine int
	// HasDecoration is true when the node carries attached annotation lines
	// immediately above it; the split boundary then moves up to cover them.
	HasDecoration bool
}

// Parser turns chunk source into top-level nodes using the guest
// language's own grammar. A syntax error fails the whole chunk.
type Parser interface {
	Parse(src string) ([]Node, error)
}

// ValueHandle identifies one produced value. Handles are compared by
// generation counter, not by structural equality: every evaluation that
// produces a value gets a fresh generation even if the value is equal in
// content to the previous one.
type ValueHandle struct {
	Gen   uint64
	Value any
}

// SameHandle reports whether two handles refer to the same produced value.
func SameHandle(a, b ValueHandle) bool { return a.Gen == b.Gen }

// GraphicsSink receives explicit display calls fired inside the guest
// environment. Installation is scoped to one chunk.
type GraphicsSink interface {
	Display(v any) error
}

// Interpreter executes units against persistent session state. It is the
// sole mutator of that state; calls are strictly sequential.
type Interpreter interface {
	// Eval runs one unit and returns everything written to the session's
	// standard output stream during the call. EvalSingle additionally
	// updates the last-produced-value handle when the unit ends in a bare
	// expression.
	Eval(ctx context.Context, text string, mode EvalMode) (string, error)
	// LastValue returns the handle of the most recently produced value.
	LastValue() ValueHandle
	// Bind pushes a host-side variable into the session namespace.
	Bind(name string, value any) error
	// SetGraphicsSink installs a sink and returns the previously installed
	// one so callers can restore it on every chunk exit path.
	SetGraphicsSink(sink GraphicsSink) GraphicsSink
}

// InterpreterProvider resolves the interpreter instance for a chunk. When
// the chunk requests a specific instance but a different one is already
// active, the provider returns the active instance together with a
// backend-mismatch diagnostic.
type InterpreterProvider interface {
	Interpreter(enginePath string) (Interpreter, *Diagnostic, error)
}

// Graphic is a guest value that can be rendered to a persisted artifact.
type Graphic interface {
	EncodeSVG(w io.Writer, width, height int) error
}

// Artifact is an opaque handle to a persisted rendering.
type Artifact struct {
	ID   string
	Path string
}

// GraphicsBackend renders graphics to persisted artifacts. Path and
// resolution policy live behind this interface, not in the engine.
type GraphicsBackend interface {
	Render(g Graphic, opts ChunkOptions) (Artifact, error)
	// ClearSurface resets the backend's drawing surface after a render.
	ClearSurface()
}
