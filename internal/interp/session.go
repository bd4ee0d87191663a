// Package interp backs the engine's Parser and Interpreter collaborators
// with an embedded goja JavaScript runtime. One Session holds the
// persistent interpreter state shared by every chunk of a document run.
package interp

import (
	"context"
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/itsmostafa/weave/internal/engine"
)

// Session wraps one persistent goja runtime. It lives for the whole
// document-rendering process and is mutated by every executed unit; it is
// never safe for concurrent use.
type Session struct {
	vm     *goja.Runtime
	path   string
	stdout strings.Builder

	gen  uint64
	last engine.ValueHandle

	sink    engine.GraphicsSink
	current *Plot
}

// NewSession creates a runtime with the print, console.log, plot and show
// builtins installed. path names the interpreter instance for
// backend-mismatch checks.
func NewSession(path string) (*Session, error) {
	s := &Session{vm: goja.New(), path: path}
	if err := s.install(); err != nil {
		return nil, fmt.Errorf("setup session environment: %w", err)
	}
	return s, nil
}

// Path returns the name this session was created under.
func (s *Session) Path() string { return s.path }

func (s *Session) install() error {
	printFunc := func(call goja.FunctionCall) goja.Value {
		args := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = arg.String()
		}
		s.stdout.WriteString(strings.Join(args, " "))
		s.stdout.WriteString("\n")
		return goja.Undefined()
	}
	if err := s.vm.Set("print", printFunc); err != nil {
		return err
	}
	console := s.vm.NewObject()
	if err := console.Set("log", printFunc); err != nil {
		return err
	}
	if err := s.vm.Set("console", console); err != nil {
		return err
	}
	return s.installPlotting()
}

// Eval runs one unit of source. Everything printed during the call is
// returned as captured text. In single mode a bare trailing expression
// becomes the new produced value: it gets a fresh handle generation and
// its representation is appended to the captured text.
func (s *Session) Eval(ctx context.Context, text string, mode engine.EvalMode) (string, error) {
	s.stdout.Reset()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.vm.Interrupt("execution cancelled")
		case <-done:
		}
	}()

	val, err := s.vm.RunString(text)
	close(done)
	s.vm.ClearInterrupt()
	out := s.stdout.String()
	if err != nil {
		if ex, ok := err.(*goja.Exception); ok {
			return out, fmt.Errorf("%s", ex.Value().String())
		}
		if interrupted, ok := err.(*goja.InterruptedError); ok {
			return out, fmt.Errorf("execution interrupted: %v", interrupted.Value())
		}
		return out, err
	}

	if mode == engine.EvalSingle && bareTrailingExpression(text) &&
		val != nil && !goja.IsUndefined(val) && !goja.IsNull(val) {
		exported := val.Export()
		s.gen++
		s.last = engine.ValueHandle{Gen: s.gen, Value: exported}
		out += formatValue(exported) + "\n"
	}
	return out, nil
}

// LastValue returns the handle of the most recently produced value.
func (s *Session) LastValue() engine.ValueHandle { return s.last }

// Bind pushes a host variable into the session namespace.
func (s *Session) Bind(name string, value any) error {
	if err := s.vm.Set(name, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return nil
}

// SetGraphicsSink installs the display sink and returns the previous one.
func (s *Session) SetGraphicsSink(sink engine.GraphicsSink) engine.GraphicsSink {
	prev := s.sink
	s.sink = sink
	return prev
}
