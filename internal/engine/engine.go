package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Config wires the engine's collaborators.
type Config struct {
	Parser   Parser
	Provider InterpreterProvider
	Backend  GraphicsBackend
	// InDocumentBuild marks a full document build. Outside one (an
	// interactive single-chunk run) failures are captured by default so
	// they don't kill the session.
	InDocumentBuild bool
}

// Engine drives chunk execution against the persistent session.
type Engine struct {
	cfg Config
}

// New creates an engine from its collaborators.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// ChunkResult is the per-chunk product: the ordered output sequence plus
// side-channel diagnostics.
type ChunkResult struct {
	Outputs     []OutputItem
	Diagnostics []Diagnostic
}

// RunChunk executes one chunk of guest source. Option normalization runs
// first, then splitting, then the unit loop; hostVars are pushed into the
// session namespace before the first unit. Parse errors and non-captured
// runtime failures are returned alongside the outputs produced so far.
func (e *Engine) RunChunk(ctx context.Context, src string, raw RawOptions, hostVars map[string]any) (*ChunkResult, error) {
	opts, diags := Normalize(raw)
	result := &ChunkResult{Diagnostics: diags}

	units, err := SplitStatements(src, e.cfg.Parser)
	if err != nil {
		return result, err
	}
	if len(units) == 0 {
		return result, nil
	}

	if !opts.Eval {
		if opts.Echo && opts.Include {
			result.Outputs = append(result.Outputs, OutputItem{Kind: ItemSourceEcho, Text: src})
		}
		return result, nil
	}

	interp, diag, err := e.cfg.Provider.Interpreter(opts.EnginePath)
	if err != nil {
		return result, fmt.Errorf("acquire interpreter: %w", err)
	}
	if diag != nil {
		result.Diagnostics = append(result.Diagnostics, *diag)
	}

	if err := pushHostVars(interp, hostVars); err != nil {
		return result, err
	}

	capture := NewGraphicsCapture(e.cfg.Backend, opts)
	prevSink := interp.SetGraphicsSink(capture)
	defer interp.SetGraphicsSink(prevSink)

	captureErrors := opts.Error == ErrorCapture || !e.cfg.InDocumentBuild
	sess := NewExecutionSession(interp, captureErrors)
	mux := NewOutputMultiplexer(src, opts)

	var runErr error
	for i, unit := range units {
		res, err := sess.ExecuteUnit(ctx, unit)
		if err != nil {
			runErr = err
			msg := err.Error()
			var ee *ExecError
			if errors.As(err, &ee) {
				msg = ee.Message
			}
			res = ExecutionResult{IsError: true, Message: msg}
		}

		// A bare trailing graphic expression at the end of the chunk is
		// captured even without an explicit display call. Non-final units
		// drop an undisplayed graphic value silently.
		if runErr == nil && !res.IsError && res.ValueChanged && i == len(units)-1 {
			if _, ok := AsGraphic(interp.LastValue().Value); ok {
				if derr := capture.Display(interp.LastValue().Value); derr != nil {
					runErr = derr
					res = ExecutionResult{IsError: true, Message: derr.Error()}
				} else {
					res.Text = ""
				}
			}
		}

		stop := mux.Fold(unit, res, capture.Drain())
		if stop || runErr != nil {
			break
		}
	}

	mux.Finalize()
	result.Outputs = mux.Outputs()
	return result, runErr
}

// pushHostVars is the pre-chunk synchronization barrier: host-side bound
// variables enter the session namespace in a stable order. The reverse
// direction after the chunk is a no-op.
func pushHostVars(interp Interpreter, vars map[string]any) error {
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if err := interp.Bind(n, vars[n]); err != nil {
			return fmt.Errorf("bind host variable %q: %w", n, err)
		}
	}
	return nil
}
