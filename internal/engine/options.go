package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ResultsMode controls when a chunk's output is interleaved into the
// output sequence.
type ResultsMode string

const (
	// ResultsSequential interleaves output with source echoes unit by unit.
	ResultsSequential ResultsMode = "sequential"
	// ResultsHold defers all output to the end of the chunk, after a single
	// echo of the whole source.
	ResultsHold ResultsMode = "hold"
)

// ErrorMode controls what happens when a unit raises during execution.
type ErrorMode string

const (
	// ErrorCapture turns a raised failure into an inline error output item.
	ErrorCapture ErrorMode = "capture"
	// ErrorAbort stops the chunk at the failing unit.
	ErrorAbort ErrorMode = "abort"
)

// ChunkOptions is the validated option set for one chunk. It is immutable
// for the duration of the chunk.
type ChunkOptions struct {
	Eval       bool
	Echo       bool
	Include    bool
	Results    ResultsMode
	Error      ErrorMode
	Warning    bool
	FigWidth   float64
	FigHeight  float64
	DPI        int
	EnginePath string
	Dev        string
}

// DefaultOptions returns the documented defaults for a chunk.
func DefaultOptions() ChunkOptions {
	return ChunkOptions{
		Eval:      true,
		Echo:      true,
		Include:   true,
		Results:   ResultsSequential,
		Error:     ErrorAbort,
		Warning:   true,
		FigWidth:  7,
		FigHeight: 5,
		DPI:       96,
		Dev:       "svg",
	}
}

// RawOptions is the untyped option bag supplied by the config host
// (fence info string, front matter, CLI flags).
type RawOptions map[string]any

// Normalize validates a raw option bag into ChunkOptions. Invalid values
// never fail the chunk: boolean-only options given a non-boolean value are
// coerced to true with one configuration diagnostic per offending option,
// and unknown enum values fall back to their defaults the same way.
func Normalize(raw RawOptions) (ChunkOptions, []Diagnostic) {
	opts := DefaultOptions()
	var diags []Diagnostic

	coerce := func(name string, dst *bool, warn bool) {
		v, ok := raw[name]
		if !ok {
			return
		}
		b, valid := asBool(v)
		if !valid {
			b = true
			if warn {
				diags = append(diags, Diagnostic{
					Kind:    DiagConfiguration,
					Message: fmt.Sprintf("option %q expects a boolean, got %v; using true", name, v),
				})
			}
		}
		*dst = b
	}

	coerce("eval", &opts.Eval, true)
	coerce("echo", &opts.Echo, true)
	coerce("warning", &opts.Warning, true)
	coerce("include", &opts.Include, false)

	if v, ok := raw["results"]; ok {
		switch strings.ToLower(asString(v)) {
		case string(ResultsSequential):
			opts.Results = ResultsSequential
		case string(ResultsHold):
			opts.Results = ResultsHold
		default:
			diags = append(diags, Diagnostic{
				Kind:    DiagConfiguration,
				Message: fmt.Sprintf("option \"results\" expects %q or %q, got %v; using %q", ResultsSequential, ResultsHold, v, opts.Results),
			})
		}
	}
	if v, ok := raw["error"]; ok {
		switch strings.ToLower(asString(v)) {
		case string(ErrorCapture):
			opts.Error = ErrorCapture
		case string(ErrorAbort):
			opts.Error = ErrorAbort
		default:
			diags = append(diags, Diagnostic{
				Kind:    DiagConfiguration,
				Message: fmt.Sprintf("option \"error\" expects %q or %q, got %v; using %q", ErrorCapture, ErrorAbort, v, opts.Error),
			})
		}
	}

	if v, ok := raw["fig.width"]; ok {
		if f, valid := asFloat(v); valid && f > 0 {
			opts.FigWidth = f
		}
	}
	if v, ok := raw["fig.height"]; ok {
		if f, valid := asFloat(v); valid && f > 0 {
			opts.FigHeight = f
		}
	}
	if v, ok := raw["dpi"]; ok {
		if f, valid := asFloat(v); valid && f > 0 {
			opts.DPI = int(f)
		}
	}
	if v, ok := raw["engine.path"]; ok {
		opts.EnginePath = asString(v)
	}
	if v, ok := raw["dev"]; ok {
		opts.Dev = asString(v)
	}

	return opts, diags
}

func asBool(v any) (value, ok bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(b) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
