package interp

import (
	"fmt"
	"io"

	"github.com/dop251/goja"
)

// Plot is a renderable graphic value produced by the guest plot() builtin.
type Plot struct {
	Title string
	Type  string
	X     []float64
	Y     []float64
}

// installPlotting adds the plot and show builtins. plot builds a Plot
// value and marks it as the current graphic; show is the display entry
// point: it routes the current (or given) graphic through the installed
// sink, clears the surface and returns undefined so nothing is echoed.
func (s *Session) installPlotting() error {
	plotFunc := func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(s.vm.NewTypeError("plot requires 1 argument: spec"))
		}
		spec, ok := call.Arguments[0].Export().(map[string]any)
		if !ok {
			panic(s.vm.NewTypeError("plot spec must be an object"))
		}
		p, err := plotFromSpec(spec)
		if err != nil {
			panic(s.vm.NewGoError(err))
		}
		s.current = p
		return s.vm.ToValue(p)
	}
	if err := s.vm.Set("plot", plotFunc); err != nil {
		return err
	}

	showFunc := func(call goja.FunctionCall) goja.Value {
		p := s.current
		if len(call.Arguments) >= 1 {
			arg, ok := call.Arguments[0].Export().(*Plot)
			if !ok {
				panic(s.vm.NewTypeError("show expects a plot"))
			}
			p = arg
		}
		if p == nil {
			panic(s.vm.NewGoError(fmt.Errorf("no current plot to show")))
		}
		if s.sink != nil {
			if err := s.sink.Display(p); err != nil {
				panic(s.vm.NewGoError(err))
			}
		}
		s.current = nil
		return goja.Undefined()
	}
	return s.vm.Set("show", showFunc)
}

func plotFromSpec(spec map[string]any) (*Plot, error) {
	p := &Plot{Type: "line"}
	if t, ok := spec["title"].(string); ok {
		p.Title = t
	}
	if t, ok := spec["type"].(string); ok {
		switch t {
		case "line", "scatter", "bar":
			p.Type = t
		default:
			return nil, fmt.Errorf("unsupported plot type %q", t)
		}
	}
	var err error
	if p.X, err = floatSeries(spec["x"]); err != nil {
		return nil, fmt.Errorf("plot x: %w", err)
	}
	if p.Y, err = floatSeries(spec["y"]); err != nil {
		return nil, fmt.Errorf("plot y: %w", err)
	}
	if len(p.X) == 0 && len(p.Y) > 0 {
		p.X = make([]float64, len(p.Y))
		for i := range p.X {
			p.X[i] = float64(i)
		}
	}
	if len(p.X) != len(p.Y) {
		return nil, fmt.Errorf("plot series length mismatch: %d x vs %d y", len(p.X), len(p.Y))
	}
	if len(p.Y) == 0 {
		return nil, fmt.Errorf("plot needs a non-empty y series")
	}
	return p, nil
}

func floatSeries(v any) ([]float64, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array, got %T", v)
	}
	out := make([]float64, len(items))
	for i, item := range items {
		switch n := item.(type) {
		case float64:
			out[i] = n
		case int64:
			out[i] = float64(n)
		case int:
			out[i] = float64(n)
		default:
			return nil, fmt.Errorf("element %d is not a number", i)
		}
	}
	return out, nil
}

// EncodeSVG writes the plot as a standalone SVG document at the given
// pixel size.
func (p *Plot) EncodeSVG(w io.Writer, width, height int) error {
	minX, maxX := bounds(p.X)
	minY, maxY := bounds(p.Y)

	const margin = 30.0
	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin
	sx := func(x float64) float64 {
		if maxX == minX {
			return margin + plotW/2
		}
		return margin + (x-minX)/(maxX-minX)*plotW
	}
	sy := func(y float64) float64 {
		if maxY == minY {
			return margin + plotH/2
		}
		return margin + plotH - (y-minY)/(maxY-minY)*plotH
	}

	if _, err := fmt.Fprintf(w, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n", width, height, width, height); err != nil {
		return err
	}
	if p.Title != "" {
		fmt.Fprintf(w, "  <text x=\"%g\" y=\"%g\" text-anchor=\"middle\" font-size=\"14\">%s</text>\n", float64(width)/2, margin/2, p.Title)
	}
	fmt.Fprintf(w, "  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"black\"/>\n", margin, margin, plotW, plotH)

	switch p.Type {
	case "bar":
		bw := plotW / float64(len(p.Y)) * 0.8
		for i, y := range p.Y {
			x := sx(p.X[i]) - bw/2
			top := sy(y)
			fmt.Fprintf(w, "  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"steelblue\"/>\n", x, top, bw, margin+plotH-top)
		}
	case "scatter":
		for i, y := range p.Y {
			fmt.Fprintf(w, "  <circle cx=\"%g\" cy=\"%g\" r=\"3\" fill=\"steelblue\"/>\n", sx(p.X[i]), sy(y))
		}
	default:
		fmt.Fprint(w, "  <polyline fill=\"none\" stroke=\"steelblue\" stroke-width=\"2\" points=\"")
		for i, y := range p.Y {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%g,%g", sx(p.X[i]), sy(y))
		}
		fmt.Fprint(w, "\"/>\n")
	}

	_, err := fmt.Fprint(w, "</svg>\n")
	return err
}

func bounds(s []float64) (lo, hi float64) {
	if len(s) == 0 {
		return 0, 0
	}
	lo, hi = s[0], s[0]
	for _, v := range s[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
