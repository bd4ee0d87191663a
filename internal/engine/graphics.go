package engine

import "fmt"

// GraphicsCapture bridges explicit display calls from the guest
// environment into the per-chunk pending-graphics queue. It implements
// GraphicsSink and is installed on the interpreter for exactly one chunk.
type GraphicsCapture struct {
	backend GraphicsBackend
	opts    ChunkOptions
	pending []Artifact
}

// NewGraphicsCapture returns a capture bound to one chunk's options.
func NewGraphicsCapture(backend GraphicsBackend, opts ChunkOptions) *GraphicsCapture {
	return &GraphicsCapture{backend: backend, opts: opts}
}

// Display renders v to a persisted artifact, clears the backend surface
// and enqueues the artifact handle. It produces no textual output.
func (c *GraphicsCapture) Display(v any) error {
	g, ok := AsGraphic(v)
	if !ok {
		return fmt.Errorf("value of type %T is not renderable", v)
	}
	art, err := c.backend.Render(g, c.opts)
	if err != nil {
		return fmt.Errorf("render graphic: %w", err)
	}
	c.backend.ClearSurface()
	c.pending = append(c.pending, art)
	return nil
}

// Drain returns the queued artifacts in FIFO order and clears the queue.
func (c *GraphicsCapture) Drain() []Artifact {
	p := c.pending
	c.pending = nil
	return p
}

// AsGraphic reports whether v qualifies as a renderable graphic, either
// directly or as the sole element of a length-one container.
func AsGraphic(v any) (Graphic, bool) {
	if g, ok := v.(Graphic); ok {
		return g, true
	}
	if s, ok := v.([]any); ok && len(s) == 1 {
		if g, ok := s[0].(Graphic); ok {
			return g, true
		}
	}
	return nil, false
}
