// Package graphics persists renderable guest values as image artifacts.
package graphics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/itsmostafa/weave/internal/engine"
)

// FileBackend renders graphics to SVG files under a figure directory. The
// directory is decided by the host, never by the engine.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend writing under dir.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Render writes g as an SVG file sized from the chunk's figure options and
// returns its artifact handle. File names are fresh uuids, so repeated
// renders never clobber earlier artifacts.
func (b *FileBackend) Render(g engine.Graphic, opts engine.ChunkOptions) (engine.Artifact, error) {
	width := int(opts.FigWidth * float64(opts.DPI))
	height := int(opts.FigHeight * float64(opts.DPI))
	if width <= 0 || height <= 0 {
		return engine.Artifact{}, fmt.Errorf("invalid figure size %dx%d", width, height)
	}

	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return engine.Artifact{}, fmt.Errorf("create figure directory: %w", err)
	}

	id := uuid.New().String()
	path := filepath.Join(b.dir, id+".svg")
	f, err := os.Create(path)
	if err != nil {
		return engine.Artifact{}, fmt.Errorf("create artifact file: %w", err)
	}
	defer f.Close()

	if err := g.EncodeSVG(f, width, height); err != nil {
		return engine.Artifact{}, fmt.Errorf("encode %s: %w", path, err)
	}
	return engine.Artifact{ID: id, Path: path}, nil
}

// ClearSurface resets the drawing surface. The file backend draws each
// graphic onto its own file, so there is nothing to reset.
func (b *FileBackend) ClearSurface() {}
