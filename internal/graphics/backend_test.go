package graphics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itsmostafa/weave/internal/engine"
)

type boxGraphic struct{}

func (boxGraphic) EncodeSVG(w io.Writer, width, height int) error {
	_, err := fmt.Fprintf(w, "<svg width=\"%d\" height=\"%d\"/>", width, height)
	return err
}

func TestFileBackend_Render(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(dir)
	opts := engine.DefaultOptions()

	art, err := b.Render(boxGraphic{}, opts)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if art.ID == "" {
		t.Error("artifact must carry an id")
	}
	if filepath.Dir(art.Path) != dir {
		t.Errorf("artifact written to %s, want %s", art.Path, dir)
	}
	data, err := os.ReadFile(art.Path)
	if err != nil {
		t.Fatalf("artifact file missing: %v", err)
	}
	// 7in x 5in at 96 dpi
	if !strings.Contains(string(data), "width=\"672\"") || !strings.Contains(string(data), "height=\"480\"") {
		t.Errorf("figure options not honored: %s", data)
	}
}

func TestFileBackend_FreshArtifactPerRender(t *testing.T) {
	b := NewFileBackend(t.TempDir())
	opts := engine.DefaultOptions()

	a1, err := b.Render(boxGraphic{}, opts)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	a2, err := b.Render(boxGraphic{}, opts)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if a1.Path == a2.Path {
		t.Error("repeated renders must not clobber earlier artifacts")
	}
}

func TestFileBackend_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "figures")
	b := NewFileBackend(dir)

	if _, err := b.Render(boxGraphic{}, engine.DefaultOptions()); err != nil {
		t.Fatalf("render should create the figure directory: %v", err)
	}
}
