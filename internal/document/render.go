package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/itsmostafa/weave/internal/engine"
	"github.com/itsmostafa/weave/internal/graphics"
	"github.com/itsmostafa/weave/internal/interp"
)

// Runner renders literate markdown documents. One runner holds one
// interpreter registry, so chunks of every document rendered through it
// share the same persistent session.
type Runner struct {
	registry *interp.Registry
	figDir   string
}

// NewRunner creates a document runner writing figure artifacts under
// figDir.
func NewRunner(figDir string) *Runner {
	return &Runner{registry: interp.NewRegistry(), figDir: figDir}
}

// RenderResult is one rendered document plus the diagnostics its chunks
// raised.
type RenderResult struct {
	Markdown    []byte
	Chunks      int
	Diagnostics []engine.Diagnostic
}

// Render executes every chunk of src in order and splices the resulting
// output records back into the surrounding prose. A chunk failure aborts
// the build; prose and outputs produced before the failing chunk are
// still returned.
func (r *Runner) Render(ctx context.Context, src []byte) (*RenderResult, error) {
	doc, err := Parse(src)
	if err != nil {
		return nil, err
	}

	eng := engine.New(engine.Config{
		Parser:          interp.SourceParser{},
		Provider:        r.registry,
		Backend:         graphics.NewFileBackend(r.figDir),
		InDocumentBuild: true,
	})

	res := &RenderResult{Chunks: len(doc.Chunks)}
	var out bytes.Buffer
	pos := 0
	for i, chunk := range doc.Chunks {
		out.Write(doc.Body[pos:chunk.start])
		pos = chunk.stop

		raw := mergeOptions(doc.FrontMatter.Options, chunk.Options)
		cr, err := eng.RunChunk(ctx, chunk.Source, raw, doc.FrontMatter.Vars)
		if cr != nil {
			res.Diagnostics = append(res.Diagnostics, cr.Diagnostics...)
			writeItems(&out, cr.Outputs)
		}
		if err != nil {
			res.Markdown = out.Bytes()
			return res, fmt.Errorf("chunk %s: %w", chunkName(chunk, i), err)
		}
	}
	out.Write(doc.Body[pos:])

	res.Markdown = out.Bytes()
	return res, nil
}

// writeItems renders an output-record sequence as markdown: echoes as js
// fences, text as plain fences, graphics as image links, errors as
// prefixed text blocks.
func writeItems(out *bytes.Buffer, items []engine.OutputItem) {
	for _, it := range items {
		switch it.Kind {
		case engine.ItemSourceEcho:
			fmt.Fprintf(out, "```js\n%s\n```\n\n", strings.TrimRight(it.Text, "\n"))
		case engine.ItemTextOutput:
			fmt.Fprintf(out, "```\n%s\n```\n\n", strings.TrimRight(it.Text, "\n"))
		case engine.ItemGraphic:
			fmt.Fprintf(out, "![](%s)\n\n", it.Artifact.Path)
		case engine.ItemError:
			fmt.Fprintf(out, "```\n## Error: %s\n```\n\n", strings.TrimRight(it.Text, "\n"))
		}
	}
}

func mergeOptions(defaults map[string]any, chunk engine.RawOptions) engine.RawOptions {
	merged := engine.RawOptions{}
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range chunk {
		merged[k] = v
	}
	return merged
}

func chunkName(c Chunk, i int) string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("#%d", i+1)
}
