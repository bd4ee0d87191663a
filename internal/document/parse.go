// Package document runs executable chunks embedded in markdown documents
// and renders their output records back into markdown. It is the consumer
// side of the engine: the document supplies raw chunk options (fence info
// string plus front matter defaults) and receives ordered output items.
package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/itsmostafa/weave/internal/engine"
)

// FrontMatter carries the document-level configuration block.
type FrontMatter struct {
	Title string `yaml:"title"`
	// Options are document-level chunk option defaults, overridden per
	// chunk by the fence info string.
	Options map[string]any `yaml:"options"`
	// Vars are host-side variables pushed into the session namespace
	// before each chunk executes.
	Vars map[string]any `yaml:"vars"`
}

// Chunk is one executable fenced code block.
type Chunk struct {
	Label   string
	Source  string
	Options engine.RawOptions

	// byte extents of the whole fence (including fence markers) in Body
	start, stop int
}

// Document is a parsed literate markdown file.
type Document struct {
	FrontMatter FrontMatter
	Body        []byte
	Chunks      []Chunk
}

// Parse splits off the YAML front matter and walks the markdown AST for
// fenced code blocks whose info string names the js engine.
func Parse(src []byte) (*Document, error) {
	fm, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}
	doc := &Document{FrontMatter: fm, Body: body}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok || fence.Info == nil {
			continue
		}
		info := string(fence.Info.Segment.Value(body))
		label, raw, ok := parseInfo(info)
		if !ok {
			continue
		}

		start, stop := fenceExtent(body, fence)
		doc.Chunks = append(doc.Chunks, Chunk{
			Label:   label,
			Source:  chunkSource(body, fence),
			Options: raw,
			start:   start,
			stop:    stop,
		})
	}
	return doc, nil
}

func splitFrontMatter(src []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter
	if !bytes.HasPrefix(src, []byte("---\n")) && !bytes.HasPrefix(src, []byte("---\r\n")) {
		return fm, src, nil
	}
	rest := src[bytes.IndexByte(src, '\n')+1:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return fm, src, nil
	}
	block := rest[:end+1]
	body := rest[end+1:]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return fm, src, fmt.Errorf("parse front matter: %w", err)
	}
	return fm, body, nil
}

// chunkSource joins the fence's interior lines, without the trailing
// newline.
func chunkSource(body []byte, fence *ast.FencedCodeBlock) string {
	var buf bytes.Buffer
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(body))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// fenceExtent computes the byte range of the whole fenced block, fence
// markers included, so the renderer can splice output in its place.
func fenceExtent(body []byte, fence *ast.FencedCodeBlock) (start, stop int) {
	start = lineStart(body, fence.Info.Segment.Start)
	lines := fence.Lines()
	if lines.Len() > 0 {
		// end of the closing-fence line, one past the last interior line
		stop = lineEnd(body, lineEnd(body, lines.At(lines.Len()-1).Stop-1))
	} else {
		stop = lineEnd(body, lineEnd(body, fence.Info.Segment.Start))
	}
	return start, stop
}

// lineStart returns the offset of the first byte of the line containing
// off.
func lineStart(b []byte, off int) int {
	if off > len(b) {
		off = len(b)
	}
	i := bytes.LastIndexByte(b[:off], '\n')
	return i + 1
}

// lineEnd returns the offset just past the newline of the line containing
// off, or len(b) at EOF.
func lineEnd(b []byte, off int) int {
	if off >= len(b) {
		return len(b)
	}
	i := bytes.IndexByte(b[off:], '\n')
	if i < 0 {
		return len(b)
	}
	return off + i + 1
}
