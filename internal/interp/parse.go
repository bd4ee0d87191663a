package interp

import (
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"

	"github.com/itsmostafa/weave/internal/engine"
)

// SourceParser reports top-level statement boundaries using goja's own
// JavaScript grammar.
type SourceParser struct{}

// Parse returns one node per top-level statement. A statement preceded
// directly by full-line comments is flagged as decorated so the splitter
// keeps those lines with it.
func (SourceParser) Parse(src string) ([]engine.Node, error) {
	prog, err := parser.ParseFile(nil, "chunk.js", src, 0)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(src, "\n")
	nodes := make([]engine.Node, 0, len(prog.Body))
	for _, stmt := range prog.Body {
		line := lineOf(src, stmt.Idx0())
		decorated := line > 1 && line-2 < len(lines) &&
			strings.HasPrefix(strings.TrimSpace(lines[line-2]), "//")
		nodes = append(nodes, engine.Node{StartLine: line, HasDecoration: decorated})
	}
	return nodes, nil
}

// lineOf converts a parser index (1-based byte offset) into a 1-based
// line number.
func lineOf(src string, idx file.Idx) int {
	off := int(idx) - 1
	if off < 0 {
		off = 0
	}
	if off > len(src) {
		off = len(src)
	}
	return 1 + strings.Count(src[:off], "\n")
}

// bareTrailingExpression reports whether the last top-level statement of
// text is a bare expression (not an assignment), i.e. one whose value a
// live session would implicitly display.
func bareTrailingExpression(text string) bool {
	prog, err := parser.ParseFile(nil, "chunk.js", text, 0)
	if err != nil || len(prog.Body) == 0 {
		return false
	}
	es, ok := prog.Body[len(prog.Body)-1].(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	_, assign := es.Expression.(*ast.AssignExpression)
	return !assign
}
