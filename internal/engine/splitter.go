package engine

import (
	"sort"
	"strings"
)

// SourceUnit is a contiguous slice of the chunk's source lines holding one
// independently executable statement group. Units for a chunk cover
// [1, lineCount] exactly, with no gaps or overlaps.
type SourceUnit struct {
	StartLine int
	EndLine   int
	Text      string
}

// SplitStatements splits chunk source into ordered units, one per
// top-level statement boundary. Statements sharing a line collapse into a
// single unit, and annotation lines attached above a statement move the
// boundary up so they echo with the statement they belong to. An empty
// chunk yields zero units; a chunk with no parsed nodes (comments or blank
// lines only) yields a single unit covering everything.
func SplitStatements(src string, p Parser) ([]SourceUnit, error) {
	lines := sourceLines(src)
	if len(lines) == 0 {
		return nil, nil
	}

	nodes, err := p.Parse(src)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	seen := make(map[int]bool)
	var bounds []int
	for _, n := range nodes {
		b := n.StartLine
		if n.HasDecoration {
			b = decorationStart(lines, b)
		}
		if b < 1 {
			b = 1
		}
		if b > len(lines) {
			b = len(lines)
		}
		if !seen[b] {
			seen[b] = true
			bounds = append(bounds, b)
		}
	}
	sort.Ints(bounds)

	// Leading lines before the first statement belong to the first unit.
	if len(bounds) == 0 {
		bounds = []int{1}
	} else if bounds[0] != 1 {
		bounds[0] = 1
	}

	units := make([]SourceUnit, 0, len(bounds))
	for i, start := range bounds {
		end := len(lines)
		if i+1 < len(bounds) {
			end = bounds[i+1] - 1
		}
		units = append(units, SourceUnit{
			StartLine: start,
			EndLine:   end,
			Text:      strings.Join(lines[start-1:end], "\n"),
		})
	}
	return units, nil
}

// decorationStart walks upward over the contiguous run of annotation lines
// directly above line start and returns the first of them.
func decorationStart(lines []string, start int) int {
	b := start
	for b > 1 && isAnnotationLine(lines[b-2]) {
		b--
	}
	return b
}

func isAnnotationLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "//")
}

// sourceLines splits src into lines; the empty string has zero lines.
func sourceLines(src string) []string {
	if src == "" {
		return nil
	}
	return strings.Split(src, "\n")
}

// lineCount reports how many lines src spans, consistent with sourceLines.
func lineCount(src string) int {
	return len(sourceLines(src))
}
