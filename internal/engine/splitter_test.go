package engine

import (
	"errors"
	"strings"
	"testing"
)

// stubParser returns a fixed node list, or an error.
type stubParser struct {
	nodes []Node
	err   error
}

func (p stubParser) Parse(string) ([]Node, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.nodes, nil
}

func checkPartition(t *testing.T, src string, units []SourceUnit) {
	t.Helper()
	n := lineCount(src)
	next := 1
	var texts []string
	for _, u := range units {
		if u.StartLine != next {
			t.Fatalf("unit starts at %d, want %d (gap or overlap)", u.StartLine, next)
		}
		if u.EndLine < u.StartLine {
			t.Fatalf("unit [%d,%d] is empty", u.StartLine, u.EndLine)
		}
		next = u.EndLine + 1
		texts = append(texts, u.Text)
	}
	if next != n+1 {
		t.Fatalf("units cover [1,%d], want [1,%d]", next-1, n)
	}
	if got := strings.Join(texts, "\n"); got != src {
		t.Errorf("reassembled text = %q, want %q", got, src)
	}
}

func TestSplitStatements_Partition(t *testing.T) {
	src := "a = 1\nb = 2\nprint(a + b)"
	units, err := SplitStatements(src, stubParser{nodes: []Node{{StartLine: 1}, {StartLine: 2}, {StartLine: 3}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	checkPartition(t, src, units)
}

func TestSplitStatements_MultiStatementLine(t *testing.T) {
	src := "x = 1; y = 2"
	units, err := SplitStatements(src, stubParser{nodes: []Node{{StartLine: 1}, {StartLine: 1}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected a single unit for statements sharing a line, got %d", len(units))
	}
	checkPartition(t, src, units)
}

func TestSplitStatements_MultiLineStatement(t *testing.T) {
	src := "function f(x) {\n  return x + 1\n}\nf(1)"
	units, err := SplitStatements(src, stubParser{nodes: []Node{{StartLine: 1}, {StartLine: 4}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if units[0].EndLine != 3 {
		t.Errorf("first unit ends at %d, want 3", units[0].EndLine)
	}
	checkPartition(t, src, units)
}

func TestSplitStatements_DecorationMovesBoundary(t *testing.T) {
	src := "a = 1\n// sets b\n// carefully\nb = 2"
	units, err := SplitStatements(src, stubParser{nodes: []Node{{StartLine: 1}, {StartLine: 4, HasDecoration: true}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if units[1].StartLine != 2 {
		t.Errorf("annotated unit starts at %d, want 2", units[1].StartLine)
	}
	checkPartition(t, src, units)
}

func TestSplitStatements_LeadingLinesJoinFirstUnit(t *testing.T) {
	src := "\n\na = 1"
	units, err := SplitStatements(src, stubParser{nodes: []Node{{StartLine: 3}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 1 || units[0].StartLine != 1 {
		t.Fatalf("expected one unit from line 1, got %+v", units)
	}
	checkPartition(t, src, units)
}

func TestSplitStatements_EmptyChunk(t *testing.T) {
	units, err := SplitStatements("", stubParser{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 0 {
		t.Errorf("expected zero units for an empty chunk, got %d", len(units))
	}
}

func TestSplitStatements_CommentOnlyChunk(t *testing.T) {
	src := "// nothing here\n// at all"
	units, err := SplitStatements(src, stubParser{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected one covering unit, got %d", len(units))
	}
	checkPartition(t, src, units)
}

func TestSplitStatements_ParseError(t *testing.T) {
	wrapped := errors.New("unexpected token")
	_, err := SplitStatements("a = ", stubParser{err: wrapped})
	if err == nil {
		t.Fatal("expected an error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if !errors.Is(err, wrapped) {
		t.Error("expected the parser error to be wrapped")
	}
}
