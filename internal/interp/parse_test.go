package interp

import (
	"strings"
	"testing"

	"github.com/itsmostafa/weave/internal/engine"
)

func TestSourceParser_TopLevelLines(t *testing.T) {
	nodes, err := SourceParser{}.Parse("a = 1\nb = 2\nprint(a + b)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	for i, n := range nodes {
		if n.StartLine != i+1 {
			t.Errorf("node %d starts at line %d, want %d", i, n.StartLine, i+1)
		}
	}
}

func TestSourceParser_StatementsSharingALine(t *testing.T) {
	nodes, err := SourceParser{}.Parse("x = 1; y = 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].StartLine != 1 || nodes[1].StartLine != 1 {
		t.Errorf("both statements should report line 1, got %+v", nodes)
	}
}

func TestSourceParser_MultiLineStatement(t *testing.T) {
	nodes, err := SourceParser{}.Parse("function f(x) {\n  return x + 1;\n}\nf(1)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].StartLine != 1 || nodes[1].StartLine != 4 {
		t.Errorf("lines = %d, %d; want 1, 4", nodes[0].StartLine, nodes[1].StartLine)
	}
}

func TestSourceParser_DecorationDetected(t *testing.T) {
	nodes, err := SourceParser{}.Parse("a = 1\n// note\nb = 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].HasDecoration {
		t.Error("first statement has no annotation above it")
	}
	if !nodes[1].HasDecoration {
		t.Error("statement under a comment line should be decorated")
	}
}

func TestSourceParser_SyntaxError(t *testing.T) {
	if _, err := (SourceParser{}).Parse("a = = 1"); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestSplitWithSourceParser_Partition(t *testing.T) {
	sources := []string{
		"a = 1\nb = 2\nprint(a + b)",
		"x = 1; y = 2",
		"function f(x) {\n  return x * 2;\n}\n// doubled\nprint(f(21))",
		"\na = 1\n",
	}
	for _, src := range sources {
		units, err := engine.SplitStatements(src, SourceParser{})
		if err != nil {
			t.Fatalf("split %q: %v", src, err)
		}
		var texts []string
		next := 1
		for _, u := range units {
			if u.StartLine != next {
				t.Fatalf("split %q: unit starts at %d, want %d", src, u.StartLine, next)
			}
			next = u.EndLine + 1
			texts = append(texts, u.Text)
		}
		if got := strings.Join(texts, "\n"); got != src {
			t.Errorf("split %q: reassembled %q", src, got)
		}
	}
}

func TestSplitWithSourceParser_Stability(t *testing.T) {
	src := "a = 1\n// annotated\nb = a + 1\nprint(b)"
	first, err := engine.SplitStatements(src, SourceParser{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var texts []string
	for _, u := range first {
		texts = append(texts, u.Text)
	}
	second, err := engine.SplitStatements(strings.Join(texts, "\n"), SourceParser{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("re-splitting changed unit count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("unit %d changed: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestBareTrailingExpression(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"1 + 1", true},
		{"print(1)", true},
		{"a = 1", false},
		{"var a = 1", false},
		{"function f() {}", false},
		{"a = 1\na", true},
	}
	for _, c := range cases {
		if got := bareTrailingExpression(c.src); got != c.want {
			t.Errorf("bareTrailingExpression(%q) = %v, want %v", c.src, got, c.want)
		}
	}
}
