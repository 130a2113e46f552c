package render

import (
	"strings"
	"testing"

	"github.com/groupgen/groupgen/pkg/depgraph"
)

func testGraph(t *testing.T) *depgraph.Graph {
	t.Helper()
	g := depgraph.New()
	for _, n := range []string{"Scatter", "Offset", "Noise"} {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	if err := g.AddEdge("Scatter", "Offset"); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge("Offset", "Noise"); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Root: "Scatter"})

	for _, want := range []string{
		"digraph deps {",
		`"Scatter" -> "Offset";`,
		`"Offset" -> "Noise";`,
		`fillcolor=lightyellow`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Only the root is highlighted
	if strings.Count(dot, "lightyellow") != 1 {
		t.Errorf("exactly one highlighted node expected:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Detailed: true})
	if !strings.Contains(dot, `refs: 1`) || !strings.Contains(dot, `used by: 1`) {
		t.Errorf("detailed labels missing:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	first := ToDOT(testGraph(t), Options{})
	for i := 0; i < 5; i++ {
		if got := ToDOT(testGraph(t), Options{}); got != first {
			t.Fatal("DOT output should be byte-stable")
		}
	}
}
