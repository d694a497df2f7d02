package forge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func edgeWithVars(rule string, vars map[string]string) *BuildEdge {
	return NewBuildEdge(rule, []string{"out"}, []string{"in"}, nil, vars)
}

func TestDetermineDefaultsFrequency(t *testing.T) {
	g := NewGenerator(Config{})
	g.edges = append(g.edges,
		edgeWithVars("cc", map[string]string{"cc": "gcc"}),
		edgeWithVars("cc", map[string]string{"cc": "clang"}),
		edgeWithVars("cc", map[string]string{"cc": "gcc"}),
	)

	defaults, order := g.determineDefaults()

	want := map[string]string{"cc": "gcc"}
	if diff := cmp.Diff(want, defaults); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cc"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDetermineDefaultsTieBreak(t *testing.T) {
	g := NewGenerator(Config{})
	g.edges = append(g.edges,
		edgeWithVars("cc", map[string]string{"cc": "clang"}),
		edgeWithVars("cc", map[string]string{"cc": "gcc"}),
	)

	// equal counts: the value seen first wins
	defaults, _ := g.determineDefaults()
	if defaults["cc"] != "clang" {
		t.Errorf("want clang, got %q", defaults["cc"])
	}
}

func TestDetermineDefaultsVariableOrder(t *testing.T) {
	g := NewGenerator(Config{})
	g.edges = append(g.edges,
		edgeWithVars("link", map[string]string{"linkflags": "", "link": "gcc"}),
		edgeWithVars("cc", map[string]string{"cc": "gcc"}),
	)

	// variables appear in edge order, sorted by name within one edge
	_, order := g.determineDefaults()
	if diff := cmp.Diff([]string{"link", "linkflags", "cc"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDetermineDefaultsEmptyGraph(t *testing.T) {
	g := NewGenerator(Config{})

	defaults, order := g.determineDefaults()
	if len(defaults) != 0 || len(order) != 0 {
		t.Errorf("want no defaults for an empty graph, got %v / %v", defaults, order)
	}
}
