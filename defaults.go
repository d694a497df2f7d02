package forge

import (
	"maps"
	"slices"
)

// determineDefaults computes file-level default variable values: for each
// variable the value occurring in the most edges, with ties broken by the
// value seen first. Ninja falls back to these globals whenever an edge does
// not set the variable itself, so emitting the most frequent value as the
// default keeps the serialized graph small. The result is recomputed from
// the current edge list on every call.
//
// The returned order lists the variable names by first appearance, which is
// the order they are serialized in.
func (g *Generator) determineDefaults() (defaults map[string]string, order []string) {
	counts := map[string]map[string]int{}
	valueOrder := map[string][]string{}

	for _, edge := range g.edges {
		for _, name := range slices.Sorted(maps.Keys(edge.Vars)) {
			val := edge.Vars[name]
			if counts[name] == nil {
				counts[name] = map[string]int{}
				order = append(order, name)
			}
			if _, seen := counts[name][val]; !seen {
				valueOrder[name] = append(valueOrder[name], val)
			}
			counts[name][val]++
		}
	}

	defaults = make(map[string]string, len(order))
	for _, name := range order {
		best := ""
		bestCount := 0
		for _, val := range valueOrder[name] {
			// strictly greater, so the first-seen value wins ties
			if c := counts[name][val]; c > bestCount {
				best = val
				bestCount = c
			}
		}
		defaults[name] = best
	}
	return defaults, order
}
