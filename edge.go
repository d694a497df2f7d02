package forge

import (
	"slices"

	"go.trai.ch/zerr"
)

// alwaysTarget is the permanently-dirty phony target. Edges without any
// declared inputs or dependencies depend on it so that ninja re-runs them on
// every build.
const alwaysTarget = "always"

// phonyRule is ninja's builtin no-op rule.
const phonyRule = "phony"

// BuildEdge is one concrete build step: it instantiates a named rule with
// specific outputs, inputs, order-only dependencies and variable values.
type BuildEdge struct {
	// Rule is the name of the rule this edge instantiates.
	Rule string

	// Outs are the paths produced by the command. Never empty.
	Outs []string

	// Ins are the paths the command reads.
	Ins []string

	// Deps are additional order-only dependency paths.
	Deps []string

	// Vars assigns values to the variables used by the rule.
	Vars map[string]string

	// Libs lists library names a link edge must resolve before the graph is
	// written. Only set for link edges.
	Libs []string

	// LibPath lists the directories searched for Libs, in order.
	LibPath []string

	// origin is the source location of the description call that registered
	// the edge. Only recorded in strict mode.
	origin string
}

// NewBuildEdge creates a build edge. It panics with ErrEmptyOutputs if outs
// is empty. An edge with neither inputs nor dependencies (other than a phony
// edge) is given a dependency on the always-dirty target, since nothing else
// would ever mark it out of date.
func NewBuildEdge(rule string, outs, ins, deps []string, vars map[string]string) *BuildEdge {
	if len(outs) == 0 {
		panic(zerr.With(ErrEmptyOutputs, "rule", rule))
	}
	// deps is cloned because dependency resolution appends to it later.
	deps = slices.Clone(deps)
	if rule != phonyRule && len(ins) == 0 && len(deps) == 0 {
		deps = []string{alwaysTarget}
	}
	if vars == nil {
		vars = map[string]string{}
	}
	return &BuildEdge{
		Rule: rule,
		Outs: slices.Clone(outs),
		Ins:  slices.Clone(ins),
		Deps: deps,
		Vars: vars,
	}
}

// Origin reports where the edge was registered, or "" when strict mode was
// off.
func (b *BuildEdge) Origin() string { return b.origin }
