package forge

// Rule is a reusable command template referenced by name from build edges.
// Cmd and Desc may contain ninja variable placeholders whose values are
// assigned per edge.
type Rule struct {
	// Cmd is the command to execute. Required.
	Cmd string

	// Desc is the human-readable description shown during the build.
	// Required.
	Desc string

	// Deps selects special dependency processing, either "gcc" or "msvc".
	Deps string

	// Depfile names a Makefile-syntax file with extra dependencies, e.g.
	// the file gcc writes for -MD.
	Depfile string

	// Generator marks the rule as the one that re-invokes the description
	// program.
	Generator bool

	// Pool names the execution pool the rule runs in.
	Pool string

	// Restat makes ninja re-stat the outputs after the command ran and drop
	// pending rebuilds of reverse dependencies whose inputs did not change.
	Restat bool

	// refs counts the edges using this rule. Rules that stay at zero are
	// omitted from the serialized graph.
	refs int
}
