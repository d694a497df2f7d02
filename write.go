package forge

import (
	"bytes"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// WriteToFile resolves library dependencies, computes variable defaults and
// serializes the graph to <build-dir>/build.ninja. Alongside the graph it
// writes the dependency line for the self-regeneration edge and the manifest
// of all recorded glob patterns. The whole graph is rendered in memory
// first; files only appear on disk after the pass succeeded.
//
// When defaults is nil the defaults are computed from the edges (see
// determineDefaults). Passing an explicit map overrides that, e.g. an empty
// map spells out every variable on every edge, which helps when reading the
// generated file.
func (g *Generator) WriteToFile(defaults map[string]string) error {
	buildFile := filepath.Join(g.cfg.BuildDir, BuildFileName)
	depFile := filepath.Join(g.cfg.BuildDir, DepsFileName)
	globFile := filepath.Join(g.cfg.BuildDir, GlobsFileName)

	data := g.serialize(defaults)

	if err := os.MkdirAll(g.cfg.BuildDir, 0o755); err != nil {
		return zerr.Wrap(err, "failed to create build directory")
	}
	if err := os.WriteFile(buildFile, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write build file")
	}

	deps := buildFile + ": " + strings.Join(g.descriptionFiles(), " ") + "\n"
	if err := os.WriteFile(depFile, []byte(deps), 0o644); err != nil {
		return zerr.Wrap(err, "failed to write dependency file")
	}

	globs := ""
	for _, pat := range g.globs {
		globs += pat + "\n"
	}
	if err := os.WriteFile(globFile, []byte(globs), 0o644); err != nil {
		return zerr.Wrap(err, "failed to write glob manifest")
	}
	return nil
}

// serialize finishes the graph and renders it in memory: it registers the
// self-regeneration rule and edge, resolves library dependencies, computes
// defaults if none were supplied, and returns the rendered build file.
func (g *Generator) serialize(defaults map[string]string) []byte {
	buildFile := filepath.Join(g.cfg.BuildDir, BuildFileName)

	// rule and edge to regenerate the graph when a description file changes
	g.AddRule(regenRule, &Rule{
		Cmd:       g.cfg.RegenCommand,
		Desc:      "Regenerating " + BuildFileName,
		Depfile:   filepath.Join(g.cfg.BuildDir, DepsFileName),
		Generator: true,
		Pool:      regenPool,
	})
	g.AddBuild(NewBuildEdge(regenRule,
		[]string{buildFile},
		nil,
		g.descriptionFiles(),
		nil))

	g.resolveLibs()

	var order []string
	if defaults == nil {
		defaults, order = g.determineDefaults()
	} else {
		order = slices.Sorted(maps.Keys(defaults))
	}

	var buf bytes.Buffer
	g.render(&buf, defaults, order)
	return buf.Bytes()
}

// render serializes the graph: defaults, referenced rules, the regeneration
// pool, then every edge in declaration order.
func (g *Generator) render(buf *bytes.Buffer, defaults map[string]string, order []string) {
	buf.WriteString("# This file has been generated by the forge build system.\n")
	buf.WriteString("\n")

	for _, name := range order {
		buf.WriteString(name + " = " + defaults[name] + "\n")
	}
	buf.WriteString("\n")

	for _, name := range g.ruleOrder {
		if rule := g.rules[name]; rule.refs > 0 {
			renderRule(buf, name, rule)
		}
	}
	buf.WriteString("\n")

	// a pool of depth one so the regeneration step runs alone
	buf.WriteString("pool " + regenPool + "\n")
	buf.WriteString("  depth = 1\n")
	buf.WriteString("\n")

	for _, edge := range g.edges {
		renderEdge(buf, edge, defaults)
	}
}

func renderRule(buf *bytes.Buffer, name string, r *Rule) {
	buf.WriteString("rule " + name + "\n")
	buf.WriteString("  command = " + r.Cmd + "\n")
	buf.WriteString("  description = " + r.Desc + "\n")
	if r.Deps != "" {
		buf.WriteString("  deps = " + r.Deps + "\n")
	}
	if r.Depfile != "" {
		buf.WriteString("  depfile = " + r.Depfile + "\n")
	}
	if r.Generator {
		buf.WriteString("  generator = 1\n")
	}
	if r.Pool != "" {
		buf.WriteString("  pool = " + r.Pool + "\n")
	}
	if r.Restat {
		buf.WriteString("  restat = 1\n")
	}
}

// renderEdge writes one build line. Variables whose value equals the
// file-level default are omitted.
func renderEdge(buf *bytes.Buffer, edge *BuildEdge, defaults map[string]string) {
	buf.WriteString("build " + strings.Join(edge.Outs, " ") + ": " + edge.Rule)
	if len(edge.Ins) > 0 {
		buf.WriteString(" " + strings.Join(edge.Ins, " "))
	}
	if len(edge.Deps) > 0 {
		buf.WriteString(" | " + strings.Join(edge.Deps, " "))
	}
	buf.WriteString("\n")

	for _, name := range slices.Sorted(maps.Keys(edge.Vars)) {
		if def, ok := defaults[name]; ok && def == edge.Vars[name] {
			continue
		}
		buf.WriteString("  " + name + " = " + edge.Vars[name] + "\n")
	}
}
