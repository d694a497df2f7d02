package forge

import (
	"path/filepath"
	"slices"
	"sort"

	"go.trai.ch/zerr"
)

// CargoLib produces the static library lib<name>.a via a delegated cargo
// build. See Cargo.
func (e *Env) CargoLib(g *Generator, name string, deps []FileRef) BuildPath {
	return e.Cargo(g, []string{"lib" + name + ".a"}, deps)[0]
}

// CargoExe produces an executable via a delegated cargo build. See Cargo.
func (e *Env) CargoExe(g *Generator, out string, deps []FileRef) BuildPath {
	return e.Cargo(g, []string{out}, deps)[0]
}

// Cargo delegates a build to cargo, which is run in the current directory
// and expected to find a Cargo.toml there. The --target-dir passed to cargo
// is derived from the build directory and RUSTBINS, and the location of the
// produced files from the --target and --release arguments in CRGFLAGS.
// CRGENV adds environment variables to the cargo invocation.
//
// Cargo's own inputs cannot be enumerated from the outside, so without an
// explicit deps list the edge is rebuilt on every run and cargo decides what
// is actually out of date.
//
// Variables: CARGO, CRGFLAGS, RUSTBINS, CRGENV.
func (e *Env) Cargo(g *Generator, outs []string, deps []FileRef) []BuildPath {
	crgflags := e.GetList("CRGFLAGS")

	// cargo nests outputs one level deeper when cross-compiling
	targetDir := ""
	if i := slices.Index(crgflags, "--target"); i >= 0 && i+1 < len(crgflags) {
		targetDir = crgflags[i+1] + "/"
	}

	btype := "debug"
	if slices.Contains(crgflags, "--release") {
		btype = "release"
	}
	rustBins := e.GetStr("RUSTBINS")
	destDir := e.buildDir + "/" + rustBins + "/" + targetDir + btype
	outPaths := make([]BuildPath, len(outs))
	outStrs := make([]string, len(outs))
	for i, o := range outs {
		outPaths[i] = BuildPath{p: destDir + "/" + o}
		outStrs[i] = outPaths[i].String()
	}

	absBins, err := filepath.Abs(e.buildDir + "/" + rustBins)
	if err != nil {
		panic(zerr.With(zerr.New("cannot resolve cargo target dir"), "cause", err.Error()))
	}
	flags := joinFlags(crgflags)
	flags += ` --target-dir "` + absBins + `"`

	g.AddBuild(NewBuildEdge("cargo",
		outStrs,
		nil,
		refStrings(e, deps),
		map[string]string{
			"cargo":      e.GetStr("CARGO"),
			"dir":        e.CurDir(),
			"cargoflags": "build " + flags,
			"env":        cargoEnvString(e.GetDict("CRGENV")),
		}))
	return outPaths
}

// cargoEnvString renders KEY="value" pairs in a stable order.
func cargoEnvString(env map[string]string) string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := ""
	for _, k := range keys {
		s += " " + k + `="` + env[k] + `"`
	}
	return s
}
