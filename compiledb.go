package forge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"go.trai.ch/zerr"
)

// CompileCommandsFileName is the compile database consumed by clangd.
const CompileCommandsFileName = "compile_commands.json"

// machineFlags matches machine-specific compiler flags such as -march or
// -m32. They are stripped from the compile database because clang does not
// support every ISA the real compiler does.
var machineFlags = regexp.MustCompile(`\s+-m\S+`)

type compileCommand struct {
	Directory string `json:"directory"`
	File      string `json:"file"`
	Command   string `json:"command"`
}

// WriteCompileCommands writes <build-dir>/compile_commands.json with one
// entry per single-input compile edge, mapping the input file to an
// equivalent clang invocation derived from the edge's flags. clangd uses it
// to understand how the sources are built.
func (g *Generator) WriteCompileCommands() error {
	baseDir, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}

	cmds := []compileCommand{}
	for _, edge := range g.edges {
		if edge.Rule != "cc" && edge.Rule != "cxx" {
			continue
		}
		if len(edge.Ins) != 1 {
			continue
		}
		cmds = append(cmds, compileCommand{
			Directory: baseDir,
			File:      edge.Ins[0],
			Command:   clangCommand(edge),
		})
	}

	data, err := json.MarshalIndent(cmds, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode compile database")
	}
	data = append(data, '\n')

	path := filepath.Join(g.cfg.BuildDir, CompileCommandsFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write compile database")
	}
	return nil
}

// clangCommand rewrites a compile edge as a clang command line.
func clangCommand(edge *BuildEdge) string {
	cmd := "clang " + edge.Vars["ccflags"]
	if edge.Rule == "cxx" {
		cmd = "clang++ " + edge.Vars["cxxflags"]
	}
	return machineFlags.ReplaceAllString(cmd, "")
}
