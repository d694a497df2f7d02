// Package config provides the workspace configuration loader for forge.
package config

import (
	"os"
	"strings"

	"go.trai.ch/forge"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the conventional name of the workspace file.
const DefaultFilename = "forge.yaml"

// DefaultNinja is the executor binary used when the workspace does not name
// one.
const DefaultNinja = "ninja"

// workspaceFile mirrors the structure of forge.yaml.
type workspaceFile struct {
	BuildDir string   `yaml:"buildDir"`
	Strict   bool     `yaml:"strict"`
	Ninja    string   `yaml:"ninja"`
	Regen    []string `yaml:"regen"`
}

// Workspace is the resolved workspace configuration: the build settings
// handed to description programs plus the commands the CLI itself runs.
type Workspace struct {
	// Build is the configuration the description program receives via the
	// FORGEBUILD, FORGEDEBUG and FORGEREGEN environment variables.
	Build forge.Config

	// Ninja is the external executor binary.
	Ninja string

	// Regen is the command that runs the description program, as argv.
	Regen []string
}

// Load reads the workspace file at path. A missing file is not an error:
// every setting has a default, so a workspace file is optional. Environment
// variables FORGEBUILD and FORGEDEBUG override the file; they are read here,
// once, at the outermost layer.
func Load(path string) (Workspace, error) {
	var file workspaceFile
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return Workspace{}, zerr.With(zerr.Wrap(err, "failed to read workspace file"), "path", path)
	default:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Workspace{}, zerr.With(zerr.Wrap(err, "failed to parse workspace file"), "path", path)
		}
	}

	ws := Workspace{
		Build: forge.Config{
			BuildDir:     file.BuildDir,
			Strict:       file.Strict,
			RegenCommand: strings.Join(file.Regen, " "),
		},
		Ninja: file.Ninja,
		Regen: file.Regen,
	}

	if dir := os.Getenv(forge.EnvBuildDir); dir != "" {
		ws.Build.BuildDir = dir
	}
	if os.Getenv(forge.EnvDebug) == "1" {
		ws.Build.Strict = true
	}

	if ws.Build.BuildDir == "" {
		ws.Build.BuildDir = "build"
	}
	if ws.Ninja == "" {
		ws.Ninja = DefaultNinja
	}
	if len(ws.Regen) == 0 {
		ws.Regen = strings.Fields(forge.DefaultRegenCommand)
		ws.Build.RegenCommand = forge.DefaultRegenCommand
	}
	return ws, nil
}
