package forge

import "os"

// File names that the generator writes into the build directory and that the
// regeneration logic reads back on the next invocation.
const (
	// BuildFileName is the serialized build graph consumed by ninja.
	BuildFileName = "build.ninja"
	// DepsFileName is the Makefile-style dependency line for the
	// self-regeneration edge.
	DepsFileName = ".forge.deps"
	// GlobsFileName records every glob pattern used during the description
	// pass, one per line.
	GlobsFileName = ".forge.globs"
	// FilesFileName records the newline-joined expansion of all recorded
	// glob patterns, used to detect added or removed files.
	FilesFileName = ".forge.files"
)

// Environment variables read by ConfigFromEnv. The forge CLI sets them when
// it re-runs a description program; they can also be set by hand.
const (
	// EnvBuildDir overrides the build directory.
	EnvBuildDir = "FORGEBUILD"
	// EnvDebug enables strict mode when set to "1".
	EnvDebug = "FORGEDEBUG"
	// EnvRegen overrides the command that re-runs the description program.
	EnvRegen = "FORGEREGEN"
)

// DefaultRegenCommand re-runs the description program in the source root.
const DefaultRegenCommand = "go run ."

// Config carries the settings a description program needs. It is threaded
// explicitly through NewEnv and NewGenerator rather than read from process
// state inside the library.
type Config struct {
	// BuildDir is the root directory for all generated outputs.
	BuildDir string

	// Strict enables the overlapping-output check on edge registration and
	// records the origin of every edge for error reporting.
	Strict bool

	// RegenCommand is the command written into the self-regeneration rule.
	// Empty means DefaultRegenCommand.
	RegenCommand string
}

// ConfigFromEnv builds a Config from the FORGEBUILD, FORGEDEBUG and
// FORGEREGEN environment variables. It is meant to be called once at the top
// of a description program's main function.
func ConfigFromEnv() Config {
	cfg := Config{
		BuildDir:     os.Getenv(EnvBuildDir),
		Strict:       os.Getenv(EnvDebug) == "1",
		RegenCommand: os.Getenv(EnvRegen),
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.BuildDir == "" {
		c.BuildDir = "build"
	}
	if c.RegenCommand == "" {
		c.RegenCommand = DefaultRegenCommand
	}
	return c
}
