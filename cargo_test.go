package forge_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/forge"
)

func TestCargoLib(t *testing.T) {
	cfg := forge.Config{BuildDir: "build"}
	g := forge.NewGenerator(cfg)
	e := forge.NewEnv(cfg)

	lib := e.CargoLib(g, "core", nil)
	assert.Equal(t, "build/./debug/libcore.a", lib.String())

	edge := lastEdge(g)
	assert.Equal(t, "cargo", edge.Rule)
	assert.Equal(t, ".", edge.Vars["dir"])
	assert.Equal(t, "cargo", edge.Vars["cargo"])

	abs, err := filepath.Abs("build/.")
	require.NoError(t, err)
	assert.Equal(t, `build  --target-dir "`+abs+`"`, edge.Vars["cargoflags"])

	// no way to see cargo's inputs from here, so the edge runs every build
	assert.Equal(t, []string{"always"}, edge.Deps)
}

func TestCargoRelease(t *testing.T) {
	cfg := forge.Config{BuildDir: "build"}
	g := forge.NewGenerator(cfg)
	e := forge.NewEnv(cfg)

	e.AddFlags("CRGFLAGS", "--release")
	bin := e.CargoExe(g, "tool", nil)
	assert.Equal(t, "build/./release/tool", bin.String())
}

func TestCargoCrossTarget(t *testing.T) {
	cfg := forge.Config{BuildDir: "build"}
	g := forge.NewGenerator(cfg)
	e := forge.NewEnv(cfg)

	e.AddFlags("CRGFLAGS", "--target", "riscv64gc-unknown-none-elf", "--release")
	lib := e.CargoLib(g, "kernel", nil)
	assert.Equal(t,
		"build/./riscv64gc-unknown-none-elf/release/libkernel.a",
		lib.String())
}

func TestCargoEnvAndDeps(t *testing.T) {
	cfg := forge.Config{BuildDir: "build"}
	g := forge.NewGenerator(cfg)
	e := forge.NewEnv(cfg)

	e.Set("CRGENV", forge.Dict{"RUSTFLAGS": "-C lto", "CARGO_TERM_COLOR": "always"})
	e.Cargo(g, []string{"libcore.a"}, forge.Rels("bindings.h"))

	edge := lastEdge(g)
	// stable, sorted rendering of the extra environment
	assert.Equal(t, ` CARGO_TERM_COLOR="always" RUSTFLAGS="-C lto"`, edge.Vars["env"])
	// explicit dependencies suppress the always-dirty fallback
	assert.Equal(t, []string{"./bindings.h"}, edge.Deps)
}

func TestCargoRustBins(t *testing.T) {
	cfg := forge.Config{BuildDir: "build"}
	g := forge.NewGenerator(cfg)
	e := forge.NewEnv(cfg)

	e.Set("RUSTBINS", forge.Str("rust"))
	bin := e.CargoExe(g, "tool", nil)
	assert.Equal(t, "build/rust/debug/tool", bin.String())
}
