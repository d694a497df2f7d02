package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/forge"
	"go.trai.ch/forge/internal/adapters/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(forge.EnvBuildDir, "")
	t.Setenv(forge.EnvDebug, "")
}

func writeWorkspace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	// a missing workspace file is not an error
	ws, err := config.Load(filepath.Join(t.TempDir(), config.DefaultFilename))
	require.NoError(t, err)

	assert.Equal(t, "build", ws.Build.BuildDir)
	assert.False(t, ws.Build.Strict)
	assert.Equal(t, forge.DefaultRegenCommand, ws.Build.RegenCommand)
	assert.Equal(t, config.DefaultNinja, ws.Ninja)
	assert.Equal(t, []string{"go", "run", "."}, ws.Regen)
}

func TestLoadWorkspaceFile(t *testing.T) {
	clearEnv(t)

	path := writeWorkspace(t, `
buildDir: out
strict: true
ninja: samurai
regen: ["go", "run", "./describe"]
`)

	ws, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out", ws.Build.BuildDir)
	assert.True(t, ws.Build.Strict)
	assert.Equal(t, "go run ./describe", ws.Build.RegenCommand)
	assert.Equal(t, "samurai", ws.Ninja)
	assert.Equal(t, []string{"go", "run", "./describe"}, ws.Regen)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeWorkspace(t, `
buildDir: out
strict: false
`)

	t.Setenv(forge.EnvBuildDir, "elsewhere")
	t.Setenv(forge.EnvDebug, "1")

	ws, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "elsewhere", ws.Build.BuildDir)
	assert.True(t, ws.Build.Strict)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)

	path := writeWorkspace(t, "buildDir: [unclosed")
	_, err := config.Load(path)
	assert.Error(t, err)
}
