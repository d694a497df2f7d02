package forge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.trai.ch/forge"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv(forge.EnvBuildDir, "")
	t.Setenv(forge.EnvDebug, "")
	t.Setenv(forge.EnvRegen, "")

	cfg := forge.ConfigFromEnv()
	assert.Equal(t, "build", cfg.BuildDir)
	assert.False(t, cfg.Strict)
	assert.Equal(t, forge.DefaultRegenCommand, cfg.RegenCommand)
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv(forge.EnvBuildDir, "out")
	t.Setenv(forge.EnvDebug, "1")
	t.Setenv(forge.EnvRegen, "go run ./cmd/describe")

	cfg := forge.ConfigFromEnv()
	assert.Equal(t, "out", cfg.BuildDir)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "go run ./cmd/describe", cfg.RegenCommand)
}
