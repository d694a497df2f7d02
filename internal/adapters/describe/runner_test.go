package describe_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/forge"
	"go.trai.ch/forge/internal/adapters/describe"
)

func TestRunPassesBuildSettings(t *testing.T) {
	out := filepath.Join(t.TempDir(), "env.txt")
	cfg := forge.Config{BuildDir: "out", Strict: true, RegenCommand: "go run ."}

	r := describe.NewRunner(
		[]string{"sh", "-c", `printf '%s %s %s' "$FORGEBUILD" "$FORGEDEBUG" "$FORGEREGEN" > ` + out},
		cfg,
	)
	require.NoError(t, r.Run(context.Background()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "out 1 go run .", string(data))
}

func TestRunFailure(t *testing.T) {
	r := describe.NewRunner([]string{"false"}, forge.Config{})

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description program failed")
}

func TestRunNoCommand(t *testing.T) {
	r := describe.NewRunner(nil, forge.Config{})
	assert.Error(t, r.Run(context.Background()))
}
