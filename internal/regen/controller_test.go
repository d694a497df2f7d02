package regen_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"go.trai.ch/forge"
	"go.trai.ch/forge/internal/regen"
)

type nopLogger struct{}

func (nopLogger) Info(string)         {}
func (nopLogger) Warn(string)         {}
func (nopLogger) Error(error)         {}
func (nopLogger) SetOutput(io.Writer) {}

// fakeRunner stands in for the description program: it counts invocations
// and writes the build file and glob manifest like a real description run
// would.
type fakeRunner struct {
	runs     int
	buildDir string
	patterns []string
	err      error
}

func (r *fakeRunner) Run(context.Context) error {
	r.runs++
	if r.err != nil {
		return r.err
	}

	data := ""
	for _, pat := range r.patterns {
		data += pat + "\n"
	}
	if err := os.MkdirAll(r.buildDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(r.buildDir, forge.BuildFileName), []byte("# graph\n"), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(r.buildDir, forge.GlobsFileName), []byte(data), 0o644)
}

func newTestController(t *testing.T, patterns ...string) (*regen.Controller, *fakeRunner, string) {
	t.Helper()
	dir := t.TempDir()
	buildDir := filepath.Join(dir, "build")
	runner := &fakeRunner{buildDir: buildDir, patterns: patterns}
	return regen.NewController(buildDir, runner, nopLogger{}), runner, dir
}

func TestEnsureFreshInitialRun(t *testing.T) {
	ctrl, runner, _ := newTestController(t)

	// no build file yet, so the first invocation always regenerates
	require.NoError(t, ctrl.EnsureFresh(context.Background(), false))
	assert.Equal(t, 1, runner.runs)

	// the snapshot was recorded for the next invocation
	_, err := os.Stat(filepath.Join(runner.buildDir, forge.FilesFileName))
	assert.NoError(t, err)
}

func TestEnsureFreshSkipsWhenUnchanged(t *testing.T) {
	ctrl, runner, _ := newTestController(t)

	require.NoError(t, ctrl.EnsureFresh(context.Background(), false))
	require.NoError(t, ctrl.EnsureFresh(context.Background(), false))
	assert.Equal(t, 1, runner.runs)
}

func TestEnsureFreshForce(t *testing.T) {
	ctrl, runner, _ := newTestController(t)

	require.NoError(t, ctrl.EnsureFresh(context.Background(), false))
	require.NoError(t, ctrl.EnsureFresh(context.Background(), true))
	assert.Equal(t, 2, runner.runs)
}

func TestEnsureFreshDetectsNewFile(t *testing.T) {
	dir := t.TempDir()
	buildDir := filepath.Join(dir, "build")
	runner := &fakeRunner{
		buildDir: buildDir,
		patterns: []string{filepath.Join(dir, "src", "*.c")},
	}
	ctrl := regen.NewController(buildDir, runner, nopLogger{})

	touch(t, filepath.Join(dir, "src", "a.c"))
	require.NoError(t, ctrl.EnsureFresh(context.Background(), false))
	require.Equal(t, 1, runner.runs)

	// a new file matching a recorded pattern makes the graph stale
	touch(t, filepath.Join(dir, "src", "b.c"))
	require.NoError(t, ctrl.EnsureFresh(context.Background(), false))
	assert.Equal(t, 2, runner.runs)

	// and once regenerated, the graph is fresh again
	require.NoError(t, ctrl.EnsureFresh(context.Background(), false))
	assert.Equal(t, 2, runner.runs)
}

func TestEnsureFreshRunnerError(t *testing.T) {
	ctrl, runner, _ := newTestController(t)
	runner.err = zerr.New("describe failed")

	err := ctrl.EnsureFresh(context.Background(), false)
	assert.Error(t, err)
}

func TestInvalidateForcesRegeneration(t *testing.T) {
	ctrl, runner, _ := newTestController(t)

	require.NoError(t, ctrl.EnsureFresh(context.Background(), false))
	require.Equal(t, 1, runner.runs)

	require.NoError(t, ctrl.Invalidate())
	require.NoError(t, ctrl.EnsureFresh(context.Background(), false))
	assert.Equal(t, 2, runner.runs)
}

func TestInvalidateWithoutSnapshot(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	// nothing recorded yet: discarding is still fine
	assert.NoError(t, ctrl.Invalidate())
}

func TestBuildFile(t *testing.T) {
	ctrl, runner, _ := newTestController(t)
	assert.Equal(t, filepath.Join(runner.buildDir, forge.BuildFileName), ctrl.BuildFile())
}
