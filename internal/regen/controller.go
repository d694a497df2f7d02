// Package regen decides when the serialized build graph must be rebuilt.
//
// The graph is a function of the build description files and of the file
// sets matched by the recorded glob patterns. The description files are
// covered by the graph's own self-regeneration edge, but added or removed
// files change glob results without touching any file the executor tracks;
// detecting that is this package's job.
package regen

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.trai.ch/forge"
	"go.trai.ch/forge/internal/core/ports"
)

// Controller holds the staleness state machine for one build directory.
// The graph is either valid or stale; stale means the description program
// must run again before the executor may be invoked.
type Controller struct {
	buildDir string
	runner   ports.Runner
	logger   ports.Logger
}

// NewController creates a Controller for the given build directory.
func NewController(buildDir string, runner ports.Runner, logger ports.Logger) *Controller {
	return &Controller{buildDir: buildDir, runner: runner, logger: logger}
}

// BuildFile returns the path of the serialized graph.
func (c *Controller) BuildFile() string {
	return filepath.Join(c.buildDir, forge.BuildFileName)
}

// EnsureFresh runs the description program if the graph is stale: when the
// graph file is absent, when force is set, or when the recorded glob
// patterns expand to a different file set than last time. After a successful
// run the fresh file-set snapshot is recorded.
func (c *Controller) EnsureFresh(ctx context.Context, force bool) error {
	stale, err := c.stale(force)
	if err != nil {
		return err
	}
	if !stale {
		return nil
	}

	c.logger.Info("regenerating " + forge.BuildFileName)
	if err := c.runner.Run(ctx); err != nil {
		return zerr.Wrap(err, "regeneration failed")
	}

	snap, err := CollectSnapshot(c.buildDir)
	if err != nil {
		return err
	}
	return writeSnapshot(c.buildDir, snap)
}

// Invalidate discards the recorded snapshot so that the next invocation is
// forced stale. It is called after an executor failure: the failure may stem
// from an out-of-date graph, and the executor cannot report that its own
// definition is stale.
func (c *Controller) Invalidate() error {
	err := os.Remove(filepath.Join(c.buildDir, forge.FilesFileName))
	if err != nil && !os.IsNotExist(err) {
		return zerr.Wrap(err, "failed to discard file-set snapshot")
	}
	return nil
}

func (c *Controller) stale(force bool) (bool, error) {
	if force {
		return true, nil
	}
	if _, err := os.Stat(c.BuildFile()); err != nil {
		return true, nil
	}

	old, ok, err := readSnapshot(c.buildDir)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}

	fresh, err := CollectSnapshot(c.buildDir)
	if err != nil {
		return false, err
	}
	return !fresh.Equal(old), nil
}
