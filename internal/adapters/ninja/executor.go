// Package ninja invokes the external ninja executor.
package ninja

import (
	"context"
	"os"
	"os/exec"

	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor by running the ninja binary.
type Executor struct {
	binary string
}

// NewExecutor creates an Executor running the given ninja binary.
func NewExecutor(binary string) *Executor {
	return &Executor{binary: binary}
}

// Execute runs ninja against the given build file. Extra arguments are
// passed through verbatim. Ninja's stdout goes to stderr, keeping stdout
// free for whatever the build itself wants to emit.
func (e *Executor) Execute(ctx context.Context, buildFile string, args []string) error {
	argv := append([]string{"-f", buildFile}, args...)

	cmd := exec.CommandContext(ctx, e.binary, argv...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.Wrap(err, "ninja failed"), "build_file", buildFile)
	}
	return nil
}
