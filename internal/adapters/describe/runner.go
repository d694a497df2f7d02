// Package describe runs a project's build description program.
package describe

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/forge"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Runner = (*Runner)(nil)

// Runner implements ports.Runner by executing the configured description
// command in the source root. The build settings are handed to the child
// process through the FORGEBUILD, FORGEDEBUG and FORGEREGEN environment
// variables, which is the one place they are written.
type Runner struct {
	argv []string
	cfg  forge.Config
}

// NewRunner creates a Runner for the given argv and build configuration.
func NewRunner(argv []string, cfg forge.Config) *Runner {
	return &Runner{argv: argv, cfg: cfg}
}

// Run executes the description program and waits for it to finish.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.argv) == 0 {
		return zerr.New("no description command configured")
	}

	cmd := exec.CommandContext(ctx, r.argv[0], r.argv[1:]...)
	cmd.Env = append(os.Environ(),
		forge.EnvBuildDir+"="+r.cfg.BuildDir,
		forge.EnvDebug+"="+boolFlag(r.cfg.Strict),
		forge.EnvRegen+"="+r.cfg.RegenCommand,
	)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.Wrap(err, "description program failed"), "command", strings.Join(r.argv, " "))
	}
	return nil
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
