// Package ports defines the interfaces between the application layer and
// its adapters.
package ports

import (
	"context"
	"io"
)

// Logger defines the interface for logging.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
	SetOutput(w io.Writer)
}

// Executor runs the external build executor against a serialized graph
// file, passing extra arguments through verbatim.
type Executor interface {
	Execute(ctx context.Context, buildFile string, args []string) error
}

// Runner executes the description program that (re)generates the graph.
type Runner interface {
	Run(ctx context.Context) error
}
