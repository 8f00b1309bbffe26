package process

import (
	"context"
	"io"

	"github.com/hurlstudio/hurlc/internal/core/domain/process"
)

// Streams are where a run writes its output.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes a hurl command to completion.
type Runner interface {
	// Run starts cmd, copies its output to streams and waits for it to
	// exit. The exit code is returned alongside any start or wait error;
	// a non-zero exit is not an error by itself.
	Run(ctx context.Context, cmd process.Command, streams Streams) (int, error)
}
