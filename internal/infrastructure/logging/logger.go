package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "hurlc"

// New creates the CLI logger. Unknown levels fall back to warn; debug
// forces the debug level regardless.
func New(level string, debug bool, output io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Warn
	}
	if debug {
		lvl = hclog.Debug
	}
	if output == nil {
		output = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            Name,
		Level:           lvl,
		Output:          output,
		JSONFormat:      false,
		IncludeLocation: lvl <= hclog.Debug,
	})
}
