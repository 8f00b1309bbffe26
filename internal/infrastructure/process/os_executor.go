package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/hurlstudio/hurlc/internal/core/domain/process"
	procp "github.com/hurlstudio/hurlc/internal/core/ports/process"
)

// Executor runs the hurl binary with os/exec.
type Executor struct {
	env        []string
	cancelWith process.Signal
	waitDelay  time.Duration
	logger     hclog.Logger
}

// NewExecutor creates an executor inheriting the current environment.
func NewExecutor(logger hclog.Logger) *Executor {
	return NewExecutorWithOptions(logger, nil, 5*time.Second)
}

// NewExecutorWithOptions creates an executor with a custom base
// environment and the grace period between the interrupt sent on
// cancellation and a hard kill.
func NewExecutorWithOptions(logger hclog.Logger, env []string, waitDelay time.Duration) *Executor {
	if env == nil {
		env = os.Environ()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Executor{
		env:        env,
		cancelWith: process.SignalInterrupt,
		waitDelay:  waitDelay,
		logger:     logger,
	}
}

// Run starts cmd and waits for it.
func (e *Executor) Run(ctx context.Context, cmd process.Command, streams procp.Streams) (int, error) {
	execCmd := exec.CommandContext(ctx, cmd.Executable(), cmd.Argv()...)
	execCmd.Dir = cmd.WorkingDir()
	execCmd.Env = e.buildEnvironment(cmd.Env())
	execCmd.Stdout = orDiscard(streams.Stdout)
	execCmd.Stderr = orDiscard(streams.Stderr)
	execCmd.Cancel = func() error {
		return execCmd.Process.Signal(ConvertSignal(e.cancelWith))
	}
	execCmd.WaitDelay = e.waitDelay

	e.logger.Debug("starting hurl", "command", cmd.String(), "dir", cmd.WorkingDir())
	if err := execCmd.Start(); err != nil {
		return -1, fmt.Errorf("failed to start process: %w", err)
	}

	err := execCmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		e.logger.Debug("hurl finished", "exit_code", 0)
		return 0, nil
	case ctx.Err() != nil:
		return exitCode(execCmd), fmt.Errorf("hurl interrupted: %w", ctx.Err())
	case errors.As(err, &exitErr):
		e.logger.Debug("hurl finished", "exit_code", exitErr.ExitCode())
		return exitErr.ExitCode(), nil
	default:
		return -1, fmt.Errorf("waiting for process: %w", err)
	}
}

// buildEnvironment combines the base environment with command-specific variables.
func (e *Executor) buildEnvironment(cmdEnv map[string]string) []string {
	env := append([]string(nil), e.env...)
	for key, value := range cmdEnv {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	return env
}

func exitCode(c *exec.Cmd) int {
	if c.ProcessState == nil {
		return -1
	}
	return c.ProcessState.ExitCode()
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// ConvertSignal converts domain signal to OS signal
func ConvertSignal(signal process.Signal) os.Signal {
	switch signal {
	case process.SignalTerminate:
		return syscall.SIGTERM
	case process.SignalInterrupt:
		return syscall.SIGINT
	case process.SignalKill:
		return syscall.SIGKILL
	default:
		return syscall.SIGTERM
	}
}

var _ procp.Runner = (*Executor)(nil)
