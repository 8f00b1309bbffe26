package process

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"strings"
)

// ErrEmptyExecutable is returned for a command without a program.
var ErrEmptyExecutable = errors.New("executable cannot be empty")

// Command is one invocation of the hurl binary: the synthesized setting
// arguments followed by the request files to run.
type Command struct {
	executable string
	args       []string
	files      []string
	workingDir string
	env        map[string]string
}

// NewCommand creates a new Command value object.
func NewCommand(executable string, args []string, files ...string) (Command, error) {
	if strings.TrimSpace(executable) == "" {
		return Command{}, ErrEmptyExecutable
	}
	return Command{
		executable: executable,
		args:       append([]string(nil), args...),
		files:      append([]string(nil), files...),
		env:        make(map[string]string),
	}, nil
}

// Executable returns the program to run.
func (c Command) Executable() string {
	return c.executable
}

// Args returns a copy of the setting arguments.
func (c Command) Args() []string {
	return append([]string(nil), c.args...)
}

// Files returns a copy of the request file paths.
func (c Command) Files() []string {
	return append([]string(nil), c.files...)
}

// WorkingDir returns the working directory, empty for the caller's.
func (c Command) WorkingDir() string {
	return c.workingDir
}

// Env returns a copy of the extra environment variables.
func (c Command) Env() map[string]string {
	return maps.Clone(c.env)
}

// Argv returns the arguments passed to the executable: settings first,
// files last.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.args)+len(c.files))
	argv = append(argv, c.args...)
	return append(argv, c.files...)
}

// FullCommandLine returns the executable followed by Argv.
func (c Command) FullCommandLine() []string {
	return append([]string{c.executable}, c.Argv()...)
}

// String returns a shell-like rendering for display.
func (c Command) String() string {
	parts := c.FullCommandLine()
	for i, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t\"'") {
			parts[i] = fmt.Sprintf("%q", p)
		}
	}
	return strings.Join(parts, " ")
}

// WithEnv returns a copy of c with an extra environment variable.
func (c Command) WithEnv(key, value string) Command {
	out := c.clone()
	out.env[key] = value
	return out
}

// WithWorkingDir returns a copy of c running in dir, made absolute when
// possible.
func (c Command) WithWorkingDir(dir string) Command {
	out := c.clone()
	if dir != "" && !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	out.workingDir = dir
	return out
}

func (c Command) clone() Command {
	env := maps.Clone(c.env)
	if env == nil {
		env = make(map[string]string)
	}
	return Command{
		executable: c.executable,
		args:       append([]string(nil), c.args...),
		files:      append([]string(nil), c.files...),
		workingDir: c.workingDir,
		env:        env,
	}
}
