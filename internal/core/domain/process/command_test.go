package process

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommand(t *testing.T) {
	_, err := NewCommand("  ", nil)
	assert.ErrorIs(t, err, ErrEmptyExecutable)

	args := []string{"--insecure", "--variable", "a=1"}
	cmd, err := NewCommand("hurl", args, "get.hurl")
	require.NoError(t, err)
	args[0] = "--changed"

	assert.Equal(t, "hurl", cmd.Executable())
	assert.Equal(t, []string{"--insecure", "--variable", "a=1"}, cmd.Args())
	assert.Equal(t, []string{"--insecure", "--variable", "a=1", "get.hurl"}, cmd.Argv())
	assert.Equal(t, []string{"hurl", "--insecure", "--variable", "a=1", "get.hurl"}, cmd.FullCommandLine())
	assert.Empty(t, cmd.WorkingDir())
}

func TestCommand_String_QuotesSpaces(t *testing.T) {
	cmd, err := NewCommand("hurl", []string{"--user-agent", "my agent"}, "a b.hurl")
	require.NoError(t, err)
	assert.Equal(t, `hurl --user-agent "my agent" "a b.hurl"`, cmd.String())
}

func TestCommand_WithOptionsCopies(t *testing.T) {
	cmd, err := NewCommand("hurl", nil)
	require.NoError(t, err)

	withEnv := cmd.WithEnv("NO_COLOR", "1")
	assert.Empty(t, cmd.Env())
	assert.Equal(t, map[string]string{"NO_COLOR": "1"}, withEnv.Env())

	dir := t.TempDir()
	moved := withEnv.WithWorkingDir(dir)
	assert.Equal(t, dir, moved.WorkingDir())
	assert.Equal(t, "1", moved.Env()["NO_COLOR"])

	rel := cmd.WithWorkingDir("requests")
	assert.True(t, filepath.IsAbs(rel.WorkingDir()))
}
