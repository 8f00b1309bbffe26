//go:build unix

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hurlstudio/hurlc/internal/interfaces/cli"
	"github.com/hurlstudio/hurlc/internal/interfaces/di"
)

const TestTimeout = 30 * time.Second

// TestMain provides setup and teardown for the integration test suite
func TestMain(m *testing.M) {
	for _, key := range []string{"HURLC_HURL_PATH", "HURLC_ENCODING", "HURLC_LOG_LEVEL", "HURLC_ENVIRONMENT"} {
		os.Unsetenv(key)
	}
	os.Exit(m.Run())
}

// testEnvironment is a temporary workspace with a fake hurl binary and a
// config file pointing at it.
type testEnvironment struct {
	Dir        string
	ConfigFile string
	HurlLog    string
}

// fakeHurl records its working directory and arguments, one per line, and
// exits with $FAKE_HURL_EXIT.
const fakeHurl = `#!/bin/sh
{
  pwd
  for a in "$@"; do echo "$a"; done
  echo ---
} >> "$FAKE_HURL_LOG"
echo "ran $#"
exit "${FAKE_HURL_EXIT:-0}"
`

func newTestEnvironment(t *testing.T) *testEnvironment {
	t.Helper()
	dir := t.TempDir()
	env := &testEnvironment{
		Dir:        dir,
		ConfigFile: filepath.Join(dir, "config.yaml"),
		HurlLog:    filepath.Join(dir, "hurl.log"),
	}

	hurl := filepath.Join(dir, "bin", "hurl")
	require.NoError(t, os.MkdirAll(filepath.Dir(hurl), 0o755))
	require.NoError(t, os.WriteFile(hurl, []byte(fakeHurl), 0o755))
	require.NoError(t, os.WriteFile(env.ConfigFile, []byte("hurl_path: "+hurl+"\nlog_level: error\n"), 0o644))

	t.Setenv("FAKE_HURL_LOG", env.HurlLog)
	return env
}

// WriteFile writes a file relative to the workspace.
func (e *testEnvironment) WriteFile(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(e.Dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Run executes the CLI in-process with the production wiring.
func (e *testEnvironment) Run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	full := append([]string{"--config", e.ConfigFile}, args...)
	code := cli.Run(ctx, di.Factory, full, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}
