//go:build unix

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const collectionText = `name=Integration
location=requests

[settings]
variable=host=localhost
retry=count:2

[requests/users]
delay=100

[requests/users/list.hurl]
variable=page=1

[requests/health.hurl]

[environment:prod]
variable=host=api.example.org
`

func TestCLI_RunInvokesHurlPerFile(t *testing.T) {
	env := newTestEnvironment(t)
	path := env.WriteFile(t, "api.hurlc", collectionText)
	env.WriteFile(t, "requests/users/list.hurl", "GET http://{{host}}/users\n")
	env.WriteFile(t, "requests/health.hurl", "GET http://{{host}}/health\n")

	stdout, stderr, code := env.Run(t, "run", "-e", "prod", path, "requests")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, 2, strings.Count(stdout, "ran "))

	data, err := os.ReadFile(env.HurlLog)
	require.NoError(t, err)
	runs := strings.Split(strings.TrimSuffix(string(data), "---\n"), "---\n")
	require.Len(t, runs, 2)

	first := strings.Split(strings.TrimSpace(runs[0]), "\n")
	dir, err := filepath.EvalSymlinks(env.Dir)
	require.NoError(t, err)
	assert.Equal(t, dir, first[0])
	assert.Equal(t, []string{
		"--variable", "host=api.example.org",
		"--variable", "page=1",
		"--retry", "2",
		"--delay", "100",
		filepath.FromSlash("requests/users/list.hurl"),
	}, first[1:])

	second := strings.Split(strings.TrimSpace(runs[1]), "\n")
	assert.Equal(t, []string{
		"--variable", "host=api.example.org",
		"--retry", "2",
		filepath.FromSlash("requests/health.hurl"),
	}, second[1:])
}

func TestCLI_RunPropagatesExitCode(t *testing.T) {
	env := newTestEnvironment(t)
	path := env.WriteFile(t, "api.hurlc", collectionText)
	t.Setenv("FAKE_HURL_EXIT", "4")

	_, _, code := env.Run(t, "run", path, "requests/health.hurl")
	assert.Equal(t, 4, code)
}

func TestCLI_EditThenFormat(t *testing.T) {
	env := newTestEnvironment(t)
	path := env.WriteFile(t, "api.hurlc", collectionText)

	_, stderr, code := env.Run(t, "set", "--node", "requests/health.hurl", path, "insecure", "true")
	require.Equal(t, 0, code, stderr)
	_, stderr, code = env.Run(t, "unset", "--in-env", "prod", path, "variable", "--key", "host")
	require.Equal(t, 0, code, stderr)

	stdout, stderr, code := env.Run(t, "fmt", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "[requests/health.hurl]\ninsecure=true\n")
	assert.Contains(t, stdout, "[environment:prod]\n")
	assert.NotContains(t, stdout, "api.example.org")

	stdout, stderr, code = env.Run(t, "validate", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, path+": ok")
}

func TestCLI_ConfigPrecedence(t *testing.T) {
	env := newTestEnvironment(t)
	t.Setenv("HURLC_ENVIRONMENT", "staging")

	stdout, stderr, code := env.Run(t, "config", "show", "--encoding", "windows-1252")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "staging")
	assert.Contains(t, stdout, "env HURLC_ENVIRONMENT")
	assert.Contains(t, stdout, "windows-1252")
	assert.Contains(t, stdout, "flag --encoding")
	assert.Contains(t, stdout, "file "+env.ConfigFile)

	_, stderr, code = env.Run(t, "--log-level", "loud", "kinds")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "log_level")
}

func TestCLI_LegacyEncoding(t *testing.T) {
	env := newTestEnvironment(t)
	// "café" in windows-1252.
	path := env.WriteFile(t, "legacy.hurlc", "name=caf\xe9\n")

	stdout, stderr, code := env.Run(t, "--encoding", "windows-1252", "show", "--yaml", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "name: café")
}
