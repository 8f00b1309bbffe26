package configinfra

import (
	"context"
	"os"

	configdomain "github.com/hurlstudio/hurlc/internal/core/domain/config"
	configports "github.com/hurlstudio/hurlc/internal/core/ports/config"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "HURLC_"

var envVars = map[string]string{
	EnvPrefix + "HURL_PATH":   configdomain.FieldHurlPath,
	EnvPrefix + "ENCODING":    configdomain.FieldEncoding,
	EnvPrefix + "LOG_LEVEL":   configdomain.FieldLogLevel,
	EnvPrefix + "ENVIRONMENT": configdomain.FieldEnvironment,
}

type EnvLoader struct {
	lookup func(string) (string, bool)
}

func NewEnvLoader() *EnvLoader { return &EnvLoader{lookup: os.LookupEnv} }

func (l *EnvLoader) Name() string { return "env" }

// Load builds a snapshot from HURLC_* environment variables (priority 2).
func (l *EnvLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	snap := make(configdomain.Snapshot)
	for key, field := range envVars {
		if v, ok := l.lookup(key); ok && v != "" {
			snap.Set(field, v, "env", key, configdomain.PriorityEnv)
		}
	}
	return snap, nil
}

var _ configports.Loader = (*EnvLoader)(nil)
