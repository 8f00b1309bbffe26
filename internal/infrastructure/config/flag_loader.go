package configinfra

import (
	"context"

	configdomain "github.com/hurlstudio/hurlc/internal/core/domain/config"
	configports "github.com/hurlstudio/hurlc/internal/core/ports/config"
)

// FlagLoader turns explicitly set command line flags into entries
// (priority 1).
type FlagLoader struct {
	values map[string]string
}

// NewFlagLoader takes field name to flag value. Empty values are ignored.
func NewFlagLoader(values map[string]string) *FlagLoader {
	return &FlagLoader{values: values}
}

func (l *FlagLoader) Name() string { return "flags" }

func (l *FlagLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	snap := make(configdomain.Snapshot)
	for field, v := range l.values {
		if v != "" {
			snap.Set(field, v, "flag", "--"+flagName(field), configdomain.PriorityFlag)
		}
	}
	return snap, nil
}

func flagName(field string) string {
	switch field {
	case configdomain.FieldHurlPath:
		return "hurl"
	case configdomain.FieldLogLevel:
		return "log-level"
	default:
		return field
	}
}

var _ configports.Loader = (*FlagLoader)(nil)
