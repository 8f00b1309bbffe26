package configinfra

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	configdomain "github.com/hurlstudio/hurlc/internal/core/domain/config"
	"github.com/hurlstudio/hurlc/internal/core/format"
	configports "github.com/hurlstudio/hurlc/internal/core/ports/config"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validator checks a merged snapshot.
type Validator struct{}

func NewValidator() *Validator { return &Validator{} }

func (v *Validator) Validate(snap configdomain.Snapshot) error {
	if strings.TrimSpace(snap.String(configdomain.FieldHurlPath)) == "" {
		return fmt.Errorf("%w: hurl_path cannot be empty", ErrInvalidConfig)
	}
	if enc := snap.String(configdomain.FieldEncoding); enc != "" {
		if _, err := format.LookupEncoding(enc); err != nil {
			return fmt.Errorf("%w: %s (from %s)", ErrInvalidConfig, err, source(snap, configdomain.FieldEncoding))
		}
	}
	level := snap.String(configdomain.FieldLogLevel)
	if level != "" && hclog.LevelFromString(level) == hclog.NoLevel {
		return fmt.Errorf("%w: unknown log_level %q (from %s)", ErrInvalidConfig, level, source(snap, configdomain.FieldLogLevel))
	}
	return nil
}

func source(snap configdomain.Snapshot, field string) string {
	e := snap[field]
	if e.SourcePath != "" {
		return e.Source + " " + e.SourcePath
	}
	return e.Source
}

var _ configports.Validator = (*Validator)(nil)
