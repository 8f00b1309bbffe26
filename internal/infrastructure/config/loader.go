package configinfra

import (
	"context"
	"fmt"

	configdomain "github.com/hurlstudio/hurlc/internal/core/domain/config"
	configports "github.com/hurlstudio/hurlc/internal/core/ports/config"
)

// Load merges the defaults with every loader's snapshot and validates the
// result.
func Load(ctx context.Context, loaders ...configports.Loader) (configdomain.Snapshot, error) {
	snap := configdomain.Defaults()
	for _, l := range loaders {
		s, err := l.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s config: %w", l.Name(), err)
		}
		snap.Merge(s)
	}
	if err := NewValidator().Validate(snap); err != nil {
		return nil, err
	}
	return snap, nil
}
