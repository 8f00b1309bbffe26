package configports

import (
	"context"

	configdomain "github.com/hurlstudio/hurlc/internal/core/domain/config"
)

// Loader is one source of CLI configuration.
type Loader interface {
	Load(ctx context.Context) (configdomain.Snapshot, error)
	Name() string
}

type Validator interface {
	Validate(snap configdomain.Snapshot) error
}
