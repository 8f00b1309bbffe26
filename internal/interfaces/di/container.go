package di

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/hurlstudio/hurlc/internal/application/services"
	configdomain "github.com/hurlstudio/hurlc/internal/core/domain/config"
	procp "github.com/hurlstudio/hurlc/internal/core/ports/process"
	storeports "github.com/hurlstudio/hurlc/internal/core/ports/store"
	configinfra "github.com/hurlstudio/hurlc/internal/infrastructure/config"
	"github.com/hurlstudio/hurlc/internal/infrastructure/logging"
	"github.com/hurlstudio/hurlc/internal/infrastructure/process"
	"github.com/hurlstudio/hurlc/internal/infrastructure/store"
	"github.com/hurlstudio/hurlc/internal/interfaces/cli"
)

// Container holds all application dependencies
type Container struct {
	// Configuration
	Config     configdomain.Snapshot
	ConfigPath string

	// Infrastructure
	Store  storeports.CollectionStore
	Runner procp.Runner

	// Services
	Collections *services.CollectionService

	// Logger
	Logger hclog.Logger
}

// NewContainer loads the configuration and wires every component.
func NewContainer(ctx context.Context, opts cli.GlobalOptions) (*Container, error) {
	fileLoader := configinfra.NewFileLoader(opts.ConfigPath)
	snap, err := configinfra.Load(ctx,
		fileLoader,
		configinfra.NewEnvLoader(),
		configinfra.NewFlagLoader(map[string]string{
			configdomain.FieldHurlPath:    opts.HurlPath,
			configdomain.FieldEncoding:    opts.Encoding,
			configdomain.FieldLogLevel:    opts.LogLevel,
			configdomain.FieldEnvironment: opts.Environment,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := configdomain.FromSnapshot(snap)

	output := opts.Stderr
	if output == nil {
		output = os.Stderr
	}

	c := &Container{
		Config:     snap,
		ConfigPath: fileLoader.Path(),
		Logger:     logging.New(cfg.LogLevel, opts.Debug, output),
	}
	c.Store = store.NewFileSystem()
	c.Runner = process.NewExecutor(c.Logger)
	c.Collections = services.NewCollectionService(c.Store, c.Runner, c.Logger, services.CollectionOptions{
		Encoding: cfg.Encoding,
		HurlPath: cfg.HurlPath,
	})

	c.Logger.Debug("container initialized", "config", c.ConfigPath, "hurl", cfg.HurlPath, "encoding", cfg.Encoding)
	return c, nil
}

// Dependencies exposes the container to the CLI.
func (c *Container) Dependencies() *cli.Dependencies {
	return &cli.Dependencies{
		Config:      c.Config,
		ConfigPath:  c.ConfigPath,
		Logger:      c.Logger,
		Collections: c.Collections,
	}
}

// Factory is the cli.Factory backed by NewContainer.
func Factory(ctx context.Context, opts cli.GlobalOptions) (*cli.Dependencies, error) {
	c, err := NewContainer(ctx, opts)
	if err != nil {
		return nil, err
	}
	return c.Dependencies(), nil
}

var _ cli.Factory = Factory
