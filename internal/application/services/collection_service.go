package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/hurlstudio/hurlc/internal/core/arguments"
	"github.com/hurlstudio/hurlc/internal/core/diag"
	"github.com/hurlstudio/hurlc/internal/core/domain/collection"
	"github.com/hurlstudio/hurlc/internal/core/domain/process"
	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
	procp "github.com/hurlstudio/hurlc/internal/core/ports/process"
	storeports "github.com/hurlstudio/hurlc/internal/core/ports/store"
	"github.com/hurlstudio/hurlc/internal/core/resolve"
)

// ErrNoFiles is returned by Run when the selected node holds no request file.
var ErrNoFiles = errors.New("no request files selected")

// Loaded is a collection together with the problems found while loading it.
type Loaded struct {
	Path        string
	Collection  *collection.Collection
	Diagnostics diag.List
}

// LoadOutcome is delivered by LoadAsync.
type LoadOutcome struct {
	Loaded *Loaded
	Err    error
}

// CollectionOptions configures a CollectionService.
type CollectionOptions struct {
	Encoding string
	HurlPath string
}

// CollectionService loads, resolves, saves and runs collections.
type CollectionService struct {
	store  storeports.CollectionStore
	runner procp.Runner
	logger hclog.Logger
	opts   CollectionOptions
}

// NewCollectionService creates a new collection service
func NewCollectionService(store storeports.CollectionStore, runner procp.Runner, logger hclog.Logger, opts CollectionOptions) *CollectionService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.HurlPath == "" {
		opts.HurlPath = "hurl"
	}
	return &CollectionService{
		store:  store,
		runner: runner,
		logger: logger.Named("collections"),
		opts:   opts,
	}
}

// Load reads and parses the collection at path. Parse problems are
// returned in Loaded.Diagnostics; only storage failures are errors.
func (s *CollectionService) Load(ctx context.Context, path string) (*Loaded, error) {
	text, err := s.store.Read(ctx, path, s.opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	c, diags := collection.Parse(text, sourceOf(path))
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			s.logger.Warn("collection problem", "path", path, "diagnostic", d.String())
		} else {
			s.logger.Debug("collection problem", "path", path, "diagnostic", d.String())
		}
	}
	s.logger.Debug("collection loaded", "path", path, "warnings", len(diags))

	return &Loaded{Path: path, Collection: c, Diagnostics: diags}, nil
}

// sourceOf returns the absolute form of path so that every spelling of the
// same file seeds the same node identities.
func sourceOf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// LoadAsync loads path in the background. The channel receives exactly one
// outcome and is then closed.
func (s *CollectionService) LoadAsync(ctx context.Context, path string) <-chan LoadOutcome {
	out := make(chan LoadOutcome, 1)
	go func() {
		defer close(out)
		loaded, err := s.Load(ctx, path)
		out <- LoadOutcome{Loaded: loaded, Err: err}
	}()
	return out
}

// LoadAll loads paths in parallel, at most limit at a time (no limit when
// limit <= 0). Results are in input order. The first failure cancels the
// remaining loads.
func (s *CollectionService) LoadAll(ctx context.Context, paths []string, limit int) ([]*Loaded, error) {
	results := make([]*Loaded, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			loaded, err := s.Load(ctx, path)
			if err != nil {
				return err
			}
			results[i] = loaded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Save serializes c and writes it to path.
func (s *CollectionService) Save(ctx context.Context, path string, c *collection.Collection) error {
	text, err := collection.Text(c)
	if err != nil {
		return fmt.Errorf("failed to serialize collection: %w", err)
	}
	if err := s.store.Write(ctx, path, s.opts.Encoding, text); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	s.logger.Debug("collection saved", "path", path)
	return nil
}

// Resolve returns the effective settings of the node at nodePath, with the
// named environment applied last when env is not empty.
func (s *CollectionService) Resolve(c *collection.Collection, nodePath, env string) ([]setting.Setting, error) {
	effective, err := resolve.EffectivePath(c, nodePath)
	if err != nil {
		return nil, err
	}
	if env == "" {
		return effective, nil
	}
	envSettings, err := resolve.Environment(c, env)
	if err != nil {
		return nil, err
	}
	return resolve.Overlay(effective, envSettings), nil
}

// Arguments renders the hurl arguments of the node at nodePath.
func (s *CollectionService) Arguments(c *collection.Collection, nodePath, env string) ([]string, error) {
	effective, err := s.Resolve(c, nodePath, env)
	if err != nil {
		return nil, err
	}
	return arguments.Build(effective), nil
}

// RequestFiles lists the collection-relative paths of the files at or
// beneath nodePath, in tree order.
func (s *CollectionService) RequestFiles(c *collection.Collection, nodePath string) ([]string, error) {
	h, ok := c.Find(nodePath)
	if !ok {
		return nil, fmt.Errorf("%w: %s", resolve.ErrNodeNotFound, nodePath)
	}
	var files []string
	c.WalkFrom(h, func(_ collection.Handle, n *collection.Node) bool {
		if n.Kind() == collection.KindFile {
			files = append(files, n.Path())
		}
		return true
	})
	return files, nil
}

// Commands builds the hurl invocation of every request file at or beneath
// nodePath, each with its own effective arguments and running in the
// directory of the collection file.
func (s *CollectionService) Commands(loaded *Loaded, nodePath, env string) ([]process.Command, error) {
	files, err := s.RequestFiles(loaded.Collection, nodePath)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, nodePath)
	}

	dir := filepath.Dir(loaded.Path)
	commands := make([]process.Command, 0, len(files))
	for _, file := range files {
		args, err := s.Arguments(loaded.Collection, file, env)
		if err != nil {
			return nil, err
		}
		cmd, err := arguments.Command(s.opts.HurlPath, args, filepath.FromSlash(file))
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd.WithWorkingDir(dir))
	}
	return commands, nil
}

// Run invokes hurl once per request file at or beneath nodePath. Runs stop
// at the first start failure; the returned code is the first non-zero exit
// code, or 0.
func (s *CollectionService) Run(ctx context.Context, loaded *Loaded, nodePath, env string, streams procp.Streams) (int, error) {
	commands, err := s.Commands(loaded, nodePath, env)
	if err != nil {
		return -1, err
	}

	exitCode := 0
	for _, cmd := range commands {
		file := cmd.Files()[0]
		s.logger.Info("running hurl", "file", file, "args", len(cmd.Args()))
		code, err := s.runner.Run(ctx, cmd, streams)
		if err != nil {
			return code, fmt.Errorf("running %s: %w", file, err)
		}
		if code != 0 && exitCode == 0 {
			exitCode = code
		}
	}
	return exitCode, nil
}
