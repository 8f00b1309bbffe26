package configinfra

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	configdomain "github.com/hurlstudio/hurlc/internal/core/domain/config"
	configports "github.com/hurlstudio/hurlc/internal/core/ports/config"
)

// FileLoader reads the YAML configuration file (priority 3).
//
//	hurl_path: /usr/local/bin/hurl
//	encoding: utf-8
//	log_level: info
//	environment: staging
type FileLoader struct {
	path     string
	explicit bool
}

// NewFileLoader loads path, or the default location when path is empty. A
// missing default file is not an error; a missing explicit one is.
func NewFileLoader(path string) *FileLoader {
	if path != "" {
		return &FileLoader{path: path, explicit: true}
	}
	return &FileLoader{path: DefaultConfigPath()}
}

// DefaultConfigPath returns ~/.config/hurlc/config.yaml.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "hurlc", "config.yaml")
}

func (l *FileLoader) Name() string { return "file" }

// Path returns the file the loader reads.
func (l *FileLoader) Path() string { return l.path }

func (l *FileLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	snap := make(configdomain.Snapshot)

	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !l.explicit {
			return snap, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}

	var kv map[string]interface{}
	if err := yaml.Unmarshal(data, &kv); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", l.path, err)
	}

	for _, field := range configdomain.Fields {
		v, ok := kv[field]
		if !ok || v == nil {
			continue
		}
		snap.Set(field, fmt.Sprint(v), "file", l.path, configdomain.PriorityFile)
	}
	return snap, nil
}

var _ configports.Loader = (*FileLoader)(nil)
