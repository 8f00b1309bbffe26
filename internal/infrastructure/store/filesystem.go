package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hurlstudio/hurlc/internal/core/format"
	storeports "github.com/hurlstudio/hurlc/internal/core/ports/store"
)

// FileSystem stores collections as files on disk.
type FileSystem struct {
	perm fs.FileMode
}

func NewFileSystem() *FileSystem {
	return &FileSystem{perm: 0o644}
}

// Read decodes the file at path with the named encoding.
func (s *FileSystem) Read(ctx context.Context, path, encoding string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", storeports.ErrNotFound, path)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	text, err := format.Decode(raw, encoding)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return text, nil
}

// Write encodes text and replaces the file at path. The content goes to a
// temporary file in the same directory first, so readers never see a
// partial collection.
func (s *FileSystem) Write(ctx context.Context, path, encoding, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := format.Encode(text, encoding)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(s.perm); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

var _ storeports.CollectionStore = (*FileSystem)(nil)
