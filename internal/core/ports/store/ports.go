package storeports

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no collection text exists at a path.
var ErrNotFound = errors.New("collection not found")

// CollectionStore reads and writes collection text.
type CollectionStore interface {
	// Read returns the decoded text stored at path.
	Read(ctx context.Context, path, encoding string) (string, error)
	// Write encodes text and stores it at path.
	Write(ctx context.Context, path, encoding, text string) error
}
