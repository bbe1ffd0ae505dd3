package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving, retrieving, and deleting
// binary objects (uploaded resume files).
type ObjectStore interface {
	Save(ctx context.Context, ownerID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}
