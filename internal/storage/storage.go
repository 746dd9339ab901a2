// Package storage archives raw uploads in an S3-compatible bucket so a batch
// can be replayed after a schema change.
package storage

import (
	"context"
	"io"
)

type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

type noopStorage struct{}

// NewNoopStorage returns a storage that drops every write. Used when no
// bucket is configured; ingestion proceeds without an archive copy.
func NewNoopStorage() ObjectStorage {
	return &noopStorage{}
}

func (n *noopStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return nil
}

func (n *noopStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, nil
}

func (n *noopStorage) DeletePrefix(ctx context.Context, prefix string) error {
	return nil
}
