package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded clip and music assets live. Save returns
// the URL the rendering service should fetch the asset from.
type Storage interface {
	Save(ctx context.Context, objectName string, r io.Reader) (string, error)

	Open(ctx context.Context, objectName string) (io.ReadCloser, error)

	Exists(ctx context.Context, objectName string) bool

	URL(objectName string) string

	List(ctx context.Context, prefix string) ([]string, error)

	Delete(ctx context.Context, objectName string) error
}
