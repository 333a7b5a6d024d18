// Package storage abstracts the blob store holding uploaded images.
package storage

import (
	"context"
	"io"
)

// ObjectStore is the blob store contract used by the upload path. Put
// must not leave a partial object behind on failure.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
