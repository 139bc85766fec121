package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for storing binary objects addressed by URL.
// Put returns a retrievable URL; Delete takes the same URL back.
type ObjectStore interface {
	Put(ctx context.Context, userId string, fileName string, r io.Reader) (url string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, url string) (io.ReadCloser, error)
	Delete(ctx context.Context, url string) error
}
