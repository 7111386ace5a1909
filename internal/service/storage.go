package service

import (
	"context"
	"io"
)

// ImageStore is the object-storage gateway used by the event, picture and
// user services. Keys are generated per upload; a stored object is
// addressed by its key only.
type ImageStore interface {
	PutBase64(ctx context.Context, payload string) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}
