package storage

import (
	"context"
	"io"
)

// Низкоуровневый клиент к S3
type ObjectStore interface {
	// PutObject uploads r and returns a URL the client can fetch it from.
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

type Service interface {
	ObjectKey(owner, ext string) string
	SaveAudio(ctx context.Context, owner string, audio []byte, contentType string) (string, error)
}
