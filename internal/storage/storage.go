package storage

import (
	"context"
	"io"
)

// Service uploads database snapshots to remote object storage.
type Service interface {
	UploadFile(ctx context.Context, bucket, key string, body io.Reader) (string, error)
}
