package storage

import (
	"context"
	"io"
	"time"
)

type FileStorage interface {
	// Upload stores a file and returns its cleaned path
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// GetURL returns a URL the stored file can be fetched from
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
