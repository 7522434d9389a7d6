package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotConfigured = errors.New("media storage not configured")

// NoopStore stands in when no bucket is configured. Uploads and presigning
// fail loudly instead of silently dropping media.
type NoopStore struct{}

func (NoopStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	return ErrNotConfigured
}

func (NoopStore) PresignGet(ctx context.Context, key string) (string, error) {
	return "", ErrNotConfigured
}
