package storage

import (
	"context"
	"time"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock

// ObjectStorage is the binary object store the core depends on. Each call
// is synchronous and authoritative; the core only ever keeps the opaque
// path, never a URL.
type ObjectStorage interface {
	Put(ctx context.Context, path string, data []byte, visibility Visibility) (string, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	TemporaryURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	Size(ctx context.Context, path string) (int64, error)
	MimeType(ctx context.Context, path string) (string, error)
}
