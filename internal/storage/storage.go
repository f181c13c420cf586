// Package storage holds the S3-compatible object store where export
// artifacts land. Downloads are served through presigned URLs, so the API
// never proxies artifact bytes itself.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions carries optional upload parameters. Size must be the
// exact byte count when known.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored artifact.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// Storage is the object-store client used for export artifacts.
type Storage interface {
	// Put uploads an artifact under the given key using streaming I/O.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an artifact by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL for downloading the artifact
	// without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
