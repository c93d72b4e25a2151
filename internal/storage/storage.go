// Package storage wraps the hosted object-storage service. All buckets
// share one client; paths are bucket-relative.
package storage

import (
	"context"
	"io"
	"time"
)

// UploadOptions mirror the storage service's upload knobs.
type UploadOptions struct {
	CacheControl string
	ContentType  string
	Metadata     map[string]string
	// Upsert overwrites an existing object instead of failing on conflict.
	Upsert bool
}

// UploadResult confirms where the bytes landed.
type UploadResult struct {
	Bucket   string
	Path     string
	FullPath string
}

// Transform requests an image transformation on signed-URL reads. Only
// honored for image buckets; other buckets ignore it.
type Transform struct {
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Resize  string `json:"resize,omitempty"`
	Quality int    `json:"quality,omitempty"`
	Format  string `json:"format,omitempty"`
}

// SignedURLOptions control the issued capability URL.
type SignedURLOptions struct {
	ExpiresIn time.Duration
	// Download forces a download disposition; FileName suggests the name.
	Download  bool
	FileName  string
	Transform *Transform
}

// SignedURL is a time-limited read capability for a private object.
type SignedURL struct {
	Bucket    string
	Path      string
	URL       string
	ExpiresAt time.Time
}

// Client is the bucket-addressable blob-store contract consumed by the
// storage repositories. Every failure is a repoerr.RepositoryError.
type Client interface {
	Upload(ctx context.Context, bucket, path string, content io.Reader, opts UploadOptions) (UploadResult, error)
	CreateSignedURL(ctx context.Context, bucket, path string, opts SignedURLOptions) (SignedURL, error)
	PublicURL(bucket, path string) string
	// Remove deletes the given objects. An empty path list is a no-op and
	// must not reach the backend.
	Remove(ctx context.Context, bucket string, paths []string) ([]string, error)
	Move(ctx context.Context, bucket, from, to string) (UploadResult, error)
	Download(ctx context.Context, bucket, path string) ([]byte, error)
}
