package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

// MemClient is an in-memory Client used by tests. It records per-operation
// call counts so tests can assert which storage calls were (not) issued.
type MemClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   map[string]int
	clock   clock.Clock

	// FailUploads makes every Upload fail, for partial-failure tests.
	FailUploads bool
}

func NewMemClient(clk clock.Clock) *MemClient {
	return &MemClient{
		objects: make(map[string][]byte),
		calls:   make(map[string]int),
		clock:   clk,
	}
}

func (m *MemClient) key(bucket, path string) string { return bucket + "/" + path }

// CallCount returns how many times the named operation reached the backend.
func (m *MemClient) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// Object returns the stored bytes for bucket/path.
func (m *MemClient) Object(bucket, path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[m.key(bucket, path)]
	return data, ok
}

func (m *MemClient) Upload(ctx context.Context, bucket, path string, content io.Reader, opts UploadOptions) (UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["upload"]++

	if m.FailUploads {
		return UploadResult{}, repoerr.New("Failed to upload file: backend unavailable", http.StatusServiceUnavailable)
	}

	if _, exists := m.objects[m.key(bucket, path)]; exists && !opts.Upsert {
		return UploadResult{}, repoerr.New("Failed to upload file: resource already exists", http.StatusConflict)
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return UploadResult{}, repoerr.Wrap(err, "Failed to upload file")
	}
	m.objects[m.key(bucket, path)] = data

	return UploadResult{Bucket: bucket, Path: path, FullPath: bucket + "/" + path}, nil
}

func (m *MemClient) CreateSignedURL(ctx context.Context, bucket, path string, opts SignedURLOptions) (SignedURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["sign"]++

	if _, ok := m.objects[m.key(bucket, path)]; !ok {
		return SignedURL{}, repoerr.NotFound("Failed to create signed URL: object not found")
	}

	expiresAt := m.clock.Now().Add(opts.ExpiresIn)
	signed := fmt.Sprintf("mem://%s/%s?token=test&expires=%d", bucket, path, expiresAt.Unix())
	if opts.Download {
		signed += "&download=" + opts.FileName
	}

	return SignedURL{Bucket: bucket, Path: path, URL: signed, ExpiresAt: expiresAt}, nil
}

func (m *MemClient) PublicURL(bucket, path string) string {
	return fmt.Sprintf("mem://public/%s/%s", bucket, path)
}

func (m *MemClient) Remove(ctx context.Context, bucket string, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return []string{}, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["remove"]++

	removed := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := m.objects[m.key(bucket, p)]; ok {
			delete(m.objects, m.key(bucket, p))
			removed = append(removed, p)
		}
	}
	return removed, nil
}

func (m *MemClient) Move(ctx context.Context, bucket, from, to string) (UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["move"]++

	data, ok := m.objects[m.key(bucket, from)]
	if !ok {
		return UploadResult{}, repoerr.NotFound("Failed to move file: object not found")
	}
	delete(m.objects, m.key(bucket, from))
	m.objects[m.key(bucket, to)] = data

	return UploadResult{Bucket: bucket, Path: to, FullPath: bucket + "/" + to}, nil
}

func (m *MemClient) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["download"]++

	data, ok := m.objects[m.key(bucket, path)]
	if !ok {
		return nil, repoerr.NotFound("Failed to download file: object not found")
	}
	return data, nil
}
