package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/config"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

func restSetup(t *testing.T, handler http.Handler) (Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.StorageConfig{Endpoint: srv.URL, ServiceKey: "service-key"}
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewRESTClient(cfg, clk, zaptest.NewLogger(t)), srv
}

func TestRESTUploadSendsUpsertHeaderAndAuth(t *testing.T) {
	var gotPath, gotUpsert, gotAuth, gotBody string
	client, _ := restSetup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUpsert = r.Header.Get("x-upsert")
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_ = json.NewEncoder(w).Encode(map[string]string{"Key": "documents/a/b.pdf"})
	}))

	result, err := client.Upload(context.Background(), "documents", "a/b.pdf", strings.NewReader("pdf-bytes"), UploadOptions{
		ContentType: "application/pdf",
		Upsert:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "/object/documents/a/b.pdf", gotPath)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "pdf-bytes", gotBody)
	assert.Equal(t, "a/b.pdf", result.Path)
	assert.Equal(t, "documents/a/b.pdf", result.FullPath)
}

func TestRESTUploadErrorCarriesStatus(t *testing.T) {
	client, _ := restSetup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("The resource already exists"))
	}))

	_, err := client.Upload(context.Background(), "documents", "a.pdf", strings.NewReader("x"), UploadOptions{})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, repoerr.StatusOf(err))
	assert.Contains(t, err.Error(), "Failed to upload file")
}

func TestRESTCreateSignedURLAppendsDownload(t *testing.T) {
	client, srv := restSetup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.EqualValues(t, 60, body["expiresIn"])
		_ = json.NewEncoder(w).Encode(map[string]string{
			"signedURL": "/object/sign/documents/a.pdf?token=abc",
		})
	}))

	signed, err := client.CreateSignedURL(context.Background(), "documents", "a.pdf", SignedURLOptions{
		ExpiresIn: 60 * time.Second,
		Download:  true,
		FileName:  "Recibo Mayo.pdf",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(signed.URL, srv.URL+"/object/sign/documents/a.pdf?token=abc"))
	assert.Contains(t, signed.URL, "&download=Recibo+Mayo.pdf")
	assert.Equal(t, time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC), signed.ExpiresAt)
}

func TestRESTRemoveReportsRemovedNames(t *testing.T) {
	client, _ := restSetup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		var body map[string][]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, []string{"a.pdf", "b.pdf"}, body["prefixes"])
		_ = json.NewEncoder(w).Encode([]map[string]string{{"name": "a.pdf"}})
	}))

	removed, err := client.Remove(context.Background(), "documents", []string{"a.pdf", "b.pdf"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf"}, removed)
}

func TestRESTRemoveEmptyListSkipsBackend(t *testing.T) {
	called := false
	client, _ := restSetup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	removed, err := client.Remove(context.Background(), "documents", nil)
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.False(t, called)
}

func TestRESTPublicURLEscapesSegments(t *testing.T) {
	client, srv := restSetup(t, http.NewServeMux())

	got := client.PublicURL("avatars", "users/u1/mi foto.png")
	assert.Equal(t, srv.URL+"/object/public/avatars/users/u1/mi%20foto.png", got)
}
