package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/config"
	"github.com/bancalarisantiago/workfolio/internal/document/domain"
	"github.com/bancalarisantiago/workfolio/internal/document/repository"
	"github.com/bancalarisantiago/workfolio/internal/storage"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

const companyID = "11111111-1111-1111-1111-111111111111"

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		DocumentsBucket: "documents",
		PaychecksBucket: "paychecks",
		AvatarsBucket:   "avatars",
		DocumentURLTTL:  60 * time.Second,
		PaycheckURLTTL:  120 * time.Second,
		AvatarURLTTL:    300 * time.Second,
	}
}

func setup(t *testing.T) (*FileService, domain.Repository, *storage.MemClient, *clock.FakeClock) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&domain.Document{},
		&domain.DocumentCategory{},
		&domain.DocumentTemplate{},
		&domain.DocumentFile{},
	))

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	repo := repository.NewRepository(conn, clk)
	mem := storage.NewMemClient(clk)
	svc := NewFileService(repo, mem, testStorageConfig(), clk, zaptest.NewLogger(t))
	return svc, repo, mem, clk
}

func TestUploadFirstFileIsVersionOne(t *testing.T) {
	svc, repo, mem, clk := setup(t)
	ctx := context.Background()

	doc, err := repo.CreateDocument(ctx, companyID, domain.Document{Title: "Contrato 2025"})
	require.NoError(t, err)

	file, err := svc.UploadFile(ctx, companyID, doc.ID, FileUploadInput{
		FileName:    "Contrato Laboral.pdf",
		ContentType: "application/pdf",
		SizeBytes:   3,
		Content:     bytes.NewReader([]byte("pdf")),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, file.Version)
	assert.Equal(t, companyID, file.CompanyID)
	require.NotNil(t, file.DocumentID)
	assert.Equal(t, doc.ID, *file.DocumentID)
	assert.True(t, strings.HasPrefix(file.FilePath, "company/"+companyID+"/documents/"+doc.ID+"/1/"))
	assert.True(t, strings.HasSuffix(file.FilePath, "contrato-laboral.pdf"))

	_, stored := mem.Object("documents", file.FilePath)
	assert.True(t, stored)

	signed, err := svc.CreateFileSignedURL(ctx, companyID, file.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, signed.URL)
	assert.True(t, signed.ExpiresAt.After(clk.Now()))
}

// staleVersionRepo reports a stale next version on the first call, as a
// concurrent uploader that wins the race would cause.
type staleVersionRepo struct {
	domain.Repository
	stale int
	fired bool
}

func (s *staleVersionRepo) NextDocumentFileVersion(ctx context.Context, companyID, documentID string) (int, error) {
	if !s.fired {
		s.fired = true
		return s.stale, nil
	}
	return s.Repository.NextDocumentFileVersion(ctx, companyID, documentID)
}

func TestUploadRetriesOnVersionConflict(t *testing.T) {
	_, repo, mem, _ := setup(t)
	ctx := context.Background()

	doc, err := repo.CreateDocument(ctx, companyID, domain.Document{Title: "Contrato"})
	require.NoError(t, err)

	_, err = repo.CreateDocumentFile(ctx, companyID, domain.DocumentFile{
		DocumentID: &doc.ID, FilePath: "existing", FileName: "existing.pdf", Version: 1,
	})
	require.NoError(t, err)

	stale := &staleVersionRepo{Repository: repo, stale: 1}
	retrying := NewFileService(stale, mem, testStorageConfig(), clock.NewFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)), zaptest.NewLogger(t))

	file, err := retrying.UploadFile(ctx, companyID, doc.ID, FileUploadInput{
		FileName: "nuevo.pdf",
		Content:  bytes.NewReader([]byte("pdf")),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, file.Version)

	// The blob written under the contested version is cleaned up.
	_, orphaned := mem.Object("documents", "company/"+companyID+"/documents/"+doc.ID+"/1/nuevo.pdf")
	assert.False(t, orphaned)
}

func TestDeleteFileWithAssetRemovesBlobAndRow(t *testing.T) {
	svc, repo, mem, _ := setup(t)
	ctx := context.Background()

	doc, err := repo.CreateDocument(ctx, companyID, domain.Document{Title: "Contrato"})
	require.NoError(t, err)
	file, err := svc.UploadFile(ctx, companyID, doc.ID, FileUploadInput{
		FileName: "a.pdf",
		Content:  bytes.NewReader([]byte("pdf")),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFileWithAsset(ctx, companyID, file.ID))

	_, stored := mem.Object("documents", file.FilePath)
	assert.False(t, stored)
	_, err = repo.GetDocumentFileByID(ctx, companyID, file.ID)
	assert.True(t, repoerr.IsNotFound(err))
}

func TestUploadUnknownDocumentIs404(t *testing.T) {
	svc, _, _, _ := setup(t)

	_, err := svc.UploadFile(context.Background(), companyID, "22222222-2222-2222-2222-222222222222", FileUploadInput{
		FileName: "a.pdf",
		Content:  bytes.NewReader([]byte("pdf")),
	})
	require.Error(t, err)
	assert.True(t, repoerr.IsNotFound(err))
}

func TestRemoveFileAssetsBulkDeletes(t *testing.T) {
	svc, repo, mem, _ := setup(t)
	ctx := context.Background()

	doc, err := repo.CreateDocument(ctx, companyID, domain.Document{Title: "Contrato"})
	require.NoError(t, err)
	for _, name := range []string{"v1.pdf", "v2.pdf"} {
		_, err := svc.UploadFile(ctx, companyID, doc.ID, FileUploadInput{
			FileName: name,
			Content:  bytes.NewReader([]byte("pdf")),
		})
		require.NoError(t, err)
	}

	removed, err := svc.RemoveFileAssets(ctx, companyID, doc.ID)
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	assert.Equal(t, 1, mem.CallCount("remove"))
}
