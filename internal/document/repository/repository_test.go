package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/document/domain"
	"github.com/bancalarisantiago/workfolio/pkg/db"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

const companyID = "11111111-1111-1111-1111-111111111111"

func setupRepo(t *testing.T) (domain.Repository, *clock.FakeClock) {
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
	return NewRepository(conn, clk), clk
}

func TestCreateDocumentForcesCompanyID(t *testing.T) {
	repo, _ := setupRepo(t)

	created, err := repo.CreateDocument(context.Background(), companyID, domain.Document{
		CompanyID: "attacker-company",
		Title:     "Contrato",
	})
	require.NoError(t, err)

	assert.Equal(t, companyID, created.CompanyID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.False(t, created.IssuedAt.IsZero())
}

func TestListDocumentsNewestIssueFirst(t *testing.T) {
	repo, clk := setupRepo(t)
	ctx := context.Background()

	older, err := repo.CreateDocument(ctx, companyID, domain.Document{Title: "Old", IssuedAt: clk.Now().Add(-48 * time.Hour)})
	require.NoError(t, err)
	newer, err := repo.CreateDocument(ctx, companyID, domain.Document{Title: "New", IssuedAt: clk.Now()})
	require.NoError(t, err)

	docs, err := repo.ListDocuments(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, newer.ID, docs[0].ID)
	assert.Equal(t, older.ID, docs[1].ID)
}

func TestGetDocumentFilesByDocumentIDsEmptyFastPath(t *testing.T) {
	repo, _ := setupRepo(t)

	files, err := repo.GetDocumentFilesByDocumentIDs(context.Background(), companyID, nil)

	require.NoError(t, err)
	require.NotNil(t, files)
	assert.Empty(t, files)
}

func TestNextDocumentFileVersion(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	doc, err := repo.CreateDocument(ctx, companyID, domain.Document{Title: "Contrato"})
	require.NoError(t, err)

	version, err := repo.NextDocumentFileVersion(ctx, companyID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	for _, v := range []int{1, 3, 4} {
		_, err := repo.CreateDocumentFile(ctx, companyID, domain.DocumentFile{
			DocumentID: &doc.ID,
			FilePath:   "p",
			FileName:   "f.pdf",
			Version:    v,
		})
		require.NoError(t, err)
	}

	version, err = repo.NextDocumentFileVersion(ctx, companyID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, version)
}

func TestCreateDocumentFileDuplicateVersionRejected(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	doc, err := repo.CreateDocument(ctx, companyID, domain.Document{Title: "Contrato"})
	require.NoError(t, err)

	_, err = repo.CreateDocumentFile(ctx, companyID, domain.DocumentFile{
		DocumentID: &doc.ID, FilePath: "a", FileName: "a.pdf", Version: 1,
	})
	require.NoError(t, err)

	_, err = repo.CreateDocumentFile(ctx, companyID, domain.DocumentFile{
		DocumentID: &doc.ID, FilePath: "b", FileName: "b.pdf", Version: 1,
	})
	require.Error(t, err)
	assert.True(t, db.IsDuplicateKeyErr(err))
}

func TestBatchFilesOrderedVersionDescThenUploadDesc(t *testing.T) {
	repo, clk := setupRepo(t)
	ctx := context.Background()

	doc, err := repo.CreateDocument(ctx, companyID, domain.Document{Title: "Contrato"})
	require.NoError(t, err)

	_, err = repo.CreateDocumentFile(ctx, companyID, domain.DocumentFile{
		DocumentID: &doc.ID, FilePath: "v1", FileName: "v1.pdf", Version: 1, UploadedAt: clk.Now(),
	})
	require.NoError(t, err)
	_, err = repo.CreateDocumentFile(ctx, companyID, domain.DocumentFile{
		DocumentID: &doc.ID, FilePath: "v2", FileName: "v2.pdf", Version: 2, UploadedAt: clk.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	files, err := repo.GetDocumentFilesByDocumentIDs(ctx, companyID, []string{doc.ID})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, 2, files[0].Version)
	assert.Equal(t, 1, files[1].Version)
}

func TestGetDocumentByIDMissingIs404(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.GetDocumentByID(context.Background(), companyID, "22222222-2222-2222-2222-222222222222")

	require.Error(t, err)
	assert.True(t, repoerr.IsNotFound(err))
}
