package employee

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	companydomain "github.com/bancalarisantiago/workfolio/internal/company/domain"
	companyrepo "github.com/bancalarisantiago/workfolio/internal/company/repository"
	"github.com/bancalarisantiago/workfolio/internal/config"
	docdomain "github.com/bancalarisantiago/workfolio/internal/document/domain"
	docrepo "github.com/bancalarisantiago/workfolio/internal/document/repository"
	paydomain "github.com/bancalarisantiago/workfolio/internal/paycheck/domain"
	payrepo "github.com/bancalarisantiago/workfolio/internal/paycheck/repository"
	payservice "github.com/bancalarisantiago/workfolio/internal/paycheck/service"
	"github.com/bancalarisantiago/workfolio/internal/storage"
	userdomain "github.com/bancalarisantiago/workfolio/internal/user/domain"
	userrepo "github.com/bancalarisantiago/workfolio/internal/user/repository"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

const (
	testCompanyID = "11111111-1111-1111-1111-111111111111"
	aliceUserID   = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	bobUserID     = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

type tenantFixture struct {
	docsSvc   *DocumentsService
	paysSvc   *PaychecksService
	docs      docdomain.Repository
	paychecks paydomain.Repository
	mem       *storage.MemClient
	clk       *clock.FakeClock

	aliceEmployeeID string
	bobEmployeeID   string
}

func setupTenant(t *testing.T) *tenantFixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&companydomain.Company{},
		&companydomain.CompanyMember{},
		&userdomain.UserProfile{},
		&userdomain.EmployeeProfile{},
		&docdomain.Document{},
		&docdomain.DocumentFile{},
		&paydomain.Paycheck{},
		&paydomain.PaycheckSignatureEvent{},
	))

	ctx := context.Background()
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	log := zaptest.NewLogger(t)

	companies := companyrepo.NewRepository(conn, clk)
	users := userrepo.NewRepository(conn, clk)
	docs := docrepo.NewRepository(conn, clk)
	paychecks := payrepo.NewRepository(conn, clk)

	company, err := companies.CreateCompany(ctx, companydomain.Company{
		ID:          testCompanyID,
		Name:        "Demo SRL",
		CompanyCode: "demo",
	})
	require.NoError(t, err)

	fixture := &tenantFixture{
		docs:      docs,
		paychecks: paychecks,
		clk:       clk,
	}

	seedEmployee := func(userID string) string {
		member, err := companies.CreateMember(ctx, company.ID, companydomain.CompanyMember{
			UserID: userID,
			Role:   companydomain.RoleEmployee,
			Status: companydomain.MemberActive,
		})
		require.NoError(t, err)

		profile, err := users.EnsureEmployeeProfileForMember(ctx, company.ID, member.ID)
		require.NoError(t, err)
		return profile.ID
	}
	fixture.aliceEmployeeID = seedEmployee(aliceUserID)
	fixture.bobEmployeeID = seedEmployee(bobUserID)

	mem := storage.NewMemClient(clk)
	fixture.mem = mem
	cfg := config.StorageConfig{
		DocumentsBucket: "documents",
		PaychecksBucket: "paychecks",
		DocumentURLTTL:  60 * time.Second,
		PaycheckURLTTL:  120 * time.Second,
	}

	resolver := NewContextResolver(companies, users)
	holder := config.NewStaticCategoryConfigHolder(config.DefaultCategoryConfig())
	fixture.docsSvc = NewDocumentsService(resolver, docs, mem, cfg, holder, clk, log)

	payFiles := payservice.NewFileService(paychecks, mem, cfg, clk, log)
	fixture.paysSvc = NewPaychecksService(resolver, paychecks, payFiles, clk, log)

	return fixture
}

func (f *tenantFixture) seedDocumentWithFile(t *testing.T, employeeID string) *docdomain.Document {
	t.Helper()
	ctx := context.Background()

	doc, err := f.docs.CreateDocument(ctx, testCompanyID, docdomain.Document{
		EmployeeID: &employeeID,
		Title:      "Contrato",
	})
	require.NoError(t, err)

	path := "company/" + testCompanyID + "/documents/" + doc.ID + "/1/contrato.pdf"
	_, err = f.mem.Upload(ctx, "documents", path, bytes.NewReader([]byte("pdf")), storage.UploadOptions{})
	require.NoError(t, err)

	_, err = f.docs.CreateDocumentFile(ctx, testCompanyID, docdomain.DocumentFile{
		DocumentID: &doc.ID,
		FilePath:   path,
		FileName:   "contrato.pdf",
		Version:    1,
		UploadedAt: f.clk.Now(),
	})
	require.NoError(t, err)

	return doc
}

func TestDocumentDownloadIsScopedToOwningEmployee(t *testing.T) {
	f := setupTenant(t)
	ctx := context.Background()
	doc := f.seedDocumentWithFile(t, f.aliceEmployeeID)

	signed, err := f.docsSvc.Download(ctx, aliceUserID, doc.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, signed.URL)

	_, err = f.docsSvc.Download(ctx, bobUserID, doc.ID)
	require.Error(t, err)
	assert.True(t, repoerr.IsNotFound(err))
}

func TestDocumentDownloadUnassignedDocumentIs404(t *testing.T) {
	f := setupTenant(t)
	ctx := context.Background()

	doc, err := f.docs.CreateDocument(ctx, testCompanyID, docdomain.Document{Title: "Circular"})
	require.NoError(t, err)

	_, err = f.docsSvc.Download(ctx, aliceUserID, doc.ID)
	require.Error(t, err)
	assert.True(t, repoerr.IsNotFound(err))
}

func TestPaycheckDownloadIsScopedToOwningEmployee(t *testing.T) {
	f := setupTenant(t)
	ctx := context.Background()

	paycheck, err := f.paychecks.CreatePaycheck(ctx, testCompanyID, paydomain.Paycheck{
		EmployeeID:  f.aliceEmployeeID,
		PeriodLabel: "2025-05",
	})
	require.NoError(t, err)

	path := "company/" + testCompanyID + "/paychecks/" + paycheck.ID + "/recibo.pdf"
	_, err = f.mem.Upload(ctx, "paychecks", path, bytes.NewReader([]byte("pdf")), storage.UploadOptions{})
	require.NoError(t, err)
	_, err = f.paychecks.UpdatePaycheck(ctx, testCompanyID, paycheck.ID, paydomain.Patch{"file_path": path})
	require.NoError(t, err)

	signed, err := f.paysSvc.Download(ctx, aliceUserID, paycheck.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, signed.URL)

	_, err = f.paysSvc.Download(ctx, bobUserID, paycheck.ID)
	require.Error(t, err)
	assert.True(t, repoerr.IsNotFound(err))
}
