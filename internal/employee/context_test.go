package employee

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
	companydomain "github.com/bancalarisantiago/workfolio/internal/company/domain"
	companyrepo "github.com/bancalarisantiago/workfolio/internal/company/repository"
	userdomain "github.com/bancalarisantiago/workfolio/internal/user/domain"
	userrepo "github.com/bancalarisantiago/workfolio/internal/user/repository"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

func setupResolver(t *testing.T) (*ContextResolver, companydomain.Repository, userdomain.Repository) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&companydomain.Company{},
		&companydomain.CompanyMember{},
		&userdomain.EmployeeProfile{},
	))

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	companies := companyrepo.NewRepository(conn, clk)
	users := userrepo.NewRepository(conn, clk)
	return NewContextResolver(companies, users), companies, users
}

func seedMember(t *testing.T, companies companydomain.Repository, userID string, role companydomain.MemberRole) *companydomain.CompanyMember {
	t.Helper()
	member, err := companies.CreateMember(context.Background(), testCompanyID, companydomain.CompanyMember{
		UserID: userID,
		Role:   role,
		Status: companydomain.MemberActive,
	})
	require.NoError(t, err)
	return member
}

func TestResolveEmployeeWithoutProfileIs404(t *testing.T) {
	resolver, companies, users := setupResolver(t)
	ctx := context.Background()
	member := seedMember(t, companies, aliceUserID, companydomain.RoleEmployee)

	_, err := resolver.Resolve(ctx, aliceUserID)
	require.Error(t, err)
	assert.True(t, repoerr.IsNotFound(err))

	profile, err := users.GetEmployeeProfileByMemberID(ctx, member.ID)
	require.NoError(t, err)
	assert.Nil(t, profile, "employee role never provisions lazily")
}

func TestResolveEmployeeUsesExistingProfile(t *testing.T) {
	resolver, companies, users := setupResolver(t)
	ctx := context.Background()
	member := seedMember(t, companies, aliceUserID, companydomain.RoleEmployee)

	profile, err := users.EnsureEmployeeProfileForMember(ctx, testCompanyID, member.ID)
	require.NoError(t, err)

	ec, err := resolver.Resolve(ctx, aliceUserID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, ec.EmployeeID)
	assert.Equal(t, companydomain.RoleEmployee, ec.Role)
}

func TestResolveAdminProvisionsProfileLazily(t *testing.T) {
	resolver, companies, users := setupResolver(t)
	ctx := context.Background()
	member := seedMember(t, companies, bobUserID, companydomain.RoleAdmin)

	ec, err := resolver.Resolve(ctx, bobUserID)
	require.NoError(t, err)
	assert.NotEmpty(t, ec.EmployeeID)

	profile, err := users.GetEmployeeProfileByMemberID(ctx, member.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, profile.ID, ec.EmployeeID)
}

func TestResolveWithoutMembershipIs404(t *testing.T) {
	resolver, _, _ := setupResolver(t)

	_, err := resolver.Resolve(context.Background(), "cccccccc-cccc-cccc-cccc-cccccccccccc")
	require.Error(t, err)
	assert.True(t, repoerr.IsNotFound(err))
}
