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
	"github.com/bancalarisantiago/workfolio/internal/user/domain"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

func setupRepo(t *testing.T) domain.Repository {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.UserProfile{}, &domain.EmployeeProfile{}, &domain.UserPreference{}))

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	return NewRepository(conn, clk)
}

func TestEnsureEmployeeProfileForMemberCreatesOnce(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first, err := repo.EnsureEmployeeProfileForMember(ctx, "company-1", "member-1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "company-1", first.CompanyID)
	assert.True(t, first.IsActive)

	second, err := repo.EnsureEmployeeProfileForMember(ctx, "company-1", "member-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	profiles, err := repo.ListEmployeeProfiles(ctx, "company-1")
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestEnsureEmployeeProfileRequiresScope(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.EnsureEmployeeProfileForMember(context.Background(), "", "member-1")
	require.Error(t, err)
	assert.True(t, repoerr.IsInvalid(err))
}

func TestGetEmployeeProfileByMemberIDAbsentIsNil(t *testing.T) {
	repo := setupRepo(t)

	profile, err := repo.GetEmployeeProfileByMemberID(context.Background(), "member-missing")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestUserPreferencesRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.CreateUserPreferences(ctx, domain.UserPreference{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeSystem, created.Theme)

	updated, err := repo.UpdateUserPreferences(ctx, "user-1", domain.Patch{"theme": domain.ThemeDark})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, updated.Theme)

	_, err = repo.UpdateUserPreferences(ctx, "user-unknown", domain.Patch{"theme": domain.ThemeDark})
	require.Error(t, err)
	assert.True(t, repoerr.IsNotFound(err))
}

func TestUpdateUserProfilePatchCannotChangeKey(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.CreateUserProfile(ctx, domain.UserProfile{UserID: "user-1", FullName: "Ana Diaz"})
	require.NoError(t, err)

	updated, err := repo.UpdateUserProfile(ctx, "user-1", domain.Patch{
		"user_id":   "user-2",
		"full_name": "Ana B. Diaz",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", updated.UserID)
	assert.Equal(t, "Ana B. Diaz", updated.FullName)
}
