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
	"github.com/bancalarisantiago/workfolio/internal/storage"
	"github.com/bancalarisantiago/workfolio/internal/user/domain"
	"github.com/bancalarisantiago/workfolio/internal/user/repository"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

const userID = "33333333-3333-3333-3333-333333333333"

func setup(t *testing.T, public bool) (*AvatarService, domain.Repository, *storage.MemClient, *clock.FakeClock) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.UserProfile{}, &domain.EmployeeProfile{}, &domain.UserPreference{}))

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	repo := repository.NewRepository(conn, clk)
	mem := storage.NewMemClient(clk)
	cfg := config.StorageConfig{
		AvatarsBucket: "avatars",
		PublicAvatars: public,
		AvatarURLTTL:  300 * time.Second,
	}
	svc := NewAvatarService(repo, mem, cfg, clk, zaptest.NewLogger(t))

	_, err = repo.CreateUserProfile(context.Background(), domain.UserProfile{UserID: userID, FullName: "Ana Diaz"})
	require.NoError(t, err)

	return svc, repo, mem, clk
}

func TestUploadAvatarSetsPathPointer(t *testing.T) {
	svc, _, mem, clk := setup(t, false)

	profile, err := svc.UploadAvatar(context.Background(), userID, AvatarUploadInput{
		FileName:    "Mi Foto.PNG",
		ContentType: "image/png",
		Content:     bytes.NewReader([]byte("png")),
	})
	require.NoError(t, err)

	require.NotNil(t, profile.AvatarURL)
	want := "users/" + userID + "/"
	assert.True(t, strings.HasPrefix(*profile.AvatarURL, want))
	assert.True(t, strings.HasSuffix(*profile.AvatarURL, "-mi-foto.png"))

	_, stored := mem.Object("avatars", *profile.AvatarURL)
	assert.True(t, stored)

	signed, err := svc.CreateAvatarSignedURL(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, signed.ExpiresAt.After(clk.Now()))
}

func TestUploadAvatarPublicPointerIsURL(t *testing.T) {
	svc, _, _, _ := setup(t, true)

	profile, err := svc.UploadAvatar(context.Background(), userID, AvatarUploadInput{
		FileName: "foto.png",
		Content:  bytes.NewReader([]byte("png")),
	})
	require.NoError(t, err)

	require.NotNil(t, profile.AvatarURL)
	assert.True(t, strings.HasPrefix(*profile.AvatarURL, "mem://public/avatars/"))
}

func TestUploadAvatarReplacesPrevious(t *testing.T) {
	svc, _, mem, clk := setup(t, false)
	ctx := context.Background()

	first, err := svc.UploadAvatar(ctx, userID, AvatarUploadInput{
		FileName: "a.png",
		Content:  bytes.NewReader([]byte("a")),
	})
	require.NoError(t, err)

	clk.Advance(time.Second)
	second, err := svc.UploadAvatar(ctx, userID, AvatarUploadInput{
		FileName: "b.png",
		Content:  bytes.NewReader([]byte("b")),
	})
	require.NoError(t, err)

	_, oldStored := mem.Object("avatars", *first.AvatarURL)
	assert.False(t, oldStored)
	_, newStored := mem.Object("avatars", *second.AvatarURL)
	assert.True(t, newStored)
}

func TestDeleteAvatarExternalURLSkipsStorage(t *testing.T) {
	svc, repo, mem, _ := setup(t, false)
	ctx := context.Background()

	external := "https://cdn.example.com/avatars/ana.png"
	_, err := repo.UpdateUserProfile(ctx, userID, domain.Patch{"avatar_url": external})
	require.NoError(t, err)

	profile, err := svc.DeleteAvatar(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 0, mem.CallCount("remove"))
	assert.Nil(t, profile.AvatarURL)
}

func TestDeleteAvatarRemovesStoredObject(t *testing.T) {
	svc, _, mem, _ := setup(t, false)
	ctx := context.Background()

	uploaded, err := svc.UploadAvatar(ctx, userID, AvatarUploadInput{
		FileName: "a.png",
		Content:  bytes.NewReader([]byte("a")),
	})
	require.NoError(t, err)

	profile, err := svc.DeleteAvatar(ctx, userID)
	require.NoError(t, err)

	assert.Nil(t, profile.AvatarURL)
	_, stored := mem.Object("avatars", *uploaded.AvatarURL)
	assert.False(t, stored)
}

func TestCreateAvatarSignedURLExternalIs404(t *testing.T) {
	svc, repo, _, _ := setup(t, false)
	ctx := context.Background()

	_, err := repo.UpdateUserProfile(ctx, userID, domain.Patch{"avatar_url": "https://cdn.example.com/a.png"})
	require.NoError(t, err)

	_, err = svc.CreateAvatarSignedURL(ctx, userID)
	require.Error(t, err)
	assert.True(t, repoerr.IsNotFound(err))
}
