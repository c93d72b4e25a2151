// Package service hosts user-facing storage workflows.
package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/config"
	"github.com/bancalarisantiago/workfolio/internal/storage"
	"github.com/bancalarisantiago/workfolio/internal/user/domain"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
	"github.com/bancalarisantiago/workfolio/pkg/scope"
)

// AvatarService manages profile pictures. The user profile row stores
// either a bucket-relative path or, when public avatars are enabled, a
// deterministic public URL. Externally hosted URLs are left untouched.
type AvatarService struct {
	users domain.Repository
	store storage.Client
	cfg   config.StorageConfig
	clock clock.Clock
	log   *zap.Logger
}

func NewAvatarService(users domain.Repository, store storage.Client, cfg config.StorageConfig, clk clock.Clock, log *zap.Logger) *AvatarService {
	return &AvatarService{users: users, store: store, cfg: cfg, clock: clk, log: log}
}

// AvatarUploadInput carries the raw upload. The zero value removes the
// previous stored avatar once the new one is in place; set KeepPrevious
// to retain it.
type AvatarUploadInput struct {
	FileName     string
	ContentType  string
	Content      io.Reader
	KeepPrevious bool
}

// storedAvatarPath extracts the bucket-relative path behind a profile's
// avatar pointer. Absolute http(s) URLs are externally hosted and yield
// an empty path.
func storedAvatarPath(profile *domain.UserProfile) string {
	if profile == nil || profile.AvatarURL == nil {
		return ""
	}
	value := *profile.AvatarURL
	if value == "" || storage.IsExternalURL(value) {
		return ""
	}
	return value
}

func (s *AvatarService) objectPath(userID, fileName string) string {
	return fmt.Sprintf("users/%s/%d-%s", userID, s.clock.Now().UnixMilli(), storage.SanitizeFileName(fileName))
}

// UploadAvatar stores the new image, removes the previous object, then
// points the profile at the new path. The previous object is only
// touched after the new upload succeeds; a failed removal surfaces and
// leaves the pointer on the old path.
func (s *AvatarService) UploadAvatar(ctx context.Context, userID string, input AvatarUploadInput) (*domain.UserProfile, error) {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return nil, err
	}
	if input.Content == nil {
		return nil, repoerr.Invalid("An avatar file must be provided.")
	}

	profile, err := s.users.GetUserProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	previousPath := storedAvatarPath(profile)

	objectPath := s.objectPath(userID, input.FileName)
	_, err = s.store.Upload(ctx, s.cfg.AvatarsBucket, objectPath, input.Content, storage.UploadOptions{
		ContentType: input.ContentType,
		Upsert:      true,
	})
	if err != nil {
		return nil, err
	}

	if !input.KeepPrevious && previousPath != "" && previousPath != objectPath {
		if _, removeErr := s.store.Remove(ctx, s.cfg.AvatarsBucket, []string{previousPath}); removeErr != nil {
			s.log.Warn("previous avatar left behind",
				zap.String("user_id", userID),
				zap.String("path", previousPath),
				zap.Error(removeErr))
			return nil, removeErr
		}
	}

	pointer := objectPath
	if s.cfg.PublicAvatars {
		pointer = s.store.PublicURL(s.cfg.AvatarsBucket, objectPath)
	}

	return s.users.UpdateUserProfile(ctx, userID, domain.Patch{
		"avatar_url": pointer,
	})
}

// CreateAvatarSignedURL issues a short-lived read URL for the stored
// avatar. Externally hosted or missing avatars yield 404.
func (s *AvatarService) CreateAvatarSignedURL(ctx context.Context, userID string) (storage.SignedURL, error) {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return storage.SignedURL{}, err
	}

	profile, err := s.users.GetUserProfileByID(ctx, userID)
	if err != nil {
		return storage.SignedURL{}, err
	}
	path := storedAvatarPath(profile)
	if path == "" {
		return storage.SignedURL{}, repoerr.NotFound("No stored avatar available for this user")
	}

	return s.store.CreateSignedURL(ctx, s.cfg.AvatarsBucket, path, storage.SignedURLOptions{
		ExpiresIn: s.cfg.AvatarURLTTL,
	})
}

// DeleteAvatar removes the stored object when one exists and clears the
// profile pointer either way. External URLs skip the storage call.
func (s *AvatarService) DeleteAvatar(ctx context.Context, userID string) (*domain.UserProfile, error) {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return nil, err
	}

	profile, err := s.users.GetUserProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if path := storedAvatarPath(profile); path != "" {
		if _, err := s.store.Remove(ctx, s.cfg.AvatarsBucket, []string{path}); err != nil {
			return nil, err
		}
	}

	return s.users.UpdateUserProfile(ctx, userID, domain.Patch{
		"avatar_url": nil,
	})
}
