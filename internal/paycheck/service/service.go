// Package service hosts the paycheck file workflow. A paycheck keeps a
// single replaceable file pointer plus a metadata map that merges across
// uploads instead of being rewritten.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/config"
	"github.com/bancalarisantiago/workfolio/internal/paycheck/domain"
	"github.com/bancalarisantiago/workfolio/internal/storage"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
	"github.com/bancalarisantiago/workfolio/pkg/scope"
)

// Metadata keys tracked across uploads. Values survive partial updates
// unless the new upload supplies a replacement.
const (
	metaContentType    = "contentType"
	metaSize           = "size"
	metaChecksum       = "checksum"
	metaLastUploadedAt = "lastUploadedAt"
	metaLastRemovedAt  = "lastRemovedAt"
)

// FileService manages the one stored file behind each paycheck.
type FileService struct {
	paychecks domain.Repository
	store     storage.Client
	cfg       config.StorageConfig
	clock     clock.Clock
	log       *zap.Logger
}

func NewFileService(paychecks domain.Repository, store storage.Client, cfg config.StorageConfig, clk clock.Clock, log *zap.Logger) *FileService {
	return &FileService{paychecks: paychecks, store: store, cfg: cfg, clock: clk, log: log}
}

// FileUploadInput carries the raw upload. The zero value removes the
// previous stored file after the new one lands; set KeepPrevious to
// retain it.
type FileUploadInput struct {
	FileName     string
	ContentType  string
	SizeBytes    int64
	Checksum     string
	Content      io.Reader
	Metadata     map[string]any
	KeepPrevious bool
}

// MergeFileMetadata applies the merge-don't-replace contract: the old
// map is shallow-merged with the patch, lastUploadedAt is stamped, and
// contentType/size/checksum keep their prior values when the patch has
// none. Neither input is mutated.
func MergeFileMetadata(old datatypes.JSONMap, patch map[string]any, now time.Time) datatypes.JSONMap {
	merged := datatypes.JSONMap{}
	for k, v := range old {
		merged[k] = v
	}
	for k, v := range patch {
		if v == nil {
			continue
		}
		merged[k] = v
	}
	for _, key := range []string{metaContentType, metaSize, metaChecksum} {
		if _, supplied := patch[key]; !supplied {
			if prior, ok := old[key]; ok {
				merged[key] = prior
			}
		}
	}
	merged[metaLastUploadedAt] = now.UTC().Format(time.RFC3339)
	return merged
}

// storedFilePath extracts the bucket-relative path behind the paycheck's
// pointer. Absolute http(s) URLs are externally hosted and yield empty.
func storedFilePath(paycheck *domain.Paycheck) string {
	if paycheck == nil || paycheck.FilePath == nil {
		return ""
	}
	value := *paycheck.FilePath
	if value == "" || storage.IsExternalURL(value) {
		return ""
	}
	return value
}

func objectPath(companyID, paycheckID, fileName string) string {
	return fmt.Sprintf("company/%s/paychecks/%s/%s", companyID, paycheckID, storage.SanitizeFileName(fileName))
}

// UploadFile stores the new bytes, removes the previous object when the
// path changed, and updates the pointer plus merged metadata. The
// previous object is only touched after the new upload succeeds.
func (s *FileService) UploadFile(ctx context.Context, companyID, paycheckID string, input FileUploadInput) (*domain.Paycheck, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	paycheckID, err = scope.Identifier(paycheckID, "paycheckId")
	if err != nil {
		return nil, err
	}
	if input.Content == nil {
		return nil, repoerr.Invalid("A paycheck file must be provided.")
	}

	paycheck, err := s.paychecks.GetPaycheckByID(ctx, companyID, paycheckID)
	if err != nil {
		return nil, err
	}
	previousPath := storedFilePath(paycheck)

	path := objectPath(companyID, paycheckID, input.FileName)
	if _, err := s.store.Upload(ctx, s.cfg.PaychecksBucket, path, input.Content, storage.UploadOptions{
		ContentType: input.ContentType,
		Upsert:      true,
	}); err != nil {
		return nil, err
	}

	if !input.KeepPrevious && previousPath != "" && previousPath != path {
		if _, removeErr := s.store.Remove(ctx, s.cfg.PaychecksBucket, []string{previousPath}); removeErr != nil {
			s.log.Warn("previous paycheck file left behind",
				zap.String("paycheck_id", paycheckID),
				zap.String("path", previousPath),
				zap.Error(removeErr))
			return nil, removeErr
		}
	}

	patch := make(map[string]any, len(input.Metadata)+3)
	for k, v := range input.Metadata {
		patch[k] = v
	}
	if input.ContentType != "" {
		patch[metaContentType] = input.ContentType
	}
	if input.SizeBytes > 0 {
		patch[metaSize] = input.SizeBytes
	}
	if input.Checksum != "" {
		patch[metaChecksum] = input.Checksum
	}
	metadata := MergeFileMetadata(paycheck.Metadata, patch, s.clock.Now())

	return s.paychecks.UpdatePaycheck(ctx, companyID, paycheckID, domain.Patch{
		"file_path": path,
		"metadata":  metadata,
	})
}

// CreateSignedURL resolves the paycheck first so a missing row is a 404
// before any storage call, then issues a short-lived download URL.
func (s *FileService) CreateSignedURL(ctx context.Context, companyID, paycheckID string) (storage.SignedURL, error) {
	paycheck, err := s.paychecks.GetPaycheckByID(ctx, companyID, paycheckID)
	if err != nil {
		return storage.SignedURL{}, err
	}
	path := storedFilePath(paycheck)
	if path == "" {
		return storage.SignedURL{}, repoerr.NotFound("No stored file available for this paycheck")
	}

	return s.store.CreateSignedURL(ctx, s.cfg.PaychecksBucket, path, storage.SignedURLOptions{
		ExpiresIn: s.cfg.PaycheckURLTTL,
		Download:  true,
		FileName:  fmt.Sprintf("%s.pdf", paycheck.PeriodLabel),
	})
}

// DeleteFile removes the stored object, clears the pointer, and strips
// the file-derived metadata keys. A paycheck with no file pointer is a
// 404. External URLs skip the storage call; the pointer is cleared
// regardless.
func (s *FileService) DeleteFile(ctx context.Context, companyID, paycheckID string) (*domain.Paycheck, error) {
	paycheck, err := s.paychecks.GetPaycheckByID(ctx, companyID, paycheckID)
	if err != nil {
		return nil, err
	}
	if paycheck.FilePath == nil || *paycheck.FilePath == "" {
		return nil, repoerr.NotFound("No stored file available for this paycheck")
	}

	if path := storedFilePath(paycheck); path != "" {
		if _, err := s.store.Remove(ctx, s.cfg.PaychecksBucket, []string{path}); err != nil {
			return nil, err
		}
	}

	metadata := datatypes.JSONMap{}
	for k, v := range paycheck.Metadata {
		switch k {
		case metaContentType, metaSize, metaChecksum:
			continue
		}
		metadata[k] = v
	}
	metadata[metaLastRemovedAt] = s.clock.Now().UTC().Format(time.RFC3339)

	return s.paychecks.UpdatePaycheck(ctx, companyID, paycheckID, domain.Patch{
		"file_path": nil,
		"metadata":  metadata,
	})
}
