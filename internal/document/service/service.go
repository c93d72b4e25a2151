// Package service hosts the document file workflows that combine the
// document repository with object storage.
package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/config"
	"github.com/bancalarisantiago/workfolio/internal/document/domain"
	"github.com/bancalarisantiago/workfolio/internal/storage"
	"github.com/bancalarisantiago/workfolio/pkg/db"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
	"github.com/bancalarisantiago/workfolio/pkg/scope"
)

// versionRetries bounds the insert loop when concurrent uploads collide
// on the unique (document_id, version) index.
const versionRetries = 3

// FileService uploads versioned document attachments and issues signed
// URLs for them. Versions are append-only; uploading never deletes a
// previous version.
type FileService struct {
	docs  domain.Repository
	store storage.Client
	cfg   config.StorageConfig
	clock clock.Clock
	log   *zap.Logger
}

func NewFileService(docs domain.Repository, store storage.Client, cfg config.StorageConfig, clk clock.Clock, log *zap.Logger) *FileService {
	return &FileService{docs: docs, store: store, cfg: cfg, clock: clk, log: log}
}

// FileUploadInput carries the raw upload for one new document version.
type FileUploadInput struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	Checksum    string
	UploadedBy  string
	Content     io.ReadSeeker
}

func objectPath(companyID, documentID string, version int, fileName string) string {
	return fmt.Sprintf("company/%s/documents/%s/%d/%s", companyID, documentID, version, storage.SanitizeFileName(fileName))
}

// UploadFile stores the bytes under the next version's path and records
// the DocumentFile row. When a concurrent upload claims the same version
// first, the insert fails on the unique index and the whole sequence is
// retried with a freshly computed version.
func (s *FileService) UploadFile(ctx context.Context, companyID, documentID string, input FileUploadInput) (*domain.DocumentFile, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	documentID, err = scope.Identifier(documentID, "documentId")
	if err != nil {
		return nil, err
	}
	if input.Content == nil {
		return nil, repoerr.Invalid("A document file must be provided.")
	}

	doc, err := s.docs.GetDocumentByID(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < versionRetries; attempt++ {
		version, err := s.docs.NextDocumentFileVersion(ctx, companyID, documentID)
		if err != nil {
			return nil, err
		}

		if attempt > 0 {
			if _, err := input.Content.Seek(0, io.SeekStart); err != nil {
				return nil, repoerr.Wrap(err, "Unable to rewind document file content")
			}
		}

		path := objectPath(companyID, documentID, version, input.FileName)
		if _, err := s.store.Upload(ctx, s.cfg.DocumentsBucket, path, input.Content, storage.UploadOptions{
			ContentType: input.ContentType,
		}); err != nil {
			return nil, err
		}

		file := domain.DocumentFile{
			DocumentID: &doc.ID,
			FilePath:   path,
			FileName:   input.FileName,
			Version:    version,
			UploadedAt: s.clock.Now(),
		}
		if input.ContentType != "" {
			file.ContentType = &input.ContentType
		}
		if input.SizeBytes > 0 {
			size := input.SizeBytes
			file.SizeBytes = &size
		}
		if input.Checksum != "" {
			file.Checksum = &input.Checksum
		}
		if input.UploadedBy != "" {
			file.UploadedBy = &input.UploadedBy
		}

		created, createErr := s.docs.CreateDocumentFile(ctx, companyID, file)
		if createErr == nil {
			return created, nil
		}
		if !db.IsDuplicateKeyErr(createErr) {
			return nil, createErr
		}

		// Lost the version to a concurrent upload. Drop our orphaned
		// blob and try again with the next number.
		lastErr = createErr
		s.log.Warn("document file version conflict",
			zap.String("document_id", documentID),
			zap.Int("version", version))
		if _, removeErr := s.store.Remove(ctx, s.cfg.DocumentsBucket, []string{path}); removeErr != nil {
			s.log.Warn("orphaned document blob left behind",
				zap.String("path", path),
				zap.Error(removeErr))
		}
	}
	return nil, repoerr.Wrap(lastErr, "Unable to assign a document file version")
}

// CreateFileSignedURL resolves the file row first so a missing file is a
// 404 before any storage call, then issues a short-lived read URL.
func (s *FileService) CreateFileSignedURL(ctx context.Context, companyID, fileID string) (storage.SignedURL, error) {
	file, err := s.docs.GetDocumentFileByID(ctx, companyID, fileID)
	if err != nil {
		return storage.SignedURL{}, err
	}
	if file.FilePath == "" {
		return storage.SignedURL{}, repoerr.Invalid("The document file has no storage path.")
	}

	return s.store.CreateSignedURL(ctx, s.cfg.DocumentsBucket, file.FilePath, storage.SignedURLOptions{
		ExpiresIn: s.cfg.DocumentURLTTL,
		Download:  true,
		FileName:  file.FileName,
	})
}

// DeleteFileWithAsset removes the stored blob and then the row. A row
// without a storage path cannot be cleaned up and is rejected up front.
func (s *FileService) DeleteFileWithAsset(ctx context.Context, companyID, fileID string) error {
	file, err := s.docs.GetDocumentFileByID(ctx, companyID, fileID)
	if err != nil {
		return err
	}
	if file.FilePath == "" {
		return repoerr.Invalid("The document file has no storage path.")
	}

	if _, err := s.store.Remove(ctx, s.cfg.DocumentsBucket, []string{file.FilePath}); err != nil {
		return err
	}
	return s.docs.DeleteDocumentFile(ctx, companyID, file.ID)
}

// RemoveFileAssets bulk-deletes every stored blob for a document, used
// when the document itself is being purged. Rows are left to cascade.
func (s *FileService) RemoveFileAssets(ctx context.Context, companyID, documentID string) ([]string, error) {
	files, err := s.docs.ListDocumentFiles(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		if f.FilePath != "" {
			paths = append(paths, f.FilePath)
		}
	}
	return s.store.Remove(ctx, s.cfg.DocumentsBucket, paths)
}
