package employee

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/config"
	docdomain "github.com/bancalarisantiago/workfolio/internal/document/domain"
	"github.com/bancalarisantiago/workfolio/internal/storage"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

// DocumentRecord is one inbox row: a document joined to its latest file.
type DocumentRecord struct {
	Document    docdomain.Document      `json:"document"`
	File        *docdomain.DocumentFile `json:"file"`
	CategoryKey string                  `json:"category_key"`
	Notes       string                  `json:"notes"`
}

// DocumentGroup buckets records under one category key. Every configured
// category is present even when empty.
type DocumentGroup struct {
	Key     string           `json:"key"`
	Label   string           `json:"label"`
	Records []DocumentRecord `json:"records"`
}

// DocumentsView is the rendered inbox state. Refresh never fails; any
// failure lands in Error with Groups left from the last good refresh.
type DocumentsView struct {
	Groups      []DocumentGroup `json:"groups"`
	Error       string          `json:"error,omitempty"`
	RefreshedAt time.Time       `json:"refreshed_at"`
}

// DocumentsService assembles the per-employee document inbox.
type DocumentsService struct {
	resolver   *ContextResolver
	docs       docdomain.Repository
	store      storage.Client
	cfg        config.StorageConfig
	categories *config.CategoryConfigHolder
	clock      clock.Clock
	log        *zap.Logger

	mu    sync.Mutex
	views map[string]DocumentsView
}

func NewDocumentsService(resolver *ContextResolver, docs docdomain.Repository, store storage.Client, cfg config.StorageConfig, categories *config.CategoryConfigHolder, clk clock.Clock, log *zap.Logger) *DocumentsService {
	return &DocumentsService{
		resolver:   resolver,
		docs:       docs,
		store:      store,
		cfg:        cfg,
		categories: categories,
		clock:      clk,
		log:        log,
		views:      make(map[string]DocumentsView),
	}
}

// LatestFiles maps each document id to its single current file. Higher
// version wins; equal versions fall back to the later upload timestamp;
// still equal keeps the first seen, so input order decides.
func LatestFiles(files []docdomain.DocumentFile) map[string]docdomain.DocumentFile {
	latest := make(map[string]docdomain.DocumentFile, len(files))
	for _, file := range files {
		if file.DocumentID == nil {
			continue
		}
		id := *file.DocumentID
		current, ok := latest[id]
		if !ok {
			latest[id] = file
			continue
		}
		if file.Version > current.Version {
			latest[id] = file
			continue
		}
		if file.Version == current.Version && file.UploadedAt.After(current.UploadedAt) {
			latest[id] = file
		}
	}
	return latest
}

func metadataString(doc docdomain.Document, key string) string {
	if doc.Metadata == nil {
		return ""
	}
	if v, ok := doc.Metadata[key].(string); ok {
		return v
	}
	return ""
}

// BuildGroups shapes documents plus their files into the grouped inbox.
// Records inside a group sort by upload time descending with file-less
// documents last.
func BuildGroups(cfg config.CategoryConfig, docs []docdomain.Document, files []docdomain.DocumentFile) []DocumentGroup {
	latest := LatestFiles(files)

	records := make([]DocumentRecord, 0, len(docs))
	for _, doc := range docs {
		record := DocumentRecord{
			Document:    doc,
			CategoryKey: cfg.Normalize(metadataString(doc, "category")),
			Notes:       metadataString(doc, "notes"),
		}
		if file, ok := latest[doc.ID]; ok {
			f := file
			record.File = &f
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].File, records[j].File
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.UploadedAt.After(b.UploadedAt)
		}
	})

	byKey := make(map[string][]DocumentRecord, len(cfg.Categories))
	for _, record := range records {
		byKey[record.CategoryKey] = append(byKey[record.CategoryKey], record)
	}

	groups := make([]DocumentGroup, 0, len(cfg.Categories))
	for _, category := range cfg.Categories {
		bucket := byKey[category.Key]
		if bucket == nil {
			bucket = []DocumentRecord{}
		}
		groups = append(groups, DocumentGroup{
			Key:     category.Key,
			Label:   category.Label,
			Records: bucket,
		})
	}
	return groups
}

// Refresh rebuilds the inbox for the user. Errors never propagate; they
// surface through the returned view's Error field. Concurrent refreshes
// for the same user resolve last-write-wins.
func (s *DocumentsService) Refresh(ctx context.Context, userID string) DocumentsView {
	view := DocumentsView{RefreshedAt: s.clock.Now()}

	ec, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return s.storeFailure(userID, view, err)
	}

	docs, err := s.docs.ListDocumentsForEmployee(ctx, ec.CompanyID, ec.EmployeeID)
	if err != nil {
		return s.storeFailure(userID, view, err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	files, err := s.docs.GetDocumentFilesByDocumentIDs(ctx, ec.CompanyID, ids)
	if err != nil {
		return s.storeFailure(userID, view, err)
	}

	view.Groups = BuildGroups(s.categories.Current(), docs, files)

	s.mu.Lock()
	s.views[userID] = view
	s.mu.Unlock()
	return view
}

func (s *DocumentsService) storeFailure(userID string, view DocumentsView, err error) DocumentsView {
	s.log.Warn("document inbox refresh failed",
		zap.String("user_id", userID),
		zap.Error(err))
	view.Error = err.Error()

	s.mu.Lock()
	if previous, ok := s.views[userID]; ok {
		view.Groups = previous.Groups
	}
	s.views[userID] = view
	s.mu.Unlock()
	return view
}

// View returns the last refreshed state for the user, if any.
func (s *DocumentsService) View(userID string) (DocumentsView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.views[userID]
	return view, ok
}

// Download mints a short-lived forced-download URL for the document's
// latest file, named after the document title.
func (s *DocumentsService) Download(ctx context.Context, userID, documentID string) (storage.SignedURL, error) {
	ec, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return storage.SignedURL{}, err
	}

	doc, err := s.docs.GetDocumentByID(ctx, ec.CompanyID, documentID)
	if err != nil {
		return storage.SignedURL{}, err
	}
	if doc.EmployeeID == nil || *doc.EmployeeID != ec.EmployeeID {
		return storage.SignedURL{}, repoerr.NotFound("Document not found")
	}

	files, err := s.docs.ListDocumentFiles(ctx, ec.CompanyID, doc.ID)
	if err != nil {
		return storage.SignedURL{}, err
	}
	latest, ok := LatestFiles(files)[doc.ID]
	if !ok {
		return storage.SignedURL{}, repoerr.NotFound("The document has no file attached")
	}

	return s.store.CreateSignedURL(ctx, s.cfg.DocumentsBucket, latest.FilePath, storage.SignedURLOptions{
		ExpiresIn: s.cfg.DocumentURLTTL,
		Download:  true,
		FileName:  storage.SanitizeFileName(doc.Title),
	})
}
