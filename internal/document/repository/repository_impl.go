package repository

import (
	"context"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/document/domain"
	"github.com/bancalarisantiago/workfolio/pkg/db"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
	"github.com/bancalarisantiago/workfolio/pkg/scope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewRepository(conn *gorm.DB, clk clock.Clock) domain.Repository {
	return &repository{db: conn, clock: clk}
}

func (r *repository) ListDocuments(ctx context.Context, companyID string) ([]domain.Document, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	findErr := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("issued_at desc").
		Find(&docs).Error
	return repoerr.List(docs, findErr, "Unable to load documents")
}

func (r *repository) ListDocumentsForEmployee(ctx context.Context, companyID, employeeID string) ([]domain.Document, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	employeeID, err = scope.Identifier(employeeID, "employeeId")
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("issued_at desc").
		Find(&docs).Error
	return repoerr.List(docs, findErr, "Unable to load employee documents")
}

func (r *repository) GetDocumentByID(ctx context.Context, companyID, documentID string) (*domain.Document, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	documentID, err = scope.Identifier(documentID, "documentId")
	if err != nil {
		return nil, err
	}

	var doc domain.Document
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, documentID).
		First(&doc).Error
	row, err := repoerr.MaybeSingle(&doc, findErr, "Unable to load document")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Document not found")
	}
	return row, nil
}

func (r *repository) CreateDocument(ctx context.Context, companyID string, doc domain.Document) (*domain.Document, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	doc.CompanyID = companyID
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := r.clock.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	if doc.IssuedAt.IsZero() {
		doc.IssuedAt = now
	}
	if doc.Status == "" {
		doc.Status = domain.StatusPending
	}

	createErr := r.db.WithContext(ctx).Create(&doc).Error
	return repoerr.Mutation(&doc, createErr, "Unable to create document")
}

func (r *repository) ReplaceDocument(ctx context.Context, companyID, documentID string, doc domain.Document) (*domain.Document, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	documentID, err = scope.Identifier(documentID, "documentId")
	if err != nil {
		return nil, err
	}

	doc.ID = documentID
	doc.CompanyID = companyID
	doc.UpdatedAt = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("company_id = ? AND id = ?", companyID, documentID).
		Select("*").Omit("id", "created_at").
		Updates(&doc)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to replace document")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Document not found")
	}
	return r.GetDocumentByID(ctx, companyID, documentID)
}

func (r *repository) UpdateDocument(ctx context.Context, companyID, documentID string, patch domain.Patch) (*domain.Document, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	documentID, err = scope.Identifier(documentID, "documentId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "created_at")
	updates["updated_at"] = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("company_id = ? AND id = ?", companyID, documentID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update document")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Document not found")
	}
	return r.GetDocumentByID(ctx, companyID, documentID)
}

func (r *repository) DeleteDocument(ctx context.Context, companyID, documentID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	documentID, err = scope.Identifier(documentID, "documentId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, documentID).
		Delete(&domain.Document{}).Error
	return repoerr.NoError(delErr, "Unable to delete document")
}

func (r *repository) ListCategories(ctx context.Context, companyID string) ([]domain.DocumentCategory, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	var categories []domain.DocumentCategory
	findErr := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("sort_order asc, created_at asc").
		Find(&categories).Error
	return repoerr.List(categories, findErr, "Unable to load document categories")
}

func (r *repository) GetCategoryByID(ctx context.Context, companyID, categoryID string) (*domain.DocumentCategory, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	categoryID, err = scope.Identifier(categoryID, "categoryId")
	if err != nil {
		return nil, err
	}

	var category domain.DocumentCategory
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, categoryID).
		First(&category).Error
	row, err := repoerr.MaybeSingle(&category, findErr, "Unable to load document category")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Document category not found")
	}
	return row, nil
}

func (r *repository) CreateCategory(ctx context.Context, companyID string, category domain.DocumentCategory) (*domain.DocumentCategory, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	category.CompanyID = companyID
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = r.clock.Now()
	}

	createErr := r.db.WithContext(ctx).Create(&category).Error
	return repoerr.Mutation(&category, createErr, "Unable to create document category")
}

func (r *repository) ReplaceCategory(ctx context.Context, companyID, categoryID string, category domain.DocumentCategory) (*domain.DocumentCategory, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	categoryID, err = scope.Identifier(categoryID, "categoryId")
	if err != nil {
		return nil, err
	}

	category.ID = categoryID
	category.CompanyID = companyID
	res := r.db.WithContext(ctx).
		Model(&domain.DocumentCategory{}).
		Where("company_id = ? AND id = ?", companyID, categoryID).
		Select("*").Omit("id", "created_at").
		Updates(&category)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to replace document category")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Document category not found")
	}
	return r.GetCategoryByID(ctx, companyID, categoryID)
}

func (r *repository) UpdateCategory(ctx context.Context, companyID, categoryID string, patch domain.Patch) (*domain.DocumentCategory, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	categoryID, err = scope.Identifier(categoryID, "categoryId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "created_at")
	res := r.db.WithContext(ctx).
		Model(&domain.DocumentCategory{}).
		Where("company_id = ? AND id = ?", companyID, categoryID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update document category")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Document category not found")
	}
	return r.GetCategoryByID(ctx, companyID, categoryID)
}

func (r *repository) DeleteCategory(ctx context.Context, companyID, categoryID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	categoryID, err = scope.Identifier(categoryID, "categoryId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, categoryID).
		Delete(&domain.DocumentCategory{}).Error
	return repoerr.NoError(delErr, "Unable to delete document category")
}

func (r *repository) ListTemplates(ctx context.Context, companyID string) ([]domain.DocumentTemplate, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	var templates []domain.DocumentTemplate
	findErr := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at asc").
		Find(&templates).Error
	return repoerr.List(templates, findErr, "Unable to load document templates")
}

func (r *repository) GetTemplateByID(ctx context.Context, companyID, templateID string) (*domain.DocumentTemplate, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	templateID, err = scope.Identifier(templateID, "templateId")
	if err != nil {
		return nil, err
	}

	var tpl domain.DocumentTemplate
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, templateID).
		First(&tpl).Error
	row, err := repoerr.MaybeSingle(&tpl, findErr, "Unable to load document template")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Document template not found")
	}
	return row, nil
}

func (r *repository) CreateTemplate(ctx context.Context, companyID string, tpl domain.DocumentTemplate) (*domain.DocumentTemplate, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	tpl.CompanyID = companyID
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	now := r.clock.Now()
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	createErr := r.db.WithContext(ctx).Create(&tpl).Error
	return repoerr.Mutation(&tpl, createErr, "Unable to create document template")
}

func (r *repository) ReplaceTemplate(ctx context.Context, companyID, templateID string, tpl domain.DocumentTemplate) (*domain.DocumentTemplate, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	templateID, err = scope.Identifier(templateID, "templateId")
	if err != nil {
		return nil, err
	}

	tpl.ID = templateID
	tpl.CompanyID = companyID
	tpl.UpdatedAt = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.DocumentTemplate{}).
		Where("company_id = ? AND id = ?", companyID, templateID).
		Select("*").Omit("id", "created_at").
		Updates(&tpl)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to replace document template")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Document template not found")
	}
	return r.GetTemplateByID(ctx, companyID, templateID)
}

func (r *repository) UpdateTemplate(ctx context.Context, companyID, templateID string, patch domain.Patch) (*domain.DocumentTemplate, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	templateID, err = scope.Identifier(templateID, "templateId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "created_at")
	updates["updated_at"] = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.DocumentTemplate{}).
		Where("company_id = ? AND id = ?", companyID, templateID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update document template")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Document template not found")
	}
	return r.GetTemplateByID(ctx, companyID, templateID)
}

func (r *repository) DeleteTemplate(ctx context.Context, companyID, templateID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	templateID, err = scope.Identifier(templateID, "templateId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, templateID).
		Delete(&domain.DocumentTemplate{}).Error
	return repoerr.NoError(delErr, "Unable to delete document template")
}

func (r *repository) ListDocumentFiles(ctx context.Context, companyID, documentID string) ([]domain.DocumentFile, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	documentID, err = scope.Identifier(documentID, "documentId")
	if err != nil {
		return nil, err
	}

	var files []domain.DocumentFile
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND document_id = ?", companyID, documentID).
		Order("version desc, uploaded_at desc").
		Find(&files).Error
	return repoerr.List(files, findErr, "Unable to load document files")
}

func (r *repository) GetDocumentFilesByDocumentIDs(ctx context.Context, companyID string, documentIDs []string) ([]domain.DocumentFile, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	if len(documentIDs) == 0 {
		return []domain.DocumentFile{}, nil
	}

	var files []domain.DocumentFile
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND document_id IN ?", companyID, documentIDs).
		Order("version desc, uploaded_at desc").
		Find(&files).Error
	return repoerr.List(files, findErr, "Unable to load document files")
}

func (r *repository) GetDocumentFileByID(ctx context.Context, companyID, fileID string) (*domain.DocumentFile, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	fileID, err = scope.Identifier(fileID, "fileId")
	if err != nil {
		return nil, err
	}

	var file domain.DocumentFile
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, fileID).
		First(&file).Error
	row, err := repoerr.MaybeSingle(&file, findErr, "Unable to load document file")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Document file not found")
	}
	return row, nil
}

// NextDocumentFileVersion computes max(version)+1 for the document, or 1
// when no files exist. The value is advisory; CreateDocumentFile still
// hits the unique (document_id, version) index under concurrency.
func (r *repository) NextDocumentFileVersion(ctx context.Context, companyID, documentID string) (int, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return 0, err
	}
	documentID, err = scope.Identifier(documentID, "documentId")
	if err != nil {
		return 0, err
	}

	var current int
	queryErr := r.db.WithContext(ctx).
		Model(&domain.DocumentFile{}).
		Where("company_id = ? AND document_id = ?", companyID, documentID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&current).Error
	if queryErr != nil {
		return 0, repoerr.Wrap(queryErr, "Unable to resolve next document file version")
	}
	return current + 1, nil
}

func (r *repository) CreateDocumentFile(ctx context.Context, companyID string, file domain.DocumentFile) (*domain.DocumentFile, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	file.CompanyID = companyID
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	if file.Version == 0 {
		file.Version = 1
	}
	if file.UploadedAt.IsZero() {
		file.UploadedAt = r.clock.Now()
	}

	createErr := r.db.WithContext(ctx).Create(&file).Error
	if createErr != nil && db.IsDuplicateKeyErr(createErr) {
		return nil, repoerr.Wrap(createErr, "Document file version already exists")
	}
	return repoerr.Mutation(&file, createErr, "Unable to create document file")
}

func (r *repository) DeleteDocumentFile(ctx context.Context, companyID, fileID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	fileID, err = scope.Identifier(fileID, "fileId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, fileID).
		Delete(&domain.DocumentFile{}).Error
	return repoerr.NoError(delErr, "Unable to delete document file")
}
