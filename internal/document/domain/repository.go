package domain

import "context"

// Patch is a partial update keyed by column name.
type Patch = map[string]any

type Repository interface {
	ListDocuments(ctx context.Context, companyID string) ([]Document, error)
	ListDocumentsForEmployee(ctx context.Context, companyID, employeeID string) ([]Document, error)
	GetDocumentByID(ctx context.Context, companyID, documentID string) (*Document, error)
	CreateDocument(ctx context.Context, companyID string, doc Document) (*Document, error)
	ReplaceDocument(ctx context.Context, companyID, documentID string, doc Document) (*Document, error)
	UpdateDocument(ctx context.Context, companyID, documentID string, patch Patch) (*Document, error)
	DeleteDocument(ctx context.Context, companyID, documentID string) error

	ListCategories(ctx context.Context, companyID string) ([]DocumentCategory, error)
	GetCategoryByID(ctx context.Context, companyID, categoryID string) (*DocumentCategory, error)
	CreateCategory(ctx context.Context, companyID string, category DocumentCategory) (*DocumentCategory, error)
	ReplaceCategory(ctx context.Context, companyID, categoryID string, category DocumentCategory) (*DocumentCategory, error)
	UpdateCategory(ctx context.Context, companyID, categoryID string, patch Patch) (*DocumentCategory, error)
	DeleteCategory(ctx context.Context, companyID, categoryID string) error

	ListTemplates(ctx context.Context, companyID string) ([]DocumentTemplate, error)
	GetTemplateByID(ctx context.Context, companyID, templateID string) (*DocumentTemplate, error)
	CreateTemplate(ctx context.Context, companyID string, tpl DocumentTemplate) (*DocumentTemplate, error)
	ReplaceTemplate(ctx context.Context, companyID, templateID string, tpl DocumentTemplate) (*DocumentTemplate, error)
	UpdateTemplate(ctx context.Context, companyID, templateID string, patch Patch) (*DocumentTemplate, error)
	DeleteTemplate(ctx context.Context, companyID, templateID string) error

	ListDocumentFiles(ctx context.Context, companyID, documentID string) ([]DocumentFile, error)
	// GetDocumentFilesByDocumentIDs batch-loads files for many documents,
	// ordered version desc then uploaded_at desc. Empty input returns an
	// empty slice without touching the database.
	GetDocumentFilesByDocumentIDs(ctx context.Context, companyID string, documentIDs []string) ([]DocumentFile, error)
	GetDocumentFileByID(ctx context.Context, companyID, fileID string) (*DocumentFile, error)
	NextDocumentFileVersion(ctx context.Context, companyID, documentID string) (int, error)
	CreateDocumentFile(ctx context.Context, companyID string, file DocumentFile) (*DocumentFile, error)
	DeleteDocumentFile(ctx context.Context, companyID, fileID string) error
}
