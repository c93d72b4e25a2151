// Package domain contains persistence models for company documents and
// their versioned file attachments.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// DocumentStatus is the acknowledgment state of a document. Transitions
// are one-directional: pending moves to exactly one terminal state.
type DocumentStatus string

const (
	StatusPending  DocumentStatus = "pending"
	StatusSigned   DocumentStatus = "signed"
	StatusRejected DocumentStatus = "rejected"
	StatusExpired  DocumentStatus = "expired"
)

// CanTransition reports whether moving from s to next is allowed.
func (s DocumentStatus) CanTransition(next DocumentStatus) bool {
	if s != StatusPending {
		return false
	}
	switch next {
	case StatusSigned, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// DocumentCategory is a company-defined label for bucketing documents.
type DocumentCategory struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID string    `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	Key       string    `gorm:"type:text;not null" json:"key"`
	Label     string    `gorm:"type:text;not null" json:"label"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (DocumentCategory) TableName() string { return "document_categories" }

// DocumentTemplate is a reusable document blueprint. Templates carry
// their own file attachments through DocumentFile rows keyed by
// template_id instead of document_id.
type DocumentTemplate struct {
	ID          string            `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID   string            `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	Title       string            `gorm:"type:text;not null" json:"title"`
	Description *string           `gorm:"type:text" json:"description"`
	CategoryKey *string           `gorm:"column:category_key;type:text" json:"category_key"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	IsActive    bool              `gorm:"not null;default:true" json:"is_active"`
	CreatedBy   *string           `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

func (DocumentTemplate) TableName() string { return "document_templates" }

// Document is a record requiring employee acknowledgment or signature.
// Metadata carries the category key, free-form notes and origin.
type Document struct {
	ID         string            `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID  string            `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	EmployeeID *string           `gorm:"column:employee_id;type:uuid;index" json:"employee_id"`
	TemplateID *string           `gorm:"column:template_id;type:uuid" json:"template_id"`
	Title      string            `gorm:"type:text;not null" json:"title"`
	Status     DocumentStatus    `gorm:"type:text;not null;default:pending" json:"status"`
	IssuedAt   time.Time         `gorm:"column:issued_at;not null" json:"issued_at"`
	SignedAt   *time.Time        `gorm:"column:signed_at" json:"signed_at"`
	RejectedAt *time.Time        `gorm:"column:rejected_at" json:"rejected_at"`
	ExpiredAt  *time.Time        `gorm:"column:expired_at" json:"expired_at"`
	ExpiresAt  *time.Time        `gorm:"column:expires_at" json:"expires_at"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt  time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"not null" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

// DocumentFile is one versioned binary attachment. Versions are unique
// per document; concurrent uploads retry on the constraint.
type DocumentFile struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID   string    `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	DocumentID  *string   `gorm:"column:document_id;type:uuid;uniqueIndex:ux_document_files_version" json:"document_id"`
	TemplateID  *string   `gorm:"column:template_id;type:uuid" json:"template_id"`
	FilePath    string    `gorm:"column:file_path;type:text;not null" json:"file_path"`
	FileName    string    `gorm:"column:file_name;type:text;not null" json:"file_name"`
	ContentType *string   `gorm:"column:content_type;type:text" json:"content_type"`
	SizeBytes   *int64    `gorm:"column:size_bytes" json:"size_bytes"`
	Checksum    *string   `gorm:"type:text" json:"checksum"`
	Version     int       `gorm:"not null;default:1;uniqueIndex:ux_document_files_version" json:"version"`
	UploadedBy  *string   `gorm:"column:uploaded_by;type:uuid" json:"uploaded_by"`
	UploadedAt  time.Time `gorm:"column:uploaded_at;not null" json:"uploaded_at"`
}

func (DocumentFile) TableName() string { return "document_files" }
