package domain

import "context"

// Patch is a partial update keyed by column name. A company_id key, if
// present, is discarded; the validated scope always wins.
type Patch = map[string]any

type Repository interface {
	ListCompanies(ctx context.Context) ([]Company, error)
	GetCompanyByID(ctx context.Context, id string) (*Company, error)
	CreateCompany(ctx context.Context, company Company) (*Company, error)
	ReplaceCompany(ctx context.Context, id string, company Company) (*Company, error)
	UpdateCompany(ctx context.Context, id string, patch Patch) (*Company, error)
	DeleteCompany(ctx context.Context, id string) error

	ListMembers(ctx context.Context, companyID string) ([]CompanyMember, error)
	GetMemberByID(ctx context.Context, companyID, memberID string) (*CompanyMember, error)
	GetActiveMembershipForUser(ctx context.Context, userID string) (*CompanyMember, error)
	CreateMember(ctx context.Context, companyID string, member CompanyMember) (*CompanyMember, error)
	ReplaceMember(ctx context.Context, companyID, memberID string, member CompanyMember) (*CompanyMember, error)
	UpdateMember(ctx context.Context, companyID, memberID string, patch Patch) (*CompanyMember, error)
	DeleteMember(ctx context.Context, companyID, memberID string) error

	ListAuditLogs(ctx context.Context, companyID string) ([]AuditLog, error)
	GetAuditLogByID(ctx context.Context, companyID, logID string) (*AuditLog, error)
	CreateAuditLog(ctx context.Context, companyID string, entry AuditLog) (*AuditLog, error)
	DeleteAuditLog(ctx context.Context, companyID, logID string) error
}
