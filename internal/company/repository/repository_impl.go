package repository

import (
	"context"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/company/domain"
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

func (r *repository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	var companies []domain.Company
	err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&companies).Error
	return repoerr.List(companies, err, "Unable to load companies")
}

func (r *repository) GetCompanyByID(ctx context.Context, id string) (*domain.Company, error) {
	id, err := scope.Identifier(id, "companyId")
	if err != nil {
		return nil, err
	}

	var company domain.Company
	findErr := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&company).Error
	row, err := repoerr.MaybeSingle(&company, findErr, "Unable to load company")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Company not found")
	}
	return row, nil
}

func (r *repository) CreateCompany(ctx context.Context, company domain.Company) (*domain.Company, error) {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	now := r.clock.Now()
	if company.CreatedAt.IsZero() {
		company.CreatedAt = now
	}
	company.UpdatedAt = now
	if company.PlanTier == "" {
		company.PlanTier = domain.PlanTrial
	}

	err := r.db.WithContext(ctx).Create(&company).Error
	return repoerr.Mutation(&company, err, "Unable to create company")
}

func (r *repository) ReplaceCompany(ctx context.Context, id string, company domain.Company) (*domain.Company, error) {
	id, err := scope.Identifier(id, "companyId")
	if err != nil {
		return nil, err
	}

	company.ID = id
	company.UpdatedAt = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.Company{}).
		Where("id = ?", id).
		Select("*").Omit("id", "created_at").
		Updates(&company)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to replace company")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Company not found")
	}
	return r.GetCompanyByID(ctx, id)
}

func (r *repository) UpdateCompany(ctx context.Context, id string, patch domain.Patch) (*domain.Company, error) {
	id, err := scope.Identifier(id, "companyId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "created_at")
	updates["updated_at"] = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.Company{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update company")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Company not found")
	}
	return r.GetCompanyByID(ctx, id)
}

func (r *repository) DeleteCompany(ctx context.Context, id string) error {
	id, err := scope.Identifier(id, "companyId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Company{}).Error
	return repoerr.NoError(delErr, "Unable to delete company")
}

func (r *repository) ListMembers(ctx context.Context, companyID string) ([]domain.CompanyMember, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	var members []domain.CompanyMember
	findErr := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at asc").
		Find(&members).Error
	return repoerr.List(members, findErr, "Unable to load company members")
}

func (r *repository) GetMemberByID(ctx context.Context, companyID, memberID string) (*domain.CompanyMember, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	memberID, err = scope.Identifier(memberID, "memberId")
	if err != nil {
		return nil, err
	}

	var member domain.CompanyMember
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, memberID).
		First(&member).Error
	row, err := repoerr.MaybeSingle(&member, findErr, "Unable to load company member")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Company member not found")
	}
	return row, nil
}

// GetActiveMembershipForUser resolves the user's single active membership.
// Absence is not an error at this boundary.
func (r *repository) GetActiveMembershipForUser(ctx context.Context, userID string) (*domain.CompanyMember, error) {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return nil, err
	}

	var member domain.CompanyMember
	findErr := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.MemberActive).
		First(&member).Error
	return repoerr.MaybeSingle(&member, findErr, "Unable to load active membership")
}

func (r *repository) CreateMember(ctx context.Context, companyID string, member domain.CompanyMember) (*domain.CompanyMember, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	member.CompanyID = companyID
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = r.clock.Now()
	}

	createErr := r.db.WithContext(ctx).Create(&member).Error
	return repoerr.Mutation(&member, createErr, "Unable to create company member")
}

func (r *repository) ReplaceMember(ctx context.Context, companyID, memberID string, member domain.CompanyMember) (*domain.CompanyMember, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	memberID, err = scope.Identifier(memberID, "memberId")
	if err != nil {
		return nil, err
	}

	member.ID = memberID
	member.CompanyID = companyID
	res := r.db.WithContext(ctx).
		Model(&domain.CompanyMember{}).
		Where("company_id = ? AND id = ?", companyID, memberID).
		Select("*").Omit("id", "created_at").
		Updates(&member)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to replace company member")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Company member not found")
	}
	return r.GetMemberByID(ctx, companyID, memberID)
}

func (r *repository) UpdateMember(ctx context.Context, companyID, memberID string, patch domain.Patch) (*domain.CompanyMember, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	memberID, err = scope.Identifier(memberID, "memberId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "created_at")
	res := r.db.WithContext(ctx).
		Model(&domain.CompanyMember{}).
		Where("company_id = ? AND id = ?", companyID, memberID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update company member")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Company member not found")
	}
	return r.GetMemberByID(ctx, companyID, memberID)
}

func (r *repository) DeleteMember(ctx context.Context, companyID, memberID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	memberID, err = scope.Identifier(memberID, "memberId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, memberID).
		Delete(&domain.CompanyMember{}).Error
	return repoerr.NoError(delErr, "Unable to delete company member")
}

func (r *repository) ListAuditLogs(ctx context.Context, companyID string) ([]domain.AuditLog, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	var logs []domain.AuditLog
	findErr := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at desc").
		Find(&logs).Error
	return repoerr.List(logs, findErr, "Unable to load audit logs")
}

func (r *repository) GetAuditLogByID(ctx context.Context, companyID, logID string) (*domain.AuditLog, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	logID, err = scope.Identifier(logID, "logId")
	if err != nil {
		return nil, err
	}

	var entry domain.AuditLog
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, logID).
		First(&entry).Error
	row, err := repoerr.MaybeSingle(&entry, findErr, "Unable to load audit log")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Audit log entry not found")
	}
	return row, nil
}

// CreateAuditLog appends to the audit trail. The trail is append-only;
// there are no replace/update operations.
func (r *repository) CreateAuditLog(ctx context.Context, companyID string, entry domain.AuditLog) (*domain.AuditLog, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	entry.CompanyID = companyID
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.clock.Now()
	}
	if entry.Severity == "" {
		entry.Severity = domain.SeverityInfo
	}

	createErr := r.db.WithContext(ctx).Create(&entry).Error
	return repoerr.Mutation(&entry, createErr, "Unable to create audit log entry")
}

func (r *repository) DeleteAuditLog(ctx context.Context, companyID, logID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	logID, err = scope.Identifier(logID, "logId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, logID).
		Delete(&domain.AuditLog{}).Error
	return repoerr.NoError(delErr, "Unable to delete audit log entry")
}
