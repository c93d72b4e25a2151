// Package domain contains persistence models for the company service.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

type PlanTier string

const (
	PlanTrial      PlanTier = "trial"
	PlanStarter    PlanTier = "starter"
	PlanGrowth     PlanTier = "growth"
	PlanEnterprise PlanTier = "enterprise"
)

func (t PlanTier) Valid() bool {
	switch t {
	case PlanTrial, PlanStarter, PlanGrowth, PlanEnterprise:
		return true
	}
	return false
}

// Company is the tenant root. CompanyCode is globally unique.
type Company struct {
	ID                    string            `gorm:"primaryKey;type:uuid" json:"id"`
	Name                  string            `gorm:"type:text;not null" json:"name"`
	LegalName             *string           `gorm:"type:text" json:"legal_name"`
	CompanyCode           string            `gorm:"type:text;not null;uniqueIndex:ux_companies_code" json:"company_code"`
	CountryCode           string            `gorm:"column:country_code" json:"country_code"`
	DefaultTimeZone       string            `gorm:"column:default_time_zone" json:"default_time_zone"`
	PlanTier              PlanTier          `gorm:"type:text;not null;default:trial" json:"plan_tier"`
	PlanRenewalAt         *time.Time        `json:"plan_renewal_at"`
	BillingEmail          *string           `gorm:"type:text" json:"billing_email"`
	Industry              *string           `gorm:"type:text" json:"industry"`
	EmployeeCountEstimate *int              `json:"employee_count_estimate"`
	LogoURL               *string           `gorm:"column:logo_url" json:"logo_url"`
	CreatedBy             *string           `gorm:"type:uuid" json:"created_by"`
	Metadata              datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt             time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time         `gorm:"not null" json:"updated_at"`
	DeactivatedAt         *time.Time        `json:"deactivated_at"`
}

func (Company) TableName() string { return "companies" }

type MemberRole string

const (
	RoleAdmin    MemberRole = "admin"
	RoleEmployee MemberRole = "employee"
)

type MemberStatus string

const (
	MemberInvited   MemberStatus = "invited"
	MemberActive    MemberStatus = "active"
	MemberSuspended MemberStatus = "suspended"
	MemberLeft      MemberStatus = "left"
)

// CompanyMember links a person to a company. (company_id, user_id) unique.
type CompanyMember struct {
	ID          string       `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID   string       `gorm:"column:company_id;type:uuid;not null;index;uniqueIndex:ux_company_members_user,priority:1" json:"company_id"`
	UserID      string       `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:ux_company_members_user,priority:2" json:"user_id"`
	Role        MemberRole   `gorm:"type:text;not null" json:"role"`
	Status      MemberStatus `gorm:"type:text;not null" json:"status"`
	InvitedAt   time.Time    `json:"invited_at"`
	JoinedAt    *time.Time   `json:"joined_at"`
	SuspendedAt *time.Time   `json:"suspended_at"`
	InvitedBy   *string      `gorm:"type:uuid" json:"invited_by"`
	Note        *string      `gorm:"type:text" json:"note"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
}

func (CompanyMember) TableName() string { return "company_members" }

type AuditSeverity string

const (
	SeverityInfo     AuditSeverity = "info"
	SeverityWarning  AuditSeverity = "warning"
	SeverityError    AuditSeverity = "error"
	SeverityCritical AuditSeverity = "critical"
)

type AuditLog struct {
	ID        string            `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID string            `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	ActorID   *string           `gorm:"column:actor_id;type:uuid" json:"actor_id"`
	Action    string            `gorm:"type:text;not null" json:"action"`
	Severity  AuditSeverity     `gorm:"type:text;not null;default:info" json:"severity"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
