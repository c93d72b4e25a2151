// Package domain contains persistence models for user-facing profile data.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// UserProfile is one-to-one with an account identity.
type UserProfile struct {
	UserID        string     `gorm:"primaryKey;column:user_id;type:uuid" json:"user_id"`
	FullName      string     `gorm:"type:text;not null" json:"full_name"`
	PreferredName *string    `gorm:"type:text" json:"preferred_name"`
	AvatarURL     *string    `gorm:"column:avatar_url;type:text" json:"avatar_url"`
	Phone         *string    `gorm:"type:text" json:"phone"`
	TimeZone      string     `gorm:"column:time_zone" json:"time_zone"`
	Locale        string     `gorm:"type:text" json:"locale"`
	Bio           *string    `gorm:"type:text" json:"bio"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// EmployeeProfile extends a company member with employment attributes and
// the PIN signing-credential state. One profile per member.
type EmployeeProfile struct {
	ID                string            `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID         string            `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	MemberID          string            `gorm:"column:member_id;type:uuid;not null;uniqueIndex:ux_employee_profiles_member" json:"member_id"`
	EmployeeNumber    *string           `gorm:"type:text" json:"employee_number"`
	JobTitle          *string           `gorm:"type:text" json:"job_title"`
	Department        *string           `gorm:"type:text" json:"department"`
	ManagerMemberID   *string           `gorm:"column:manager_member_id;type:uuid" json:"manager_member_id"`
	Birthday          *time.Time        `json:"birthday"`
	HireDate          *time.Time        `json:"hire_date"`
	TerminationDate   *time.Time        `json:"termination_date"`
	IsActive          bool              `gorm:"not null;default:true" json:"is_active"`
	PinHash           *string           `gorm:"column:pin_hash;type:text" json:"-"`
	PinFailedAttempts int               `gorm:"column:pin_failed_attempts;not null;default:0" json:"pin_failed_attempts"`
	PinLockedUntil    *time.Time        `gorm:"column:pin_locked_until" json:"pin_locked_until"`
	PinLastResetAt    *time.Time        `gorm:"column:pin_last_reset_at" json:"pin_last_reset_at"`
	EmergencyContact  datatypes.JSONMap `gorm:"type:jsonb" json:"emergency_contact"`
	Address           datatypes.JSONMap `gorm:"type:jsonb" json:"address"`
	CreatedAt         time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"not null" json:"updated_at"`
}

func (EmployeeProfile) TableName() string { return "employee_profiles" }

type ThemePreference string

const (
	ThemeSystem ThemePreference = "system"
	ThemeLight  ThemePreference = "light"
	ThemeDark   ThemePreference = "dark"
)

// UserPreference holds per-user notification and security toggles.
type UserPreference struct {
	UserID                      string          `gorm:"primaryKey;column:user_id;type:uuid" json:"user_id"`
	CompanyID                   *string         `gorm:"column:company_id;type:uuid" json:"company_id"`
	Theme                       ThemePreference `gorm:"type:text;not null;default:system" json:"theme"`
	Language                    string          `gorm:"type:text" json:"language"`
	TimezoneOverride            *string         `gorm:"type:text" json:"timezone_override"`
	ReceiveCompanyAnnouncements bool            `gorm:"not null;default:true" json:"receive_company_announcements"`
	ReceivePayrollNotifications bool            `gorm:"not null;default:true" json:"receive_payroll_notifications"`
	ReceiveDocumentPrompts      bool            `gorm:"not null;default:true" json:"receive_document_prompts"`
	BiometricAuthEnabled        bool            `gorm:"not null;default:false" json:"biometric_auth_enabled"`
	PinRequiredForSensitive     bool            `gorm:"not null;default:true" json:"pin_required_for_sensitive"`
	MarketingOptIn              bool            `gorm:"not null;default:false" json:"marketing_opt_in"`
	CreatedAt                   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt                   time.Time       `gorm:"not null" json:"updated_at"`
	UpdatedBy                   *string         `gorm:"type:uuid" json:"updated_by"`
}

func (UserPreference) TableName() string { return "user_preferences" }
