// Package domain contains persistence models for payroll periods and the
// signature trail attached to them.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

type PaycheckStatus string

const (
	StatusUnsigned PaycheckStatus = "unsigned"
	StatusSigned   PaycheckStatus = "signed"
)

// Paycheck is one payroll period. Unlike documents it carries a single
// unversioned file pointer; replacing the file replaces the pointer.
type Paycheck struct {
	ID          string            `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID   string            `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	EmployeeID  string            `gorm:"column:employee_id;type:uuid;not null;index" json:"employee_id"`
	PeriodLabel string            `gorm:"column:period_label;type:text;not null" json:"period_label"`
	GrossAmount float64           `gorm:"column:gross_amount;not null" json:"gross_amount"`
	NetAmount   float64           `gorm:"column:net_amount;not null" json:"net_amount"`
	Currency    string            `gorm:"type:text;not null;default:ARS" json:"currency"`
	Status      PaycheckStatus    `gorm:"type:text;not null;default:unsigned" json:"status"`
	FilePath    *string           `gorm:"column:file_path;type:text" json:"file_path"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	IssuedAt    time.Time         `gorm:"column:issued_at;not null" json:"issued_at"`
	SignedAt    *time.Time        `gorm:"column:signed_at" json:"signed_at"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

func (Paycheck) TableName() string { return "paychecks" }

// PaycheckSignatureEvent records one step of the signing flow.
type PaycheckSignatureEvent struct {
	ID         string            `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID  string            `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	PaycheckID string            `gorm:"column:paycheck_id;type:uuid;not null;index" json:"paycheck_id"`
	MemberID   *string           `gorm:"column:member_id;type:uuid" json:"member_id"`
	EventType  string            `gorm:"column:event_type;type:text;not null" json:"event_type"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt  time.Time         `gorm:"not null" json:"created_at"`
}

func (PaycheckSignatureEvent) TableName() string { return "paycheck_signature_events" }
