// Package domain contains calendar models scoped per company.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

type EventKind string

const (
	KindMeeting      EventKind = "meeting"
	KindAnnouncement EventKind = "announcement"
	KindTraining     EventKind = "training"
	KindSocial       EventKind = "social"
)

type Event struct {
	ID          string            `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID   string            `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	Title       string            `gorm:"type:text;not null" json:"title"`
	Description *string           `gorm:"type:text" json:"description"`
	Kind        EventKind         `gorm:"type:text;not null;default:meeting" json:"kind"`
	Location    *string           `gorm:"type:text" json:"location"`
	StartAt     time.Time         `gorm:"column:start_at;not null" json:"start_at"`
	EndAt       *time.Time        `gorm:"column:end_at" json:"end_at"`
	AllDay      bool              `gorm:"column:all_day;not null;default:false" json:"all_day"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedBy   *string           `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

func (Event) TableName() string { return "events" }

type AttendeeResponse string

const (
	ResponsePending   AttendeeResponse = "pending"
	ResponseAccepted  AttendeeResponse = "accepted"
	ResponseDeclined  AttendeeResponse = "declined"
	ResponseTentative AttendeeResponse = "tentative"
)

// EventAttendee tracks one employee's response per event.
type EventAttendee struct {
	ID          string           `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID   string           `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	EventID     string           `gorm:"column:event_id;type:uuid;not null;uniqueIndex:ux_event_attendees_member" json:"event_id"`
	MemberID    string           `gorm:"column:member_id;type:uuid;not null;uniqueIndex:ux_event_attendees_member" json:"member_id"`
	Response    AttendeeResponse `gorm:"type:text;not null;default:pending" json:"response"`
	RespondedAt *time.Time       `gorm:"column:responded_at" json:"responded_at"`
	CreatedAt   time.Time        `gorm:"not null" json:"created_at"`
}

func (EventAttendee) TableName() string { return "event_attendees" }

// HolidayCalendar is one non-working day in a company's calendar.
type HolidayCalendar struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID string    `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Date      time.Time `gorm:"not null" json:"date"`
	Recurring bool      `gorm:"not null;default:false" json:"recurring"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (HolidayCalendar) TableName() string { return "holiday_calendars" }
