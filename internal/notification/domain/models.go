// Package domain contains the notification fan-out models: one
// Notification targets a scope, deliveries track the attempt per
// channel.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

type ChannelKind string

const (
	ChannelPush  ChannelKind = "push"
	ChannelEmail ChannelKind = "email"
	ChannelInApp ChannelKind = "in_app"
)

type NotificationChannel struct {
	ID        string            `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID string            `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	Kind      ChannelKind       `gorm:"type:text;not null" json:"kind"`
	Name      string            `gorm:"type:text;not null" json:"name"`
	Config    datatypes.JSONMap `gorm:"type:jsonb" json:"config"`
	IsActive  bool              `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`
}

func (NotificationChannel) TableName() string { return "notification_channels" }

type NotificationScope string

const (
	ScopeUser    NotificationScope = "user"
	ScopeCompany NotificationScope = "company"
	ScopeCustom  NotificationScope = "custom"
)

type Notification struct {
	ID          string            `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID   string            `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	Scope       NotificationScope `gorm:"type:text;not null;default:user" json:"scope"`
	TargetID    *string           `gorm:"column:target_id;type:uuid" json:"target_id"`
	Title       string            `gorm:"type:text;not null" json:"title"`
	Body        string            `gorm:"type:text;not null" json:"body"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	ScheduledAt *time.Time        `gorm:"column:scheduled_at" json:"scheduled_at"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
	DeliveryRead    DeliveryStatus = "read"
)

// NotificationDelivery is one attempt for one (notification, channel)
// pair. RetryCount advances on each failed attempt.
type NotificationDelivery struct {
	ID             string         `gorm:"primaryKey;type:uuid" json:"id"`
	CompanyID      string         `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	NotificationID string         `gorm:"column:notification_id;type:uuid;not null;index" json:"notification_id"`
	ChannelID      string         `gorm:"column:channel_id;type:uuid;not null" json:"channel_id"`
	UserID         *string        `gorm:"column:user_id;type:uuid" json:"user_id"`
	Status         DeliveryStatus `gorm:"type:text;not null;default:pending" json:"status"`
	RetryCount     int            `gorm:"column:retry_count;not null;default:0" json:"retry_count"`
	SentAt         *time.Time     `gorm:"column:sent_at" json:"sent_at"`
	ReadAt         *time.Time     `gorm:"column:read_at" json:"read_at"`
	LastError      *string        `gorm:"column:last_error;type:text" json:"last_error"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
}

func (NotificationDelivery) TableName() string { return "notification_deliveries" }
