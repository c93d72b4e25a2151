package domain

import "context"

// Patch is a partial update keyed by column name.
type Patch = map[string]any

type Repository interface {
	ListChannels(ctx context.Context, companyID string) ([]NotificationChannel, error)
	GetChannelByID(ctx context.Context, companyID, channelID string) (*NotificationChannel, error)
	CreateChannel(ctx context.Context, companyID string, channel NotificationChannel) (*NotificationChannel, error)
	UpdateChannel(ctx context.Context, companyID, channelID string, patch Patch) (*NotificationChannel, error)
	DeleteChannel(ctx context.Context, companyID, channelID string) error

	ListNotifications(ctx context.Context, companyID string) ([]Notification, error)
	GetNotificationByID(ctx context.Context, companyID, notificationID string) (*Notification, error)
	CreateNotification(ctx context.Context, companyID string, notification Notification) (*Notification, error)
	UpdateNotification(ctx context.Context, companyID, notificationID string, patch Patch) (*Notification, error)
	DeleteNotification(ctx context.Context, companyID, notificationID string) error

	ListDeliveries(ctx context.Context, companyID, notificationID string) ([]NotificationDelivery, error)
	GetDeliveryByID(ctx context.Context, companyID, deliveryID string) (*NotificationDelivery, error)
	CreateDelivery(ctx context.Context, companyID string, delivery NotificationDelivery) (*NotificationDelivery, error)
	UpdateDelivery(ctx context.Context, companyID, deliveryID string, patch Patch) (*NotificationDelivery, error)
	DeleteDelivery(ctx context.Context, companyID, deliveryID string) error
}
