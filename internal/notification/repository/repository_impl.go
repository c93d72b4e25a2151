package repository

import (
	"context"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/notification/domain"
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

func (r *repository) ListChannels(ctx context.Context, companyID string) ([]domain.NotificationChannel, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	var channels []domain.NotificationChannel
	findErr := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at asc").
		Find(&channels).Error
	return repoerr.List(channels, findErr, "Unable to load notification channels")
}

func (r *repository) GetChannelByID(ctx context.Context, companyID, channelID string) (*domain.NotificationChannel, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	channelID, err = scope.Identifier(channelID, "channelId")
	if err != nil {
		return nil, err
	}

	var channel domain.NotificationChannel
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, channelID).
		First(&channel).Error
	row, err := repoerr.MaybeSingle(&channel, findErr, "Unable to load notification channel")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Notification channel not found")
	}
	return row, nil
}

func (r *repository) CreateChannel(ctx context.Context, companyID string, channel domain.NotificationChannel) (*domain.NotificationChannel, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	channel.CompanyID = companyID
	if channel.ID == "" {
		channel.ID = uuid.NewString()
	}
	if channel.CreatedAt.IsZero() {
		channel.CreatedAt = r.clock.Now()
	}

	createErr := r.db.WithContext(ctx).Create(&channel).Error
	return repoerr.Mutation(&channel, createErr, "Unable to create notification channel")
}

func (r *repository) UpdateChannel(ctx context.Context, companyID, channelID string, patch domain.Patch) (*domain.NotificationChannel, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	channelID, err = scope.Identifier(channelID, "channelId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "created_at")
	res := r.db.WithContext(ctx).
		Model(&domain.NotificationChannel{}).
		Where("company_id = ? AND id = ?", companyID, channelID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update notification channel")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Notification channel not found")
	}
	return r.GetChannelByID(ctx, companyID, channelID)
}

func (r *repository) DeleteChannel(ctx context.Context, companyID, channelID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	channelID, err = scope.Identifier(channelID, "channelId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, channelID).
		Delete(&domain.NotificationChannel{}).Error
	return repoerr.NoError(delErr, "Unable to delete notification channel")
}

func (r *repository) ListNotifications(ctx context.Context, companyID string) ([]domain.Notification, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	var notifications []domain.Notification
	findErr := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at desc").
		Find(&notifications).Error
	return repoerr.List(notifications, findErr, "Unable to load notifications")
}

func (r *repository) GetNotificationByID(ctx context.Context, companyID, notificationID string) (*domain.Notification, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	notificationID, err = scope.Identifier(notificationID, "notificationId")
	if err != nil {
		return nil, err
	}

	var notification domain.Notification
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, notificationID).
		First(&notification).Error
	row, err := repoerr.MaybeSingle(&notification, findErr, "Unable to load notification")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Notification not found")
	}
	return row, nil
}

func (r *repository) CreateNotification(ctx context.Context, companyID string, notification domain.Notification) (*domain.Notification, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	notification.CompanyID = companyID
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = r.clock.Now()
	}
	if notification.Scope == "" {
		notification.Scope = domain.ScopeUser
	}

	createErr := r.db.WithContext(ctx).Create(&notification).Error
	return repoerr.Mutation(&notification, createErr, "Unable to create notification")
}

func (r *repository) UpdateNotification(ctx context.Context, companyID, notificationID string, patch domain.Patch) (*domain.Notification, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	notificationID, err = scope.Identifier(notificationID, "notificationId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "created_at")
	res := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("company_id = ? AND id = ?", companyID, notificationID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update notification")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Notification not found")
	}
	return r.GetNotificationByID(ctx, companyID, notificationID)
}

func (r *repository) DeleteNotification(ctx context.Context, companyID, notificationID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	notificationID, err = scope.Identifier(notificationID, "notificationId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, notificationID).
		Delete(&domain.Notification{}).Error
	return repoerr.NoError(delErr, "Unable to delete notification")
}

func (r *repository) ListDeliveries(ctx context.Context, companyID, notificationID string) ([]domain.NotificationDelivery, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	notificationID, err = scope.Identifier(notificationID, "notificationId")
	if err != nil {
		return nil, err
	}

	var deliveries []domain.NotificationDelivery
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND notification_id = ?", companyID, notificationID).
		Order("created_at asc").
		Find(&deliveries).Error
	return repoerr.List(deliveries, findErr, "Unable to load notification deliveries")
}

func (r *repository) GetDeliveryByID(ctx context.Context, companyID, deliveryID string) (*domain.NotificationDelivery, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	deliveryID, err = scope.Identifier(deliveryID, "deliveryId")
	if err != nil {
		return nil, err
	}

	var delivery domain.NotificationDelivery
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, deliveryID).
		First(&delivery).Error
	row, err := repoerr.MaybeSingle(&delivery, findErr, "Unable to load notification delivery")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Notification delivery not found")
	}
	return row, nil
}

func (r *repository) CreateDelivery(ctx context.Context, companyID string, delivery domain.NotificationDelivery) (*domain.NotificationDelivery, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	delivery.CompanyID = companyID
	if delivery.ID == "" {
		delivery.ID = uuid.NewString()
	}
	if delivery.CreatedAt.IsZero() {
		delivery.CreatedAt = r.clock.Now()
	}
	if delivery.Status == "" {
		delivery.Status = domain.DeliveryPending
	}

	createErr := r.db.WithContext(ctx).Create(&delivery).Error
	return repoerr.Mutation(&delivery, createErr, "Unable to create notification delivery")
}

func (r *repository) UpdateDelivery(ctx context.Context, companyID, deliveryID string, patch domain.Patch) (*domain.NotificationDelivery, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	deliveryID, err = scope.Identifier(deliveryID, "deliveryId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "notification_id", "created_at")
	res := r.db.WithContext(ctx).
		Model(&domain.NotificationDelivery{}).
		Where("company_id = ? AND id = ?", companyID, deliveryID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update notification delivery")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Notification delivery not found")
	}
	return r.GetDeliveryByID(ctx, companyID, deliveryID)
}

func (r *repository) DeleteDelivery(ctx context.Context, companyID, deliveryID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	deliveryID, err = scope.Identifier(deliveryID, "deliveryId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, deliveryID).
		Delete(&domain.NotificationDelivery{}).Error
	return repoerr.NoError(delErr, "Unable to delete notification delivery")
}
