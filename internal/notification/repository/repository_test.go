package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/notification/domain"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

const companyID = "11111111-1111-1111-1111-111111111111"

func setupRepo(t *testing.T) (domain.Repository, *clock.FakeClock) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&domain.NotificationChannel{},
		&domain.Notification{},
		&domain.NotificationDelivery{},
	))

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	return NewRepository(conn, clk), clk
}

func TestCreateNotificationDefaultsToUserScope(t *testing.T) {
	repo, clk := setupRepo(t)

	created, err := repo.CreateNotification(context.Background(), companyID, domain.Notification{
		Title: "Nuevo recibo",
		Body:  "Tu recibo de mayo ya esta disponible.",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, companyID, created.CompanyID)
	assert.Equal(t, domain.ScopeUser, created.Scope)
	assert.Equal(t, clk.Now(), created.CreatedAt)
}

func TestListNotificationsNewestFirst(t *testing.T) {
	repo, clk := setupRepo(t)
	ctx := context.Background()

	_, err := repo.CreateNotification(ctx, companyID, domain.Notification{Title: "older", Body: "b"})
	require.NoError(t, err)
	clk.Advance(time.Minute)
	_, err = repo.CreateNotification(ctx, companyID, domain.Notification{Title: "newer", Body: "b"})
	require.NoError(t, err)

	notifications, err := repo.ListNotifications(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "newer", notifications[0].Title)
}

func TestDeliveryLifecycle(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	channel, err := repo.CreateChannel(ctx, companyID, domain.NotificationChannel{
		Kind: domain.ChannelPush,
		Name: "expo",
	})
	require.NoError(t, err)
	assert.True(t, channel.IsActive)

	notification, err := repo.CreateNotification(ctx, companyID, domain.Notification{Title: "t", Body: "b"})
	require.NoError(t, err)

	delivery, err := repo.CreateDelivery(ctx, companyID, domain.NotificationDelivery{
		NotificationID: notification.ID,
		ChannelID:      channel.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryPending, delivery.Status)
	assert.Equal(t, 0, delivery.RetryCount)

	updated, err := repo.UpdateDelivery(ctx, companyID, delivery.ID, domain.Patch{
		"status":      domain.DeliveryFailed,
		"retry_count": 1,
		"last_error":  "push token expired",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryFailed, updated.Status)
	assert.Equal(t, 1, updated.RetryCount)

	deliveries, err := repo.ListDeliveries(ctx, companyID, notification.ID)
	require.NoError(t, err)
	assert.Len(t, deliveries, 1)
}

func TestUpdateDeliveryCannotMoveNotification(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	notification, err := repo.CreateNotification(ctx, companyID, domain.Notification{Title: "t", Body: "b"})
	require.NoError(t, err)
	delivery, err := repo.CreateDelivery(ctx, companyID, domain.NotificationDelivery{
		NotificationID: notification.ID,
		ChannelID:      "22222222-2222-2222-2222-222222222222",
	})
	require.NoError(t, err)

	updated, err := repo.UpdateDelivery(ctx, companyID, delivery.ID, domain.Patch{
		"notification_id": "99999999-9999-9999-9999-999999999999",
		"status":          domain.DeliverySent,
	})
	require.NoError(t, err)
	assert.Equal(t, notification.ID, updated.NotificationID)
	assert.Equal(t, domain.DeliverySent, updated.Status)
}

func TestGetNotificationRequiresCompanyScope(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.GetNotificationByID(context.Background(), "", "any")
	require.Error(t, err)
	assert.True(t, repoerr.IsInvalid(err))
}
