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
	"github.com/bancalarisantiago/workfolio/internal/event/domain"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

const companyID = "11111111-1111-1111-1111-111111111111"

func setupRepo(t *testing.T) (domain.Repository, *clock.FakeClock) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Event{}, &domain.EventAttendee{}, &domain.HolidayCalendar{}))

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewRepository(conn, clk), clk
}

func TestCreateEventDefaults(t *testing.T) {
	repo, clk := setupRepo(t)

	created, err := repo.CreateEvent(context.Background(), companyID, domain.Event{
		Title:   "All hands",
		StartAt: clk.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, companyID, created.CompanyID)
	assert.Equal(t, domain.KindMeeting, created.Kind)
	assert.Equal(t, clk.Now(), created.CreatedAt)
}

func TestListEventsOrderedByStart(t *testing.T) {
	repo, clk := setupRepo(t)
	ctx := context.Background()

	_, err := repo.CreateEvent(ctx, companyID, domain.Event{Title: "later", StartAt: clk.Now().Add(48 * time.Hour)})
	require.NoError(t, err)
	_, err = repo.CreateEvent(ctx, companyID, domain.Event{Title: "sooner", StartAt: clk.Now().Add(2 * time.Hour)})
	require.NoError(t, err)

	events, err := repo.ListEvents(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "sooner", events[0].Title)
	assert.Equal(t, "later", events[1].Title)
}

func TestGetEventAttendeesMissingParentIs404(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.GetEventAttendees(context.Background(), companyID, "99999999-9999-9999-9999-999999999999")
	require.Error(t, err)
	assert.True(t, repoerr.IsNotFound(err))
}

func TestGetEventAttendeesEmptyForExistingEvent(t *testing.T) {
	repo, clk := setupRepo(t)
	ctx := context.Background()

	event, err := repo.CreateEvent(ctx, companyID, domain.Event{Title: "Townhall", StartAt: clk.Now()})
	require.NoError(t, err)

	attendees, err := repo.GetEventAttendees(ctx, companyID, event.ID)
	require.NoError(t, err)
	assert.NotNil(t, attendees)
	assert.Empty(t, attendees)
}

func TestCreateAttendeeDefaultsToPending(t *testing.T) {
	repo, clk := setupRepo(t)
	ctx := context.Background()

	event, err := repo.CreateEvent(ctx, companyID, domain.Event{Title: "Townhall", StartAt: clk.Now()})
	require.NoError(t, err)

	attendee, err := repo.CreateEventAttendee(ctx, companyID, domain.EventAttendee{
		EventID:  event.ID,
		MemberID: "22222222-2222-2222-2222-222222222222",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResponsePending, attendee.Response)

	attendees, err := repo.GetEventAttendees(ctx, companyID, event.ID)
	require.NoError(t, err)
	assert.Len(t, attendees, 1)
}

func TestHolidaysOrderedByDate(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	_, err := repo.CreateHoliday(ctx, companyID, domain.HolidayCalendar{
		Name: "Navidad", Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = repo.CreateHoliday(ctx, companyID, domain.HolidayCalendar{
		Name: "Dia del Trabajador", Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	holidays, err := repo.ListHolidays(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "Dia del Trabajador", holidays[0].Name)
}

func TestDeleteEventIsIdempotent(t *testing.T) {
	repo, _ := setupRepo(t)

	err := repo.DeleteEvent(context.Background(), companyID, "99999999-9999-9999-9999-999999999999")
	assert.NoError(t, err)
}
