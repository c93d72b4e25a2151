package repository

import (
	"context"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/event/domain"
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

func (r *repository) ListEvents(ctx context.Context, companyID string) ([]domain.Event, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	var events []domain.Event
	findErr := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("start_at asc").
		Find(&events).Error
	return repoerr.List(events, findErr, "Unable to load events")
}

func (r *repository) GetEventByID(ctx context.Context, companyID, eventID string) (*domain.Event, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	eventID, err = scope.Identifier(eventID, "eventId")
	if err != nil {
		return nil, err
	}

	var event domain.Event
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, eventID).
		First(&event).Error
	row, err := repoerr.MaybeSingle(&event, findErr, "Unable to load event")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Event not found")
	}
	return row, nil
}

func (r *repository) CreateEvent(ctx context.Context, companyID string, event domain.Event) (*domain.Event, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	event.CompanyID = companyID
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := r.clock.Now()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	if event.Kind == "" {
		event.Kind = domain.KindMeeting
	}

	createErr := r.db.WithContext(ctx).Create(&event).Error
	return repoerr.Mutation(&event, createErr, "Unable to create event")
}

func (r *repository) ReplaceEvent(ctx context.Context, companyID, eventID string, event domain.Event) (*domain.Event, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	eventID, err = scope.Identifier(eventID, "eventId")
	if err != nil {
		return nil, err
	}

	event.ID = eventID
	event.CompanyID = companyID
	event.UpdatedAt = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("company_id = ? AND id = ?", companyID, eventID).
		Select("*").Omit("id", "created_at").
		Updates(&event)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to replace event")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Event not found")
	}
	return r.GetEventByID(ctx, companyID, eventID)
}

func (r *repository) UpdateEvent(ctx context.Context, companyID, eventID string, patch domain.Patch) (*domain.Event, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	eventID, err = scope.Identifier(eventID, "eventId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "created_at")
	updates["updated_at"] = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("company_id = ? AND id = ?", companyID, eventID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update event")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Event not found")
	}
	return r.GetEventByID(ctx, companyID, eventID)
}

func (r *repository) DeleteEvent(ctx context.Context, companyID, eventID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	eventID, err = scope.Identifier(eventID, "eventId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, eventID).
		Delete(&domain.Event{}).Error
	return repoerr.NoError(delErr, "Unable to delete event")
}

// GetEventAttendees checks the parent event before fetching attendees so
// an unknown event is a 404 rather than an empty list.
func (r *repository) GetEventAttendees(ctx context.Context, companyID, eventID string) ([]domain.EventAttendee, error) {
	if _, err := r.GetEventByID(ctx, companyID, eventID); err != nil {
		return nil, err
	}

	var attendees []domain.EventAttendee
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND event_id = ?", companyID, eventID).
		Order("created_at asc").
		Find(&attendees).Error
	return repoerr.List(attendees, findErr, "Unable to load event attendees")
}

func (r *repository) GetEventAttendeeByID(ctx context.Context, companyID, attendeeID string) (*domain.EventAttendee, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	attendeeID, err = scope.Identifier(attendeeID, "attendeeId")
	if err != nil {
		return nil, err
	}

	var attendee domain.EventAttendee
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, attendeeID).
		First(&attendee).Error
	row, err := repoerr.MaybeSingle(&attendee, findErr, "Unable to load event attendee")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Event attendee not found")
	}
	return row, nil
}

func (r *repository) CreateEventAttendee(ctx context.Context, companyID string, attendee domain.EventAttendee) (*domain.EventAttendee, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	attendee.CompanyID = companyID
	if attendee.ID == "" {
		attendee.ID = uuid.NewString()
	}
	if attendee.CreatedAt.IsZero() {
		attendee.CreatedAt = r.clock.Now()
	}
	if attendee.Response == "" {
		attendee.Response = domain.ResponsePending
	}

	createErr := r.db.WithContext(ctx).Create(&attendee).Error
	return repoerr.Mutation(&attendee, createErr, "Unable to create event attendee")
}

func (r *repository) UpdateEventAttendee(ctx context.Context, companyID, attendeeID string, patch domain.Patch) (*domain.EventAttendee, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	attendeeID, err = scope.Identifier(attendeeID, "attendeeId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "event_id", "created_at")
	res := r.db.WithContext(ctx).
		Model(&domain.EventAttendee{}).
		Where("company_id = ? AND id = ?", companyID, attendeeID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update event attendee")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Event attendee not found")
	}
	return r.GetEventAttendeeByID(ctx, companyID, attendeeID)
}

func (r *repository) DeleteEventAttendee(ctx context.Context, companyID, attendeeID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	attendeeID, err = scope.Identifier(attendeeID, "attendeeId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, attendeeID).
		Delete(&domain.EventAttendee{}).Error
	return repoerr.NoError(delErr, "Unable to delete event attendee")
}

func (r *repository) ListHolidays(ctx context.Context, companyID string) ([]domain.HolidayCalendar, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	var holidays []domain.HolidayCalendar
	findErr := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("date asc").
		Find(&holidays).Error
	return repoerr.List(holidays, findErr, "Unable to load holiday calendar")
}

func (r *repository) GetHolidayByID(ctx context.Context, companyID, holidayID string) (*domain.HolidayCalendar, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	holidayID, err = scope.Identifier(holidayID, "holidayId")
	if err != nil {
		return nil, err
	}

	var holiday domain.HolidayCalendar
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, holidayID).
		First(&holiday).Error
	row, err := repoerr.MaybeSingle(&holiday, findErr, "Unable to load holiday")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Holiday not found")
	}
	return row, nil
}

func (r *repository) CreateHoliday(ctx context.Context, companyID string, holiday domain.HolidayCalendar) (*domain.HolidayCalendar, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	holiday.CompanyID = companyID
	if holiday.ID == "" {
		holiday.ID = uuid.NewString()
	}
	if holiday.CreatedAt.IsZero() {
		holiday.CreatedAt = r.clock.Now()
	}

	createErr := r.db.WithContext(ctx).Create(&holiday).Error
	return repoerr.Mutation(&holiday, createErr, "Unable to create holiday")
}

func (r *repository) ReplaceHoliday(ctx context.Context, companyID, holidayID string, holiday domain.HolidayCalendar) (*domain.HolidayCalendar, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	holidayID, err = scope.Identifier(holidayID, "holidayId")
	if err != nil {
		return nil, err
	}

	holiday.ID = holidayID
	holiday.CompanyID = companyID
	res := r.db.WithContext(ctx).
		Model(&domain.HolidayCalendar{}).
		Where("company_id = ? AND id = ?", companyID, holidayID).
		Select("*").Omit("id", "created_at").
		Updates(&holiday)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to replace holiday")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Holiday not found")
	}
	return r.GetHolidayByID(ctx, companyID, holidayID)
}

func (r *repository) UpdateHoliday(ctx context.Context, companyID, holidayID string, patch domain.Patch) (*domain.HolidayCalendar, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	holidayID, err = scope.Identifier(holidayID, "holidayId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "created_at")
	res := r.db.WithContext(ctx).
		Model(&domain.HolidayCalendar{}).
		Where("company_id = ? AND id = ?", companyID, holidayID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update holiday")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Holiday not found")
	}
	return r.GetHolidayByID(ctx, companyID, holidayID)
}

func (r *repository) DeleteHoliday(ctx context.Context, companyID, holidayID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	holidayID, err = scope.Identifier(holidayID, "holidayId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, holidayID).
		Delete(&domain.HolidayCalendar{}).Error
	return repoerr.NoError(delErr, "Unable to delete holiday")
}
