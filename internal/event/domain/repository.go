package domain

import "context"

// Patch is a partial update keyed by column name.
type Patch = map[string]any

type Repository interface {
	ListEvents(ctx context.Context, companyID string) ([]Event, error)
	GetEventByID(ctx context.Context, companyID, eventID string) (*Event, error)
	CreateEvent(ctx context.Context, companyID string, event Event) (*Event, error)
	ReplaceEvent(ctx context.Context, companyID, eventID string, event Event) (*Event, error)
	UpdateEvent(ctx context.Context, companyID, eventID string, patch Patch) (*Event, error)
	DeleteEvent(ctx context.Context, companyID, eventID string) error

	// GetEventAttendees raises 404 when the parent event does not exist,
	// before any attendees are fetched.
	GetEventAttendees(ctx context.Context, companyID, eventID string) ([]EventAttendee, error)
	GetEventAttendeeByID(ctx context.Context, companyID, attendeeID string) (*EventAttendee, error)
	CreateEventAttendee(ctx context.Context, companyID string, attendee EventAttendee) (*EventAttendee, error)
	UpdateEventAttendee(ctx context.Context, companyID, attendeeID string, patch Patch) (*EventAttendee, error)
	DeleteEventAttendee(ctx context.Context, companyID, attendeeID string) error

	ListHolidays(ctx context.Context, companyID string) ([]HolidayCalendar, error)
	GetHolidayByID(ctx context.Context, companyID, holidayID string) (*HolidayCalendar, error)
	CreateHoliday(ctx context.Context, companyID string, holiday HolidayCalendar) (*HolidayCalendar, error)
	ReplaceHoliday(ctx context.Context, companyID, holidayID string, holiday HolidayCalendar) (*HolidayCalendar, error)
	UpdateHoliday(ctx context.Context, companyID, holidayID string, patch Patch) (*HolidayCalendar, error)
	DeleteHoliday(ctx context.Context, companyID, holidayID string) error
}
