package calendar

import (
	"context"
	"time"

	"coachly/models"
)

// EventInput describes one calendar event to create for a confirmed session.
type EventInput struct {
	Summary         string
	Description     string
	Start           time.Time
	DurationMinutes int
	Timezone        string
	AttendeeEmail   string
	AttendeeName    string
}

// Gateway talks to the practitioner's external calendar. FreeBusy is a
// best-effort read: callers must treat a failure as "no busy data", never as
// a reason to fail their own request. CreateEvent/DeleteEvent are the write
// half used only by the booking orchestrator; DeleteEvent is idempotent
// ("not found" is success).
type Gateway interface {
	FreeBusy(ctx context.Context, from, to time.Time) ([]models.BusyPeriod, error)
	CreateEvent(ctx context.Context, in EventInput) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}
