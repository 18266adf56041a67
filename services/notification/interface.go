package notification

import (
	"context"

	"coachly/models"
)

// Service sends booking confirmations. Both calls are fire-and-forget from
// the orchestrator's perspective: failures are logged, never propagated, and
// never roll back a booking.
type Service interface {
	NotifyAttendee(ctx context.Context, res *models.Reservation, email, name string) error
	NotifyOperator(ctx context.Context, res *models.Reservation, attendeeName string) error
}
