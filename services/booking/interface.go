package booking

import (
	"context"

	reservationRepo "coachly/database/repository/reservation"
	scheduleRepo "coachly/database/repository/schedule"
	"coachly/models"
	"coachly/services/calendar"
	"coachly/services/meeting"
	"coachly/services/notification"
)

// BookingService commits a chosen slot: it is the only component allowed to
// move a Reservation past pending and the only caller of the meeting/calendar
// write APIs.
type BookingService interface {
	CreateBooking(ctx context.Context, input models.BookingInput) (*models.BookingResult, error)
}

// DefaultBookingService is the production booking orchestrator. Meetings and
// Calendar are nil when the respective integration is not configured; those
// saga steps are then skipped. Locks is nil when redis is not available, in
// which case the commit relies on re-validation plus the storage-level
// uniqueness index alone.
type DefaultBookingService struct {
	Engine       AvailabilityEngine
	Schedule     scheduleRepo.ScheduleRepository
	Reservations reservationRepo.ReservationRepository
	Meetings     meeting.Gateway
	Calendar     calendar.Gateway
	Notifier     notification.Service
	Locks        SlotLocker
}
