package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coachly/models"
	"coachly/services/calendar"
	"coachly/services/meeting"
	"coachly/utils"
)

// CreateBooking executes the reservation transaction for one chosen slot:
// re-validate, persist pending, provision the meeting and calendar event,
// promote to confirmed, then notify. Any failure after the durable insert is
// compensated and the reservation is cancelled with a machine-readable
// reason; the caller always sees the root cause.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.BookingInput) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	cfg, err := s.Schedule.Config(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduling config: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid configured timezone %q: %w", cfg.Timezone, err)
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", input.Date+" "+input.Time, loc)
	if err != nil {
		return nil, NewInvalidInputError(fmt.Sprintf("invalid date/time %q %q", input.Date, input.Time))
	}

	// Single-writer arbitration per slot: two concurrent commits for the
	// same start time cannot both pass re-validation.
	if s.Locks != nil {
		release, ok, err := s.Locks.Acquire(ctx, slotLockKey(input.Date, input.Time))
		if err != nil {
			logger.Warn("slot lock unavailable, relying on re-validation only", zap.Error(err))
		} else if !ok {
			return nil, NewSlotUnavailableError()
		} else {
			defer release()
		}
	}

	// Step 1: re-validate; the client's slot list may be stale by now.
	available, err := s.Engine.IsSlotAvailable(ctx, input.Date, input.Time, input.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to re-validate slot: %w", err)
	}
	if !available {
		return nil, NewSlotUnavailableError()
	}

	// Step 2: one active reservation per purchase.
	existing, err := s.Reservations.FindActiveByPurchase(ctx, input.PurchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing reservations: %w", err)
	}
	if existing != nil {
		return nil, NewDuplicateBookingError(input.PurchaseID)
	}

	// Step 3: durability checkpoint. From here on, failure is compensated.
	res := &models.Reservation{
		ID:              uuid.New().String(),
		OwnerID:         input.OwnerID,
		PurchaseID:      input.PurchaseID,
		PlanID:          input.PlanID,
		PlanName:        input.PlanName,
		Start:           start.UTC(),
		DurationMinutes: input.DurationMinutes,
		Timezone:        cfg.Timezone,
		Status:          models.ReservationPending,
		ClientNotes:     input.ClientNotes,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Reservations.Insert(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to persist reservation: %w", err)
	}

	var refs models.ExternalRefs
	steps := s.provisioningSteps(start, input, res, &refs)

	if sagaErr := runSaga(ctx, logger, steps); sagaErr != nil {
		if cancelErr := s.Reservations.Cancel(ctx, res.ID, "rollback - creation error"); cancelErr != nil {
			logger.Error("failed to cancel reservation after rollback",
				zap.String("reservationID", res.ID), zap.Error(cancelErr))
		}
		logger.Error("booking failed and was rolled back",
			zap.String("reservationID", res.ID),
			zap.String("purchaseID", input.PurchaseID),
			zap.Error(sagaErr))
		return nil, NewProvisioningError(sagaErr)
	}

	res.Status = models.ReservationConfirmed
	res.MeetingID = refs.MeetingID
	res.MeetingJoinURL = refs.MeetingJoinURL
	res.MeetingHostURL = refs.MeetingHostURL
	res.CalendarEventID = refs.CalendarEventID

	// Step 7: fire-and-forget. A booking is valid even if mail delivery
	// fails; the notifier logs its own errors.
	s.notify(res, input)

	logger.Info("booking confirmed",
		zap.String("reservationID", res.ID),
		zap.String("purchaseID", input.PurchaseID),
		zap.String("start", res.Start.Format(time.RFC3339)))

	return &models.BookingResult{
		Reservation:    res,
		MeetingJoinURL: res.MeetingJoinURL,
	}, nil
}

// provisioningSteps builds the saga for steps 4-6: meeting, calendar event,
// confirm. Unconfigured integrations contribute no step at all.
func (s *DefaultBookingService) provisioningSteps(start time.Time, input models.BookingInput, res *models.Reservation, refs *models.ExternalRefs) []sagaStep {
	var steps []sagaStep

	if s.Meetings != nil {
		steps = append(steps, sagaStep{
			name: "provision meeting",
			run: func(ctx context.Context) error {
				m, err := s.Meetings.CreateMeeting(ctx, meeting.MeetingInput{
					Topic:           fmt.Sprintf("%s with %s", input.PlanName, input.AttendeeName),
					Start:           start,
					DurationMinutes: input.DurationMinutes,
					Timezone:        res.Timezone,
				})
				if err != nil {
					return err
				}
				refs.MeetingID = m.ID
				refs.MeetingJoinURL = m.JoinURL
				refs.MeetingHostURL = m.HostURL
				return nil
			},
			compensate: func(ctx context.Context) error {
				return s.Meetings.DeleteMeeting(ctx, refs.MeetingID)
			},
		})
	}

	if s.Calendar != nil {
		steps = append(steps, sagaStep{
			name: "create calendar event",
			run: func(ctx context.Context) error {
				description := fmt.Sprintf("Session with %s.", input.AttendeeName)
				if refs.MeetingJoinURL != "" {
					description += "\n\nJoin: " + refs.MeetingJoinURL
				}
				if input.ClientNotes != "" {
					description += "\n\nClient notes:\n" + input.ClientNotes
				}
				eventID, err := s.Calendar.CreateEvent(ctx, calendar.EventInput{
					Summary:         fmt.Sprintf("%s — %s", input.PlanName, input.AttendeeName),
					Description:     description,
					Start:           start,
					DurationMinutes: input.DurationMinutes,
					Timezone:        res.Timezone,
					AttendeeEmail:   input.AttendeeEmail,
					AttendeeName:    input.AttendeeName,
				})
				if err != nil {
					return err
				}
				refs.CalendarEventID = eventID
				return nil
			},
			compensate: func(ctx context.Context) error {
				return s.Calendar.DeleteEvent(ctx, refs.CalendarEventID)
			},
		})
	}

	steps = append(steps, sagaStep{
		name: "confirm reservation",
		run: func(ctx context.Context) error {
			return s.Reservations.Confirm(ctx, res.ID, *refs)
		},
	})

	return steps
}

func (s *DefaultBookingService) notify(res *models.Reservation, input models.BookingInput) {
	if s.Notifier == nil {
		return
	}
	notifyRes := *res
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		done := make(chan struct{}, 2)
		go func() {
			_ = s.Notifier.NotifyAttendee(ctx, &notifyRes, input.AttendeeEmail, input.AttendeeName)
			done <- struct{}{}
		}()
		go func() {
			_ = s.Notifier.NotifyOperator(ctx, &notifyRes, input.AttendeeName)
			done <- struct{}{}
		}()
		<-done
		<-done
	}()
}

func validateInput(input models.BookingInput) error {
	switch {
	case input.PurchaseID == "":
		return NewInvalidInputError("purchase id is required")
	case input.PlanID == "":
		return NewInvalidInputError("plan id is required")
	case input.Date == "":
		return NewInvalidInputError("date is required")
	case input.Time == "":
		return NewInvalidInputError("time is required")
	case input.DurationMinutes <= 0:
		return NewInvalidInputError("duration must be positive")
	case input.AttendeeEmail == "":
		return NewInvalidInputError("attendee email is required")
	}
	return nil
}
