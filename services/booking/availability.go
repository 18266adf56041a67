package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	reservationRepo "coachly/database/repository/reservation"
	scheduleRepo "coachly/database/repository/schedule"
	"coachly/models"
	"coachly/services/calendar"
	"coachly/utils"

	"go.uber.org/zap"
)

// Candidate slot starts walk a fixed 30-minute grid within each window.
const slotStepMinutes = 30

// AvailabilityEngine computes the bookable slot grid for one calendar date.
// Pure read-then-compute: safe to call repeatedly and concurrently.
type AvailabilityEngine interface {
	ComputeSlots(ctx context.Context, date string, durationMinutes int) (*models.DayAvailability, error)
	IsSlotAvailable(ctx context.Context, date, clock string, durationMinutes int) (bool, error)
}

// DefaultAvailabilityEngine merges weekly windows, calendar blocks, active
// reservations, and best-effort external busy periods into a slot grid.
type DefaultAvailabilityEngine struct {
	Schedule     scheduleRepo.ScheduleRepository
	Reservations reservationRepo.ReservationRepository
	Calendar     calendar.Gateway // nil when the integration is not configured
}

// interval is a half-open [start, end) time range.
type interval struct {
	start time.Time
	end   time.Time
}

// overlaps is the strict half-open intersection test: a slot that ends
// exactly when another begins is not a conflict.
func (a interval) overlaps(b interval) bool {
	return a.start.Before(b.end) && b.start.Before(a.end)
}

// ComputeSlots returns the full candidate grid for the date, each slot
// labeled with its availability. Dates outside the lead-time window yield an
// empty grid, not an error.
func (e *DefaultAvailabilityEngine) ComputeSlots(ctx context.Context, date string, durationMinutes int) (*models.DayAvailability, error) {
	logger := utils.GetLogger()

	if durationMinutes <= 0 {
		return nil, NewInvalidInputError("duration must be positive")
	}

	cfg, err := e.Schedule.Config(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduling config: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid configured timezone %q: %w", cfg.Timezone, err)
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, NewInvalidInputError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}

	result := &models.DayAvailability{Timezone: cfg.Timezone, Slots: []models.TimeSlot{}}

	lead := leadDays(time.Now().In(loc), day)
	if lead < cfg.MinLeadDays || lead > cfg.MaxLeadDays {
		return result, nil
	}

	windows, err := e.Schedule.WindowsForWeekday(ctx, day.Weekday())
	if err != nil {
		return nil, fmt.Errorf("failed to load availability windows: %w", err)
	}
	if len(windows) == 0 {
		// Nothing opens this weekday; skip the reservation and calendar reads.
		return result, nil
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)
	buffer := time.Duration(cfg.BufferMinutes) * time.Minute
	footprint := time.Duration(durationMinutes)*time.Minute + buffer

	occupied, err := e.occupiedIntervals(ctx, dayStart, dayEnd, buffer)
	if err != nil {
		return nil, err
	}

	// Best-effort free/busy: a calendar outage degrades availability to
	// "possibly optimistic" rather than failing the request.
	if e.Calendar != nil {
		busy, err := e.Calendar.FreeBusy(ctx, dayStart, dayEnd)
		if err != nil {
			logger.Warn("free/busy lookup failed, proceeding without external busy data",
				zap.String("date", date), zap.Error(err))
		} else {
			for _, b := range busy {
				occupied = append(occupied, interval{start: b.Start, end: b.End})
			}
		}
	}

	for _, w := range windows {
		winStart, err := clockOnDay(day, w.Start, loc)
		if err != nil {
			logger.Warn("skipping window with malformed start",
				zap.String("windowID", w.ID), zap.Error(err))
			continue
		}
		winEnd, err := clockOnDay(day, w.End, loc)
		if err != nil {
			logger.Warn("skipping window with malformed end",
				zap.String("windowID", w.ID), zap.Error(err))
			continue
		}

		for start := winStart; !start.Add(footprint).After(winEnd); start = start.Add(slotStepMinutes * time.Minute) {
			candidate := interval{start: start, end: start.Add(footprint)}
			result.Slots = append(result.Slots, models.TimeSlot{
				Time:      start.In(loc).Format("15:04"),
				Available: !overlapsAny(candidate, occupied),
			})
		}
	}

	sort.Slice(result.Slots, func(i, j int) bool {
		return result.Slots[i].Time < result.Slots[j].Time
	})
	return result, nil
}

// IsSlotAvailable re-validates one exact slot. Used by the orchestrator right
// before committing, since the caller's slot list may be stale.
func (e *DefaultAvailabilityEngine) IsSlotAvailable(ctx context.Context, date, clock string, durationMinutes int) (bool, error) {
	day, err := e.ComputeSlots(ctx, date, durationMinutes)
	if err != nil {
		return false, err
	}
	for _, s := range day.Slots {
		if s.Time == clock {
			return s.Available, nil
		}
	}
	return false, nil
}

// occupiedIntervals gathers calendar blocks and active reservations for the
// day. The buffer inflates the occupying reservation's footprint so spacing
// is enforced symmetrically no matter which slot is computed first.
func (e *DefaultAvailabilityEngine) occupiedIntervals(ctx context.Context, dayStart, dayEnd time.Time, buffer time.Duration) ([]interval, error) {
	blocks, err := e.Schedule.BlocksInRange(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar blocks: %w", err)
	}
	reservations, err := e.Reservations.FindActiveInRange(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	occupied := make([]interval, 0, len(blocks)+len(reservations))
	for _, b := range blocks {
		occupied = append(occupied, interval{start: b.Start, end: b.End})
	}
	for _, r := range reservations {
		occupied = append(occupied, interval{start: r.Start, end: r.End().Add(buffer)})
	}
	return occupied, nil
}

func overlapsAny(candidate interval, occupied []interval) bool {
	for _, o := range occupied {
		if candidate.overlaps(o) {
			return true
		}
	}
	return false
}

// clockOnDay resolves an "HH:MM" wall-clock string onto a calendar day.
func clockOnDay(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// leadDays counts whole calendar days between now's date and the target
// date, comparing civil dates so DST transitions cannot skew the count.
func leadDays(now, day time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
