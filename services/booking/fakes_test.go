package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"coachly/models"
	"coachly/services/calendar"
	"coachly/services/meeting"
)

// fakeScheduleRepo serves availability rules from memory and counts reads so
// tests can assert on query short-circuits.
type fakeScheduleRepo struct {
	windows map[time.Weekday][]models.AvailabilityWindow
	blocks  []models.CalendarBlock
	cfg     models.SchedulingConfig

	windowsCalls int
	blocksCalls  int
}

func newFakeSchedule() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		windows: make(map[time.Weekday][]models.AvailabilityWindow),
		cfg: models.SchedulingConfig{
			Timezone:      "UTC",
			MinLeadDays:   0,
			MaxLeadDays:   365,
			BufferMinutes: 15,
		},
	}
}

func (f *fakeScheduleRepo) WindowsForWeekday(ctx context.Context, weekday time.Weekday) ([]models.AvailabilityWindow, error) {
	f.windowsCalls++
	var active []models.AvailabilityWindow
	for _, w := range f.windows[weekday] {
		if w.Active {
			active = append(active, w)
		}
	}
	return active, nil
}

func (f *fakeScheduleRepo) AllWindows(ctx context.Context) ([]models.AvailabilityWindow, error) {
	var all []models.AvailabilityWindow
	for _, ws := range f.windows {
		all = append(all, ws...)
	}
	return all, nil
}

func (f *fakeScheduleRepo) UpsertWindow(ctx context.Context, w *models.AvailabilityWindow) error {
	f.windows[w.Weekday] = append(f.windows[w.Weekday], *w)
	return nil
}

func (f *fakeScheduleRepo) DeleteWindow(ctx context.Context, id string) error { return nil }

func (f *fakeScheduleRepo) BlocksInRange(ctx context.Context, from, to time.Time) ([]models.CalendarBlock, error) {
	f.blocksCalls++
	var out []models.CalendarBlock
	for _, b := range f.blocks {
		if b.Start.Before(to) && from.Before(b.End) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) AllBlocks(ctx context.Context) ([]models.CalendarBlock, error) {
	return f.blocks, nil
}

func (f *fakeScheduleRepo) CreateBlock(ctx context.Context, b *models.CalendarBlock) error {
	f.blocks = append(f.blocks, *b)
	return nil
}

func (f *fakeScheduleRepo) DeleteBlock(ctx context.Context, id string) error { return nil }

func (f *fakeScheduleRepo) Config(ctx context.Context) (models.SchedulingConfig, error) {
	return f.cfg, nil
}

func (f *fakeScheduleRepo) SaveConfig(ctx context.Context, cfg models.SchedulingConfig) error {
	f.cfg = cfg
	return nil
}

// fakeReservationRepo is an in-memory reservation store.
type fakeReservationRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Reservation

	rangeCalls int
	insertErr  error
}

func newFakeReservations() *fakeReservationRepo {
	return &fakeReservationRepo{rows: make(map[string]*models.Reservation)}
}

func (f *fakeReservationRepo) Insert(ctx context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	cp := *res
	f.rows[res.ID] = &cp
	return nil
}

func (f *fakeReservationRepo) Confirm(ctx context.Context, id string, refs models.ExternalRefs) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.Status != models.ReservationPending {
		return errors.New("no pending reservation to confirm")
	}
	row.Status = models.ReservationConfirmed
	row.MeetingID = refs.MeetingID
	row.MeetingJoinURL = refs.MeetingJoinURL
	row.MeetingHostURL = refs.MeetingHostURL
	row.CalendarEventID = refs.CalendarEventID
	return nil
}

func (f *fakeReservationRepo) Cancel(ctx context.Context, id, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return errors.New("reservation not found")
	}
	row.Status = models.ReservationCancelled
	row.CancellationReason = reason
	return nil
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, errors.New("reservation not found")
	}
	cp := *row
	return &cp, nil
}

func (f *fakeReservationRepo) FindActiveByPurchase(ctx context.Context, purchaseID string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.PurchaseID == purchaseID && row.Active() {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindActiveInRange(ctx context.Context, from, to time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rangeCalls++
	var out []models.Reservation
	for _, row := range f.rows {
		if row.Active() && !row.Start.Before(from) && row.Start.Before(to) {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindStalePending(ctx context.Context, olderThan time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, row := range f.rows {
		if row.Status == models.ReservationPending && row.CreatedAt.Before(olderThan) {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakeReservationRepo) get(id string) *models.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

func (f *fakeReservationRepo) single() *models.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		return row
	}
	return nil
}

// fakeCalendar is an in-memory calendar gateway.
type fakeCalendar struct {
	busy        []models.BusyPeriod
	freeBusyErr error
	createErr   error

	freeBusyCalls int
	created       []string
	deleted       []string
	nextEventID   string
}

func (f *fakeCalendar) FreeBusy(ctx context.Context, from, to time.Time) ([]models.BusyPeriod, error) {
	f.freeBusyCalls++
	if f.freeBusyErr != nil {
		return nil, f.freeBusyErr
	}
	return f.busy, nil
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, in calendar.EventInput) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	id := f.nextEventID
	if id == "" {
		id = "evt-1"
	}
	f.created = append(f.created, id)
	return id, nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

// fakeMeetings is an in-memory meeting gateway.
type fakeMeetings struct {
	createErr error
	deleteErr error

	created []string
	deleted []string
}

func (f *fakeMeetings) CreateMeeting(ctx context.Context, in meeting.MeetingInput) (*models.Meeting, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, "mtg-1")
	return &models.Meeting{ID: "mtg-1", JoinURL: "https://zoom.example/j/1", HostURL: "https://zoom.example/s/1"}, nil
}

func (f *fakeMeetings) DeleteMeeting(ctx context.Context, meetingID string) error {
	f.deleted = append(f.deleted, meetingID)
	return f.deleteErr
}

// fakeNotifier records notifications and signals when both were attempted.
type fakeNotifier struct {
	mu       sync.Mutex
	attendee []string
	operator []string
	err      error
	done     chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{done: make(chan struct{}, 2)}
}

func (f *fakeNotifier) NotifyAttendee(ctx context.Context, res *models.Reservation, email, name string) error {
	f.mu.Lock()
	f.attendee = append(f.attendee, email)
	f.mu.Unlock()
	f.done <- struct{}{}
	return f.err
}

func (f *fakeNotifier) NotifyOperator(ctx context.Context, res *models.Reservation, attendeeName string) error {
	f.mu.Lock()
	f.operator = append(f.operator, attendeeName)
	f.mu.Unlock()
	f.done <- struct{}{}
	return f.err
}

func (f *fakeNotifier) waitBoth(t interface{ Fatalf(string, ...interface{}) }) {
	for i := 0; i < 2; i++ {
		select {
		case <-f.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for notifications")
		}
	}
}

// fakeLocker either always grants or always refuses the slot lock.
type fakeLocker struct {
	refuse   bool
	acquired []string
	released int
}

func (f *fakeLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	if f.refuse {
		return nil, false, nil
	}
	f.acquired = append(f.acquired, key)
	return func() { f.released++ }, true, nil
}
