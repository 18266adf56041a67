package cron

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachly/models"
)

// sweepFakeRepo implements just enough of the reservation repository for the
// sweep handler.
type sweepFakeRepo struct {
	rows map[string]*models.Reservation
}

func (f *sweepFakeRepo) Insert(ctx context.Context, res *models.Reservation) error {
	f.rows[res.ID] = res
	return nil
}

func (f *sweepFakeRepo) Confirm(ctx context.Context, id string, refs models.ExternalRefs) error {
	return nil
}

func (f *sweepFakeRepo) Cancel(ctx context.Context, id, reason string) error {
	row := f.rows[id]
	row.Status = models.ReservationCancelled
	row.CancellationReason = reason
	return nil
}

func (f *sweepFakeRepo) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	return f.rows[id], nil
}

func (f *sweepFakeRepo) FindActiveByPurchase(ctx context.Context, purchaseID string) (*models.Reservation, error) {
	return nil, nil
}

func (f *sweepFakeRepo) FindActiveInRange(ctx context.Context, from, to time.Time) ([]models.Reservation, error) {
	return nil, nil
}

func (f *sweepFakeRepo) FindStalePending(ctx context.Context, olderThan time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, row := range f.rows {
		if row.Status == models.ReservationPending && row.CreatedAt.Before(olderThan) {
			out = append(out, *row)
		}
	}
	return out, nil
}

func TestSweepCancelsOnlyStalePending(t *testing.T) {
	now := time.Now().UTC()
	repo := &sweepFakeRepo{rows: map[string]*models.Reservation{
		"stale": {
			ID:        "stale",
			Status:    models.ReservationPending,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		"fresh": {
			ID:        "fresh",
			Status:    models.ReservationPending,
			CreatedAt: now.Add(-1 * time.Minute),
		},
		"confirmed": {
			ID:        "confirmed",
			Status:    models.ReservationConfirmed,
			CreatedAt: now.Add(-3 * time.Hour),
		},
	}}

	handler := handleSweepTask(repo)
	require.NoError(t, handler(context.Background(), asynq.NewTask(TypeReservationSweep, nil)))

	assert.Equal(t, models.ReservationCancelled, repo.rows["stale"].Status)
	assert.Equal(t, sweepReason, repo.rows["stale"].CancellationReason)
	assert.Equal(t, models.ReservationPending, repo.rows["fresh"].Status)
	assert.Equal(t, models.ReservationConfirmed, repo.rows["confirmed"].Status)
}
