// File: database/repository/reservation/crud.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"coachly/models"
)

func (r *mongoReservationRepo) Insert(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}
	if res.Status == "" {
		res.Status = models.ReservationPending
	}

	if _, err := r.coll.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

// Confirm promotes a pending reservation and attaches whatever external
// identifiers the booking produced. The status filter guards against
// promoting a row the sweeper already cancelled.
func (r *mongoReservationRepo) Confirm(ctx context.Context, id string, refs models.ExternalRefs) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.ReservationPending}
	update := bson.M{"$set": bson.M{
		"status":            models.ReservationConfirmed,
		"meeting_id":        refs.MeetingID,
		"meeting_join_url":  refs.MeetingJoinURL,
		"meeting_host_url":  refs.MeetingHostURL,
		"calendar_event_id": refs.CalendarEventID,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to confirm reservation %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Cancel records a rollback or expiry. Cancellation is a status, not a
// deletion, preserving audit history.
func (r *mongoReservationRepo) Cancel(ctx context.Context, id, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{
		"status":              models.ReservationCancelled,
		"cancellation_reason": reason,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
