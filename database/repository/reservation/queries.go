// File: database/repository/reservation/queries.go
package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"coachly/models"
)

var activeStatuses = bson.M{"$in": bson.A{models.ReservationPending, models.ReservationConfirmed}}

func (r *mongoReservationRepo) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FindActiveByPurchase returns the pending or confirmed reservation held by a
// purchase, or nil when the purchase has none. A purchase entitles the holder
// to exactly one bookable session.
func (r *mongoReservationRepo) FindActiveByPurchase(ctx context.Context, purchaseID string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"purchase_id": purchaseID, "status": activeStatuses}
	var res models.Reservation
	err := r.coll.FindOne(ctx, filter).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query reservation for purchase %s: %w", purchaseID, err)
	}
	return &res, nil
}

// FindActiveInRange returns pending and confirmed reservations starting
// within [from, to).
func (r *mongoReservationRepo) FindActiveInRange(ctx context.Context, from, to time.Time) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status": activeStatuses,
		"start":  bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return out, nil
}

// FindStalePending returns pending rows created before olderThan. These are
// booking attempts whose caller went away mid-transaction; the sweeper
// cancels them.
func (r *mongoReservationRepo) FindStalePending(ctx context.Context, olderThan time.Time) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":     models.ReservationPending,
		"created_at": bson.M{"$lt": olderThan},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stale pending reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return out, nil
}
