// File: database/repository/reservation/indexes.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coachly/models"
)

// EnsureIndexes creates the necessary indexes on the reservations collection.
// The partial unique index on (start, status active) is the storage-level
// guard against two active reservations landing on the same start instant,
// backing up the orchestrator's re-validation and slot lock.
func (r *mongoReservationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activeFilter := bson.M{"status": bson.M{"$in": bson.A{
		models.ReservationPending, models.ReservationConfirmed,
	}}}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "start", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(activeFilter).
				SetName("unique_active_start"),
		},
		{
			Keys:    bson.D{{Key: "purchase_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("purchase_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().SetName("status_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("status_created_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}
