// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"time"

	"coachly/database"
	"coachly/models"
	"coachly/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ReservationRepository is the durable store for booking attempts. It is the
// source of truth for double-booking prevention: pending and confirmed rows
// both occupy their slot, and rows are never physically deleted.
type ReservationRepository interface {
	Insert(ctx context.Context, res *models.Reservation) error
	Confirm(ctx context.Context, id string, refs models.ExternalRefs) error
	Cancel(ctx context.Context, id, reason string) error
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	FindActiveByPurchase(ctx context.Context, purchaseID string) (*models.Reservation, error)
	FindActiveInRange(ctx context.Context, from, to time.Time) ([]models.Reservation, error)
	FindStalePending(ctx context.Context, olderThan time.Time) ([]models.Reservation, error)
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database("coachly")
	repo := &mongoReservationRepo{
		coll: db.Collection("reservations"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Error("reservation repo: failed to ensure indexes", zap.Error(err))
	}
	return repo
}
