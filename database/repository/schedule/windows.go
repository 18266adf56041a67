// File: database/repository/schedule/windows.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coachly/models"
)

// WindowsForWeekday returns the active recurring windows for one weekday.
func (r *mongoScheduleRepo) WindowsForWeekday(ctx context.Context, weekday time.Weekday) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"weekday": weekday, "active": true}
	cursor, err := r.windows.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability windows: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.AvailabilityWindow
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding availability windows: %w", err)
	}
	return out, nil
}

func (r *mongoScheduleRepo) AllWindows(ctx context.Context) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "weekday", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.windows.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability windows: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.AvailabilityWindow
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding availability windows: %w", err)
	}
	return out, nil
}

func (r *mongoScheduleRepo) UpsertWindow(ctx context.Context, w *models.AvailabilityWindow) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.windows.ReplaceOne(ctx, bson.M{"id": w.ID}, w, opts); err != nil {
		return fmt.Errorf("failed to upsert availability window: %w", err)
	}
	return nil
}

func (r *mongoScheduleRepo) DeleteWindow(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.windows.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete availability window: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
