// File: database/repository/schedule/blocks.go
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

// BlocksInRange returns calendar blocks overlapping [from, to). Half-open
// interval overlap: block.start < to && from < block.end.
func (r *mongoScheduleRepo) BlocksInRange(ctx context.Context, from, to time.Time) ([]models.CalendarBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"start": bson.M{"$lt": to},
		"end":   bson.M{"$gt": from},
	}
	cursor, err := r.blocks.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar blocks: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.CalendarBlock
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding calendar blocks: %w", err)
	}
	return out, nil
}

func (r *mongoScheduleRepo) AllBlocks(ctx context.Context) ([]models.CalendarBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.blocks.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar blocks: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.CalendarBlock
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding calendar blocks: %w", err)
	}
	return out, nil
}

func (r *mongoScheduleRepo) CreateBlock(ctx context.Context, b *models.CalendarBlock) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if _, err := r.blocks.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to insert calendar block: %w", err)
	}
	return nil
}

func (r *mongoScheduleRepo) DeleteBlock(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.blocks.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete calendar block: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
