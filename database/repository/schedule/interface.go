// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"
	"time"

	"coachly/database"
	"coachly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository holds the availability rules: recurring weekly windows,
// one-off calendar blocks, and the scheduling config singleton. Read-mostly;
// writes come only from the admin surface.
type ScheduleRepository interface {
	WindowsForWeekday(ctx context.Context, weekday time.Weekday) ([]models.AvailabilityWindow, error)
	AllWindows(ctx context.Context) ([]models.AvailabilityWindow, error)
	UpsertWindow(ctx context.Context, w *models.AvailabilityWindow) error
	DeleteWindow(ctx context.Context, id string) error

	BlocksInRange(ctx context.Context, from, to time.Time) ([]models.CalendarBlock, error)
	AllBlocks(ctx context.Context) ([]models.CalendarBlock, error)
	CreateBlock(ctx context.Context, b *models.CalendarBlock) error
	DeleteBlock(ctx context.Context, id string) error

	Config(ctx context.Context) (models.SchedulingConfig, error)
	SaveConfig(ctx context.Context, cfg models.SchedulingConfig) error
}

type mongoScheduleRepo struct {
	windows *mongo.Collection
	blocks  *mongo.Collection
	config  *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database("coachly")
	return &mongoScheduleRepo{
		windows: db.Collection("availability_windows"),
		blocks:  db.Collection("calendar_blocks"),
		config:  db.Collection("scheduling_config"),
	}
}
