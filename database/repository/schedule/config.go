// File: database/repository/schedule/config.go
package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coachly/config"
	"coachly/models"
)

const configDocID = "scheduling"

// Config returns the scheduling config singleton, falling back to the
// config-file defaults when no document has been saved yet.
func (r *mongoScheduleRepo) Config(ctx context.Context) (models.SchedulingConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cfg models.SchedulingConfig
	err := r.config.FindOne(ctx, bson.M{"_id": configDocID}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return defaultSchedulingConfig(), nil
	}
	if err != nil {
		return models.SchedulingConfig{}, fmt.Errorf("failed to fetch scheduling config: %w", err)
	}
	if cfg.Timezone == "" {
		cfg.Timezone = config.AppConfig.Timezone
	}
	return cfg, nil
}

func (r *mongoScheduleRepo) SaveConfig(ctx context.Context, cfg models.SchedulingConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := bson.M{
		"_id":            configDocID,
		"timezone":       cfg.Timezone,
		"min_lead_days":  cfg.MinLeadDays,
		"max_lead_days":  cfg.MaxLeadDays,
		"buffer_minutes": cfg.BufferMinutes,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.config.ReplaceOne(ctx, bson.M{"_id": configDocID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save scheduling config: %w", err)
	}
	return nil
}

func defaultSchedulingConfig() models.SchedulingConfig {
	c := config.AppConfig
	return models.SchedulingConfig{
		Timezone:      c.Timezone,
		MinLeadDays:   c.MinLeadDays,
		MaxLeadDays:   c.MaxLeadDays,
		BufferMinutes: c.BufferMinutes,
	}
}
