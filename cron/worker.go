package cron

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"coachly/config"
	reservationRepo "coachly/database/repository/reservation"
	"coachly/utils"
)

const TypeReservationSweep = "reservation:sweep"

// sweepReason marks rows cancelled by the sweeper rather than by rollback.
const sweepReason = "expired - never confirmed"

// InitSweepWorker runs the background worker that cancels orphaned pending
// reservations. A pending row with no progress after the TTL belongs to a
// caller who went away mid-booking; cancelling it frees the slot. Pending
// rows never hold external resources (meeting/calendar IDs attach only at
// confirmation), so the sweep is purely a status transition.
func InitSweepWorker(repo reservationRepo.ReservationRepository) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReservationSweep, handleSweepTask(repo))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 10m", asynq.NewTask(TypeReservationSweep, nil)); err != nil {
		logger.Error("[SweepWorker] failed to register sweep schedule", zap.Error(err))
		return
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("[SweepWorker] scheduler stopped", zap.Error(err))
		}
	}()
	go func() {
		logger.Info("[SweepWorker] starting async worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("[SweepWorker] worker stopped", zap.Error(err))
		}
	}()
}

func handleSweepTask(repo reservationRepo.ReservationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		ttl := time.Duration(config.AppConfig.PendingTTLMinutes) * time.Minute
		if ttl <= 0 {
			ttl = 30 * time.Minute
		}
		cutoff := time.Now().UTC().Add(-ttl)

		stale, err := repo.FindStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("[SweepWorker] failed to query stale pending reservations", zap.Error(err))
			return err
		}
		if len(stale) == 0 {
			return nil
		}

		swept := 0
		for _, res := range stale {
			if err := repo.Cancel(ctx, res.ID, sweepReason); err != nil {
				logger.Error("[SweepWorker] failed to cancel stale reservation",
					zap.String("reservationID", res.ID), zap.Error(err))
				continue
			}
			swept++
		}
		logger.Info("[SweepWorker] swept stale pending reservations",
			zap.Int("found", len(stale)), zap.Int("cancelled", swept))
		return nil
	}
}
