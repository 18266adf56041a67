// File: coachly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachly/config"
	"coachly/cron"
	"coachly/database"
	reservationRepo "coachly/database/repository/reservation"
	scheduleRepo "coachly/database/repository/schedule"
	"coachly/handlers"
	"coachly/middleware"
	"coachly/routes"
	"coachly/services/booking"
	"coachly/services/calendar"
	"coachly/services/meeting"
	"coachly/services/notification"
	"coachly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// Repositories.
	reservations := reservationRepo.NewMongoReservationRepo()
	schedule := scheduleRepo.NewMongoScheduleRepo()

	// External gateways; either may be left unconfigured.
	var meetingGateway meeting.Gateway
	if config.MeetingConfigured() {
		meetingGateway = meeting.NewZoomGateway(
			config.AppConfig.ZoomAccountID,
			config.AppConfig.ZoomClientID,
			config.AppConfig.ZoomClientSecret,
		)
		logger.Info("meeting integration enabled")
	} else {
		logger.Warn("meeting integration not configured; bookings will have no video room")
	}

	var calendarGateway calendar.Gateway
	if config.CalendarConfigured() {
		gw, err := calendar.NewGoogleGateway(
			context.Background(),
			config.AppConfig.GoogleCredentialsFile,
			config.AppConfig.GoogleCalendarID,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize calendar gateway: %v", err)
		}
		calendarGateway = gw
		logger.Info("calendar integration enabled")
	} else {
		logger.Warn("calendar integration not configured; external busy periods will be ignored")
	}

	sender := notification.NewSMTPSender(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPFrom,
	)
	notifier := notification.NewDefaultNotificationService(
		sender,
		config.AppConfig.OperatorEmail,
		config.AppConfig.OperatorName,
	)

	// Services.
	engine := &booking.DefaultAvailabilityEngine{
		Schedule:     schedule,
		Reservations: reservations,
		Calendar:     calendarGateway,
	}
	bookingService := &booking.DefaultBookingService{
		Engine:       engine,
		Schedule:     schedule,
		Reservations: reservations,
		Meetings:     meetingGateway,
		Calendar:     calendarGateway,
		Notifier:     notifier,
		Locks:        booking.NewRedisSlotLocker(utils.GetLockClient()),
	}

	bookingHandler := handlers.NewBookingHandler(engine, bookingService, logger)
	adminHandler := handlers.NewAdminHandler(schedule, reservations, logger)

	routes.RegisterRoutes(router, bookingHandler, adminHandler)

	// Background sweep of orphaned pending reservations.
	cron.InitSweepWorker(reservations)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
