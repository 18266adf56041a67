package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coachly/config"
	"coachly/models"
	"coachly/services/booking"
	"coachly/utils"
)

// BookingHandler serves the public availability and booking endpoints.
type BookingHandler struct {
	Engine  booking.AvailabilityEngine
	Booking booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(engine booking.AvailabilityEngine, svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Engine: engine, Booking: svc, Logger: logger}
}

// GetAvailability returns the slot grid for one date and plan.
// GET /api/availability?date=YYYY-MM-DD&planId=...
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	planID := c.Query("planId")
	if date == "" || planID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required query parameters", "date and planId are required")
		return
	}

	plan, ok := config.PlanByID(planID)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Unknown plan", "no plan with id "+planID)
		return
	}

	day, err := h.Engine.ComputeSlots(c.Request.Context(), date, plan.DurationMinutes)
	if err != nil {
		if booking.ErrorCode(err) == booking.CodeInvalidInput {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		h.Logger.Error("failed to compute availability",
			zap.String("date", date), zap.String("planID", planID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not compute availability", "Please try again later")
		return
	}

	c.JSON(http.StatusOK, day)
}

type createBookingRequest struct {
	PurchaseID    string `json:"purchaseId" binding:"required"`
	PlanID        string `json:"planId" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	ClientNotes   string `json:"clientNotes"`
	AttendeeEmail string `json:"attendeeEmail" binding:"required,email"`
	AttendeeName  string `json:"attendeeName" binding:"required"`
}

// CreateBooking commits a chosen slot.
// POST /api/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	plan, ok := config.PlanByID(req.PlanID)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Unknown plan", "no plan with id "+req.PlanID)
		return
	}

	input := models.BookingInput{
		OwnerID:         c.GetString("ownerID"), // set by the storefront's auth proxy
		PurchaseID:      req.PurchaseID,
		PlanID:          plan.ID,
		PlanName:        plan.Name,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: plan.DurationMinutes,
		ClientNotes:     req.ClientNotes,
		AttendeeEmail:   req.AttendeeEmail,
		AttendeeName:    req.AttendeeName,
	}

	result, err := h.Booking.CreateBooking(c.Request.Context(), input)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reservationId":  result.Reservation.ID,
		"meetingJoinUrl": result.MeetingJoinURL,
	})
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch booking.ErrorCode(err) {
	case booking.CodeSlotUnavailable:
		utils.JSONError(c, http.StatusConflict, "Slot no longer available", "Please pick another time")
	case booking.CodeDuplicateBooking:
		utils.JSONError(c, http.StatusConflict, "Purchase already has a booking", "Cancel the existing session before booking another")
	case booking.CodeInvalidInput:
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
	case booking.CodeProvisioningFailure:
		utils.JSONError(c, http.StatusBadGateway, "Could not complete booking", "Please try again later")
	default:
		h.Logger.Error("booking failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not complete booking", "Please try again later")
	}
}
