package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	reservationRepo "coachly/database/repository/reservation"
	scheduleRepo "coachly/database/repository/schedule"
	"coachly/models"
	"coachly/utils"
)

// AdminHandler serves the schedule-administration endpoints: weekly windows,
// calendar blocks, scheduling config, and the reservation audit view.
type AdminHandler struct {
	Schedule     scheduleRepo.ScheduleRepository
	Reservations reservationRepo.ReservationRepository
	Logger       *zap.Logger
}

func NewAdminHandler(schedule scheduleRepo.ScheduleRepository, reservations reservationRepo.ReservationRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Schedule: schedule, Reservations: reservations, Logger: logger}
}

// ListWindows returns all weekly windows, active or not.
func (h *AdminHandler) ListWindows(c *gin.Context) {
	windows, err := h.Schedule.AllWindows(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list windows", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not list windows", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"windows": windows})
}

// UpsertWindow creates or replaces a weekly window.
func (h *AdminHandler) UpsertWindow(c *gin.Context) {
	var w models.AvailabilityWindow
	if err := c.ShouldBindJSON(&w); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "weekday must be 0-6")
		return
	}
	if _, err := time.Parse("15:04", w.Start); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "start must be HH:MM")
		return
	}
	end, err := time.Parse("15:04", w.End)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "end must be HH:MM")
		return
	}
	start, _ := time.Parse("15:04", w.Start)
	if !end.After(start) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "end must be after start")
		return
	}

	if err := h.Schedule.UpsertWindow(c.Request.Context(), &w); err != nil {
		h.Logger.Error("failed to upsert window", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not save window", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *AdminHandler) DeleteWindow(c *gin.Context) {
	if err := h.Schedule.DeleteWindow(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Window not found", "")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBlocks returns all calendar blocks.
func (h *AdminHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.Schedule.AllBlocks(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list blocks", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not list blocks", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}

// CreateBlock adds a one-off availability override (holiday, vacation).
func (h *AdminHandler) CreateBlock(c *gin.Context) {
	var b models.CalendarBlock
	if err := c.ShouldBindJSON(&b); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if !b.End.After(b.Start) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "end must be after start")
		return
	}
	if err := h.Schedule.CreateBlock(c.Request.Context(), &b); err != nil {
		h.Logger.Error("failed to create block", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not save block", "Please try again later")
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *AdminHandler) DeleteBlock(c *gin.Context) {
	if err := h.Schedule.DeleteBlock(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Block not found", "")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSchedulingConfig returns the effective scheduling config.
func (h *AdminHandler) GetSchedulingConfig(c *gin.Context) {
	cfg, err := h.Schedule.Config(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to load scheduling config", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not load config", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// SaveSchedulingConfig replaces the scheduling config singleton.
func (h *AdminHandler) SaveSchedulingConfig(c *gin.Context) {
	var cfg models.SchedulingConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "unknown timezone "+cfg.Timezone)
		return
	}
	if cfg.MinLeadDays < 0 || cfg.MaxLeadDays < cfg.MinLeadDays || cfg.BufferMinutes < 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "lead/buffer values are inconsistent")
		return
	}
	if err := h.Schedule.SaveConfig(c.Request.Context(), cfg); err != nil {
		h.Logger.Error("failed to save scheduling config", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not save config", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// ListReservations is the audit view over booking attempts in a date range.
func (h *AdminHandler) ListReservations(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "from must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "to must be YYYY-MM-DD")
		return
	}

	reservations, err := h.Reservations.FindActiveInRange(c.Request.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		h.Logger.Error("failed to list reservations", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not list reservations", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}
