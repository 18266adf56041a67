package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coachly/config"
	"coachly/models"
	"coachly/services/booking"
)

type stubEngine struct {
	day *models.DayAvailability
	err error
}

func (s *stubEngine) ComputeSlots(ctx context.Context, date string, durationMinutes int) (*models.DayAvailability, error) {
	return s.day, s.err
}

func (s *stubEngine) IsSlotAvailable(ctx context.Context, date, clock string, durationMinutes int) (bool, error) {
	return true, nil
}

type stubBookingService struct {
	result *models.BookingResult
	err    error
	gotIn  models.BookingInput
}

func (s *stubBookingService) CreateBooking(ctx context.Context, input models.BookingInput) (*models.BookingResult, error) {
	s.gotIn = input
	return s.result, s.err
}

func setupRouter(engine booking.AvailabilityEngine, svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBookingHandler(engine, svc, zap.NewNop())
	r.GET("/api/availability", h.GetAvailability)
	r.POST("/api/bookings", h.CreateBooking)
	return r
}

func withPlans(t *testing.T) {
	t.Helper()
	prev := config.AppConfig.Plans
	config.AppConfig.Plans = []models.SessionPlan{
		{ID: "deep-dive", Name: "Deep Dive", DurationMinutes: 60},
	}
	t.Cleanup(func() { config.AppConfig.Plans = prev })
}

func TestGetAvailability(t *testing.T) {
	withPlans(t)
	engine := &stubEngine{day: &models.DayAvailability{
		Timezone: "UTC",
		Slots: []models.TimeSlot{
			{Time: "09:00", Available: true},
			{Time: "09:30", Available: false},
		},
	}}
	router := setupRouter(engine, &stubBookingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability?date=2026-09-07&planId=deep-dive", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var day models.DayAvailability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.Equal(t, "UTC", day.Timezone)
	assert.Len(t, day.Slots, 2)
}

func TestGetAvailability_MissingParams(t *testing.T) {
	withPlans(t)
	router := setupRouter(&stubEngine{}, &stubBookingService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?date=2026-09-07", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailability_UnknownPlan(t *testing.T) {
	withPlans(t)
	router := setupRouter(&stubEngine{}, &stubBookingService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?date=2026-09-07&planId=nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func bookingBody() []byte {
	b, _ := json.Marshal(map[string]string{
		"purchaseId":    "purchase-1",
		"planId":        "deep-dive",
		"date":          "2026-09-07",
		"time":          "10:00",
		"attendeeEmail": "client@example.com",
		"attendeeName":  "Avery",
	})
	return b
}

func postBooking(router *gin.Engine, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBooking_Success(t *testing.T) {
	withPlans(t)
	svc := &stubBookingService{result: &models.BookingResult{
		Reservation:    &models.Reservation{ID: "res-1", Status: models.ReservationConfirmed},
		MeetingJoinURL: "https://zoom.example/j/1",
	}}
	router := setupRouter(&stubEngine{}, svc)

	w := postBooking(router, bookingBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "res-1", resp["reservationId"])
	assert.Equal(t, "https://zoom.example/j/1", resp["meetingJoinUrl"])

	// The handler resolves duration and display name from the plan catalog.
	assert.Equal(t, 60, svc.gotIn.DurationMinutes)
	assert.Equal(t, "Deep Dive", svc.gotIn.PlanName)
}

func TestCreateBooking_SlotUnavailable(t *testing.T) {
	withPlans(t)
	svc := &stubBookingService{err: booking.NewSlotUnavailableError()}
	router := setupRouter(&stubEngine{}, svc)

	assert.Equal(t, http.StatusConflict, postBooking(router, bookingBody()).Code)
}

func TestCreateBooking_Duplicate(t *testing.T) {
	withPlans(t)
	svc := &stubBookingService{err: booking.NewDuplicateBookingError("purchase-1")}
	router := setupRouter(&stubEngine{}, svc)

	assert.Equal(t, http.StatusConflict, postBooking(router, bookingBody()).Code)
}

func TestCreateBooking_ProvisioningFailure(t *testing.T) {
	withPlans(t)
	svc := &stubBookingService{err: booking.NewProvisioningError(context.DeadlineExceeded)}
	router := setupRouter(&stubEngine{}, svc)

	assert.Equal(t, http.StatusBadGateway, postBooking(router, bookingBody()).Code)
}

func TestCreateBooking_MalformedBody(t *testing.T) {
	withPlans(t)
	router := setupRouter(&stubEngine{}, &stubBookingService{})

	assert.Equal(t, http.StatusBadRequest, postBooking(router, []byte(`{"planId":"deep-dive"}`)).Code)
}
