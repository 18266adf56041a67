package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachly/models"
)

type captureSender struct {
	to      []string
	subject []string
	body    []string
	err     error
}

func (c *captureSender) Send(to, subject, body string) error {
	c.to = append(c.to, to)
	c.subject = append(c.subject, subject)
	c.body = append(c.body, body)
	return c.err
}

func confirmedReservation() *models.Reservation {
	return &models.Reservation{
		ID:              "res-1",
		PlanName:        "Deep Dive",
		Start:           time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Timezone:        "UTC",
		Status:          models.ReservationConfirmed,
		MeetingJoinURL:  "https://zoom.example/j/1",
		MeetingHostURL:  "https://zoom.example/s/1",
		ClientNotes:     "please focus on interviews",
	}
}

func TestNotifyAttendee(t *testing.T) {
	sender := &captureSender{}
	svc := NewDefaultNotificationService(sender, "coach@example.com", "Coach")

	err := svc.NotifyAttendee(context.Background(), confirmedReservation(), "client@example.com", "Avery")
	require.NoError(t, err)

	require.Len(t, sender.to, 1)
	assert.Equal(t, "client@example.com", sender.to[0])
	assert.Contains(t, sender.subject[0], "Deep Dive")
	assert.Contains(t, sender.body[0], "https://zoom.example/j/1")
	assert.Contains(t, sender.body[0], "60 minutes")
	assert.NotContains(t, sender.body[0], "https://zoom.example/s/1", "host link must not leak to the attendee")
}

func TestNotifyAttendee_NoEmailIsNoop(t *testing.T) {
	sender := &captureSender{}
	svc := NewDefaultNotificationService(sender, "coach@example.com", "Coach")

	require.NoError(t, svc.NotifyAttendee(context.Background(), confirmedReservation(), "", "Avery"))
	assert.Empty(t, sender.to)
}

func TestNotifyOperator(t *testing.T) {
	sender := &captureSender{}
	svc := NewDefaultNotificationService(sender, "coach@example.com", "Coach")

	err := svc.NotifyOperator(context.Background(), confirmedReservation(), "Avery")
	require.NoError(t, err)

	require.Len(t, sender.to, 1)
	assert.Equal(t, "coach@example.com", sender.to[0])
	assert.Contains(t, sender.body[0], "https://zoom.example/s/1")
	assert.Contains(t, sender.body[0], "please focus on interviews")
}

func TestNotifySurfacesSenderError(t *testing.T) {
	sender := &captureSender{err: errors.New("smtp refused")}
	svc := NewDefaultNotificationService(sender, "coach@example.com", "Coach")

	assert.Error(t, svc.NotifyAttendee(context.Background(), confirmedReservation(), "client@example.com", "Avery"))
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("from@x.test", "to@x.test", "Subject line", "body text")
	assert.Contains(t, msg, "From: from@x.test\r\n")
	assert.Contains(t, msg, "To: to@x.test\r\n")
	assert.Contains(t, msg, "Subject: Subject line\r\n")
	assert.Contains(t, msg, "\r\n\r\nbody text\r\n")
}
