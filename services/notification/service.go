package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coachly/models"
	"coachly/utils"

	"go.uber.org/zap"
)

// DefaultNotificationService sends plain-text confirmation mail to the
// attendee and the practitioner.
type DefaultNotificationService struct {
	Sender        Sender
	OperatorEmail string
	OperatorName  string
}

func NewDefaultNotificationService(sender Sender, operatorEmail, operatorName string) *DefaultNotificationService {
	return &DefaultNotificationService{
		Sender:        sender,
		OperatorEmail: operatorEmail,
		OperatorName:  operatorName,
	}
}

func (s *DefaultNotificationService) NotifyAttendee(ctx context.Context, res *models.Reservation, email, name string) error {
	if email == "" {
		return nil
	}
	subject := fmt.Sprintf("Your %s session is booked", res.PlanName)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Your session is confirmed:\n\n")
	fmt.Fprintf(&b, "  %s\n", res.PlanName)
	fmt.Fprintf(&b, "  %s (%s)\n", formatStart(res), res.Timezone)
	fmt.Fprintf(&b, "  %d minutes\n", res.DurationMinutes)
	if res.MeetingJoinURL != "" {
		fmt.Fprintf(&b, "\nJoin link: %s\n", res.MeetingJoinURL)
	}
	fmt.Fprintf(&b, "\nSee you there!\n")

	if err := s.Sender.Send(email, subject, b.String()); err != nil {
		utils.GetLogger().Warn("failed to send attendee confirmation",
			zap.String("reservationID", res.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *DefaultNotificationService) NotifyOperator(ctx context.Context, res *models.Reservation, attendeeName string) error {
	if s.OperatorEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("New booking: %s with %s", res.PlanName, attendeeName)

	var b strings.Builder
	fmt.Fprintf(&b, "A new session was booked.\n\n")
	fmt.Fprintf(&b, "  Client:   %s\n", attendeeName)
	fmt.Fprintf(&b, "  Plan:     %s\n", res.PlanName)
	fmt.Fprintf(&b, "  When:     %s (%s)\n", formatStart(res), res.Timezone)
	fmt.Fprintf(&b, "  Duration: %d minutes\n", res.DurationMinutes)
	if res.MeetingHostURL != "" {
		fmt.Fprintf(&b, "  Host link: %s\n", res.MeetingHostURL)
	}
	if res.ClientNotes != "" {
		fmt.Fprintf(&b, "\nClient notes:\n%s\n", res.ClientNotes)
	}

	if err := s.Sender.Send(s.OperatorEmail, subject, b.String()); err != nil {
		utils.GetLogger().Warn("failed to send operator notification",
			zap.String("reservationID", res.ID), zap.Error(err))
		return err
	}
	return nil
}

func formatStart(res *models.Reservation) string {
	loc, err := time.LoadLocation(res.Timezone)
	if err != nil {
		return res.Start.Format("Monday, January 2 2006 at 15:04 MST")
	}
	return res.Start.In(loc).Format("Monday, January 2 2006 at 15:04")
}
