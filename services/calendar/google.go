package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"coachly/models"
)

// googleGateway implements Gateway against the Google Calendar v3 API using
// a service account with domain access to the practitioner's calendar.
type googleGateway struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleGateway builds a Gateway from a service-account credentials file.
func NewGoogleGateway(ctx context.Context, credentialsFile, calendarID string) (Gateway, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read google credentials: %w", err)
	}
	jwtCfg, err := google.JWTConfigFromJSON(creds, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}
	svc, err := gcal.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar service: %w", err)
	}
	return &googleGateway{svc: svc, calendarID: calendarID}, nil
}

// FreeBusy returns the busy periods on the calendar within [from, to).
func (g *googleGateway) FreeBusy(ctx context.Context, from, to time.Time) ([]models.BusyPeriod, error) {
	req := &gcal.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}
	resp, err := g.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query failed: %w", err)
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		return nil, nil
	}
	periods := make([]models.BusyPeriod, 0, len(cal.Busy))
	for _, b := range cal.Busy {
		start, err1 := time.Parse(time.RFC3339, b.Start)
		end, err2 := time.Parse(time.RFC3339, b.End)
		if err1 != nil || err2 != nil {
			continue
		}
		periods = append(periods, models.BusyPeriod{Start: start, End: end})
	}
	return periods, nil
}

// CreateEvent creates the session event, invites the attendee, and asks the
// provider to send its own notifications.
func (g *googleGateway) CreateEvent(ctx context.Context, in EventInput) (string, error) {
	end := in.Start.Add(time.Duration(in.DurationMinutes) * time.Minute)
	event := &gcal.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start: &gcal.EventDateTime{
			DateTime: in.Start.Format(time.RFC3339),
			TimeZone: in.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: in.Timezone,
		},
	}
	if in.AttendeeEmail != "" {
		event.Attendees = []*gcal.EventAttendee{{
			Email:       in.AttendeeEmail,
			DisplayName: in.AttendeeName,
		}}
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	return created.Id, nil
}

// DeleteEvent removes an event. An already-deleted event is success.
func (g *googleGateway) DeleteEvent(ctx context.Context, eventID string) error {
	err := g.svc.Events.Delete(g.calendarID, eventID).Context(ctx).Do()
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone {
			return nil
		}
	}
	return fmt.Errorf("failed to delete calendar event %s: %w", eventID, err)
}
