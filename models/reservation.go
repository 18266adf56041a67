package models

import "time"

// Reservation lifecycle states. Transitions only move forward except for the
// explicit rollback/cancellation edge; rows are never physically deleted.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation is a durable record of one booking attempt and its outcome.
type Reservation struct {
	ID              string    `bson:"id" json:"id"`
	OwnerID         string    `bson:"owner_id" json:"owner_id"`
	PurchaseID      string    `bson:"purchase_id" json:"purchase_id"` // at most one active reservation per purchase
	PlanID          string    `bson:"plan_id" json:"plan_id"`
	PlanName        string    `bson:"plan_name" json:"plan_name"`
	Start           time.Time `bson:"start" json:"start"` // UTC instant; Timezone keeps the wall-clock label
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Timezone        string    `bson:"timezone" json:"timezone"`
	Status          string    `bson:"status" json:"status"`

	MeetingID       string `bson:"meeting_id,omitempty" json:"meeting_id,omitempty"`
	MeetingJoinURL  string `bson:"meeting_join_url,omitempty" json:"meeting_join_url,omitempty"`
	MeetingHostURL  string `bson:"meeting_host_url,omitempty" json:"-"`
	CalendarEventID string `bson:"calendar_event_id,omitempty" json:"calendar_event_id,omitempty"`

	ClientNotes        string    `bson:"client_notes,omitempty" json:"client_notes,omitempty"`
	CancellationReason string    `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}

// Active reports whether the reservation still occupies its slot. A pending
// reservation is mid-transaction and counts as occupying.
func (r *Reservation) Active() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// End returns the end of the session proper, excluding any buffer.
func (r *Reservation) End() time.Time {
	return r.Start.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// ExternalRefs carries the external resource identifiers attached to a
// reservation when it is promoted to confirmed. All fields may be empty when
// the corresponding integration is not configured.
type ExternalRefs struct {
	MeetingID       string
	MeetingJoinURL  string
	MeetingHostURL  string
	CalendarEventID string
}
