package models

// BookingInput carries everything the orchestrator needs to commit one slot.
type BookingInput struct {
	OwnerID         string `json:"owner_id"`
	PurchaseID      string `json:"purchase_id"`
	PlanID          string `json:"plan_id"`
	PlanName        string `json:"plan_name"`
	Date            string `json:"date"` // "2006-01-02", practitioner-local
	Time            string `json:"time"` // "HH:MM", practitioner-local
	DurationMinutes int    `json:"duration_minutes"`
	ClientNotes     string `json:"client_notes,omitempty"`
	AttendeeEmail   string `json:"attendee_email"`
	AttendeeName    string `json:"attendee_name"`
}

// BookingResult is the success payload of a booking commit.
type BookingResult struct {
	Reservation    *Reservation `json:"reservation"`
	MeetingJoinURL string       `json:"meeting_join_url,omitempty"`
}
