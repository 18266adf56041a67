package models

// TimeSlot is a candidate session start time on one date. Derived fresh per
// request and never cached: its correctness depends on the latest
// reservations and external calendar state.
type TimeSlot struct {
	Time      string `json:"time"` // "HH:MM", practitioner-local
	Available bool   `json:"available"`
}

// DayAvailability is the full slot grid for one calendar date. Unavailable
// slots are included so the UI can render taken times.
type DayAvailability struct {
	Timezone string     `json:"timezone"`
	Slots    []TimeSlot `json:"slots"`
}
