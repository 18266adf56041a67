package models

import "time"

// AvailabilityWindow is a recurring weekly open-hours window. Multiple
// windows may exist per weekday (e.g. a morning and an evening block).
type AvailabilityWindow struct {
	ID      string       `bson:"id" json:"id"`
	Weekday time.Weekday `bson:"weekday" json:"weekday"`  // 0 = Sunday … 6 = Saturday
	Start   string       `bson:"start" json:"start"`      // "HH:MM", practitioner-local
	End     string       `bson:"end" json:"end"`          // "HH:MM", exclusive
	Active  bool         `bson:"active" json:"active"`
}

// CalendarBlock removes availability within a date/time range regardless of
// weekly windows (holidays, vacations).
type CalendarBlock struct {
	ID        string    `bson:"id" json:"id"`
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// SchedulingConfig tunes slot computation. Stored as a singleton document;
// config-file defaults apply when the document is absent.
type SchedulingConfig struct {
	Timezone      string `bson:"timezone" json:"timezone"`
	MinLeadDays   int    `bson:"min_lead_days" json:"minLeadDays"`
	MaxLeadDays   int    `bson:"max_lead_days" json:"maxLeadDays"`
	BufferMinutes int    `bson:"buffer_minutes" json:"bufferMinutes"`
}

// BusyPeriod is a busy interval reported by the external calendar. Derived,
// never persisted, and tolerated to be stale or missing entirely.
type BusyPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
