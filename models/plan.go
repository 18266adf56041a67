package models

// SessionPlan is the slice of the storefront catalog the booking core needs:
// a plan's identity, display name, and session length. The catalog itself
// (pricing, checkout) lives in a separate service.
type SessionPlan struct {
	ID              string `mapstructure:"id" json:"id"`
	Name            string `mapstructure:"name" json:"name"`
	DurationMinutes int    `mapstructure:"duration_minutes" json:"duration_minutes"`
}
