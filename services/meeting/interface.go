package meeting

import (
	"context"
	"time"

	"coachly/models"
)

// MeetingInput describes one video-conference meeting to provision.
type MeetingInput struct {
	Topic           string
	Start           time.Time
	DurationMinutes int
	Timezone        string
}

// Gateway provisions video-conference meetings for confirmed sessions.
// DeleteMeeting is idempotent: a meeting that is already gone is success.
// Only the booking orchestrator may call these write APIs.
type Gateway interface {
	CreateMeeting(ctx context.Context, in MeetingInput) (*models.Meeting, error)
	DeleteMeeting(ctx context.Context, meetingID string) error
}
