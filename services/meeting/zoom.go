package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"coachly/models"
)

const (
	defaultAPIBaseURL = "https://api.zoom.us/v2"
	defaultOAuthURL   = "https://zoom.us/oauth/token"
)

// zoomGateway implements Gateway against the Zoom REST API using
// Server-to-Server OAuth credentials.
type zoomGateway struct {
	httpClient   *http.Client
	apiBaseURL   string
	oauthURL     string
	accountID    string
	clientID     string
	clientSecret string
	cache        tokenCache
}

// NewZoomGateway builds a Gateway from Server-to-Server OAuth credentials.
func NewZoomGateway(accountID, clientID, clientSecret string) Gateway {
	return &zoomGateway{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		apiBaseURL:   defaultAPIBaseURL,
		oauthURL:     defaultOAuthURL,
		accountID:    accountID,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

type createMeetingRequest struct {
	Topic     string          `json:"topic"`
	Type      int             `json:"type"` // 2 = scheduled meeting
	StartTime string          `json:"start_time"`
	Duration  int             `json:"duration"`
	Timezone  string          `json:"timezone"`
	Settings  meetingSettings `json:"settings"`
}

type meetingSettings struct {
	JoinBeforeHost bool `json:"join_before_host"`
	WaitingRoom    bool `json:"waiting_room"`
}

type createMeetingResponse struct {
	ID       int64  `json:"id"`
	JoinURL  string `json:"join_url"`
	StartURL string `json:"start_url"`
}

func (z *zoomGateway) CreateMeeting(ctx context.Context, in MeetingInput) (*models.Meeting, error) {
	token, err := z.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("zoom auth failed: %w", err)
	}

	body := createMeetingRequest{
		Topic: in.Topic,
		Type:  2,
		// Local wall-clock time; the timezone field resolves it.
		StartTime: in.Start.Format("2006-01-02T15:04:05"),
		Duration:  in.DurationMinutes,
		Timezone:  in.Timezone,
		Settings: meetingSettings{
			JoinBeforeHost: false,
			WaitingRoom:    true,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meeting request: %w", err)
	}

	url := z.apiBaseURL + "/users/me/meetings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build meeting request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := z.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meeting creation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("meeting creation returned status %d: %s", resp.StatusCode, string(raw))
	}

	var created createMeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode meeting response: %w", err)
	}

	return &models.Meeting{
		ID:      strconv.FormatInt(created.ID, 10),
		JoinURL: created.JoinURL,
		HostURL: created.StartURL,
	}, nil
}

// DeleteMeeting removes a meeting. A meeting Zoom no longer knows about
// counts as deleted.
func (z *zoomGateway) DeleteMeeting(ctx context.Context, meetingID string) error {
	token, err := z.accessToken(ctx)
	if err != nil {
		return fmt.Errorf("zoom auth failed: %w", err)
	}

	url := z.apiBaseURL + "/meetings/" + meetingID
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := z.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("meeting deletion request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("meeting deletion returned status %d", resp.StatusCode)
	}
}
