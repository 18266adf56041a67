package models

// Meeting is a provisioned video-conference room for one session.
type Meeting struct {
	ID      string `json:"id"`
	JoinURL string `json:"join_url"`
	HostURL string `json:"host_url"`
}
