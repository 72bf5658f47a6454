package entity

import "time"

// DiffNotification is pushed to a user's open websocket connections when a
// diff run completes.
type DiffNotification struct {
	Type       string    `json:"type"`
	Following  int       `json:"following"`
	Followers  int       `json:"followers"`
	Mutual     int       `json:"mutual"`
	FirstRun   bool      `json:"first_run"`
	OccurredAt time.Time `json:"occurred_at"`
}

const NotificationTypeDiffCompleted = "diff_completed"
