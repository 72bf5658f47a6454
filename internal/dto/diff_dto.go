package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// Submission stages for the two-step text upload.
const (
	StageAwaitingFollowers = "awaiting_followers"
	StageComplete          = "complete"
)

// SubmissionResponse acknowledges a text submission. After the first half of
// a pair only Stage and Accepted are set; after the second half Summary
// carries the completed diff.
type SubmissionResponse struct {
	Stage    string               `json:"stage"`
	Accepted int                  `json:"accepted"`
	Summary  *DiffSummaryResponse `json:"summary,omitempty"`
}

type DiffSummaryResponse struct {
	Following int `json:"following"`
	Followers int `json:"followers"`
	Mutual    int `json:"mutual"`

	// FirstRun is true when no baseline snapshot existed, in which case the
	// six temporal counts below are all zero.
	FirstRun   bool       `json:"first_run"`
	BaselineTs *time.Time `json:"baseline_ts,omitempty"`

	NewFollowers    int `json:"new_followers"`
	Unfollowers     int `json:"unfollowers"`
	NewFollowing    int `json:"new_following"`
	UnfollowedByYou int `json:"unfollowed_by_you"`
	NewMutuals      int `json:"new_mutuals"`
	LostMutuals     int `json:"lost_mutuals"`

	// BaselineSaved is false when the snapshot write failed; the lists above
	// are still valid but the run will not serve as a baseline for the next
	// diff.
	BaselineSaved bool `json:"baseline_saved"`
}

type ListCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ListsOverviewResponse struct {
	ComputedAt time.Time   `json:"computed_at"`
	Lists      []ListCount `json:"lists"`
}

type PageResponse struct {
	Name   string   `json:"name"`
	Offset int      `json:"offset"`
	Total  int      `json:"total"`
	Items  []string `json:"items"`
}

type StatsResponse struct {
	Snapshots     int64      `json:"snapshots"`
	LastTs        *time.Time `json:"last_ts,omitempty"`
	RetentionDays int        `json:"retention_days"`
}

// PublishDiffCompletedMessage is the payload on the internal diff topic.
type PublishDiffCompletedMessage struct {
	UserId     uuid.UUID `json:"user_id"`
	Following  int       `json:"following"`
	Followers  int       `json:"followers"`
	Mutual     int       `json:"mutual"`
	FirstRun   bool      `json:"first_run"`
	OccurredAt time.Time `json:"occurred_at"`
}
