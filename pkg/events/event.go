package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "snapshot_created").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used for all domain events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const TypeSnapshotCreated = "snapshot_created"

// NewSnapshotCreated builds the event published after a diff run stores a
// new snapshot.
func NewSnapshotCreated(userId uuid.UUID, following, followers int, ts time.Time) Event {
	return BaseEvent{
		Type: TypeSnapshotCreated,
		Data: map[string]interface{}{
			"user_id":   userId.String(),
			"following": following,
			"followers": followers,
			"ts":        ts.Format(time.RFC3339),
		},
		OccurredAt: ts,
	}
}
