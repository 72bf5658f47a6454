package entity

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is one durable (following, followers) pair for a user.
// Snapshots are append-only; "latest" means the highest Id for a user.
type Snapshot struct {
	Id        int64
	UserId    uuid.UUID
	Ts        time.Time
	Following []string
	Followers []string
}
