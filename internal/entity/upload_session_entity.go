package entity

import (
	"time"

	"github.com/google/uuid"

	"followdiff-be/pkg/extract"
)

// UploadSession is the in-memory half of a two-step text upload: the first
// submission is held as the following set until the followers set arrives.
// At most one session exists per user; staleness is handled by the session
// repository's TTL.
type UploadSession struct {
	UserId       uuid.UUID
	Following    extract.UserSet
	LastActivity time.Time
}
