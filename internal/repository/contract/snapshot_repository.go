package contract

import (
	"context"
	"time"

	"github.com/google/uuid"

	"followdiff-be/internal/entity"
	"followdiff-be/internal/repository/specification"
)

type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *entity.Snapshot) error
	// FindOne returns nil without error when no row matches.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Snapshot, error)
	// FindLatestByUser returns the snapshot with the highest id for the user,
	// or nil when the user has no history yet.
	FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.Snapshot, error)
	DeleteAllByUser(ctx context.Context, userId uuid.UUID) error
	// DeleteOlderThan removes snapshots for the user with ts before the
	// cutoff. Best-effort retention hygiene, never touches rows at or after
	// the cutoff.
	DeleteOlderThan(ctx context.Context, userId uuid.UUID, cutoff time.Time) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountAndLastByUser returns the number of stored snapshots and the
	// timestamp of the newest one (nil when there are none).
	CountAndLastByUser(ctx context.Context, userId uuid.UUID) (int64, *time.Time, error)
}
