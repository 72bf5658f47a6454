package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"followdiff-be/internal/entity"
	"followdiff-be/internal/repository/contract"
	"followdiff-be/internal/repository/specification"
	"followdiff-be/internal/repository/unitofwork"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}

func (nopLogger) Sync() error { return nil }

// fakeSnapshotRepo keeps snapshots in an id-ordered slice, mirroring the
// behavior the gorm implementation exposes through the contract.
type fakeSnapshotRepo struct {
	snapshots  []*entity.Snapshot
	nextId     int64
	failCreate bool
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{nextId: 1}
}

func (r *fakeSnapshotRepo) Create(ctx context.Context, snapshot *entity.Snapshot) error {
	if r.failCreate {
		return errors.New("storage unavailable")
	}
	stored := *snapshot
	stored.Id = r.nextId
	r.nextId++
	r.snapshots = append(r.snapshots, &stored)
	return nil
}

func (r *fakeSnapshotRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Snapshot, error) {
	if len(r.snapshots) == 0 {
		return nil, nil
	}
	return r.snapshots[len(r.snapshots)-1], nil
}

func (r *fakeSnapshotRepo) FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.Snapshot, error) {
	var latest *entity.Snapshot
	for _, s := range r.snapshots {
		if s.UserId == userId && (latest == nil || s.Id > latest.Id) {
			latest = s
		}
	}
	return latest, nil
}

func (r *fakeSnapshotRepo) DeleteAllByUser(ctx context.Context, userId uuid.UUID) error {
	kept := r.snapshots[:0]
	for _, s := range r.snapshots {
		if s.UserId != userId {
			kept = append(kept, s)
		}
	}
	r.snapshots = kept
	return nil
}

func (r *fakeSnapshotRepo) DeleteOlderThan(ctx context.Context, userId uuid.UUID, cutoff time.Time) error {
	kept := r.snapshots[:0]
	for _, s := range r.snapshots {
		if s.UserId == userId && s.Ts.Before(cutoff) {
			continue
		}
		kept = append(kept, s)
	}
	r.snapshots = kept
	return nil
}

func (r *fakeSnapshotRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.snapshots)), nil
}

func (r *fakeSnapshotRepo) CountAndLastByUser(ctx context.Context, userId uuid.UUID) (int64, *time.Time, error) {
	var count int64
	var last *time.Time
	for _, s := range r.snapshots {
		if s.UserId != userId {
			continue
		}
		count++
		if last == nil || s.Ts.After(*last) {
			ts := s.Ts
			last = &ts
		}
	}
	return count, last, nil
}

type fakeUnitOfWork struct {
	repo contract.SnapshotRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) SnapshotRepository() contract.SnapshotRepository { return u.repo }

type fakeRepositoryFactory struct {
	repo contract.SnapshotRepository
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{repo: f.repo}
}
