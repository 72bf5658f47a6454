package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"followdiff-be/internal/entity"
	"followdiff-be/internal/mapper"
	"followdiff-be/internal/model"
	"followdiff-be/internal/repository/contract"
	"followdiff-be/internal/repository/specification"
)

type SnapshotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SnapshotMapper
}

func NewSnapshotRepository(db *gorm.DB) contract.SnapshotRepository {
	return &SnapshotRepositoryImpl{
		db:     db,
		mapper: mapper.NewSnapshotMapper(),
	}
}

func (r *SnapshotRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SnapshotRepositoryImpl) Create(ctx context.Context, snapshot *entity.Snapshot) error {
	m := r.mapper.SnapshotToModel(snapshot)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*snapshot = *r.mapper.SnapshotToEntity(m)
	return nil
}

func (r *SnapshotRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Snapshot, error) {
	var m model.Snapshot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SnapshotToEntity(&m), nil
}

func (r *SnapshotRepositoryImpl) FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.Snapshot, error) {
	return r.FindOne(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "id", Desc: true},
	)
}

func (r *SnapshotRepositoryImpl) DeleteAllByUser(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.Snapshot{}).Error
}

func (r *SnapshotRepositoryImpl) DeleteOlderThan(ctx context.Context, userId uuid.UUID, cutoff time.Time) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND ts < ?", userId, cutoff).
		Delete(&model.Snapshot{}).Error
}

func (r *SnapshotRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Snapshot{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SnapshotRepositoryImpl) CountAndLastByUser(ctx context.Context, userId uuid.UUID) (int64, *time.Time, error) {
	count, err := r.Count(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}
	latest, err := r.FindOne(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "ts", Desc: true},
	)
	if err != nil {
		return 0, nil, err
	}
	if latest == nil {
		return count, nil, nil
	}
	ts := latest.Ts
	return count, &ts, nil
}
