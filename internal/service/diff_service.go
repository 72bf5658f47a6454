package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"followdiff-be/internal/dto"
	"followdiff-be/internal/entity"
	"followdiff-be/internal/pkg/logger"
	"followdiff-be/internal/repository/memory"
	"followdiff-be/internal/repository/unitofwork"
	"followdiff-be/pkg/events"
	"followdiff-be/pkg/extract"
	pktNats "followdiff-be/pkg/nats"
)

type IDiffService interface {
	// Diff computes the nine named result lists for the submitted sets,
	// persists a new snapshot and replaces the cached result. A snapshot
	// write failure does not discard the computed lists; the summary reports
	// it through BaselineSaved.
	Diff(ctx context.Context, userId uuid.UUID, following, followers extract.UserSet) (*dto.DiffSummaryResponse, error)
}

type diffService struct {
	uowFactory       unitofwork.RepositoryFactory
	resultRepo       *memory.ResultRepository
	publisherService IPublisherService
	natsPub          *pktNats.Publisher
	logger           logger.ILogger
	retentionDays    int
}

func NewDiffService(
	uowFactory unitofwork.RepositoryFactory,
	resultRepo *memory.ResultRepository,
	publisherService IPublisherService,
	natsPub *pktNats.Publisher,
	logger logger.ILogger,
	retentionDays int,
) IDiffService {
	return &diffService{
		uowFactory:       uowFactory,
		resultRepo:       resultRepo,
		publisherService: publisherService,
		natsPub:          natsPub,
		logger:           logger,
		retentionDays:    retentionDays,
	}
}

func (s *diffService) Diff(ctx context.Context, userId uuid.UUID, following, followers extract.UserSet) (*dto.DiffSummaryResponse, error) {
	mutual := following.Intersect(followers)

	lists := map[string][]string{
		entity.ListMutual:          mutual.Sorted(),
		entity.ListOnlyInFollowing: following.Subtract(followers).Sorted(),
		entity.ListOnlyInFollowers: followers.Subtract(following).Sorted(),
		entity.ListNewFollowers:    {},
		entity.ListUnfollowers:     {},
		entity.ListNewFollowing:    {},
		entity.ListUnfollowedByYou: {},
		entity.ListNewMutuals:      {},
		entity.ListLostMutuals:     {},
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	prev, err := uow.SnapshotRepository().FindLatestByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	summary := &dto.DiffSummaryResponse{
		Following: following.Len(),
		Followers: followers.Len(),
		Mutual:    mutual.Len(),
		FirstRun:  prev == nil,
	}

	if prev != nil {
		prevFollowing := extract.NewUserSet(prev.Following...)
		prevFollowers := extract.NewUserSet(prev.Followers...)
		prevMutual := prevFollowing.Intersect(prevFollowers)

		lists[entity.ListNewFollowers] = followers.Subtract(prevFollowers).Sorted()
		lists[entity.ListUnfollowers] = prevFollowers.Subtract(followers).Sorted()
		lists[entity.ListNewFollowing] = following.Subtract(prevFollowing).Sorted()
		lists[entity.ListUnfollowedByYou] = prevFollowing.Subtract(following).Sorted()
		lists[entity.ListNewMutuals] = mutual.Subtract(prevMutual).Sorted()
		lists[entity.ListLostMutuals] = prevMutual.Subtract(mutual).Sorted()

		ts := prev.Ts
		summary.BaselineTs = &ts
		summary.NewFollowers = len(lists[entity.ListNewFollowers])
		summary.Unfollowers = len(lists[entity.ListUnfollowers])
		summary.NewFollowing = len(lists[entity.ListNewFollowing])
		summary.UnfollowedByYou = len(lists[entity.ListUnfollowedByYou])
		summary.NewMutuals = len(lists[entity.ListNewMutuals])
		summary.LostMutuals = len(lists[entity.ListLostMutuals])
	}

	now := time.Now().UTC()

	// Persist happens after all set computations, so the baseline read above
	// never observes the snapshot written by this run.
	summary.BaselineSaved = true
	if err := s.persistSnapshot(ctx, uow, userId, now, following, followers); err != nil {
		// The computed lists are still served, but this run is not a durable
		// baseline for the next diff.
		summary.BaselineSaved = false
		s.logger.Error("DiffService", "Failed to persist snapshot", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	} else if s.natsPub != nil {
		evt := events.NewSnapshotCreated(userId, following.Len(), followers.Len(), now)
		if err := s.natsPub.Publish(ctx, evt); err != nil {
			s.logger.Warn("DiffService", "Failed to publish snapshot event", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
		}
	}

	s.resultRepo.Save(userId, &entity.DiffResult{
		Lists:      lists,
		ComputedAt: now,
	})

	s.publishCompleted(ctx, userId, summary, now)

	return summary, nil
}

func (s *diffService) persistSnapshot(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, now time.Time, following, followers extract.UserSet) error {
	repo := uow.SnapshotRepository()

	if s.retentionDays > 0 {
		cutoff := now.AddDate(0, 0, -s.retentionDays)
		if err := repo.DeleteOlderThan(ctx, userId, cutoff); err != nil {
			// Retention is hygiene, not part of the write path.
			s.logger.Warn("DiffService", "Retention cleanup failed", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
		}
	}

	return repo.Create(ctx, &entity.Snapshot{
		UserId:    userId,
		Ts:        now,
		Following: following.Sorted(),
		Followers: followers.Sorted(),
	})
}

func (s *diffService) publishCompleted(ctx context.Context, userId uuid.UUID, summary *dto.DiffSummaryResponse, now time.Time) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishDiffCompletedMessage{
		UserId:     userId,
		Following:  summary.Following,
		Followers:  summary.Followers,
		Mutual:     summary.Mutual,
		FirstRun:   summary.FirstRun,
		OccurredAt: now,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("DiffService", "Failed to publish diff event", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
}
