package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"followdiff-be/internal/dto"
	"followdiff-be/internal/entity"
	"followdiff-be/internal/repository/memory"
	"followdiff-be/internal/repository/unitofwork"
	"followdiff-be/pkg/report"
)

var (
	// ErrNoResult means no diff has been computed for the user yet (or the
	// cached result was wiped); distinct from an empty page of a real list.
	ErrNoResult = errors.New("no diff result available")
	// ErrUnknownList means the requested name is not one of the nine lists.
	ErrUnknownList = errors.New("unknown list name")
)

type IReportService interface {
	Overview(userId uuid.UUID) (*dto.ListsOverviewResponse, error)
	Page(userId uuid.UUID, listName string, offset int) (*dto.PageResponse, error)
	Export(userId uuid.UUID) ([]byte, error)
	Stats(ctx context.Context, userId uuid.UUID) (*dto.StatsResponse, error)
	Wipe(ctx context.Context, userId uuid.UUID) error
}

type reportService struct {
	uowFactory    unitofwork.RepositoryFactory
	resultRepo    *memory.ResultRepository
	pageSize      int
	retentionDays int
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	resultRepo *memory.ResultRepository,
	pageSize int,
	retentionDays int,
) IReportService {
	return &reportService{
		uowFactory:    uowFactory,
		resultRepo:    resultRepo,
		pageSize:      pageSize,
		retentionDays: retentionDays,
	}
}

func (s *reportService) Overview(userId uuid.UUID) (*dto.ListsOverviewResponse, error) {
	result, found := s.resultRepo.Get(userId)
	if !found {
		return nil, ErrNoResult
	}

	lists := make([]dto.ListCount, 0, len(entity.ListNames))
	for _, name := range entity.ListNames {
		lists = append(lists, dto.ListCount{
			Name:  name,
			Count: len(result.Lists[name]),
		})
	}
	return &dto.ListsOverviewResponse{
		ComputedAt: result.ComputedAt,
		Lists:      lists,
	}, nil
}

func (s *reportService) Page(userId uuid.UUID, listName string, offset int) (*dto.PageResponse, error) {
	if !entity.IsListName(listName) {
		return nil, ErrUnknownList
	}
	result, found := s.resultRepo.Get(userId)
	if !found {
		return nil, ErrNoResult
	}

	items := result.Lists[listName]
	total := len(items)

	if offset < 0 {
		offset = 0
	}
	start := offset
	if start > total {
		start = total
	}
	end := start + s.pageSize
	if end > total {
		end = total
	}

	page := make([]string, end-start)
	copy(page, items[start:end])

	return &dto.PageResponse{
		Name:   listName,
		Offset: offset,
		Total:  total,
		Items:  page,
	}, nil
}

func (s *reportService) Export(userId uuid.UUID) ([]byte, error) {
	result, found := s.resultRepo.Get(userId)
	if !found {
		return nil, ErrNoResult
	}
	return report.Bundle(result)
}

func (s *reportService) Stats(ctx context.Context, userId uuid.UUID) (*dto.StatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, lastTs, err := uow.SnapshotRepository().CountAndLastByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		Snapshots:     count,
		LastTs:        lastTs,
		RetentionDays: s.retentionDays,
	}, nil
}

func (s *reportService) Wipe(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SnapshotRepository().DeleteAllByUser(ctx, userId); err != nil {
		return err
	}
	s.resultRepo.Delete(userId)
	return nil
}
