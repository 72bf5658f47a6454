package service

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"followdiff-be/internal/dto"
	"followdiff-be/internal/entity"
	"followdiff-be/internal/pkg/logger"
	"followdiff-be/internal/repository/memory"
	"followdiff-be/pkg/extract"
)

type IIngestService interface {
	// SubmitArchive runs a full diff from one zip export, bypassing the
	// two-step session. extract.ErrNoData is returned when the archive holds
	// nothing recognizable.
	SubmitArchive(ctx context.Context, userId uuid.UUID, payload []byte) (*dto.DiffSummaryResponse, error)
	// SubmitText advances the two-step session: the first submission is held
	// as the following set, the second completes a diff as the followers set.
	SubmitText(ctx context.Context, userId uuid.UUID, text string) (*dto.SubmissionResponse, error)
	// SubmitRaw dispatches an uploaded document by shape: zip payloads take
	// the archive path, anything else is decoded and treated as text.
	SubmitRaw(ctx context.Context, userId uuid.UUID, filename string, payload []byte) (*dto.SubmissionResponse, error)
	// Reset unconditionally discards the in-flight session.
	Reset(userId uuid.UUID)
}

type ingestService struct {
	sessionRepo *memory.SessionRepository
	diffService IDiffService
	logger      logger.ILogger

	// One mutex per user serializes session transitions and diff runs when
	// the transport dispatches concurrently. State is independent across
	// users, so there is no global lock.
	userLocks sync.Map
}

func NewIngestService(
	sessionRepo *memory.SessionRepository,
	diffService IDiffService,
	logger logger.ILogger,
) IIngestService {
	return &ingestService{
		sessionRepo: sessionRepo,
		diffService: diffService,
		logger:      logger,
	}
}

func (s *ingestService) lockUser(userId uuid.UUID) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userId, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *ingestService) SubmitArchive(ctx context.Context, userId uuid.UUID, payload []byte) (*dto.DiffSummaryResponse, error) {
	mu := s.lockUser(userId)
	mu.Lock()
	defer mu.Unlock()

	following, followers, err := extract.ParseArchive(payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("IngestService", "Archive extracted", map[string]interface{}{
		"user_id":   userId.String(),
		"following": following.Len(),
		"followers": followers.Len(),
	})

	return s.diffService.Diff(ctx, userId, following, followers)
}

func (s *ingestService) SubmitText(ctx context.Context, userId uuid.UUID, text string) (*dto.SubmissionResponse, error) {
	mu := s.lockUser(userId)
	mu.Lock()
	defer mu.Unlock()

	submitted := extract.TokenSet(text)

	session, found := s.sessionRepo.Get(userId)
	if !found {
		// First of the pair; a stale session has already expired out of the
		// repository, so it lands here too and restarts the sequence.
		s.sessionRepo.Save(&entity.UploadSession{
			UserId:       userId,
			Following:    submitted,
			LastActivity: time.Now().UTC(),
		})
		return &dto.SubmissionResponse{
			Stage:    dto.StageAwaitingFollowers,
			Accepted: submitted.Len(),
		}, nil
	}

	// Second of the pair: the session is consumed before the diff runs.
	s.sessionRepo.Delete(userId)

	summary, err := s.diffService.Diff(ctx, userId, session.Following, submitted)
	if err != nil {
		return nil, err
	}
	return &dto.SubmissionResponse{
		Stage:    dto.StageComplete,
		Accepted: submitted.Len(),
		Summary:  summary,
	}, nil
}

func (s *ingestService) SubmitRaw(ctx context.Context, userId uuid.UUID, filename string, payload []byte) (*dto.SubmissionResponse, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".zip") || extract.IsArchive(payload) {
		summary, err := s.SubmitArchive(ctx, userId, payload)
		if err != nil {
			return nil, err
		}
		return &dto.SubmissionResponse{
			Stage:    dto.StageComplete,
			Accepted: summary.Following + summary.Followers,
			Summary:  summary,
		}, nil
	}
	return s.SubmitText(ctx, userId, decodeText(payload))
}

func (s *ingestService) Reset(userId uuid.UUID) {
	mu := s.lockUser(userId)
	mu.Lock()
	defer mu.Unlock()

	s.sessionRepo.Delete(userId)
}

// decodeText reads document bytes as utf-8 when valid, otherwise as latin-1.
func decodeText(payload []byte) string {
	if utf8.Valid(payload) {
		return string(payload)
	}
	buf := make([]rune, len(payload))
	for i, b := range payload {
		buf[i] = rune(b)
	}
	return string(buf)
}
