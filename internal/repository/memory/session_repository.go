package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"followdiff-be/internal/entity"
)

// SessionRepository holds partially-submitted two-step uploads. Expiry is the
// TTL of the whole session: an entry that outlives it is simply gone on the
// next access, which restarts the two-step sequence.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	// Expired entries are also purged every 10 minutes so abandoned
	// sessions do not linger in memory between accesses.
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *entity.UploadSession) {
	r.cache.Set(session.UserId.String(), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(userId uuid.UUID) (*entity.UploadSession, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(*entity.UploadSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
