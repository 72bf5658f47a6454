package memory

import (
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"followdiff-be/internal/entity"
)

// ResultRepository caches the latest diff result per user. Entries never
// expire; they are replaced wholesale by the next diff run or dropped by an
// explicit wipe, and lost on process restart.
type ResultRepository struct {
	cache *cache.Cache
}

func NewResultRepository() *ResultRepository {
	c := cache.New(cache.NoExpiration, 0)
	return &ResultRepository{
		cache: c,
	}
}

func (r *ResultRepository) Save(userId uuid.UUID, result *entity.DiffResult) {
	r.cache.Set(userId.String(), result, cache.NoExpiration)
}

func (r *ResultRepository) Get(userId uuid.UUID) (*entity.DiffResult, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(*entity.DiffResult), true
	}
	return nil, false
}

func (r *ResultRepository) Delete(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
