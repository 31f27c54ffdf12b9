package memory

import (
	"strconv"

	"github.com/patrickmn/go-cache"
)

// LastPickRepository remembers, per requesting user, the author of their most
// recently picked message. Process-lifetime only: a restart resets the
// anti-repeat memory.
type LastPickRepository struct {
	cache *cache.Cache
}

func NewLastPickRepository() *LastPickRepository {
	// No expiration, no janitor: last-writer-wins entries live as long as
	// the process does.
	c := cache.New(cache.NoExpiration, 0)
	return &LastPickRepository{
		cache: c,
	}
}

func (r *LastPickRepository) Set(userId, authorId int64) {
	r.cache.Set(strconv.FormatInt(userId, 10), authorId, cache.NoExpiration)
}

func (r *LastPickRepository) Get(userId int64) (int64, bool) {
	if x, found := r.cache.Get(strconv.FormatInt(userId, 10)); found {
		return x.(int64), true
	}
	return 0, false
}

func (r *LastPickRepository) Delete(userId int64) {
	r.cache.Delete(strconv.FormatInt(userId, 10))
}
