package session

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ytbot/internal/core/domain"
)

// Store keeps per-user pending selections in memory. Entries expire after
// the configured TTL, which is what turns a stale button press into the
// "session expired" path in the flow.
type Store struct {
	cache *gocache.Cache
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Store{cache: gocache.New(ttl, 10*time.Minute)}
}

func (s *Store) Get(userID int64) (*domain.UserSession, bool) {
	v, ok := s.cache.Get(key(userID))
	if !ok {
		return nil, false
	}
	return v.(*domain.UserSession), true
}

func (s *Store) Put(userID int64, sess *domain.UserSession) {
	s.cache.SetDefault(key(userID), sess)
}

func (s *Store) Clear(userID int64) {
	s.cache.Delete(key(userID))
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
