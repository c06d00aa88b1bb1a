package session

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Store keeps sessions in memory for the lifetime of a browser session.
// Sessions are expired after a TTL of inactivity; there is no persistence
// across process restarts.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore creates a Store expiring sessions after ttl, sweeping expired
// entries every sweep interval.
func NewStore(ttl, sweep time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, sweep),
		ttl:   ttl,
	}
}

// Get returns the session for id, or false when none exists.
func (s *Store) Get(id string) (*Session, bool) {
	if x, found := s.cache.Get(id); found {
		return x.(*Session), true
	}
	return nil, false
}

// GetOrCreate returns the session for id, creating one with defaults on
// first touch.
func (s *Store) GetOrCreate(id string) *Session {
	if sess, found := s.Get(id); found {
		return sess
	}
	sess := New(id)
	s.Save(sess)
	return sess
}

// Save stores the session and refreshes its expiry window.
func (s *Store) Save(sess *Session) {
	sess.UpdatedAt = time.Now()
	s.cache.Set(sess.ID, sess, cache.DefaultExpiration)
}

// Delete removes the session for id.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}
