package access

import (
	"strings"
	"sync"
	"time"

	"github.com/campuschain/access-layer/internal/adapter"
)

// OptimisticStore holds short-lived local access flags set right after a
// settled write, before the ledger reader observes the new state. Flags are
// keyed by (actor, entity), expire on their own TTL, and are cleared early
// once the ledger confirms. The store outlives any single request.
type OptimisticStore struct {
	clock adapter.Clock
	ttl   time.Duration

	mu    sync.Mutex
	flags map[string]time.Time
}

// NewOptimisticStore creates an OptimisticStore with the given flag TTL
func NewOptimisticStore(clock adapter.Clock, ttl time.Duration) *OptimisticStore {
	if ttl == 0 {
		ttl = 2 * time.Minute
	}
	return &OptimisticStore{
		clock: clock,
		ttl:   ttl,
		flags: make(map[string]time.Time),
	}
}

func flagKey(actorAddress, entityKey string) string {
	return strings.ToLower(actorAddress) + "|" + entityKey
}

// Set marks access as locally granted for one (actor, entity) pair
func (s *OptimisticStore) Set(actorAddress, entityKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[flagKey(actorAddress, entityKey)] = s.clock.Now().Add(s.ttl)
}

// Get reports whether an unexpired flag exists; expired flags are removed
func (s *OptimisticStore) Get(actorAddress, entityKey string) bool {
	key := flagKey(actorAddress, entityKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.flags[key]
	if !ok {
		return false
	}
	if s.clock.Now().After(expiry) {
		delete(s.flags, key)
		return false
	}
	return true
}

// Clear drops the flag for one (actor, entity) pair. Called when the ledger
// confirms the state the flag was standing in for.
func (s *OptimisticStore) Clear(actorAddress, entityKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flags, flagKey(actorAddress, entityKey))
}
