// Package cache provides an in-process result cache with time-boxed expiry.
// Remote lookups (weather, news, quotes, search, pages) are keyed by
// operation kind plus normalized parameters so equivalent requests within
// the TTL window never hit the network twice.
package cache

import (
	"strings"
	"sync"
	"time"
)

// TTL classes. Stock quotes move faster than everything else.
const (
	DefaultTTL = 10 * time.Minute
	QuoteTTL   = 5 * time.Minute
)

type entry struct {
	storedAt time.Time
	value    any
}

// Store is a key→(timestamp, value) map with per-kind TTLs. Expired entries
// are treated as misses on read and overwritten by the next Put; nothing is
// ever evicted, which is fine for a short-lived interactive process.
type Store struct {
	mu      sync.Mutex
	ttls    map[string]time.Duration
	entries map[string]entry

	now func() time.Time // overridable in tests
}

// New creates a Store with the default TTL classes.
func New() *Store {
	return &Store{
		ttls:    map[string]time.Duration{"stock": QuoteTTL},
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// SetTTL overrides the TTL for one operation kind.
func (s *Store) SetTTL(kind string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttls[kind] = ttl
}

// Get returns the cached value for kind+key, or false if the entry is
// missing or older than the kind's TTL.
func (s *Store) Get(kind, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[kind+":"+key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.storedAt) >= s.ttlFor(kind) {
		return nil, false
	}
	return e.value, true
}

// Put stores a value for kind+key, overwriting any previous entry.
func (s *Store) Put(kind, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[kind+":"+key] = entry{storedAt: s.now(), value: value}
}

// Len reports the number of entries, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) ttlFor(kind string) time.Duration {
	if ttl, ok := s.ttls[kind]; ok {
		return ttl
	}
	return DefaultTTL
}

// Key builds a deterministic cache key from normalized parameters: parts are
// trimmed, lower-cased, and joined, so "Paris" and " paris " collide.
func Key(parts ...string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(norm, "|")
}
