package weathercache

import (
	"context"
	"sync"
	"time"

	"github.com/agrivision/agrivision/internal/domain/weather"
)

type cachedSnapshot struct {
	payload   weather.Snapshot
	expiresAt time.Time
}

// MemoryStore is an in-memory snapshot cache for tests/dev and the default
// deployment when no Valkey instance is configured.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]cachedSnapshot
}

// NewMemoryStore constructs a cache backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]cachedSnapshot)}
}

// Get implements weather.SnapshotCache.
func (s *MemoryStore) Get(_ context.Context, key string) (weather.Snapshot, bool) {
	s.mu.RLock()
	entry, ok := s.snapshots[key]
	s.mu.RUnlock()
	if !ok {
		return weather.Snapshot{}, false
	}
	if hasExpired(entry.expiresAt) {
		s.mu.Lock()
		delete(s.snapshots, key)
		s.mu.Unlock()
		return weather.Snapshot{}, false
	}
	return entry.payload, true
}

// Set caches the snapshot with optional TTL.
func (s *MemoryStore) Set(_ context.Context, key string, snap weather.Snapshot, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.snapshots[key] = cachedSnapshot{payload: snap, expiresAt: exp}
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ weather.SnapshotCache = (*MemoryStore)(nil)
