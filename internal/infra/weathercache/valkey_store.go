package weathercache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/agrivision/agrivision/internal/domain/weather"
)

// ValkeyStore caches snapshots in a Valkey-compatible database so multiple
// instances share one upstream quota.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	logger *slog.Logger
}

// NewValkeyStore constructs a cache backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, logger *slog.Logger) *ValkeyStore {
	if prefix == "" {
		prefix = "weather"
	}
	return &ValkeyStore{client: client, prefix: prefix, logger: logger.With("component", "weathercache.valkey")}
}

// Get implements weather.SnapshotCache.
func (s *ValkeyStore) Get(ctx context.Context, key string) (weather.Snapshot, bool) {
	cmd := s.client.B().Get().Key(s.prefix + ":" + key).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			s.logger.Warn("snapshot cache read failed", "key", key, "error", err)
		}
		return weather.Snapshot{}, false
	}
	var snap weather.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		s.logger.Warn("snapshot cache entry malformed", "key", key, "error", err)
		return weather.Snapshot{}, false
	}
	return snap, true
}

// Set caches the snapshot with optional TTL. Failures are logged, not
// surfaced: the cache is an optimization, never a dependency.
func (s *ValkeyStore) Set(ctx context.Context, key string, snap weather.Snapshot, ttl time.Duration) {
	payload, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("snapshot cache encode failed", "key", key, "error", err)
		return
	}
	builder := s.client.B().Set().Key(s.prefix + ":" + key).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		s.logger.Warn("snapshot cache write failed", "key", key, "error", err)
	}
}

var _ weather.SnapshotCache = (*ValkeyStore)(nil)
