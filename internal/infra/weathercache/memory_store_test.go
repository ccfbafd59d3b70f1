package weathercache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agrivision/agrivision/internal/domain/weather"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok := store.Get(ctx, "wx:20.59:78.96")
	require.False(t, ok)

	snap := weather.Snapshot{Temperature: 28.5, Condition: "Clear Sky"}
	store.Set(ctx, "wx:20.59:78.96", snap, 10*time.Minute)

	got, ok := store.Get(ctx, "wx:20.59:78.96")
	require.True(t, ok)
	require.Equal(t, snap, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", weather.Snapshot{Temperature: 1}, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := store.Get(ctx, "k")
	require.False(t, ok)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", weather.Snapshot{Temperature: 1}, 0)
	time.Sleep(2 * time.Millisecond)

	_, ok := store.Get(ctx, "k")
	require.True(t, ok)
}
