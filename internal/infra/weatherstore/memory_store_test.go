package weatherstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luwei/smart-travel/internal/domain/outfit"
	"github.com/luwei/smart-travel/internal/domain/weather"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	obs := weather.Observation{Temperature: 12, Condition: outfit.ConditionCloudy}

	_, ok, err := store.GetObservation(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SaveObservation(ctx, "k", obs, time.Minute))

	got, ok, err := store.GetObservation(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, obs, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SaveObservation(ctx, "k", weather.Observation{}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := store.GetObservation(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SaveObservation(ctx, "k", weather.Observation{}, 0))

	_, ok, err := store.GetObservation(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
}
