package cache

import (
	"context"
	"parcel-kpi-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*RedisBatchCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisBatchCache(client, time.Minute), mr
}

func TestRedisBatchCacheMissAndHit(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	_, ok, err := c.GetBatch(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.False(t, ok)

	records := []domain.ParcelRecord{{HostID: "H1", VolumeData: &domain.VolumeData{Height: domain.Integer(12)}}}
	require.NoError(t, c.PutBatch(ctx, "2024-05-01", records))
	assert.True(t, mr.Exists("parcel-kpi:batch:2024-05-01"))

	got, ok, err := c.GetBatch(ctx, "2024-05-01")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "12", got[0].Volume().Height.String())
}

func TestRedisBatchCacheEmptyBatchIsAHit(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.PutBatch(ctx, "2024-05-01", nil))

	got, ok, err := c.GetBatch(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRedisBatchCacheExpires(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.PutBatch(ctx, "2024-05-01", []domain.ParcelRecord{{HostID: "H1"}}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.GetBatch(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisBatchCacheCorruptValue(t *testing.T) {
	c, mr := newRedisCache(t)
	require.NoError(t, mr.Set("parcel-kpi:batch:2024-05-01", "{oops"))

	_, ok, err := c.GetBatch(context.Background(), "2024-05-01")
	assert.Error(t, err)
	assert.False(t, ok)
}
