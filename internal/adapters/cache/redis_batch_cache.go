package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"parcel-kpi-service/internal/domain"
	"parcel-kpi-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "parcel-kpi:batch:"

// RedisBatchCache stores fetched batches as JSON under one key per batch.
type RedisBatchCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisBatchCache(client *redis.Client, ttl time.Duration) *RedisBatchCache {
	return &RedisBatchCache{Client: client, TTL: ttl, Prefix: defaultKeyPrefix}
}

// Fetch a cached batch. A missing key is a miss, not an error.
func (c *RedisBatchCache) GetBatch(ctx context.Context, batchID string) (_ []domain.ParcelRecord, ok bool, err error) {
	defer obs.Time(ctx, "batch.cache.GetBatch")(&err)

	if c.Client == nil {
		return nil, false, errors.New("batch cache: redis client is nil")
	}

	b, err := c.Client.Get(ctx, c.key(batchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get batch cache %q: %w", batchID, err)
	}

	var records []domain.ParcelRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, false, fmt.Errorf("get batch cache %q: decode: %w", batchID, err)
	}
	if records == nil {
		records = []domain.ParcelRecord{}
	}

	return records, true, nil
}

// Store a batch with the configured TTL.
func (c *RedisBatchCache) PutBatch(ctx context.Context, batchID string, records []domain.ParcelRecord) error {
	if c.Client == nil {
		return errors.New("batch cache: redis client is nil")
	}

	if records == nil {
		records = []domain.ParcelRecord{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("put batch cache %q: encode: %w", batchID, err)
	}

	if err := c.Client.Set(ctx, c.key(batchID), b, c.TTL).Err(); err != nil {
		return fmt.Errorf("put batch cache %q: %w", batchID, err)
	}
	return nil
}

func (c *RedisBatchCache) key(batchID string) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return prefix + batchID
}
