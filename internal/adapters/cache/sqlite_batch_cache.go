package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"parcel-kpi-service/internal/domain"
	"parcel-kpi-service/internal/platform/obs"
	"time"
)

// SQLite backed cache of fetched batches. Closed days never change, so a local
// file keeps them across restarts when no Redis is available.
type SqliteBatchCache struct {
	DB  *sql.DB
	TTL time.Duration

	now func() time.Time
}

func NewSqliteBatchCache(db *sql.DB, ttl time.Duration) *SqliteBatchCache {
	return &SqliteBatchCache{DB: db, TTL: ttl, now: time.Now}
}

// Create the batch_cache table if it does not exist.
func (s *SqliteBatchCache) InitSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("batch cache: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS batch_cache (
		batch_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		cached_at INTEGER NOT NULL
	);
	`
	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init batch cache: create table: %w", err)
	}
	return nil
}

// Fetch a cached batch. Entries older than TTL count as a miss; TTL 0 never expires.
func (s *SqliteBatchCache) GetBatch(ctx context.Context, batchID string) (_ []domain.ParcelRecord, ok bool, err error) {
	defer obs.Time(ctx, "batch.cache.sqlite.GetBatch")(&err)

	if s.DB == nil {
		return nil, false, errors.New("batch cache: db is nil")
	}

	q := `
	SELECT payload, cached_at
	FROM batch_cache
	WHERE batch_id = ?;
	`

	var payload string
	var cachedAt int64
	err = s.DB.QueryRowContext(ctx, q, batchID).Scan(&payload, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get batch cache %q: query batch_cache table: %w", batchID, err)
	}

	if s.TTL > 0 && s.clock().Sub(time.Unix(cachedAt, 0)) > s.TTL {
		return nil, false, nil
	}

	var records []domain.ParcelRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, false, fmt.Errorf("get batch cache %q: decode: %w", batchID, err)
	}
	if records == nil {
		records = []domain.ParcelRecord{}
	}

	return records, true, nil
}

// Store a batch, replacing any previous entry.
func (s *SqliteBatchCache) PutBatch(ctx context.Context, batchID string, records []domain.ParcelRecord) error {
	if s.DB == nil {
		return errors.New("batch cache: db is nil")
	}

	if records == nil {
		records = []domain.ParcelRecord{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("put batch cache %q: encode: %w", batchID, err)
	}

	q := `
	INSERT INTO batch_cache (batch_id, payload, cached_at)
	VALUES (?, ?, ?)
	ON CONFLICT (batch_id) DO UPDATE
	SET payload = excluded.payload,
		cached_at = excluded.cached_at;
	`
	if _, err := s.DB.ExecContext(ctx, q, batchID, string(b), s.clock().Unix()); err != nil {
		return fmt.Errorf("put batch cache %q: upsert: %w", batchID, err)
	}
	return nil
}

func (s *SqliteBatchCache) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
