package cache

import (
	"context"
	"parcel-kpi-service/internal/domain"
	"parcel-kpi-service/internal/platform/obs"
	"parcel-kpi-service/internal/ports"
)

// CachedRecordSource serves batches from a BatchCache and falls back to the wrapped
// source on a miss. Cache failures are logged and never fail a request.
type CachedRecordSource struct {
	Source ports.RecordSource
	Cache  ports.BatchCache
}

func NewCachedRecordSource(src ports.RecordSource, c ports.BatchCache) *CachedRecordSource {
	return &CachedRecordSource{Source: src, Cache: c}
}

func (s *CachedRecordSource) ListRecords(ctx context.Context, batchID string) ([]domain.ParcelRecord, error) {
	if records, ok := s.cached(ctx, batchID); ok {
		return records, nil
	}

	records, err := s.Source.ListRecords(ctx, batchID)
	if err != nil {
		return nil, err
	}

	if err := s.Cache.PutBatch(ctx, batchID, records); err != nil {
		obs.Logger().WithField("req_id", obs.RequestID(ctx)).WithError(err).
			Warnf("batch cache put failed batch=%s", batchID)
	}
	return records, nil
}

// A cached batch is filtered in memory; otherwise the lookup goes to the source
// without loading the whole batch.
func (s *CachedRecordSource) FindParcels(ctx context.Context, batchID string, q domain.ParcelQuery) ([]domain.ParcelRecord, error) {
	records, ok := s.cached(ctx, batchID)
	if !ok {
		return s.Source.FindParcels(ctx, batchID, q)
	}

	out := make([]domain.ParcelRecord, 0)
	for i := range records {
		if q.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out, nil
}

func (s *CachedRecordSource) cached(ctx context.Context, batchID string) ([]domain.ParcelRecord, bool) {
	records, ok, err := s.Cache.GetBatch(ctx, batchID)
	if err != nil {
		obs.Logger().WithField("req_id", obs.RequestID(ctx)).WithError(err).
			Warnf("batch cache get failed batch=%s", batchID)
		return nil, false
	}
	return records, ok
}
