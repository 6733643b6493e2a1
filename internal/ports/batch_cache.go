package ports

import (
	"context"
	"parcel-kpi-service/internal/domain"
)

// Optional cache of fetched batches, consulted in front of a RecordSource.
type BatchCache interface {
	// Return the cached batch, ok=false on a miss.
	GetBatch(ctx context.Context, batchID string) (_ []domain.ParcelRecord, ok bool, err error)
	// Store a fetched batch.
	PutBatch(ctx context.Context, batchID string, records []domain.ParcelRecord) error
}
