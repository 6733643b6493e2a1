package ports

import (
	"context"
	"errors"
	"parcel-kpi-service/internal/domain"
)

// ErrBatchNotFound is returned when no collection exists for the requested batch.
// An existing but empty batch is not an error.
var ErrBatchNotFound = errors.New("batch not found")

// Port: a boundary for retrieving the parcel records of one batch (one calendar day).
type RecordSource interface {
	// Return every record of the batch in stored order.
	ListRecords(ctx context.Context, batchID string) ([]domain.ParcelRecord, error)
	// Return the records of the batch matching an exact-match lookup.
	FindParcels(ctx context.Context, batchID string, q domain.ParcelQuery) ([]domain.ParcelRecord, error)
}
