package repositories

import (
	"context"
	"parcel-kpi-service/internal/domain"
	"parcel-kpi-service/internal/ports"
	"slices"
	"sync"
)

// In-memory RecordSource, used for local demos and tests.
type MemoryRecordRepository struct {
	mu      sync.RWMutex
	batches map[string][]domain.ParcelRecord
}

func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{batches: make(map[string][]domain.ParcelRecord)}
}

func (m *MemoryRecordRepository) SeedBatch(_ context.Context, batchID string, records []domain.ParcelRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches[batchID] = slices.Clone(records)
	return nil
}

func (m *MemoryRecordRepository) ListRecords(_ context.Context, batchID string) ([]domain.ParcelRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records, ok := m.batches[batchID]
	if !ok {
		return nil, ports.ErrBatchNotFound
	}
	return slices.Clone(records), nil
}

func (m *MemoryRecordRepository) FindParcels(_ context.Context, batchID string, q domain.ParcelQuery) ([]domain.ParcelRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records, ok := m.batches[batchID]
	if !ok {
		return nil, ports.ErrBatchNotFound
	}

	out := make([]domain.ParcelRecord, 0)
	for i := range records {
		if q.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out, nil
}
