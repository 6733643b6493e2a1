package cache

import (
	"context"
	"errors"
	"parcel-kpi-service/internal/domain"
	"parcel-kpi-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	records   []domain.ParcelRecord
	listCalls int
	findCalls int
}

func (s *countingSource) ListRecords(_ context.Context, batchID string) ([]domain.ParcelRecord, error) {
	s.listCalls++
	if batchID != "2024-05-01" {
		return nil, ports.ErrBatchNotFound
	}
	return s.records, nil
}

func (s *countingSource) FindParcels(_ context.Context, _ string, q domain.ParcelQuery) ([]domain.ParcelRecord, error) {
	s.findCalls++
	var out []domain.ParcelRecord
	for i := range s.records {
		if q.Matches(&s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

type brokenCache struct{}

func (brokenCache) GetBatch(context.Context, string) ([]domain.ParcelRecord, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (brokenCache) PutBatch(context.Context, string, []domain.ParcelRecord) error {
	return errors.New("connection refused")
}

func TestCachedRecordSourceReadsThrough(t *testing.T) {
	src := &countingSource{records: []domain.ParcelRecord{{HostID: "H1"}, {HostID: "H2"}}}
	c, _ := newRedisCache(t)
	cached := NewCachedRecordSource(src, c)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := cached.ListRecords(ctx, "2024-05-01")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}
	assert.Equal(t, 1, src.listCalls)

	found, err := cached.FindParcels(ctx, "2024-05-01", domain.ParcelQuery{Field: domain.SearchByHostID, Value: "H2"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 0, src.findCalls)
}

func TestCachedRecordSourceMissDelegatesFind(t *testing.T) {
	src := &countingSource{records: []domain.ParcelRecord{{HostID: "H1"}}}
	c, _ := newRedisCache(t)
	cached := NewCachedRecordSource(src, c)

	found, err := cached.FindParcels(context.Background(), "2024-05-01", domain.ParcelQuery{Field: domain.SearchByHostID, Value: "H1"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, 1, src.findCalls)
}

func TestCachedRecordSourceDoesNotCacheErrors(t *testing.T) {
	src := &countingSource{}
	c, mr := newRedisCache(t)
	cached := NewCachedRecordSource(src, c)

	_, err := cached.ListRecords(context.Background(), "2024-05-09")
	assert.ErrorIs(t, err, ports.ErrBatchNotFound)
	assert.False(t, mr.Exists("parcel-kpi:batch:2024-05-09"))
}

func TestCachedRecordSourceSurvivesCacheFailure(t *testing.T) {
	src := &countingSource{records: []domain.ParcelRecord{{HostID: "H1"}}}
	cached := NewCachedRecordSource(src, brokenCache{})

	got, err := cached.ListRecords(context.Background(), "2024-05-01")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
