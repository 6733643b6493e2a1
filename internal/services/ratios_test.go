package services

import (
	"parcel-kpi-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRatios(t *testing.T) {
	w := mustWindow(t, "08:00", "09:00")

	records := make([]domain.ParcelRecord, 10)
	for i := range records {
		records[i].BarcodeError = boolPtr(i >= 6)
	}
	// A missing flag is not a read.
	records[0].BarcodeError = nil

	records[1].VolumeData = &domain.VolumeData{RealVolume: domain.Number(0.42)}
	records[2].VolumeData = &domain.VolumeData{RealVolume: domain.Number(0)}
	records[3].VolumeData = &domain.VolumeData{RealVolume: domain.Text("0.5")}

	records[4].Events = []domain.Event{
		inbound("08:00:00,000"),
		properties("08:00:01,000"),
		sortReport("08:01:00,000", "1", "D1"),
	}
	records[5].Events = []domain.Event{
		inbound("08:00:00,000"),
		sortReport("08:01:00,000", "999", "D1"),
	}

	got := ComputeRatios(records, w, DefaultRules())

	assert.Equal(t, 10, got.Total)
	assert.Equal(t, 50.0, got.BarcodeReadRatio)
	assert.Equal(t, 10.0, got.VolumeReadRatio)
	assert.Equal(t, 10.0, got.TrackingPerformance)
	assert.Equal(t, 1, got.SortedGoodCount)
	assert.Equal(t, 1, got.OverflowCount)
}

func TestComputeRatiosSixOfTen(t *testing.T) {
	records := make([]domain.ParcelRecord, 10)
	for i := 0; i < 6; i++ {
		records[i].BarcodeError = boolPtr(false)
	}

	got := ComputeRatios(records, mustWindow(t, "00:00", "23:59"), DefaultRules())

	assert.Equal(t, 60.0, got.BarcodeReadRatio)
}

func TestComputeRatiosEmpty(t *testing.T) {
	got := ComputeRatios(nil, mustWindow(t, "00:00", "23:59"), DefaultRules())

	assert.Equal(t, Ratios{}, got)
}

func TestPercentAndAverage(t *testing.T) {
	assert.Equal(t, 33.33, percent(1, 3))
	assert.Equal(t, 66.67, percent(2, 3))
	assert.Equal(t, 0.0, percent(5, 0))
	assert.Equal(t, 2.5, average(5, 2))
	assert.Equal(t, 0.0, average(5, 0))
}

func TestComputeRatiosOverflowBothRulesCountOnce(t *testing.T) {
	records := []domain.ParcelRecord{{Events: []domain.Event{
		inbound("08:00:00,000"),
		sortReport("08:05:00,000", "999", "OVF"),
		deregister("08:06:00,000", "2", "OVF"),
	}}}

	got := ComputeRatios(records, mustWindow(t, "08:00", "09:00"), DefaultRules())

	assert.Equal(t, 1, got.OverflowCount)
	assert.Equal(t, 0, got.SortedGoodCount)
}
