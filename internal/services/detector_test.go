package services

import (
	"parcel-kpi-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectDetector(t *testing.T) {
	r := DefaultRules()

	coded := []domain.ParcelRecord{
		{HostID: "1"},
		{HostID: "2", Events: []domain.Event{sortReport("08:00:00,000", "1", "D1")}},
	}
	assert.Equal(t, "events", SelectDetector(coded, r).Name())

	legacy := []domain.ParcelRecord{
		{HostID: "1", Events: []domain.Event{properties("08:00:00,000")}},
		{HostID: "2"},
	}
	assert.Equal(t, "legacy", SelectDetector(legacy, r).Name())
}

func TestLegacyDetector(t *testing.T) {
	w := mustWindow(t, "08:00", "09:00")
	var d LegacyDetector

	in := &domain.ParcelRecord{LifeCycle: &domain.LifeCycle{RegisteredAt: domain.Text("2024-05-01 08:20:00")}}
	flow := d.Detect(in, w)
	assert.True(t, flow.HasInbound)
	assert.False(t, flow.CountedOut)
	assert.Equal(t, "08:20", flow.Inbound.Label())

	out := &domain.ParcelRecord{
		ExitState: "done",
		Events:    []domain.Event{properties("08:45:10,000")},
	}
	flow = d.Detect(out, w)
	assert.False(t, flow.HasInbound)
	assert.True(t, flow.CountedOut)
	assert.Equal(t, "08:45", flow.Outbound.Label())

	late := &domain.ParcelRecord{LifeCycle: &domain.LifeCycle{RegisteredAt: domain.Text("10:00:00")}}
	assert.Equal(t, Flow{}, d.Detect(late, w))

	assert.Equal(t, Flow{}, d.Detect(&domain.ParcelRecord{}, w))
}
