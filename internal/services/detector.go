package services

import (
	"parcel-kpi-service/internal/domain"
)

// Flow is the inbound/outbound outcome of one parcel inside a window.
type Flow struct {
	Inbound    domain.Clock
	HasInbound bool

	Outbound   domain.Clock
	CountedOut bool
}

// Detector decides when a parcel entered and left the sorter.
//
// Two record schemas coexist in stored batches: event-coded records, and legacy
// records that only carry lifeCycle.registeredAt and an exit_state marker. Each
// schema gets its own strategy; SelectDetector picks one per batch.
type Detector interface {
	Name() string
	Detect(p *domain.ParcelRecord, w Window) Flow
}

// Detects flow from coded sorter events.
type EventDetector struct {
	Rules Rules
}

func (d EventDetector) Name() string { return "events" }

func (d EventDetector) Detect(p *domain.ParcelRecord, w Window) Flow {
	f := Classify(p.Events, w, d.Rules)
	return Flow{
		Inbound:    f.Inbound,
		HasInbound: f.HasInbound,
		Outbound:   f.Outbound,
		CountedOut: f.OutboundCounted,
	}
}

// Detects flow from the legacy registration time and exit marker. A parcel with an
// exit marker counts as outbound at its registration time, otherwise as inbound.
type LegacyDetector struct{}

func (LegacyDetector) Name() string { return "legacy" }

func (LegacyDetector) Detect(p *domain.ParcelRecord, w Window) Flow {
	c, ok := legacyClock(p)
	if !ok || !w.Contains(c) {
		return Flow{}
	}
	if p.HasExited() {
		return Flow{Outbound: c, CountedOut: true}
	}
	return Flow{Inbound: c, HasInbound: true}
}

func legacyClock(p *domain.ParcelRecord) (domain.Clock, bool) {
	if s, ok := p.TimeField("lifeCycle.registeredAt"); ok {
		if text, ok := s.Text(); ok {
			return domain.ParseClock(text)
		}
	}
	if len(p.Events) > 0 {
		return p.Events[0].Clock()
	}
	return 0, false
}

// SelectDetector returns the event-coded strategy when any record in the batch
// carries an inbound or sort-report event, and the legacy strategy otherwise.
func SelectDetector(records []domain.ParcelRecord, r Rules) Detector {
	for i := range records {
		for _, ev := range records[i].Events {
			if ev.MsgID == r.Codes.Inbound || ev.MsgID == r.Codes.SortReport {
				return EventDetector{Rules: r}
			}
		}
	}
	return LegacyDetector{}
}
