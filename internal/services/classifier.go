package services

import (
	"parcel-kpi-service/internal/domain"
)

// Overflow rule that flagged a parcel.
type OverflowCase int

const (
	NoOverflow OverflowCase = iota
	// A provisional sort report in the window for a parcel that was inducted.
	OverflowProvisionalSort
	// A deregistration in the window at a configured overflow location.
	OverflowDeregisterLocation
)

// Facts are the semantic facts extracted from one parcel's event log.
type Facts struct {
	Inbound    domain.Clock
	HasInbound bool

	Outbound        domain.Clock
	HasOutbound     bool
	OutboundStatus  string
	OutboundCounted bool

	Overflow       OverflowCase
	IsFullyTracked bool
}

func (f Facts) IsOverflow() bool { return f.Overflow != NoOverflow }

// Classify extracts Facts from events for the inclusive window w.
//
// The first in-window inbound and sort-report events are authoritative. A sort
// report with the sorted status counts as outbound; a provisional one counts only
// when the parcel also carries a deregistration with the confirmed-exit reason.
// Overflow is decided by the provisional-sort rule first and the deregister-location
// rule only when the first one did not match, so a parcel is flagged at most once.
// Unparseable timestamps and short raw messages never fail classification; the
// event just does not match.
func Classify(events []domain.Event, w Window, r Rules) Facts {
	dec := NewRawDecoder(r)

	var (
		f                   Facts
		seenCodes           = make(map[string]struct{}, 4)
		inducted            bool
		confirmedExit       bool
		provisionalInWindow bool
		overflowDeregister  bool
	)

	for _, ev := range events {
		seenCodes[ev.MsgID] = struct{}{}

		// Window-independent facts.
		switch ev.MsgID {
		case r.Codes.Inbound:
			inducted = true
		case r.Codes.Deregister:
			if reason, ok := dec.DeregisterReason(ev); ok && reason == r.ConfirmedExitReason {
				confirmedExit = true
			}
		}

		c, ok := ev.Clock()
		if !ok || !w.Contains(c) {
			continue
		}

		switch ev.MsgID {
		case r.Codes.Inbound:
			if !f.HasInbound {
				f.Inbound, f.HasInbound = c, true
			}

		case r.Codes.SortReport:
			status, hasStatus := dec.SortStatus(ev)
			if !f.HasOutbound {
				f.Outbound, f.HasOutbound = c, true
				f.OutboundStatus = status
			}
			if hasStatus && status == r.ProvisionalStatus {
				provisionalInWindow = true
			}

		case r.Codes.Deregister:
			if loc, ok := dec.DeregisterLocation(ev); ok && r.isOverflowLocation(loc) {
				overflowDeregister = true
			}
		}
	}

	if f.HasOutbound {
		switch f.OutboundStatus {
		case r.SortedStatus:
			f.OutboundCounted = true
		case r.ProvisionalStatus:
			f.OutboundCounted = confirmedExit
		}
	}

	switch {
	case provisionalInWindow && inducted:
		f.Overflow = OverflowProvisionalSort
	case overflowDeregister:
		f.Overflow = OverflowDeregisterLocation
	}

	f.IsFullyTracked = true
	for _, code := range r.TrackingCodes {
		if _, ok := seenCodes[code]; !ok {
			f.IsFullyTracked = false
			break
		}
	}

	return f
}
