package services

import (
	"parcel-kpi-service/internal/domain"
	"strings"
)

// RawDecoder is the only place that knows the positional layout of an event's raw
// text. Every accessor checks the message code and the segment count, so a short or
// foreign message reads as "field absent" instead of failing.
type RawDecoder struct {
	codes  MessageCodes
	fields FieldLayout
}

func NewRawDecoder(r Rules) RawDecoder {
	return RawDecoder{codes: r.Codes, fields: r.Fields}
}

// SortStatus returns the outbound sort status of a sort report.
func (d RawDecoder) SortStatus(ev domain.Event) (string, bool) {
	return d.field(ev, d.codes.SortReport, d.fields.SortStatus)
}

// SortLocation returns the destination code of a sort report.
func (d RawDecoder) SortLocation(ev domain.Event) (string, bool) {
	return d.field(ev, d.codes.SortReport, d.fields.SortLocation)
}

// DeregisterReason returns the reason code of a deregister message.
func (d RawDecoder) DeregisterReason(ev domain.Event) (string, bool) {
	return d.field(ev, d.codes.Deregister, d.fields.DeregisterReason)
}

// DeregisterLocation returns the location code of a deregister message.
func (d RawDecoder) DeregisterLocation(ev domain.Event) (string, bool) {
	return d.field(ev, d.codes.Deregister, d.fields.DeregisterLocation)
}

func (d RawDecoder) field(ev domain.Event, code string, pos int) (string, bool) {
	if ev.MsgID != code || pos < 0 {
		return "", false
	}

	// Only split as far as needed; trailing segments are irrelevant.
	parts := strings.SplitN(ev.Raw, "|", pos+2)
	if len(parts) <= pos {
		return "", false
	}

	v := strings.TrimSpace(parts[pos])
	if v == "" {
		return "", false
	}
	return v, true
}
