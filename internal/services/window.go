package services

import (
	"parcel-kpi-service/internal/domain"
)

// Window is an inclusive time-of-day range at minute precision. Windows never wrap
// around midnight.
type Window struct {
	Start domain.Clock
	End   domain.Clock
}

// NewWindow parses and validates a "HH:MM" pair. End must be after Start.
func NewWindow(start, end string) (Window, error) {
	s, err := domain.ParseHHMM(start)
	if err != nil {
		return Window{}, &ValidationError{Field: "start_time", Msg: "must be HH:MM"}
	}
	e, err := domain.ParseHHMM(end)
	if err != nil {
		return Window{}, &ValidationError{Field: "end_time", Msg: "must be HH:MM"}
	}
	if e <= s {
		return Window{}, &ValidationError{Field: "end_time", Msg: "must be after start_time"}
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether the clock's HH:MM lies within the window.
func (w Window) Contains(c domain.Clock) bool {
	m := c.MinuteOfDay()
	return m >= w.Start.MinuteOfDay() && m <= w.End.MinuteOfDay()
}

// Minutes is the window length in minutes.
func (w Window) Minutes() int {
	return w.End.MinuteOfDay() - w.Start.MinuteOfDay()
}
