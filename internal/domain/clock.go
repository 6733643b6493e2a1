package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Clock is a time of day in milliseconds since midnight. Event timestamps carry no
// date; the batch they belong to supplies it.
type Clock int

const (
	msPerMinute = 60 * 1000
	msPerDay    = 24 * 60 * msPerMinute
)

var (
	clockRE = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2})(?:[.,](\d{1,9}))?)?`)
	hhmmRE  = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

func ClockOf(hour, minute int) Clock {
	return Clock(hour*60*msPerMinute + minute*msPerMinute)
}

// ParseClock extracts the first time of day found in s. It accepts sorter timestamps
// ("08:15:02,123"), plain "HH:MM[:SS]" and ISO datetimes ("2024-05-01T08:15:02").
// ok is false when no valid time is present.
func ParseClock(s string) (Clock, bool) {
	m := clockRE.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if h > 23 || mi > 59 || sec > 59 {
		return 0, false
	}

	ms := 0
	if frac := m[4]; frac != "" {
		// Keep millisecond precision regardless of how many digits were written.
		for len(frac) < 3 {
			frac += "0"
		}
		ms, _ = strconv.Atoi(frac[:3])
	}

	return Clock(((h*60+mi)*60+sec)*1000 + ms), true
}

// ParseHHMM strictly parses a request-supplied "HH:MM" value.
func ParseHHMM(s string) (Clock, error) {
	if !hhmmRE.MatchString(s) {
		return 0, fmt.Errorf("parse time of day %q: want HH:MM", s)
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("parse time of day %q: out of range", s)
	}
	return ClockOf(h, m), nil
}

func (c Clock) Hour() int { return int(c) / (60 * msPerMinute) }

func (c Clock) Minute() int { return (int(c) / msPerMinute) % 60 }

// MinuteOfDay drops seconds and milliseconds.
func (c Clock) MinuteOfDay() int { return int(c) / msPerMinute }

func (c Clock) AddMinutes(n int) Clock { return c + Clock(n*msPerMinute) }

// Label renders the clock as "HH:MM".
func (c Clock) Label() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) Valid() bool { return c >= 0 && c < msPerDay }
