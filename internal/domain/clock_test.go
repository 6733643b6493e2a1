package domain

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		want   Clock
		wantOK bool
	}{
		{"08:15:02,123", ClockOf(8, 15) + 2123, true},
		{"08:15:02.5", ClockOf(8, 15) + 2500, true},
		{"08:15:02", ClockOf(8, 15) + 2000, true},
		{"8:05", ClockOf(8, 5), true},
		{"2024-05-01T23:59:59", ClockOf(23, 59) + 59000, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"garbage", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseClock(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseClock(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseHHMM(t *testing.T) {
	c, err := ParseHHMM("07:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Label() != "07:30" {
		t.Fatalf("label = %q, want 07:30", c.Label())
	}

	for _, bad := range []string{"7:30", "07:30:00", "25:00", "07:61", ""} {
		if _, err := ParseHHMM(bad); err == nil {
			t.Errorf("ParseHHMM(%q) should fail", bad)
		}
	}
}

func TestClockParts(t *testing.T) {
	c, _ := ParseClock("13:47:59,999")

	if c.Hour() != 13 || c.Minute() != 47 {
		t.Fatalf("hour/minute = %d/%d, want 13/47", c.Hour(), c.Minute())
	}
	if c.MinuteOfDay() != 13*60+47 {
		t.Fatalf("minute of day = %d", c.MinuteOfDay())
	}
	if got := c.AddMinutes(15).Label(); got != "14:02" {
		t.Fatalf("AddMinutes label = %q, want 14:02", got)
	}
	if !c.Valid() {
		t.Fatalf("clock %d should be valid", c)
	}
}
