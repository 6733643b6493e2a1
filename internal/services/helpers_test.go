package services

import (
	"parcel-kpi-service/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// rawMsg builds a pipe-delimited message with code in field 0 and the given values
// at their positions; other fields hold filler.
func rawMsg(code string, n int, values map[int]string) string {
	parts := make([]string, n)
	parts[0] = code
	for i := 1; i < n; i++ {
		parts[i] = "x"
	}
	for pos, v := range values {
		parts[pos] = v
	}
	return strings.Join(parts, "|")
}

func inbound(ts string) domain.Event {
	return domain.Event{MsgID: "IR", TS: ts, Raw: rawMsg("IR", 6, nil)}
}

func properties(ts string) domain.Event {
	return domain.Event{MsgID: "IP", TS: ts, Raw: rawMsg("IP", 6, nil)}
}

func sortReport(ts, status, location string) domain.Event {
	return domain.Event{MsgID: "VSR", TS: ts, Raw: rawMsg("VSR", 12, map[int]string{10: status, 11: location})}
}

func deregister(ts, reason, location string) domain.Event {
	return domain.Event{MsgID: "IDR", TS: ts, Raw: rawMsg("IDR", 12, map[int]string{9: reason, 11: location})}
}

func mustWindow(t *testing.T, start, end string) Window {
	t.Helper()
	w, err := NewWindow(start, end)
	require.NoError(t, err)
	return w
}

func boolPtr(b bool) *bool { return &b }
