package config

import (
	"context"
	"fmt"
	"os"
	"parcel-kpi-service/internal/services"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadRulesDefaults(t *testing.T) {
	r, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, services.DefaultRules(), r)
}

func TestLoadRulesOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	writeRules(t, path, `
codes:
  sort_report: SRT
fields:
  sort_status: 4
overflow_locations: [OVF, "999"]
curve_points: 50
`)

	r, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, "SRT", r.Codes.SortReport)
	assert.Equal(t, "IR", r.Codes.Inbound)
	assert.Equal(t, 4, r.Fields.SortStatus)
	assert.Equal(t, 11, r.Fields.SortLocation)
	assert.Equal(t, []string{"OVF", "999"}, r.OverflowLocations)
	assert.Equal(t, 50, r.CurvePoints)
	assert.Equal(t, "999", r.ProvisionalStatus)
}

func TestLoadRulesErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRules(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	writeRules(t, bad, "codes: [not, a, map]")
	_, err = LoadRules(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	writeRules(t, invalid, "curve_points: 1\n")
	_, err = LoadRules(invalid)
	assert.ErrorContains(t, err, "curve_points")
}

func TestWatchRulesReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	writeRules(t, path, "curve_points: 100\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := services.NewRulesStore(services.DefaultRules())
	done := make(chan error, 1)
	go func() { done <- WatchRules(ctx, path, store.Set) }()

	// Keep writing until the watcher is registered and picks the change up.
	require.Eventually(t, func() bool {
		writeRules(t, path, "curve_points: 42\n")
		return store.Rules().CurvePoints == 42
	}, 5*time.Second, 50*time.Millisecond)

	// An invalid file leaves the previous rules in place.
	writeRules(t, path, "curve_points: 0\n")
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 42, store.Rules().CurvePoints)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchRulesReloadsAfterAtomicSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	writeRules(t, path, "curve_points: 100\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := services.NewRulesStore(services.DefaultRules())
	go func() { _ = WatchRules(ctx, path, store.Set) }()

	// Save the way editors and ConfigMap updates do: write a temp file, rename it over
	// the path. Repeat until the watcher is registered.
	n := 0
	require.Eventually(t, func() bool {
		n++
		tmp := filepath.Join(dir, fmt.Sprintf(".rules.yaml.%d.tmp", n))
		writeRules(t, tmp, "curve_points: 50\n")
		require.NoError(t, os.Rename(tmp, path))
		return store.Rules().CurvePoints == 50
	}, 5*time.Second, 50*time.Millisecond)

	// Later edits of the replaced file are still picked up.
	require.Eventually(t, func() bool {
		writeRules(t, path, "curve_points: 7\n")
		return store.Rules().CurvePoints == 7
	}, 5*time.Second, 50*time.Millisecond)

	// Other files in the directory are ignored.
	writeRules(t, filepath.Join(dir, "other.yaml"), "curve_points: 9\n")
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 7, store.Rules().CurvePoints)
}
