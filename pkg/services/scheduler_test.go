package services

import (
	"context"
	"testing"
	"time"

	"github.com/matchcast/core/pkg/models"
)

// mockSync is a scripted Synchronizer for tracker tests
type mockSync struct {
	running   bool
	totalRuns int64
	lastError string
}

func (m *mockSync) Synchronize(ctx context.Context) *models.SyncResult {
	return &models.SyncResult{Success: true}
}

func (m *mockSync) IsRunning() bool   { return m.running }
func (m *mockSync) TotalRuns() int64  { return m.totalRuns }
func (m *mockSync) LastError() string { return m.lastError }

func trackerAt(t *testing.T, instant time.Time, sync *mockSync) *SchedulerTracker {
	t.Helper()
	tracker := NewSchedulerTracker(sync)
	tracker.now = func() time.Time { return instant }
	return tracker
}

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	return loc
}

func TestSetSchedule_SlotStillAheadToday(t *testing.T) {
	loc := mustLoadLocation(t, "Europe/Istanbul")
	now := time.Date(2026, 8, 26, 1, 59, 59, 0, loc)

	tracker := trackerAt(t, now, &mockSync{})
	tracker.SetSchedule(true, 2, 0, "Europe/Istanbul")

	status := tracker.Status()
	if status.NextRun == nil {
		t.Fatal("Expected next run to be set")
	}
	want := time.Date(2026, 8, 26, 2, 0, 0, 0, loc)
	if !status.NextRun.Equal(want) {
		t.Errorf("NextRun = %v, want %v", status.NextRun, want)
	}
}

func TestSetSchedule_SlotAlreadyPassedToday(t *testing.T) {
	loc := mustLoadLocation(t, "Europe/Istanbul")
	now := time.Date(2026, 8, 26, 2, 0, 1, 0, loc)

	tracker := trackerAt(t, now, &mockSync{})
	tracker.SetSchedule(true, 2, 0, "Europe/Istanbul")

	status := tracker.Status()
	if status.NextRun == nil {
		t.Fatal("Expected next run to be set")
	}
	want := time.Date(2026, 8, 27, 2, 0, 0, 0, loc)
	if !status.NextRun.Equal(want) {
		t.Errorf("NextRun = %v, want %v", status.NextRun, want)
	}
}

func TestSetSchedule_ExactSlotInstantStaysToday(t *testing.T) {
	loc := mustLoadLocation(t, "Europe/Istanbul")
	now := time.Date(2026, 8, 26, 2, 0, 0, 0, loc)

	tracker := trackerAt(t, now, &mockSync{})
	tracker.SetSchedule(true, 2, 0, "Europe/Istanbul")

	status := tracker.Status()
	if status.NextRun == nil {
		t.Fatal("Expected next run to be set")
	}
	// "at or after": the exact slot instant still counts as today
	if !status.NextRun.Equal(now) {
		t.Errorf("NextRun = %v, want %v", status.NextRun, now)
	}
}

func TestSetSchedule_TargetZoneCalendarDate(t *testing.T) {
	loc := mustLoadLocation(t, "Europe/Istanbul")
	// 23:30 UTC on the 26th is already 02:30 on the 27th in Istanbul, so
	// the 02:00 slot for the 27th has passed and the next run is the 28th.
	now := time.Date(2026, 8, 26, 23, 30, 0, 0, time.UTC)

	tracker := trackerAt(t, now, &mockSync{})
	tracker.SetSchedule(true, 2, 0, "Europe/Istanbul")

	status := tracker.Status()
	if status.NextRun == nil {
		t.Fatal("Expected next run to be set")
	}
	want := time.Date(2026, 8, 28, 2, 0, 0, 0, loc)
	if !status.NextRun.Equal(want) {
		t.Errorf("NextRun = %v, want %v", status.NextRun, want)
	}
}

func TestSetSchedule_Disabled(t *testing.T) {
	tracker := trackerAt(t, time.Now(), &mockSync{})
	tracker.SetSchedule(false, 2, 0, "Europe/Istanbul")

	status := tracker.Status()
	if status.Enabled {
		t.Error("Expected disabled status")
	}
	if status.NextRun != nil {
		t.Error("Expected no next run while disabled")
	}
}

func TestSetSchedule_InvalidTimezone(t *testing.T) {
	tracker := trackerAt(t, time.Now(), &mockSync{})
	tracker.SetSchedule(true, 2, 0, "Mars/Olympus_Mons")

	status := tracker.Status()
	if status.NextRun != nil {
		t.Error("Invalid timezone must leave next run absent, not crash")
	}
	if !status.Enabled {
		t.Error("Schedule stays enabled even when the zone cannot resolve")
	}
}

func TestRefresh_AdvancesNextRun(t *testing.T) {
	loc := mustLoadLocation(t, "Europe/Istanbul")
	now := time.Date(2026, 8, 26, 1, 0, 0, 0, loc)

	tracker := trackerAt(t, now, &mockSync{})
	tracker.SetSchedule(true, 2, 0, "Europe/Istanbul")

	// The trigger fired; the clock is now past today's slot
	tracker.now = func() time.Time { return time.Date(2026, 8, 26, 2, 0, 5, 0, loc) }
	tracker.Refresh()

	status := tracker.Status()
	want := time.Date(2026, 8, 27, 2, 0, 0, 0, loc)
	if status.NextRun == nil || !status.NextRun.Equal(want) {
		t.Errorf("NextRun = %v, want %v", status.NextRun, want)
	}
}

func TestStatus_MirrorsSyncService(t *testing.T) {
	sync := &mockSync{running: true, totalRuns: 42, lastError: "upstream unavailable"}
	tracker := trackerAt(t, time.Now(), sync)
	tracker.SetSchedule(true, 2, 0, "UTC")

	status := tracker.Status()
	if !status.IsRunning {
		t.Error("Expected is_running true")
	}
	if status.TotalRuns != 42 {
		t.Errorf("Expected 42 total runs, got %d", status.TotalRuns)
	}
	if status.LastError != "upstream unavailable" {
		t.Errorf("Unexpected last error %q", status.LastError)
	}
}
