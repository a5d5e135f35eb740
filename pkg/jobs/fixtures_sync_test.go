package jobs

import (
	"context"
	"testing"

	"github.com/matchcast/core/pkg/models"
	"github.com/matchcast/core/pkg/services"
)

type mockSyncService struct {
	result    *models.SyncResult
	calls     int
	running   bool
	totalRuns int64
	lastError string
}

func (m *mockSyncService) Synchronize(ctx context.Context) *models.SyncResult {
	m.calls++
	return m.result
}

func (m *mockSyncService) IsRunning() bool   { return m.running }
func (m *mockSyncService) TotalRuns() int64  { return m.totalRuns }
func (m *mockSyncService) LastError() string { return m.lastError }

func TestFixturesSyncJob_Name(t *testing.T) {
	job := NewFixturesSyncJob(&mockSyncService{}, services.NewSchedulerTracker(&mockSyncService{}), 4, 0)
	if got := job.Name(); got != "fixtures_sync" {
		t.Errorf("Name() = %v, want fixtures_sync", got)
	}
}

func TestFixturesSyncJob_Schedule(t *testing.T) {
	job := NewFixturesSyncJob(&mockSyncService{}, services.NewSchedulerTracker(&mockSyncService{}), 4, 30)
	if got := job.Schedule(); got != "30 4 * * *" {
		t.Errorf("Schedule() = %v, want '30 4 * * *'", got)
	}
}

func TestFixturesSyncJob_ExecuteSuccess(t *testing.T) {
	sync := &mockSyncService{
		result: &models.SyncResult{Success: true, Fetched: 12, Inserted: 10, Updated: 2},
	}
	tracker := services.NewSchedulerTracker(sync)
	tracker.SetSchedule(true, 4, 0, "UTC")

	job := NewFixturesSyncJob(sync, tracker, 4, 0)
	if err := job.Execute(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sync.calls != 1 {
		t.Errorf("Expected 1 sync call, got %d", sync.calls)
	}
}

func TestFixturesSyncJob_ExecuteFailure(t *testing.T) {
	sync := &mockSyncService{
		result: &models.SyncResult{Success: false, Message: "upstream unavailable"},
	}
	job := NewFixturesSyncJob(sync, services.NewSchedulerTracker(sync), 4, 0)

	err := job.Execute(context.Background())
	if err == nil {
		t.Fatal("Expected failed sync to surface as job error")
	}
	if err.Error() != "upstream unavailable" {
		t.Errorf("Unexpected error message %q", err.Error())
	}
}

func TestFixturesSyncJob_BusyIsNotAFailure(t *testing.T) {
	sync := &mockSyncService{
		result:  &models.SyncResult{Success: false, Message: services.BusyMessage},
		running: true,
	}
	job := NewFixturesSyncJob(sync, services.NewSchedulerTracker(sync), 4, 0)

	if err := job.Execute(context.Background()); err != nil {
		t.Errorf("Busy rejection must not be reported as job failure: %v", err)
	}
}
