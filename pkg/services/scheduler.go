package services

import (
	"sync"
	"time"

	"github.com/matchcast/core/pkg/logger"
	"github.com/matchcast/core/pkg/models"
)

// SchedulerTracker holds the process-wide scheduler state: whether the daily
// sync is enabled, when it fires next, and the run statistics mirrored from
// the sync service. It is initialized at process start and refreshed after
// every trigger so next_run always points to a future occurrence.
type SchedulerTracker struct {
	syncService Synchronizer
	logger      *logger.Logger

	mu       sync.Mutex
	enabled  bool
	hour     int
	minute   int
	timezone string
	nextRun  *time.Time

	// now is replaceable in tests
	now func() time.Time
}

func NewSchedulerTracker(syncService Synchronizer) *SchedulerTracker {
	return &SchedulerTracker{
		syncService: syncService,
		logger:      logger.New("scheduler-tracker"),
		now:         time.Now,
	}
}

// SetSchedule updates the schedule and recomputes the next run time.
func (t *SchedulerTracker) SetSchedule(enabled bool, hour, minute int, timezone string) {
	t.mu.Lock()
	t.enabled = enabled
	t.hour = hour
	t.minute = minute
	t.timezone = timezone
	t.recomputeLocked()
	t.mu.Unlock()
}

// Refresh recomputes the next run time from the current schedule. Called
// after every scheduled trigger, success or failure.
func (t *SchedulerTracker) Refresh() {
	t.mu.Lock()
	t.recomputeLocked()
	t.mu.Unlock()
}

// recomputeLocked derives nextRun; caller holds t.mu. A failed timezone
// lookup leaves nextRun absent rather than propagating an error: the status
// endpoint must never crash over a bad zone name.
func (t *SchedulerTracker) recomputeLocked() {
	t.nextRun = nil
	if !t.enabled {
		return
	}

	loc, err := time.LoadLocation(t.timezone)
	if err != nil {
		t.logger.Error().
			Err(err).
			Str("timezone", t.timezone).
			Msg("Failed to resolve schedule timezone")
		return
	}

	now := t.now().In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), t.hour, t.minute, 0, 0, loc)
	if next.Before(now) {
		next = next.AddDate(0, 0, 1)
	}
	t.nextRun = &next
}

// Status returns the current scheduler snapshot
func (t *SchedulerTracker) Status() models.SchedulerStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	var nextRun *time.Time
	if t.nextRun != nil {
		nr := *t.nextRun
		nextRun = &nr
	}

	return models.SchedulerStatus{
		Enabled:   t.enabled,
		NextRun:   nextRun,
		TotalRuns: t.syncService.TotalRuns(),
		LastError: t.syncService.LastError(),
		IsRunning: t.syncService.IsRunning(),
	}
}
