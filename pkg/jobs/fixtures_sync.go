package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matchcast/core/pkg/logger"
	"github.com/matchcast/core/pkg/services"
)

// FixturesSyncJob triggers the daily fixture synchronization and refreshes
// the scheduler status after every trigger, success or failure.
type FixturesSyncJob struct {
	syncService services.Synchronizer
	tracker     *services.SchedulerTracker
	hour        int
	minute      int
}

func NewFixturesSyncJob(syncService services.Synchronizer, tracker *services.SchedulerTracker, hour, minute int) Job {
	return &FixturesSyncJob{
		syncService: syncService,
		tracker:     tracker,
		hour:        hour,
		minute:      minute,
	}
}

func (j *FixturesSyncJob) Name() string {
	return "fixtures_sync"
}

// Schedule returns the daily cron slot for this job
func (j *FixturesSyncJob) Schedule() string {
	return fmt.Sprintf("%d %d * * *", j.minute, j.hour)
}

func (j *FixturesSyncJob) Execute(ctx context.Context) error {
	log := logger.WithContext(ctx, "fixtures-sync")
	start := time.Now()

	// next_run must advance past this trigger no matter how it went
	defer j.tracker.Refresh()

	result := j.syncService.Synchronize(ctx)
	duration := time.Since(start)

	if !result.Success {
		// A busy rejection is not a failure: another trigger is already
		// doing the work.
		if result.Message == services.BusyMessage {
			log.Info().
				Str("action", "sync_skipped").
				Msg("Sync already in flight, skipping scheduled trigger")
			return nil
		}
		log.Error().
			Str("action", "sync_failed").
			Str("error_message", result.Message).
			Dur("duration", duration).
			Msg("Fixture sync failed")
		return errors.New(result.Message)
	}

	log.LogJobComplete(j.Name(), duration, result.Fetched, 0)
	return nil
}
