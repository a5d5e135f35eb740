package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/matchcast/core/pkg/logger"
	"github.com/matchcast/core/pkg/models"
)

const (
	// rateLimitDelay is the pause between per-date fetches to respect the
	// upstream quota. It is not applied after the last date.
	rateLimitDelay = 1000 * time.Millisecond

	// SettingLastSyncTime is the settings key holding the timestamp of the
	// last successful run
	SettingLastSyncTime = "last_sync_time"

	// BusyMessage marks a trigger rejected because a run is already in
	// flight. Callers treat it as "skip", not as a failure.
	BusyMessage = "sync already running"
)

// SyncService orchestrates one fixture synchronization run: plan dates,
// fetch each date sequentially, transform, bulk-upsert, record the run.
// At most one run is in flight per process; concurrent callers get a busy
// result instead of a second run.
type SyncService struct {
	client      FixtureClient
	store       MatchStore
	planner     *SyncPlanner
	transformer *FixtureTransformer
	leagueIDs   []int
	logger      *logger.Logger

	running   atomic.Bool
	totalRuns atomic.Int64

	mu        sync.Mutex
	lastError string

	// sleep and now are replaceable in tests
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

func NewSyncService(client FixtureClient, store MatchStore, leagueIDs []int) *SyncService {
	return &SyncService{
		client:      client,
		store:       store,
		planner:     NewSyncPlanner(store),
		transformer: NewFixtureTransformer(),
		leagueIDs:   leagueIDs,
		logger:      logger.New("sync-service"),
		sleep:       sleepContext,
		now:         time.Now,
	}
}

// Synchronize runs one full sync. It never returns an error: every failure
// is converted into a SyncResult so the trigger collaborators (cron job and
// manual endpoint) always receive a value.
func (s *SyncService) Synchronize(ctx context.Context) *models.SyncResult {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn().
			Str("action", "sync_rejected").
			Msg("Sync already running, rejecting trigger")
		return &models.SyncResult{
			Success: false,
			Message: BusyMessage,
		}
	}
	defer s.running.Store(false)

	s.totalRuns.Add(1)
	start := s.now()

	run := &models.SyncRun{
		ID:        uuid.New().String(),
		StartedAt: start,
		Status:    models.SyncStatusRunning,
	}
	if err := s.store.RecordRun(ctx, run); err != nil {
		return s.fail(ctx, run, start, fmt.Errorf("failed to record sync run: %w", err))
	}

	dates, err := s.planner.PlanDates(ctx)
	if err != nil {
		return s.fail(ctx, run, start, fmt.Errorf("failed to plan sync dates: %w", err))
	}

	s.logger.Info().
		Str("action", "sync_start").
		Str("run_id", run.ID).
		Strs("dates", dates).
		Msg("Starting fixture sync run")

	var matches []models.Match
	for i, date := range dates {
		if i > 0 {
			if err := s.sleep(ctx, rateLimitDelay); err != nil {
				return s.fail(ctx, run, start, fmt.Errorf("sync interrupted: %w", err))
			}
		}

		raws, err := s.client.FixturesByDate(ctx, date)
		if err != nil {
			// A per-date failure after retry exhaustion aborts the whole
			// run: a partial upstream outage likely affects all dates.
			return s.fail(ctx, run, start, fmt.Errorf("failed to fetch fixtures for %s: %w", date, err))
		}

		tracked := FilterAllowedLeagues(raws, s.leagueIDs)
		kept := 0
		for _, raw := range tracked {
			if match, ok := s.transformer.Transform(raw); ok {
				matches = append(matches, *match)
				kept++
			}
		}

		s.logger.Debug().
			Str("run_id", run.ID).
			Str("date", date).
			Int("fetched", len(raws)).
			Int("tracked", len(tracked)).
			Int("kept", kept).
			Msg("Fetched fixtures for date")
	}

	stats, err := s.store.UpsertMatches(ctx, matches)
	if err != nil {
		return s.fail(ctx, run, start, fmt.Errorf("failed to upsert matches: %w", err))
	}

	finished := s.now()
	run.Status = models.SyncStatusCompleted
	run.FinishedAt = finished
	run.MatchesFetched = len(matches)
	run.MatchesInserted = stats.Inserted
	run.MatchesUpdated = stats.Updated
	if err := s.store.RecordRun(ctx, run); err != nil {
		s.logger.Error().Err(err).Str("run_id", run.ID).Msg("Failed to persist completed run record")
	}
	if err := s.store.SetSetting(ctx, SettingLastSyncTime, finished.UTC().Format(time.RFC3339)); err != nil {
		s.logger.Error().Err(err).Str("run_id", run.ID).Msg("Failed to persist last sync timestamp")
	}

	s.setLastError("")
	duration := finished.Sub(start)
	s.logger.LogSyncRun(run.ID, duration, run.MatchesFetched, run.MatchesInserted, run.MatchesUpdated, nil)

	return &models.SyncResult{
		Success:  true,
		Duration: duration,
		Fetched:  run.MatchesFetched,
		Inserted: run.MatchesInserted,
		Updated:  run.MatchesUpdated,
	}
}

// fail marks the run failed and converts the error into a result value.
// Previously stored matches are untouched: the upsert either happened
// completely or not at all.
func (s *SyncService) fail(ctx context.Context, run *models.SyncRun, start time.Time, err error) *models.SyncResult {
	finished := s.now()
	run.Status = models.SyncStatusFailed
	run.FinishedAt = finished
	run.ErrorMessage = err.Error()
	if recordErr := s.store.RecordRun(ctx, run); recordErr != nil {
		s.logger.Error().Err(recordErr).Str("run_id", run.ID).Msg("Failed to persist failed run record")
	}

	s.setLastError(err.Error())
	duration := finished.Sub(start)
	s.logger.LogSyncRun(run.ID, duration, run.MatchesFetched, run.MatchesInserted, run.MatchesUpdated, err)

	return &models.SyncResult{
		Success:  false,
		Message:  err.Error(),
		Duration: duration,
	}
}

// IsRunning reports whether a run is currently in flight
func (s *SyncService) IsRunning() bool {
	return s.running.Load()
}

// TotalRuns returns how many runs this process has started
func (s *SyncService) TotalRuns() int64 {
	return s.totalRuns.Load()
}

// LastError returns the message of the most recent failed run, or ""
func (s *SyncService) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *SyncService) setLastError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
