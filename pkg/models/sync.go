package models

import "time"

// Sync run statuses. A run moves running -> completed or running -> failed
// exactly once and is never reopened.
const (
	SyncStatusRunning   = "running"
	SyncStatusCompleted = "completed"
	SyncStatusFailed    = "failed"
)

// SyncRun is the persisted record of one synchronization attempt.
type SyncRun struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at,omitempty"`
	Status          string    `json:"status"`
	MatchesFetched  int       `json:"matches_fetched"`
	MatchesInserted int       `json:"matches_inserted"`
	MatchesUpdated  int       `json:"matches_updated"`
	ErrorMessage    string    `json:"error_message,omitempty"`
}

// SyncResult is what Synchronize hands back to its caller. It is always a
// value, never an escaped error: the scheduler and the manual-trigger
// endpoint both consume it as-is.
type SyncResult struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
	Fetched  int           `json:"matches_fetched"`
	Inserted int           `json:"matches_inserted"`
	Updated  int           `json:"matches_updated"`
}

// UpsertStats reports how a bulk upsert split between inserts and updates.
type UpsertStats struct {
	Inserted int
	Updated  int
}

// SchedulerStatus is the process-wide scheduler snapshot served to the
// status endpoint. NextRun is nil while the schedule is disabled or when
// the timezone could not be resolved.
type SchedulerStatus struct {
	Enabled   bool       `json:"enabled"`
	NextRun   *time.Time `json:"next_run,omitempty"`
	TotalRuns int64      `json:"total_runs"`
	LastError string     `json:"last_error,omitempty"`
	IsRunning bool       `json:"is_running"`
}
