package services

import (
	"context"

	"github.com/matchcast/core/pkg/models"
)

// FixtureClient defines the upstream fixture source used by the sync service
type FixtureClient interface {
	FixturesByDate(ctx context.Context, date string) ([]models.FootballAPIFixture, error)
}

// MatchStore defines the storage collaborator for the sync pipeline and the
// read API. Upserts are keyed on match_id with full-document replace.
type MatchStore interface {
	UpsertMatches(ctx context.Context, matches []models.Match) (models.UpsertStats, error)
	HasMatchesForDate(ctx context.Context, date string) (bool, error)
	MatchesByDate(ctx context.Context, date string) ([]models.Match, error)
	ListChannels(ctx context.Context) ([]models.Channel, error)
	RecordRun(ctx context.Context, run *models.SyncRun) error
	ListRuns(ctx context.Context, limit int) ([]models.SyncRun, error)
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Synchronizer is the trigger-facing surface of the sync service
type Synchronizer interface {
	Synchronize(ctx context.Context) *models.SyncResult
	IsRunning() bool
	TotalRuns() int64
	LastError() string
}
