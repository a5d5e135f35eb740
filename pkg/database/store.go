package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchcast/core/pkg/logger"
	"github.com/matchcast/core/pkg/models"
)

// Store is the PostgreSQL-backed storage collaborator for the sync pipeline
// and the read API. Match upserts are keyed on match_id with full-row
// replace on conflict.
type Store struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:   pool,
		logger: logger.New("match-store"),
	}
}

// Migrate creates the schema if it does not exist yet
func (s *Store) Migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			match_id VARCHAR(32) PRIMARY KEY,
			league_id INTEGER NOT NULL,
			fixture_date DATE NOT NULL,
			kickoff_time TIMESTAMPTZ NOT NULL,
			status VARCHAR(8) NOT NULL,
			status_text VARCHAR(64) NOT NULL,
			home_team_name VARCHAR(255) NOT NULL,
			home_team_logo TEXT,
			home_team_goals INTEGER,
			away_team_name VARCHAR(255) NOT NULL,
			away_team_logo TEXT,
			away_team_goals INTEGER,
			competition_name VARCHAR(255) NOT NULL,
			competition_logo TEXT,
			competition_country VARCHAR(128),
			venue_name VARCHAR(255),
			venue_city VARCHAR(128),
			referee VARCHAR(255),
			channel_ids JSONB NOT NULL DEFAULT '[]',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_fixture_date ON matches(fixture_date)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_league_id ON matches(league_id)`,

		`CREATE TABLE IF NOT EXISTS channels (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) UNIQUE NOT NULL,
			logo TEXT,
			stream_url TEXT,
			language VARCHAR(16),
			sort_order INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS sync_runs (
			id UUID PRIMARY KEY,
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ,
			status VARCHAR(16) NOT NULL,
			matches_fetched INTEGER NOT NULL DEFAULT 0,
			matches_inserted INTEGER NOT NULL DEFAULT 0,
			matches_updated INTEGER NOT NULL DEFAULT 0,
			error_message TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sync_runs_started_at ON sync_runs(started_at DESC)`,

		`CREATE TABLE IF NOT EXISTS settings (
			key VARCHAR(128) PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

const upsertMatchQuery = `
INSERT INTO matches (
	match_id, league_id, fixture_date, kickoff_time, status, status_text,
	home_team_name, home_team_logo, home_team_goals,
	away_team_name, away_team_logo, away_team_goals,
	competition_name, competition_logo, competition_country,
	venue_name, venue_city, referee, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW())
ON CONFLICT (match_id) DO UPDATE SET
	league_id = EXCLUDED.league_id,
	fixture_date = EXCLUDED.fixture_date,
	kickoff_time = EXCLUDED.kickoff_time,
	status = EXCLUDED.status,
	status_text = EXCLUDED.status_text,
	home_team_name = EXCLUDED.home_team_name,
	home_team_logo = EXCLUDED.home_team_logo,
	home_team_goals = EXCLUDED.home_team_goals,
	away_team_name = EXCLUDED.away_team_name,
	away_team_logo = EXCLUDED.away_team_logo,
	away_team_goals = EXCLUDED.away_team_goals,
	competition_name = EXCLUDED.competition_name,
	competition_logo = EXCLUDED.competition_logo,
	competition_country = EXCLUDED.competition_country,
	venue_name = EXCLUDED.venue_name,
	venue_city = EXCLUDED.venue_city,
	referee = EXCLUDED.referee,
	updated_at = NOW()
RETURNING (xmax = 0) AS inserted`

// UpsertMatches writes the aggregate list in one batch inside a single
// transaction. Sync owns every column except channel_ids, which only the
// channel-linking endpoints touch, so the conflict clause replaces all
// synced fields and leaves channel links alone.
func (s *Store) UpsertMatches(ctx context.Context, matches []models.Match) (models.UpsertStats, error) {
	var stats models.UpsertStats
	if len(matches) == 0 {
		return stats, nil
	}

	start := time.Now()
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, m := range matches {
		batch.Queue(upsertMatchQuery,
			m.MatchID, m.LeagueID, m.FixtureDate, m.KickoffTime, m.Status, m.StatusText,
			m.HomeTeamName, nullable(m.HomeTeamLogo), m.HomeTeamGoals,
			m.AwayTeamName, nullable(m.AwayTeamLogo), m.AwayTeamGoals,
			m.CompetitionName, nullable(m.CompetitionLogo), nullable(m.CompetitionCountry),
			nullable(m.VenueName), nullable(m.VenueCity), nullable(m.Referee),
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range matches {
		var inserted bool
		if err := results.QueryRow().Scan(&inserted); err != nil {
			_ = results.Close()
			return models.UpsertStats{}, fmt.Errorf("failed to upsert match: %w", err)
		}
		if inserted {
			stats.Inserted++
		} else {
			stats.Updated++
		}
	}
	if err := results.Close(); err != nil {
		return models.UpsertStats{}, fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.UpsertStats{}, fmt.Errorf("failed to commit upsert: %w", err)
	}

	s.logger.LogDatabaseOperation("upsert", "matches", len(matches), time.Since(start), nil)
	return stats, nil
}

// HasMatchesForDate reports whether any match rows exist for the calendar day
func (s *Store) HasMatchesForDate(ctx context.Context, date string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM matches WHERE fixture_date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check matches for date %s: %w", date, err)
	}
	return exists, nil
}

// MatchesByDate returns the matches of one calendar day ordered by kickoff
func (s *Store) MatchesByDate(ctx context.Context, date string) ([]models.Match, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT match_id, league_id, to_char(fixture_date, 'YYYY-MM-DD'), kickoff_time,
			status, status_text,
			home_team_name, COALESCE(home_team_logo, ''), home_team_goals,
			away_team_name, COALESCE(away_team_logo, ''), away_team_goals,
			competition_name, COALESCE(competition_logo, ''), COALESCE(competition_country, ''),
			COALESCE(venue_name, ''), COALESCE(venue_city, ''), COALESCE(referee, ''),
			channel_ids
		FROM matches
		WHERE fixture_date = $1
		ORDER BY kickoff_time, match_id`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for date %s: %w", date, err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.MatchID, &m.LeagueID, &m.FixtureDate, &m.KickoffTime,
			&m.Status, &m.StatusText,
			&m.HomeTeamName, &m.HomeTeamLogo, &m.HomeTeamGoals,
			&m.AwayTeamName, &m.AwayTeamLogo, &m.AwayTeamGoals,
			&m.CompetitionName, &m.CompetitionLogo, &m.CompetitionCountry,
			&m.VenueName, &m.VenueCity, &m.Referee,
			&m.ChannelIDs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ListChannels returns the channel directory in display order
func (s *Store) ListChannels(ctx context.Context) ([]models.Channel, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, slug, COALESCE(logo, ''), COALESCE(stream_url, ''),
			COALESCE(language, ''), sort_order
		FROM channels
		ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var c models.Channel
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Logo, &c.StreamURL, &c.Language, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}

// RecordRun writes a run-log record, replacing the row when the run
// transitions from running to its final state
func (s *Store) RecordRun(ctx context.Context, run *models.SyncRun) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sync_runs (
			id, started_at, finished_at, status,
			matches_fetched, matches_inserted, matches_updated, error_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			finished_at = EXCLUDED.finished_at,
			status = EXCLUDED.status,
			matches_fetched = EXCLUDED.matches_fetched,
			matches_inserted = EXCLUDED.matches_inserted,
			matches_updated = EXCLUDED.matches_updated,
			error_message = EXCLUDED.error_message`,
		run.ID, run.StartedAt, nullableTime(run.FinishedAt), run.Status,
		run.MatchesFetched, run.MatchesInserted, run.MatchesUpdated,
		nullable(run.ErrorMessage))
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent run-log records, newest first
func (s *Store) ListRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, started_at, COALESCE(finished_at, 'epoch'::timestamptz), status,
			matches_fetched, matches_inserted, matches_updated, COALESCE(error_message, '')
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer rows.Close()

	var runs []models.SyncRun
	for rows.Next() {
		var run models.SyncRun
		if err := rows.Scan(
			&run.ID, &run.StartedAt, &run.FinishedAt, &run.Status,
			&run.MatchesFetched, &run.MatchesInserted, &run.MatchesUpdated,
			&run.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sync run row: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetSetting reads one settings value; missing keys return ErrSettingNotFound
func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting writes one settings value
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// ErrSettingNotFound marks a missing settings key
var ErrSettingNotFound = errors.New("setting not found")

// nullable maps empty strings to SQL NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullableTime maps the zero time to SQL NULL
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
