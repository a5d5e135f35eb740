package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/matchcast/core/pkg/models"
)

// mockStore is an in-memory MatchStore for service tests
type mockStore struct {
	mu sync.Mutex

	datesWithMatches map[string]bool
	hasMatchesErr    error

	upsertErr    error
	upsertCalls  [][]models.Match
	matches      map[string]models.Match
	recordRunErr error
	runs         []models.SyncRun
	settings     map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{
		datesWithMatches: make(map[string]bool),
		matches:          make(map[string]models.Match),
		settings:         make(map[string]string),
	}
}

// UpsertMatches mirrors the real store contract: keyed on match_id, full
// replace on conflict, insert/update split in the returned stats.
func (m *mockStore) UpsertMatches(ctx context.Context, matches []models.Match) (models.UpsertStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return models.UpsertStats{}, m.upsertErr
	}
	m.upsertCalls = append(m.upsertCalls, matches)

	var stats models.UpsertStats
	for _, match := range matches {
		if _, exists := m.matches[match.MatchID]; exists {
			stats.Updated++
		} else {
			stats.Inserted++
		}
		m.matches[match.MatchID] = match
	}
	return stats, nil
}

func (m *mockStore) HasMatchesForDate(ctx context.Context, date string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hasMatchesErr != nil {
		return false, m.hasMatchesErr
	}
	return m.datesWithMatches[date], nil
}

func (m *mockStore) MatchesByDate(ctx context.Context, date string) ([]models.Match, error) {
	return nil, nil
}

func (m *mockStore) ListChannels(ctx context.Context) ([]models.Channel, error) {
	return nil, nil
}

func (m *mockStore) RecordRun(ctx context.Context, run *models.SyncRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordRunErr != nil {
		return m.recordRunErr
	}
	// Same semantics as the real store: one row per run id, latest state wins
	for i := range m.runs {
		if m.runs[i].ID == run.ID {
			m.runs[i] = *run
			return nil
		}
	}
	m.runs = append(m.runs, *run)
	return nil
}

func (m *mockStore) ListRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.SyncRun(nil), m.runs...), nil
}

func (m *mockStore) GetSetting(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.settings[key]
	if !ok {
		return "", fmt.Errorf("setting %s not found", key)
	}
	return value, nil
}

func (m *mockStore) SetSetting(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

// mockClient is a scripted FixtureClient
type mockClient struct {
	mu       sync.Mutex
	fetched  []string
	fetchFn  func(ctx context.Context, date string) ([]models.FootballAPIFixture, error)
	fetching chan string // when set, reports each date before returning
}

func (c *mockClient) FixturesByDate(ctx context.Context, date string) ([]models.FootballAPIFixture, error) {
	c.mu.Lock()
	c.fetched = append(c.fetched, date)
	c.mu.Unlock()
	if c.fetching != nil {
		c.fetching <- date
	}
	if c.fetchFn != nil {
		return c.fetchFn(ctx, date)
	}
	return nil, nil
}

func (c *mockClient) fetchedDates() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.fetched...)
}

// rawFixture builds a well-formed raw fixture for tests
func rawFixture(id, leagueID int, date, home, away string) models.FootballAPIFixture {
	return models.FootballAPIFixture{
		Fixture: models.FootballAPIFixtureInfo{
			ID:   id,
			Date: date,
			Status: models.FootballAPIStatus{
				Short: "NS",
				Long:  "Not Started",
			},
		},
		League: models.FootballAPILeague{
			ID:      leagueID,
			Name:    "Premier League",
			Country: "England",
		},
		Teams: models.FootballAPIFixtureTeams{
			Home: models.FootballAPIFixtureTeam{ID: 1, Name: home},
			Away: models.FootballAPIFixtureTeam{ID: 2, Name: away},
		},
	}
}
