package services

import (
	"context"
	"fmt"
	"time"
)

// dateFormat is the ISO calendar-day form used throughout the sync pipeline
const dateFormat = "2006-01-02"

// SyncPlanner decides which calendar dates a sync run has to fetch.
//
// Yesterday is always included so final scores of matches that ended after
// midnight get refreshed. Today through six days ahead are fetched only when
// the store has no matches for that day yet. A future day that already holds
// records is therefore never refetched, even if its stored metadata has gone
// stale upstream; only yesterday self-heals. That staleness window is a
// deliberate trade against API quota.
type SyncPlanner struct {
	store MatchStore

	// now is replaceable in tests
	now func() time.Time
}

func NewSyncPlanner(store MatchStore) *SyncPlanner {
	return &SyncPlanner{
		store: store,
		now:   time.Now,
	}
}

// PlanDates returns the dates to fetch, yesterday first, then day offsets
// 0..6 ascending filtered by the missing-data predicate.
func (p *SyncPlanner) PlanDates(ctx context.Context) ([]string, error) {
	today := p.now().UTC().Truncate(24 * time.Hour)

	dates := []string{today.AddDate(0, 0, -1).Format(dateFormat)}

	for offset := 0; offset <= 6; offset++ {
		date := today.AddDate(0, 0, offset).Format(dateFormat)
		exists, err := p.store.HasMatchesForDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("failed to check matches for %s: %w", date, err)
		}
		if !exists {
			dates = append(dates, date)
		}
	}

	return dates, nil
}
