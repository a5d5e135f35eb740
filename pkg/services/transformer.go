package services

import (
	"strconv"
	"time"

	"github.com/matchcast/core/pkg/models"
)

// FixtureTransformer maps raw API-Football records into internal matches.
// Records it cannot map are filtered, never surfaced as errors: losing one
// malformed fixture is preferable to failing a whole sync run.
type FixtureTransformer struct{}

func NewFixtureTransformer() *FixtureTransformer {
	return &FixtureTransformer{}
}

// Transform converts a raw fixture into a Match. The second return value is
// false when the record is filtered out (required field missing, unparseable
// kickoff, or any panic while mapping).
func (t *FixtureTransformer) Transform(raw models.FootballAPIFixture) (match *models.Match, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			match, ok = nil, false
		}
	}()

	if raw.Fixture.ID == 0 || raw.Fixture.Date == "" {
		return nil, false
	}
	if raw.Teams.Home.Name == "" || raw.Teams.Away.Name == "" {
		return nil, false
	}
	if raw.League.Name == "" {
		return nil, false
	}

	kickoff, err := time.Parse(time.RFC3339, raw.Fixture.Date)
	if err != nil {
		return nil, false
	}

	status := raw.Fixture.Status.Short
	statusText := raw.Fixture.Status.Long
	if status == "" {
		status = "NS"
		statusText = "Not Started"
	} else if statusText == "" {
		statusText = status
	}

	return &models.Match{
		MatchID:            strconv.Itoa(raw.Fixture.ID),
		LeagueID:           raw.League.ID,
		FixtureDate:        kickoff.UTC().Format("2006-01-02"),
		KickoffTime:        kickoff,
		Status:             status,
		StatusText:         statusText,
		HomeTeamName:       raw.Teams.Home.Name,
		HomeTeamLogo:       raw.Teams.Home.Logo,
		HomeTeamGoals:      raw.Goals.Home,
		AwayTeamName:       raw.Teams.Away.Name,
		AwayTeamLogo:       raw.Teams.Away.Logo,
		AwayTeamGoals:      raw.Goals.Away,
		CompetitionName:    raw.League.Name,
		CompetitionLogo:    raw.League.Logo,
		CompetitionCountry: raw.League.Country,
		VenueName:          raw.Fixture.Venue.Name,
		VenueCity:          raw.Fixture.Venue.City,
		Referee:            raw.Fixture.Referee,
	}, true
}

// FilterAllowedLeagues keeps only fixtures whose league id is on the
// allow-list. The filter runs before Transform so the transformer only ever
// sees tracked competitions in normal operation.
func FilterAllowedLeagues(raws []models.FootballAPIFixture, leagueIDs []int) []models.FootballAPIFixture {
	allowed := make(map[int]struct{}, len(leagueIDs))
	for _, id := range leagueIDs {
		allowed[id] = struct{}{}
	}

	var filtered []models.FootballAPIFixture
	for _, raw := range raws {
		if _, ok := allowed[raw.League.ID]; ok {
			filtered = append(filtered, raw)
		}
	}
	return filtered
}
