package models

import "time"

// Match represents a single fixture in the broadcast directory.
// MatchID is the external identity derived from the upstream fixture id;
// the sync upsert is keyed on it and never creates duplicates.
type Match struct {
	MatchID     string    `json:"match_id"`
	LeagueID    int       `json:"league_id"`
	FixtureDate string    `json:"fixture_date"` // calendar day, UTC, YYYY-MM-DD
	KickoffTime time.Time `json:"kickoff_time"`
	Status      string    `json:"status"`
	StatusText  string    `json:"status_text"`

	HomeTeamName  string `json:"home_team_name"`
	HomeTeamLogo  string `json:"home_team_logo,omitempty"`
	HomeTeamGoals *int   `json:"home_team_goals,omitempty"`
	AwayTeamName  string `json:"away_team_name"`
	AwayTeamLogo  string `json:"away_team_logo,omitempty"`
	AwayTeamGoals *int   `json:"away_team_goals,omitempty"`

	CompetitionName    string `json:"competition_name"`
	CompetitionLogo    string `json:"competition_logo,omitempty"`
	CompetitionCountry string `json:"competition_country,omitempty"`
	VenueName          string `json:"venue_name,omitempty"`
	VenueCity          string `json:"venue_city,omitempty"`
	Referee            string `json:"referee,omitempty"`

	// ChannelIDs holds ordered weak references to Channel entities.
	// Links are mutated by the channel-linking endpoints, not by sync.
	ChannelIDs []string `json:"channels,omitempty"`
}

// Channel represents a TV or streaming channel that can carry matches.
type Channel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Logo      string `json:"logo,omitempty"`
	StreamURL string `json:"stream_url,omitempty"`
	Language  string `json:"language,omitempty"`
	SortOrder int    `json:"sort_order"`
}
