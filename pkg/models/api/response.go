package api

import "time"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// MatchResponse represents a match in lookup responses, shaped for the
// directory frontends
type MatchResponse struct {
	MatchID       string    `json:"match_id"`
	Slug          string    `json:"slug"`
	FixtureDate   string    `json:"fixture_date"`
	KickoffTime   time.Time `json:"kickoff_time"`
	Status        string    `json:"status"`
	StatusText    string    `json:"status_text"`
	HomeTeam      string    `json:"home_team"`
	HomeTeamLogo  string    `json:"home_team_logo,omitempty"`
	HomeTeamGoals *int      `json:"home_team_goals,omitempty"`
	AwayTeam      string    `json:"away_team"`
	AwayTeamLogo  string    `json:"away_team_logo,omitempty"`
	AwayTeamGoals *int      `json:"away_team_goals,omitempty"`
	Competition   string    `json:"competition"`
	Country       string    `json:"country,omitempty"`
	Venue         string    `json:"venue,omitempty"`
	Channels      []string  `json:"channels,omitempty"`
}

// ChannelResponse represents a channel in directory responses
type ChannelResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Logo      string `json:"logo,omitempty"`
	StreamURL string `json:"stream_url,omitempty"`
	Language  string `json:"language,omitempty"`
}

// Response represents a general API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Message string      `json:"message,omitempty"`
}
