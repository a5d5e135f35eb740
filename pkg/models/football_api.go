package models

// API-Football wire models for the fixtures endpoint.

// FootballAPIPaging represents pagination info
type FootballAPIPaging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// FootballAPIFixture represents one entry of a /fixtures response
type FootballAPIFixture struct {
	Fixture FootballAPIFixtureInfo  `json:"fixture"`
	League  FootballAPILeague       `json:"league"`
	Teams   FootballAPIFixtureTeams `json:"teams"`
	Goals   FootballAPIGoals        `json:"goals"`
}

// FootballAPIFixtureInfo carries the fixture-level metadata
type FootballAPIFixtureInfo struct {
	ID       int                  `json:"id"`
	Referee  string               `json:"referee"`
	Timezone string               `json:"timezone"`
	Date     string               `json:"date"` // RFC3339 kickoff instant
	Venue    FootballAPIVenueInfo `json:"venue"`
	Status   FootballAPIStatus    `json:"status"`
}

// FootballAPIStatus is the short/long match status pair
type FootballAPIStatus struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

// FootballAPIVenueInfo is the venue block of a fixture
type FootballAPIVenueInfo struct {
	ID   *int   `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// FootballAPILeague is the league block of a fixture
type FootballAPILeague struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Flag    string `json:"flag"`
	Season  int    `json:"season"`
	Round   string `json:"round"`
}

// FootballAPIFixtureTeams holds both sides of a fixture
type FootballAPIFixtureTeams struct {
	Home FootballAPIFixtureTeam `json:"home"`
	Away FootballAPIFixtureTeam `json:"away"`
}

// FootballAPIFixtureTeam is one side of a fixture
type FootballAPIFixtureTeam struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Winner *bool  `json:"winner"`
}

// FootballAPIGoals holds the current score, null until the match starts
type FootballAPIGoals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
