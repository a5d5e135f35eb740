package utils

import (
	"github.com/gosimple/slug"
)

// NormalizeSlug creates a URL-friendly slug using the gosimple/slug library.
// Handles all Unicode input including Turkish channel and team names.
func NormalizeSlug(text string) string {
	if text == "" {
		return ""
	}
	return slug.Make(text)
}

// GenerateMatchSlug creates a slug for a match from team names and its
// external id
func GenerateMatchSlug(homeTeam, awayTeam, matchID string) string {
	if homeTeam == "" {
		homeTeam = "team"
	}
	if awayTeam == "" {
		awayTeam = "team"
	}
	if matchID == "" {
		matchID = "match"
	}

	return NormalizeSlug(homeTeam + " vs " + awayTeam + " " + matchID)
}

// GenerateChannelSlug creates a slug for a channel name
func GenerateChannelSlug(name string) string {
	if name == "" {
		return "channel"
	}
	return NormalizeSlug(name)
}
