package model

import "time"

// LeaderboardEntry is one row of a published leaderboard snapshot
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Leaderboard is the published ranking of the ledger. It is replaced as a
// whole on every publish and goes stale between publishes.
type Leaderboard struct {
	LastUpdated time.Time          `json:"lastUpdated"`
	Rankings    []LeaderboardEntry `json:"rankings"`
}
