package model

import "time"

// MeetingID uniquely identifies a weekly meeting
type MeetingID string

// MeetingResult is a single game result recorded at a weekly meeting
type MeetingResult struct {
	Name      string
	Rank      int
	Knockouts int
	HourGame  bool // short-format game, scored at half points
	Points    int
}

// Meeting is a weekly club night and the results recorded at it
type Meeting struct {
	ID        MeetingID
	Name      string
	Date      string
	Results   []MeetingResult
	CreatedAt time.Time
}
