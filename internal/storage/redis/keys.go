package redis

import (
	"fmt"

	"github.com/mcoot/pokerclub/internal/model"
)

// keys builds every Redis key under one prefix
type keys struct {
	prefix string
}

// tournament returns the hash key for a Tournament
func (k keys) tournament(id model.TournamentID) string {
	return fmt.Sprintf("%s:tournament:%s", k.prefix, id)
}

// player returns the hash key for a Player
func (k keys) player(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", k.prefix, id)
}

// playerPresence returns the key that exists exactly while the player does.
// It only changes on create and delete.
func (k keys) playerPresence(id model.PlayerID) string {
	return fmt.Sprintf("%s:presence:player:%s", k.prefix, id)
}

// meeting returns the JSON key for a Meeting
func (k keys) meeting(id model.MeetingID) string {
	return fmt.Sprintf("%s:meeting:%s", k.prefix, id)
}

// leaderboard returns the JSON key for the published leaderboard
func (k keys) leaderboard() string {
	return fmt.Sprintf("%s:leaderboard:leaderboardinfo", k.prefix)
}

// Index sets listing the IDs of each collection

func (k keys) tournamentIndex() string {
	return fmt.Sprintf("%s:idx:tournaments", k.prefix)
}

func (k keys) playerIndex() string {
	return fmt.Sprintf("%s:idx:players", k.prefix)
}

func (k keys) meetingIndex() string {
	return fmt.Sprintf("%s:idx:meetings", k.prefix)
}
