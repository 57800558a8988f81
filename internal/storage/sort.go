package storage

import (
	"sort"

	"github.com/mcoot/pokerclub/internal/model"
)

// SortPlayers orders players by ID. Backends return player lists in this
// order so that ties on the leaderboard resolve the same way every time.
func SortPlayers(players []*model.Player) {
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
}

// SortTournaments orders tournaments oldest first
func SortTournaments(tournaments []*model.Tournament) {
	sort.Slice(tournaments, func(i, j int) bool {
		a, b := tournaments[i], tournaments[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// SortMeetings orders meetings by date, then creation time
func SortMeetings(meetings []*model.Meeting) {
	sort.Slice(meetings, func(i, j int) bool {
		a, b := meetings[i], meetings[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
