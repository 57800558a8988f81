package response

import (
	"time"

	"github.com/mcoot/pokerclub/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Points    int       `json:"points"`
	Knockouts int       `json:"knockouts"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		Points:    p.Points,
		Knockouts: p.Knockouts,
		CreatedAt: p.CreatedAt,
	}
}

// PlayersFromModel converts a player list
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// TournamentResult represents one placing in a tournament
type TournamentResult struct {
	Name      string `json:"name"`
	Rank      int    `json:"rank"`
	Knockouts int    `json:"knockouts"`
	Points    int    `json:"points"`
}

// Tournament represents a tournament in API responses
type Tournament struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	IsActive  bool               `json:"is_active"`
	Results   []TournamentResult `json:"results"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// TournamentFromModel converts a model.Tournament
func TournamentFromModel(t *model.Tournament) Tournament {
	results := make([]TournamentResult, len(t.Results))
	for i, r := range t.Results {
		results[i] = TournamentResult{
			Name:      r.Name,
			Rank:      r.Rank,
			Knockouts: r.Knockouts,
			Points:    r.Points,
		}
	}
	return Tournament{
		ID:        string(t.ID),
		Name:      t.Name,
		Type:      string(t.Type),
		IsActive:  t.IsActive,
		Results:   results,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// TournamentsFromModel converts a tournament list
func TournamentsFromModel(tournaments []*model.Tournament) []Tournament {
	out := make([]Tournament, len(tournaments))
	for i, t := range tournaments {
		out[i] = TournamentFromModel(t)
	}
	return out
}

// MeetingResult represents one weekly meeting game result
type MeetingResult struct {
	Name      string `json:"name"`
	Rank      int    `json:"rank"`
	Knockouts int    `json:"knockouts"`
	HourGame  bool   `json:"hour_game"`
	Points    int    `json:"points"`
}

// Meeting represents a meeting in API responses
type Meeting struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	Results   []MeetingResult `json:"results"`
	CreatedAt time.Time       `json:"created_at"`
}

// MeetingFromModel converts a model.Meeting
func MeetingFromModel(m *model.Meeting) Meeting {
	results := make([]MeetingResult, len(m.Results))
	for i, r := range m.Results {
		results[i] = MeetingResult{
			Name:      r.Name,
			Rank:      r.Rank,
			Knockouts: r.Knockouts,
			HourGame:  r.HourGame,
			Points:    r.Points,
		}
	}
	return Meeting{
		ID:        string(m.ID),
		Name:      m.Name,
		Date:      m.Date,
		Results:   results,
		CreatedAt: m.CreatedAt,
	}
}

// MeetingsFromModel converts a meeting list
func MeetingsFromModel(meetings []*model.Meeting) []Meeting {
	out := make([]Meeting, len(meetings))
	for i, m := range meetings {
		out[i] = MeetingFromModel(m)
	}
	return out
}

// LeaderboardEntry is one ranked row of the leaderboard
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Leaderboard represents the published leaderboard snapshot
type Leaderboard struct {
	LastUpdated time.Time          `json:"last_updated"`
	Rankings    []LeaderboardEntry `json:"rankings"`
}

// LeaderboardFromModel converts a model.Leaderboard
func LeaderboardFromModel(lb *model.Leaderboard) Leaderboard {
	rankings := make([]LeaderboardEntry, len(lb.Rankings))
	for i, e := range lb.Rankings {
		rankings[i] = LeaderboardEntry{Rank: e.Rank, Name: e.Name, Points: e.Points}
	}
	return Leaderboard{
		LastUpdated: lb.LastUpdated,
		Rankings:    rankings,
	}
}
