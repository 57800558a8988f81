package memory

import (
	"context"
	"sync"

	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Every
// document carries a version that is bumped on write; transactions record
// the versions they read and refuse to commit if any has moved.
type Storage struct {
	mu sync.RWMutex

	tournaments map[model.TournamentID]*model.Tournament
	players     map[model.PlayerID]*model.Player
	meetings    map[model.MeetingID]*model.Meeting
	leaderboard *model.Leaderboard
	versions    map[string]uint64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		tournaments: make(map[model.TournamentID]*model.Tournament),
		players:     make(map[model.PlayerID]*model.Player),
		meetings:    make(map[model.MeetingID]*model.Meeting),
		versions:    make(map[string]uint64),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Document keys, named after the document paths they model

const (
	playersCollectionKey = "players"
	leaderboardKey       = "leaderboard/leaderboardinfo"
)

func tournamentKey(id model.TournamentID) string { return "tournaments/" + string(id) }
func playerKey(id model.PlayerID) string         { return "players/" + string(id) }
func meetingKey(id model.MeetingID) string       { return "meetings/" + string(id) }

// presenceKey versions only the existence of a player, not its counters
func presenceKey(id model.PlayerID) string { return "presence/players/" + string(id) }

// bump marks a document as written. Caller holds the write lock.
func (s *Storage) bump(key string) {
	s.versions[key]++
}

// RunInTx runs fn and commits its buffered writes atomically
func (s *Storage) RunInTx(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	t := newTx(s)
	if err := fn(ctx, t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.commit()
}

// Tournament reads

func (s *Storage) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, model.ErrTournamentNotFound
	}
	return copyTournament(t), nil
}

func (s *Storage) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tournaments := make([]*model.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		tournaments = append(tournaments, copyTournament(t))
	}
	storage.SortTournaments(tournaments)
	return tournaments, nil
}

// Player reads

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listPlayersLocked(), nil
}

func (s *Storage) listPlayersLocked() []*model.Player {
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		cp := *p
		players = append(players, &cp)
	}
	storage.SortPlayers(players)
	return players
}

// Meeting reads

func (s *Storage) GetMeeting(ctx context.Context, id model.MeetingID) (*model.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meetings[id]
	if !ok {
		return nil, model.ErrMeetingNotFound
	}
	return copyMeeting(m), nil
}

func (s *Storage) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meetings := make([]*model.Meeting, 0, len(s.meetings))
	for _, m := range s.meetings {
		meetings = append(meetings, copyMeeting(m))
	}
	storage.SortMeetings(meetings)
	return meetings, nil
}

// Leaderboard reads

func (s *Storage) GetLeaderboard(ctx context.Context) (*model.Leaderboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.leaderboard == nil {
		return nil, model.ErrLeaderboardNotFound
	}
	return copyLeaderboard(s.leaderboard), nil
}

func copyTournament(t *model.Tournament) *model.Tournament {
	cp := *t
	cp.Results = t.CloneResults()
	return &cp
}

func copyMeeting(m *model.Meeting) *model.Meeting {
	cp := *m
	cp.Results = make([]model.MeetingResult, len(m.Results))
	copy(cp.Results, m.Results)
	return &cp
}

func copyLeaderboard(lb *model.Leaderboard) *model.Leaderboard {
	cp := *lb
	cp.Rankings = make([]model.LeaderboardEntry, len(lb.Rankings))
	copy(cp.Rankings, lb.Rankings)
	return &cp
}
