package memory

import (
	"context"

	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/storage"
)

// tx buffers writes as closures applied under the storage write lock once
// the read set has been validated. Writes that need an existing document
// check for it when issued, so a validated commit cannot fail part way.
// Player writes only observe the player's presence, so concurrent
// increments to the same player commit independently.
type tx struct {
	s        *Storage
	reads    map[string]uint64
	ops      []func()
	created  map[model.PlayerID]bool
	deleted  map[model.PlayerID]bool
	finished bool
}

var _ storage.Tx = (*tx)(nil)

func newTx(s *Storage) *tx {
	return &tx{
		s:       s,
		reads:   make(map[string]uint64),
		created: make(map[model.PlayerID]bool),
		deleted: make(map[model.PlayerID]bool),
	}
}

// observe adds a document to the read set. Caller holds at least the read
// lock. The first observed version wins.
func (t *tx) observe(key string) {
	if _, ok := t.reads[key]; ok {
		return
	}
	t.reads[key] = t.s.versions[key]
}

func (t *tx) commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.finished {
		return nil
	}
	t.finished = true

	for key, version := range t.reads {
		if t.s.versions[key] != version {
			return model.ErrConflict
		}
	}
	for _, op := range t.ops {
		op()
	}
	return nil
}

// Reads

func (t *tx) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	t.observe(tournamentKey(id))
	tournament, ok := t.s.tournaments[id]
	if !ok {
		return nil, model.ErrTournamentNotFound
	}
	return copyTournament(tournament), nil
}

func (t *tx) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	t.observe(playerKey(id))
	p, ok := t.s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (t *tx) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	t.observe(playersCollectionKey)
	for id := range t.s.players {
		t.observe(playerKey(id))
	}
	return t.s.listPlayersLocked(), nil
}

func (t *tx) GetMeeting(ctx context.Context, id model.MeetingID) (*model.Meeting, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	t.observe(meetingKey(id))
	m, ok := t.s.meetings[id]
	if !ok {
		return nil, model.ErrMeetingNotFound
	}
	return copyMeeting(m), nil
}

func (t *tx) LookupPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if t.deleted[id] {
		return nil, model.ErrPlayerNotFound
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	t.observe(presenceKey(id))
	p, ok := t.s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

// requirePlayer checks a player exists (or is created by this transaction)
// and adds its presence to the read set
func (t *tx) requirePlayer(id model.PlayerID) error {
	if t.created[id] {
		return nil
	}
	if t.deleted[id] {
		return model.ErrPlayerNotFound
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	t.observe(presenceKey(id))
	if _, ok := t.s.players[id]; !ok {
		return model.ErrPlayerNotFound
	}
	return nil
}

// Tournament writes

func (t *tx) SaveTournament(ctx context.Context, tournament *model.Tournament) error {
	doc := copyTournament(tournament)
	t.ops = append(t.ops, func() {
		t.s.tournaments[doc.ID] = doc
		t.s.bump(tournamentKey(doc.ID))
	})
	return nil
}

func (t *tx) UpdateTournamentMeta(ctx context.Context, id model.TournamentID, meta storage.TournamentMeta) error {
	t.s.mu.RLock()
	t.observe(tournamentKey(id))
	_, ok := t.s.tournaments[id]
	t.s.mu.RUnlock()
	if !ok {
		return model.ErrTournamentNotFound
	}

	t.ops = append(t.ops, func() {
		doc := copyTournament(t.s.tournaments[id])
		doc.Name = meta.Name
		doc.Type = meta.Type
		doc.IsActive = meta.IsActive
		doc.UpdatedAt = meta.UpdatedAt
		t.s.tournaments[id] = doc
		t.s.bump(tournamentKey(id))
	})
	return nil
}

func (t *tx) DeleteTournament(ctx context.Context, id model.TournamentID) error {
	t.ops = append(t.ops, func() {
		delete(t.s.tournaments, id)
		t.s.bump(tournamentKey(id))
	})
	return nil
}

// Player writes

func (t *tx) CreatePlayer(ctx context.Context, p *model.Player) error {
	doc := *p
	t.created[doc.ID] = true
	delete(t.deleted, doc.ID)
	t.ops = append(t.ops, func() {
		t.s.players[doc.ID] = &doc
		t.s.bump(playerKey(doc.ID))
		t.s.bump(presenceKey(doc.ID))
		t.s.bump(playersCollectionKey)
	})
	return nil
}

func (t *tx) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	delete(t.created, id)
	t.deleted[id] = true
	t.ops = append(t.ops, func() {
		delete(t.s.players, id)
		t.s.bump(playerKey(id))
		t.s.bump(presenceKey(id))
		t.s.bump(playersCollectionKey)
	})
	return nil
}

func (t *tx) IncrementPlayerPoints(ctx context.Context, id model.PlayerID, delta int) error {
	return t.updatePlayer(id, func(p *model.Player) { p.Points += delta })
}

func (t *tx) IncrementPlayerKnockouts(ctx context.Context, id model.PlayerID, delta int) error {
	return t.updatePlayer(id, func(p *model.Player) { p.Knockouts += delta })
}

func (t *tx) SetPlayerPoints(ctx context.Context, id model.PlayerID, points int) error {
	return t.updatePlayer(id, func(p *model.Player) { p.Points = points })
}

func (t *tx) updatePlayer(id model.PlayerID, mutate func(p *model.Player)) error {
	if err := t.requirePlayer(id); err != nil {
		return err
	}
	t.ops = append(t.ops, func() {
		cp := *t.s.players[id]
		mutate(&cp)
		t.s.players[id] = &cp
		t.s.bump(playerKey(id))
	})
	return nil
}

// Meeting writes

func (t *tx) SaveMeeting(ctx context.Context, m *model.Meeting) error {
	doc := copyMeeting(m)
	t.ops = append(t.ops, func() {
		t.s.meetings[doc.ID] = doc
		t.s.bump(meetingKey(doc.ID))
	})
	return nil
}

func (t *tx) DeleteMeeting(ctx context.Context, id model.MeetingID) error {
	t.ops = append(t.ops, func() {
		delete(t.s.meetings, id)
		t.s.bump(meetingKey(id))
	})
	return nil
}

// Leaderboard writes

func (t *tx) SaveLeaderboard(ctx context.Context, lb *model.Leaderboard) error {
	doc := copyLeaderboard(lb)
	t.ops = append(t.ops, func() {
		t.s.leaderboard = doc
		t.s.bump(leaderboardKey)
	})
	return nil
}
