package redis

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/storage"
)

// tx watches every key it reads and queues writes for a single MULTI/EXEC.
// Writes against a player watch the player's presence key instead of its
// hash, so concurrent increments to the same player do not conflict while a
// concurrent delete still fails the EXEC.
type tx struct {
	s       *Storage
	rtx     *redis.Tx
	ops     []func(pipe redis.Pipeliner)
	created map[model.PlayerID]bool
	deleted map[model.PlayerID]bool
}

var _ storage.Tx = (*tx)(nil)

func newTx(s *Storage, rtx *redis.Tx) *tx {
	return &tx{
		s:       s,
		rtx:     rtx,
		created: make(map[model.PlayerID]bool),
		deleted: make(map[model.PlayerID]bool),
	}
}

func (t *tx) watch(ctx context.Context, key string) error {
	return t.rtx.Watch(ctx, key).Err()
}

func (t *tx) commit(ctx context.Context) error {
	if len(t.ops) == 0 {
		return nil
	}
	_, err := t.rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, op := range t.ops {
			op(pipe)
		}
		return nil
	})
	return err
}

// Reads

func (t *tx) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	if err := t.watch(ctx, t.s.keys.tournament(id)); err != nil {
		return nil, err
	}
	return getTournament(ctx, t.rtx, t.s.keys, id)
}

func (t *tx) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if err := t.watch(ctx, t.s.keys.player(id)); err != nil {
		return nil, err
	}
	return getPlayer(ctx, t.rtx, t.s.keys, id)
}

func (t *tx) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return listPlayers(ctx, t.rtx, t.s.keys, func(key string) error {
		return t.watch(ctx, key)
	})
}

func (t *tx) GetMeeting(ctx context.Context, id model.MeetingID) (*model.Meeting, error) {
	if err := t.watch(ctx, t.s.keys.meeting(id)); err != nil {
		return nil, err
	}
	return getMeeting(ctx, t.rtx, t.s.keys, id)
}

// LookupPlayer reads a player without adding its counters to the read set.
// Only the player's presence is guarded until commit.
func (t *tx) LookupPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if t.deleted[id] {
		return nil, model.ErrPlayerNotFound
	}
	if err := t.watch(ctx, t.s.keys.playerPresence(id)); err != nil {
		return nil, err
	}
	return getPlayer(ctx, t.rtx, t.s.keys, id)
}

// requirePlayer checks a player exists (or is created by this transaction)
// and watches its presence key
func (t *tx) requirePlayer(ctx context.Context, id model.PlayerID) error {
	if t.created[id] {
		return nil
	}
	if t.deleted[id] {
		return model.ErrPlayerNotFound
	}
	if err := t.watch(ctx, t.s.keys.playerPresence(id)); err != nil {
		return err
	}
	n, err := t.rtx.Exists(ctx, t.s.keys.player(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

// Tournament writes

func (t *tx) SaveTournament(ctx context.Context, tournament *model.Tournament) error {
	fields, err := tournamentFields(tournament)
	if err != nil {
		return err
	}
	key := t.s.keys.tournament(tournament.ID)
	id := string(tournament.ID)
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		pipe.SAdd(ctx, t.s.keys.tournamentIndex(), id)
	})
	return nil
}

func (t *tx) UpdateTournamentMeta(ctx context.Context, id model.TournamentID, meta storage.TournamentMeta) error {
	key := t.s.keys.tournament(id)
	if err := t.watch(ctx, key); err != nil {
		return err
	}
	n, err := t.rtx.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrTournamentNotFound
	}

	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.HSet(ctx, key,
			fieldName, meta.Name,
			fieldType, string(meta.Type),
			fieldIsActive, strconv.FormatBool(meta.IsActive),
			fieldUpdatedAt, formatTime(meta.UpdatedAt),
		)
	})
	return nil
}

func (t *tx) DeleteTournament(ctx context.Context, id model.TournamentID) error {
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.Del(ctx, t.s.keys.tournament(id))
		pipe.SRem(ctx, t.s.keys.tournamentIndex(), string(id))
	})
	return nil
}

// Player writes

func (t *tx) CreatePlayer(ctx context.Context, p *model.Player) error {
	fields := playerFields(p)
	id := p.ID
	t.created[id] = true
	delete(t.deleted, id)
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		key := t.s.keys.player(id)
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		pipe.Set(ctx, t.s.keys.playerPresence(id), "1", 0)
		pipe.SAdd(ctx, t.s.keys.playerIndex(), string(id))
	})
	return nil
}

func (t *tx) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	delete(t.created, id)
	t.deleted[id] = true
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.Del(ctx, t.s.keys.player(id), t.s.keys.playerPresence(id))
		pipe.SRem(ctx, t.s.keys.playerIndex(), string(id))
	})
	return nil
}

func (t *tx) IncrementPlayerPoints(ctx context.Context, id model.PlayerID, delta int) error {
	if err := t.requirePlayer(ctx, id); err != nil {
		return err
	}
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.HIncrBy(ctx, t.s.keys.player(id), fieldPoints, int64(delta))
	})
	return nil
}

func (t *tx) IncrementPlayerKnockouts(ctx context.Context, id model.PlayerID, delta int) error {
	if err := t.requirePlayer(ctx, id); err != nil {
		return err
	}
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.HIncrBy(ctx, t.s.keys.player(id), fieldKnockouts, int64(delta))
	})
	return nil
}

func (t *tx) SetPlayerPoints(ctx context.Context, id model.PlayerID, points int) error {
	if err := t.requirePlayer(ctx, id); err != nil {
		return err
	}
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.HSet(ctx, t.s.keys.player(id), fieldPoints, points)
	})
	return nil
}

// Meeting writes

func (t *tx) SaveMeeting(ctx context.Context, m *model.Meeting) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	key := t.s.keys.meeting(m.ID)
	id := string(m.ID)
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.Set(ctx, key, data, 0)
		pipe.SAdd(ctx, t.s.keys.meetingIndex(), id)
	})
	return nil
}

func (t *tx) DeleteMeeting(ctx context.Context, id model.MeetingID) error {
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.Del(ctx, t.s.keys.meeting(id))
		pipe.SRem(ctx, t.s.keys.meetingIndex(), string(id))
	})
	return nil
}

// Leaderboard writes

func (t *tx) SaveLeaderboard(ctx context.Context, lb *model.Leaderboard) error {
	data, err := json.Marshal(lb)
	if err != nil {
		return err
	}
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.Set(ctx, t.s.keys.leaderboard(), data, 0)
	})
	return nil
}
