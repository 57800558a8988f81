package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Transactions use WATCH/MULTI/EXEC: every document read inside a
// transaction is watched and the buffered writes run in a single EXEC.
type Storage struct {
	client *redis.Client
	keys   keys
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		keys:   keys{prefix: prefix},
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// RunInTx runs fn inside a WATCH block and commits its writes with EXEC.
// A failed EXEC means a watched document changed and maps to ErrConflict.
func (s *Storage) RunInTx(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
		t := newTx(s, rtx)
		if err := fn(ctx, t); err != nil {
			return err
		}
		return t.commit(ctx)
	})
	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrConflict
	}
	return err
}

// The read helpers take a redis.Cmdable so plain reads and transactional
// reads share decoding.

func getTournament(ctx context.Context, c redis.Cmdable, k keys, id model.TournamentID) (*model.Tournament, error) {
	h, err := c.HGetAll(ctx, k.tournament(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(h) == 0 {
		return nil, model.ErrTournamentNotFound
	}
	return decodeTournament(id, h)
}

func getPlayer(ctx context.Context, c redis.Cmdable, k keys, id model.PlayerID) (*model.Player, error) {
	h, err := c.HGetAll(ctx, k.player(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(h) == 0 {
		return nil, model.ErrPlayerNotFound
	}
	return decodePlayer(id, h)
}

func getMeeting(ctx context.Context, c redis.Cmdable, k keys, id model.MeetingID) (*model.Meeting, error) {
	data, err := c.Get(ctx, k.meeting(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMeetingNotFound
		}
		return nil, err
	}

	var m model.Meeting
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Tournament reads

func (s *Storage) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	return getTournament(ctx, s.client, s.keys, id)
}

func (s *Storage) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	ids, err := s.client.SMembers(ctx, s.keys.tournamentIndex()).Result()
	if err != nil {
		return nil, err
	}

	tournaments := make([]*model.Tournament, 0, len(ids))
	for _, id := range ids {
		t, err := s.GetTournament(ctx, model.TournamentID(id))
		if err != nil {
			if errors.Is(err, model.ErrTournamentNotFound) {
				continue
			}
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	storage.SortTournaments(tournaments)
	return tournaments, nil
}

// Player reads

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return getPlayer(ctx, s.client, s.keys, id)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return listPlayers(ctx, s.client, s.keys, nil)
}

// listPlayers reads every indexed player. watch, when set, is called with
// each key before it is read.
func listPlayers(ctx context.Context, c redis.Cmdable, k keys, watch func(key string) error) ([]*model.Player, error) {
	if watch != nil {
		if err := watch(k.playerIndex()); err != nil {
			return nil, err
		}
	}
	ids, err := c.SMembers(ctx, k.playerIndex()).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(ids))
	for _, id := range ids {
		pid := model.PlayerID(id)
		if watch != nil {
			if err := watch(k.player(pid)); err != nil {
				return nil, err
			}
		}
		p, err := getPlayer(ctx, c, k, pid)
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		players = append(players, p)
	}
	storage.SortPlayers(players)
	return players, nil
}

// Meeting reads

func (s *Storage) GetMeeting(ctx context.Context, id model.MeetingID) (*model.Meeting, error) {
	return getMeeting(ctx, s.client, s.keys, id)
}

func (s *Storage) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	ids, err := s.client.SMembers(ctx, s.keys.meetingIndex()).Result()
	if err != nil {
		return nil, err
	}

	meetings := make([]*model.Meeting, 0, len(ids))
	for _, id := range ids {
		m, err := s.GetMeeting(ctx, model.MeetingID(id))
		if err != nil {
			if errors.Is(err, model.ErrMeetingNotFound) {
				continue
			}
			return nil, err
		}
		meetings = append(meetings, m)
	}
	storage.SortMeetings(meetings)
	return meetings, nil
}

// Leaderboard reads

func (s *Storage) GetLeaderboard(ctx context.Context) (*model.Leaderboard, error) {
	data, err := s.client.Get(ctx, s.keys.leaderboard()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrLeaderboardNotFound
		}
		return nil, err
	}

	var lb model.Leaderboard
	if err := json.Unmarshal(data, &lb); err != nil {
		return nil, err
	}
	return &lb, nil
}
