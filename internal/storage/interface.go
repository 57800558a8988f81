package storage

import (
	"context"
	"time"

	"github.com/mcoot/pokerclub/internal/model"
)

// Storage is the document store behind the club ledger. Plain reads are
// served directly; every mutation goes through RunInTx.
type Storage interface {
	// RunInTx runs fn against a new transaction and commits its writes as one
	// all-or-nothing unit. Documents read through the Tx form the read set:
	// if any of them changes before commit, nothing is written and
	// model.ErrConflict is returned. An error from fn aborts the transaction.
	// Conflicts are not retried.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error)
	ListTournaments(ctx context.Context) ([]*model.Tournament, error)

	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	GetMeeting(ctx context.Context, id model.MeetingID) (*model.Meeting, error)
	ListMeetings(ctx context.Context) ([]*model.Meeting, error)

	GetLeaderboard(ctx context.Context) (*model.Leaderboard, error)
}

// Tx is a single read-validate-write unit. Reads return copies the caller may
// modify freely and do not observe the transaction's own buffered writes.
// Writes are buffered and only become visible on commit, in the order they
// were issued. Writes that need an existing document (field updates and
// increments) check for it when issued and fail with the matching NotFound
// error. Player writes and LookupPlayer only add the player's existence to
// the read set: a concurrent increment to the same player does not conflict,
// a concurrent delete does.
type Tx interface {
	// Reads
	GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	// LookupPlayer reads a player for its identity. The returned counters
	// may be stale by commit time.
	LookupPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	GetMeeting(ctx context.Context, id model.MeetingID) (*model.Meeting, error)

	// Tournament writes
	SaveTournament(ctx context.Context, t *model.Tournament) error
	UpdateTournamentMeta(ctx context.Context, id model.TournamentID, meta TournamentMeta) error
	DeleteTournament(ctx context.Context, id model.TournamentID) error

	// Player writes
	CreatePlayer(ctx context.Context, p *model.Player) error
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	IncrementPlayerPoints(ctx context.Context, id model.PlayerID, delta int) error
	IncrementPlayerKnockouts(ctx context.Context, id model.PlayerID, delta int) error
	SetPlayerPoints(ctx context.Context, id model.PlayerID, points int) error

	// Meeting writes
	SaveMeeting(ctx context.Context, m *model.Meeting) error
	DeleteMeeting(ctx context.Context, id model.MeetingID) error

	// Leaderboard writes
	SaveLeaderboard(ctx context.Context, lb *model.Leaderboard) error
}

// TournamentMeta is the partial update applied by UpdateTournamentMeta. It
// never touches results.
type TournamentMeta struct {
	Name      string
	Type      model.TournamentType
	IsActive  bool
	UpdatedAt time.Time
}
