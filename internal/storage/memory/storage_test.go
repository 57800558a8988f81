package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) createPlayer(name string, points int) {
	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.CreatePlayer(ctx, &model.Player{ID: model.NormalizeName(name), Name: name, Points: points})
	})
	s.Require().NoError(err)
}

func (s *StorageSuite) increment(id model.PlayerID, delta int) {
	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.IncrementPlayerPoints(ctx, id, delta)
	})
	s.Require().NoError(err)
}

func (s *StorageSuite) saveTournament(t *model.Tournament) {
	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.SaveTournament(ctx, t)
	})
	s.Require().NoError(err)
}

// Player tests

func (s *StorageSuite) TestCreateAndGetPlayer() {
	s.createPlayer("Alice Smith", 0)

	p, err := s.storage.GetPlayer(s.ctx, "alicesmith")
	s.Require().NoError(err)
	s.Equal("Alice Smith", p.Name)
	s.Equal(0, p.Points)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *StorageSuite) TestListPlayersSortedByID() {
	s.createPlayer("Carol", 0)
	s.createPlayer("Alice", 0)
	s.createPlayer("Bob", 0)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("alice"), players[0].ID)
	s.Equal(model.PlayerID("bob"), players[1].ID)
	s.Equal(model.PlayerID("carol"), players[2].ID)
}

func (s *StorageSuite) TestIncrementAndSetPoints() {
	s.createPlayer("Alice", 10)

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.IncrementPlayerPoints(ctx, "alice", 5); err != nil {
			return err
		}
		if err := tx.IncrementPlayerPoints(ctx, "alice", -2); err != nil {
			return err
		}
		return tx.IncrementPlayerKnockouts(ctx, "alice", 3)
	})
	s.Require().NoError(err)

	p, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(13, p.Points)
	s.Equal(3, p.Knockouts)

	err = s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.SetPlayerPoints(ctx, "alice", 0)
	})
	s.Require().NoError(err)
	p, _ = s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(0, p.Points)
}

func (s *StorageSuite) TestIncrementMissingPlayerFailsWhenIssued() {
	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.IncrementPlayerPoints(ctx, "ghost", 1)
	})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestIncrementPlayerCreatedInSameTx() {
	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.CreatePlayer(ctx, &model.Player{ID: "dave", Name: "Dave"}); err != nil {
			return err
		}
		return tx.IncrementPlayerPoints(ctx, "dave", 7)
	})
	s.Require().NoError(err)

	p, err := s.storage.GetPlayer(s.ctx, "dave")
	s.Require().NoError(err)
	s.Equal(7, p.Points)
}

func (s *StorageSuite) TestIncrementAfterDeleteInSameTxFails() {
	s.createPlayer("Alice", 0)

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.DeletePlayer(ctx, "alice"); err != nil {
			return err
		}
		return tx.IncrementPlayerPoints(ctx, "alice", 1)
	})
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, err = s.storage.GetPlayer(s.ctx, "alice")
	s.NoError(err)
}

// Transaction tests

func (s *StorageSuite) TestAbortedTxWritesNothing() {
	s.createPlayer("Alice", 10)
	boom := errors.New("boom")

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.IncrementPlayerPoints(ctx, "alice", 100); err != nil {
			return err
		}
		if err := tx.SaveTournament(ctx, &model.Tournament{ID: "t1", Name: "Main"}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	p, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(10, p.Points)
	_, err = s.storage.GetTournament(s.ctx, "t1")
	s.ErrorIs(err, model.ErrTournamentNotFound)
}

func (s *StorageSuite) TestConflictingWriteAbortsCommit() {
	s.saveTournament(&model.Tournament{ID: "t1", Name: "Main", IsActive: true})
	s.createPlayer("Alice", 0)

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		t, err := tx.GetTournament(ctx, "t1")
		if err != nil {
			return err
		}

		// Another writer changes the tournament after it was read
		s.saveTournament(&model.Tournament{ID: "t1", Name: "Renamed", IsActive: true})

		t.IsActive = false
		if err := tx.SaveTournament(ctx, t); err != nil {
			return err
		}
		return tx.IncrementPlayerPoints(ctx, "alice", 50)
	})
	s.ErrorIs(err, model.ErrConflict)

	t, _ := s.storage.GetTournament(s.ctx, "t1")
	s.Equal("Renamed", t.Name)
	s.True(t.IsActive)
	p, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(0, p.Points)
}

func (s *StorageSuite) TestListPlayersConflictsWithNewPlayer() {
	s.createPlayer("Alice", 0)

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		if _, err := tx.ListPlayers(ctx); err != nil {
			return err
		}
		s.createPlayer("Bob", 0)
		return tx.SaveLeaderboard(ctx, &model.Leaderboard{})
	})
	s.ErrorIs(err, model.ErrConflict)

	_, err = s.storage.GetLeaderboard(s.ctx)
	s.ErrorIs(err, model.ErrLeaderboardNotFound)
}

func (s *StorageSuite) TestDisjointWritersDoNotConflict() {
	s.saveTournament(&model.Tournament{ID: "t1"})
	s.saveTournament(&model.Tournament{ID: "t2"})

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		t, err := tx.GetTournament(ctx, "t1")
		if err != nil {
			return err
		}
		s.saveTournament(&model.Tournament{ID: "t2", Name: "Other"})
		t.Name = "Mine"
		return tx.SaveTournament(ctx, t)
	})
	s.Require().NoError(err)

	t1, _ := s.storage.GetTournament(s.ctx, "t1")
	t2, _ := s.storage.GetTournament(s.ctx, "t2")
	s.Equal("Mine", t1.Name)
	s.Equal("Other", t2.Name)
}

func (s *StorageSuite) TestIncrementsToOnePlayerDoNotConflict() {
	s.createPlayer("Alice", 10)

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.IncrementPlayerPoints(ctx, "alice", 5); err != nil {
			return err
		}
		s.increment("alice", 7)
		return tx.IncrementPlayerKnockouts(ctx, "alice", 1)
	})
	s.Require().NoError(err)

	p, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(22, p.Points)
	s.Equal(1, p.Knockouts)
}

func (s *StorageSuite) TestLookupPlayerIgnoresConcurrentIncrement() {
	s.createPlayer("Alice", 10)

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		p, err := tx.LookupPlayer(ctx, "alice")
		if err != nil {
			return err
		}
		s.Equal("Alice", p.Name)
		s.increment("alice", 7)
		return tx.SaveMeeting(ctx, &model.Meeting{ID: "m1", Name: p.Name})
	})
	s.Require().NoError(err)

	_, err = s.storage.GetMeeting(s.ctx, "m1")
	s.NoError(err)
}

func (s *StorageSuite) TestIncrementConflictsWithConcurrentDelete() {
	s.createPlayer("Alice", 0)
	s.createPlayer("Bob", 0)

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.IncrementPlayerPoints(ctx, "bob", 5); err != nil {
			return err
		}
		if err := tx.IncrementPlayerPoints(ctx, "alice", 5); err != nil {
			return err
		}
		return s.storage.RunInTx(s.ctx, func(ctx context.Context, other storage.Tx) error {
			return other.DeletePlayer(ctx, "alice")
		})
	})
	s.ErrorIs(err, model.ErrConflict)

	_, err = s.storage.GetPlayer(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	p, _ := s.storage.GetPlayer(s.ctx, "bob")
	s.Equal(0, p.Points)
}

func (s *StorageSuite) TestLookupPlayerConflictsWithConcurrentDelete() {
	s.createPlayer("Alice", 0)

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		if _, err := tx.LookupPlayer(ctx, "alice"); err != nil {
			return err
		}
		s.Require().NoError(s.storage.RunInTx(s.ctx, func(ctx context.Context, other storage.Tx) error {
			return other.DeletePlayer(ctx, "alice")
		}))
		return tx.SaveMeeting(ctx, &model.Meeting{ID: "m1"})
	})
	s.ErrorIs(err, model.ErrConflict)

	_, err = s.storage.GetMeeting(s.ctx, "m1")
	s.ErrorIs(err, model.ErrMeetingNotFound)
}

func (s *StorageSuite) TestGetPlayerConflictsWithConcurrentIncrement() {
	s.createPlayer("Alice", 10)

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		p, err := tx.GetPlayer(ctx, "alice")
		if err != nil {
			return err
		}
		s.increment("alice", 7)
		return tx.SetPlayerPoints(ctx, "alice", p.Points-10)
	})
	s.ErrorIs(err, model.ErrConflict)

	p, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(17, p.Points)
}

// Tournament tests

func (s *StorageSuite) TestReturnedTournamentIsACopy() {
	s.saveTournament(&model.Tournament{
		ID:      "t1",
		Results: []model.TournamentResult{{Name: "Alice", Rank: 1}},
	})

	t, _ := s.storage.GetTournament(s.ctx, "t1")
	t.Results[0].Points = 500

	again, _ := s.storage.GetTournament(s.ctx, "t1")
	s.Equal(0, again.Results[0].Points)
}

func (s *StorageSuite) TestUpdateTournamentMetaKeepsResults() {
	s.saveTournament(&model.Tournament{
		ID:       "t1",
		Name:     "Main",
		Type:     model.TournamentStandard,
		IsActive: true,
		Results:  []model.TournamentResult{{Name: "Alice", Rank: 1, Points: 125}},
	})
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.UpdateTournamentMeta(ctx, "t1", storage.TournamentMeta{
			Name: "Main Event", Type: model.TournamentPKO, IsActive: true, UpdatedAt: now,
		})
	})
	s.Require().NoError(err)

	t, _ := s.storage.GetTournament(s.ctx, "t1")
	s.Equal("Main Event", t.Name)
	s.Equal(model.TournamentPKO, t.Type)
	s.Equal(now, t.UpdatedAt)
	s.Require().Len(t.Results, 1)
	s.Equal(125, t.Results[0].Points)
}

func (s *StorageSuite) TestUpdateMissingTournamentMeta() {
	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.UpdateTournamentMeta(ctx, "missing", storage.TournamentMeta{})
	})
	s.ErrorIs(err, model.ErrTournamentNotFound)
}

func (s *StorageSuite) TestListTournamentsOldestFirst() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.saveTournament(&model.Tournament{ID: "b", CreatedAt: base.Add(time.Hour)})
	s.saveTournament(&model.Tournament{ID: "a", CreatedAt: base.Add(2 * time.Hour)})
	s.saveTournament(&model.Tournament{ID: "c", CreatedAt: base})

	tournaments, err := s.storage.ListTournaments(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tournaments, 3)
	s.Equal(model.TournamentID("c"), tournaments[0].ID)
	s.Equal(model.TournamentID("b"), tournaments[1].ID)
	s.Equal(model.TournamentID("a"), tournaments[2].ID)
}

func (s *StorageSuite) TestDeleteTournament() {
	s.saveTournament(&model.Tournament{ID: "t1"})

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.DeleteTournament(ctx, "t1")
	})
	s.Require().NoError(err)

	_, err = s.storage.GetTournament(s.ctx, "t1")
	s.ErrorIs(err, model.ErrTournamentNotFound)
}

// Meeting and leaderboard tests

func (s *StorageSuite) TestSaveAndDeleteMeeting() {
	m := &model.Meeting{ID: "m1", Name: "2024-03-01", Date: "2024-03-01",
		Results: []model.MeetingResult{{Name: "Alice", Rank: 1, Points: 20}}}

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.SaveMeeting(ctx, m)
	})
	s.Require().NoError(err)

	got, err := s.storage.GetMeeting(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(m.Results, got.Results)

	err = s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.DeleteMeeting(ctx, "m1")
	})
	s.Require().NoError(err)
	_, err = s.storage.GetMeeting(s.ctx, "m1")
	s.ErrorIs(err, model.ErrMeetingNotFound)
}

func (s *StorageSuite) TestSaveLeaderboardReplacesSnapshot() {
	first := &model.Leaderboard{Rankings: []model.LeaderboardEntry{{Rank: 1, Name: "A", Points: 3}, {Rank: 2, Name: "B", Points: 1}}}
	second := &model.Leaderboard{Rankings: []model.LeaderboardEntry{{Rank: 1, Name: "B", Points: 9}}}

	for _, lb := range []*model.Leaderboard{first, second} {
		err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
			return tx.SaveLeaderboard(ctx, lb)
		})
		s.Require().NoError(err)
	}

	got, err := s.storage.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Equal(second.Rankings, got.Rankings)
}
