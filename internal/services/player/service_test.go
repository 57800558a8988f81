package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pokerclub/internal/dependencies/mocks"
	"github.com/mcoot/pokerclub/internal/metrics"
	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/storage"
	"github.com/mcoot/pokerclub/internal/storage/memory"
	"github.com/mcoot/pokerclub/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger(), metrics.Nop())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestAddPlayer() {
	p, err := s.service.AddPlayer(s.ctx, " Alice Smith ")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("alicesmith"), p.ID)
	s.Equal("Alice Smith", p.Name)
	s.Equal(0, p.Points)
	s.Equal(s.clock.Now(), p.CreatedAt)

	stored, err := s.service.GetPlayer(s.ctx, "alicesmith")
	s.Require().NoError(err)
	s.Equal("Alice Smith", stored.Name)
}

func (s *ServiceSuite) TestAddPlayerDuplicateName() {
	_, err := s.service.AddPlayer(s.ctx, "Alice Smith")
	s.Require().NoError(err)

	_, err = s.service.AddPlayer(s.ctx, "alice  SMITH")
	s.ErrorIs(err, model.ErrPlayerExists)
	s.ErrorIs(err, model.ErrAlreadyExists)
}

func (s *ServiceSuite) TestAddPlayerBlankName() {
	_, err := s.service.AddPlayer(s.ctx, " \t ")
	s.ErrorIs(err, model.ErrInvalidName)
}

func (s *ServiceSuite) TestListPlayersOrderedByID() {
	for _, name := range []string{"Carol", "alice", "Bob"} {
		_, err := s.service.AddPlayer(s.ctx, name)
		s.Require().NoError(err)
	}

	players, err := s.service.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("alice", players[0].Name)
	s.Equal("Bob", players[1].Name)
	s.Equal("Carol", players[2].Name)
}

func (s *ServiceSuite) TestDeletePlayer() {
	_, err := s.service.AddPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeletePlayer(s.ctx, "alice"))
	_, err = s.service.GetPlayer(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestDeletePlayerWithPointsRefused() {
	_, err := s.service.AddPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	for _, points := range []int{25, -4} {
		err = s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
			return tx.SetPlayerPoints(ctx, "alice", points)
		})
		s.Require().NoError(err)

		err = s.service.DeletePlayer(s.ctx, "alice")
		s.ErrorIs(err, model.ErrPlayerHasPoints)
	}

	_, err = s.service.GetPlayer(s.ctx, "alice")
	s.NoError(err)
}

func (s *ServiceSuite) TestDeletePlayerNotFound() {
	err := s.service.DeletePlayer(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
