package meeting

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
	ids     *mocks.MockIDs
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockIDs()
	s.service = New(s.storage, s.clock, s.ids, testutil.NopLogger(), metrics.Nop())
	s.ctx = context.Background()

	err := s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		for _, name := range []string{"Alice", "Bob"} {
			if err := tx.CreatePlayer(ctx, &model.Player{ID: model.NormalizeName(name), Name: name}); err != nil {
				return err
			}
		}
		return nil
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) points(id model.PlayerID) int {
	p, err := s.storage.GetPlayer(s.ctx, id)
	s.Require().NoError(err)
	return p.Points
}

func (s *ServiceSuite) createMeeting() *model.Meeting {
	m, err := s.service.CreateMeeting(s.ctx, "2024-03-01")
	s.Require().NoError(err)
	return m
}

func (s *ServiceSuite) TestCreateMeeting() {
	s.ids.Queue("m-1")

	m, err := s.service.CreateMeeting(s.ctx, "2024-03-01")
	s.Require().NoError(err)
	s.Equal(model.MeetingID("m-1"), m.ID)
	s.Equal("2024-03-01", m.Name)
	s.Empty(m.Results)

	_, err = s.service.CreateMeeting(s.ctx, "")
	s.ErrorIs(err, model.ErrInvalidName)
}

func (s *ServiceSuite) TestListMeetingsByDate() {
	_, err := s.service.CreateMeeting(s.ctx, "2024-03-08")
	s.Require().NoError(err)
	_, err = s.service.CreateMeeting(s.ctx, "2024-03-01")
	s.Require().NoError(err)

	meetings, err := s.service.ListMeetings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(meetings, 2)
	s.Equal("2024-03-01", meetings[0].Date)
}

func (s *ServiceSuite) TestAddResultCreditsPlayer() {
	m := s.createMeeting()

	m, err := s.service.AddResult(s.ctx, m.ID, Entry{PlayerName: "alice", Rank: 1, Knockouts: 2})
	s.Require().NoError(err)
	s.Require().Len(m.Results, 1)
	s.Equal("Alice", m.Results[0].Name)
	s.Equal(26, m.Results[0].Points)
	s.Equal(26, s.points("alice"))

	m, err = s.service.AddResult(s.ctx, m.ID, Entry{PlayerName: "Bob", Rank: 2, Knockouts: 1, HourGame: true})
	s.Require().NoError(err)
	s.Len(m.Results, 2)
	s.Equal(6, s.points("bob"))
}

func (s *ServiceSuite) TestAddResultValidation() {
	m := s.createMeeting()

	_, err := s.service.AddResult(s.ctx, m.ID, Entry{PlayerName: "Ghost", Rank: 1})
	s.ErrorIs(err, model.ErrPlayerNotFound)
	_, err = s.service.AddResult(s.ctx, "missing", Entry{PlayerName: "Alice", Rank: 1})
	s.ErrorIs(err, model.ErrMeetingNotFound)
	_, err = s.service.AddResult(s.ctx, m.ID, Entry{PlayerName: "Alice", Rank: 0})
	s.ErrorIs(err, model.ErrInvalidRank)
	_, err = s.service.AddResult(s.ctx, m.ID, Entry{PlayerName: "Alice", Rank: 1, Knockouts: -1})
	s.ErrorIs(err, model.ErrInvalidKnockouts)
}

func (s *ServiceSuite) TestDeleteResultByNameAndRank() {
	m := s.createMeeting()
	_, err := s.service.AddResult(s.ctx, m.ID, Entry{PlayerName: "Alice", Rank: 1})
	s.Require().NoError(err)
	_, err = s.service.AddResult(s.ctx, m.ID, Entry{PlayerName: "Alice", Rank: 3})
	s.Require().NoError(err)
	s.Equal(26, s.points("alice"))

	m, err = s.service.DeleteResult(s.ctx, m.ID, "Alice", 3)
	s.Require().NoError(err)
	s.Require().Len(m.Results, 1)
	s.Equal(1, m.Results[0].Rank)
	s.Equal(20, s.points("alice"))

	_, err = s.service.DeleteResult(s.ctx, m.ID, "Alice", 3)
	s.ErrorIs(err, model.ErrResultNotFound)
}

func (s *ServiceSuite) TestDeleteMeetingDoesNotClamp() {
	m := s.createMeeting()
	_, err := s.service.AddResult(s.ctx, m.ID, Entry{PlayerName: "Alice", Rank: 1})
	s.Require().NoError(err)
	err = s.storage.RunInTx(s.ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.SetPlayerPoints(ctx, "alice", 5)
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteMeeting(s.ctx, m.ID))
	s.Equal(-15, s.points("alice"))

	_, err = s.service.GetMeeting(s.ctx, m.ID)
	s.ErrorIs(err, model.ErrMeetingNotFound)
}
