package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pokerclub/internal/model"
)

type ScoringSuite struct {
	suite.Suite
}

func TestScoringSuite(t *testing.T) {
	suite.Run(t, new(ScoringSuite))
}

// PointsTable tests

func (s *ScoringSuite) TestPointsTableShape() {
	for _, format := range []model.Format{model.FormatHeadsUp, model.FormatOther} {
		for n := 0; n <= 260; n++ {
			table := PointsTable(format, n)
			s.Require().Len(table, n, "format %s n=%d", format, n)
			for i, v := range table {
				s.GreaterOrEqual(v, FloorPoints, "format %s n=%d rank %d", format, n, i+1)
				if i > 0 {
					s.LessOrEqual(v, table[i-1], "format %s n=%d rank %d not non-increasing", format, n, i+1)
				}
			}
		}
	}
}

func (s *ScoringSuite) TestPointsTableEmpty() {
	s.Empty(PointsTable(model.FormatOther, 0))
	s.Empty(PointsTable(model.FormatHeadsUp, -3))
}

func (s *ScoringSuite) TestHeadsUpSmallSchedule() {
	table := PointsTable(model.FormatHeadsUp, 64)

	s.Equal([]int{125, 90, 70, 70, 45, 45, 45, 45}, table[:8])
	for _, v := range table[8:16] {
		s.Equal(25, v)
	}
	for _, v := range table[16:32] {
		s.Equal(15, v)
	}
	for _, v := range table[32:64] {
		s.Equal(10, v)
	}
}

func (s *ScoringSuite) TestHeadsUpLargeSchedule() {
	table := PointsTable(model.FormatHeadsUp, 70)

	s.Equal([]int{150, 115, 90, 90, 70, 70, 70, 70}, table[:8])
	s.Equal(45, table[8])
	s.Equal(25, table[16])
	s.Equal(15, table[32])
	s.Equal(15, table[63])
	for _, v := range table[64:] {
		s.Equal(10, v)
	}
}

func (s *ScoringSuite) TestOtherSmallTier() {
	table := PointsTable(model.FormatOther, 49)

	s.Equal([]int{125, 115, 100, 90, 80, 75, 70, 60, 50, 40, 30, 20, 10, 10, 9, 9, 9, 8, 8, 8}, table[:20])
	s.Equal([]int{7, 7, 7, 7, 6, 6, 6, 6}, table[20:28])
	s.Equal(5, table[48])
}

func (s *ScoringSuite) TestOtherMiddleTier() {
	table := PointsTable(model.FormatOther, 99)

	s.Equal([]int{150, 125, 115, 100, 90}, table[:5])
	s.Equal(8, table[20])
	s.Equal(7, table[21])
	s.Equal(6, table[28])
	s.Equal(5, table[29])
	s.Equal(5, table[98])
}

func (s *ScoringSuite) TestOtherLargeTier() {
	table := PointsTable(model.FormatOther, 150)

	s.Equal([]int{225, 188, 173, 150, 135, 120, 113, 105, 90, 75}, table[:10])
	s.Equal(11, table[21])
	s.Equal(9, table[25])
	s.Equal(8, table[29])
	s.Equal(7, table[45])
	s.Equal(7, table[74])
	s.Equal(5, table[75])
	s.Equal(5, table[149])
}

func (s *ScoringSuite) TestSmallFieldTruncatesSchedule() {
	s.Equal([]int{125, 115, 100}, PointsTable(model.FormatOther, 3))
	s.Equal([]int{125, 90}, PointsTable(model.FormatHeadsUp, 2))
}

func (s *ScoringSuite) TestBasePointsFloor() {
	table := []int{50, 20}
	s.Equal(50, BasePoints(table, 1))
	s.Equal(FloorPoints, BasePoints(table, 3))
	s.Equal(FloorPoints, BasePoints(table, 0))
}

// ScoreResults tests

func (s *ScoringSuite) TestScoreWinnerWithKnockouts() {
	results := make([]model.TournamentResult, 10)
	for i := range results {
		results[i] = model.TournamentResult{Name: "p", Rank: i + 1}
	}
	results[0].Knockouts = 3

	scored := ScoreResults(model.TournamentHeadsUp, results)

	s.Equal(131, scored[0].Points)
	s.Equal(90, scored[1].Points)
}

func (s *ScoringSuite) TestScorePKOFiftyEntrantsLastPlaceGetsFloor() {
	results := make([]model.TournamentResult, 50)
	for i := range results {
		results[i] = model.TournamentResult{Name: "p", Rank: i + 1}
	}

	scored := ScoreResults(model.TournamentPKO, results)

	s.Equal(150, scored[0].Points)
	s.Equal(FloorPoints, scored[49].Points)
}

func (s *ScoringSuite) TestScoreDoesNotModifyInput() {
	results := []model.TournamentResult{{Name: "a", Rank: 1, Points: 999}}

	scored := ScoreResults(model.TournamentStandard, results)

	s.Equal(999, results[0].Points)
	s.Equal(125, scored[0].Points)
}

func (s *ScoringSuite) TestKnockoutBonusAppliesToEveryType() {
	results := []model.TournamentResult{{Name: "a", Rank: 1, Knockouts: 1}, {Name: "b", Rank: 2}}

	for _, t := range []model.TournamentType{model.TournamentStandard, model.TournamentKO, model.TournamentPKO} {
		scored := ScoreResults(t, results)
		s.Equal(127, scored[0].Points, "type %s", t)
	}
}

// MeetingPoints tests

func (s *ScoringSuite) TestMeetingPoints() {
	s.Equal(20, MeetingPoints(1, 0, false))
	s.Equal(16, MeetingPoints(2, 2, false))
	s.Equal(6, MeetingPoints(3, 0, false))
	s.Equal(3, MeetingPoints(7, 1, false))
	s.Equal(0, MeetingPoints(5, 0, false))
}

func (s *ScoringSuite) TestMeetingHourGameHalvesRoundingDown() {
	s.Equal(10, MeetingPoints(1, 0, true))
	s.Equal(11, MeetingPoints(1, 1, true)) // 23 / 2
	s.Equal(1, MeetingPoints(4, 1, true))
}
