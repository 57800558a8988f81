package scoring

import "github.com/mcoot/pokerclub/internal/model"

// KnockoutBonus is added per knockout, whatever the tournament type
const KnockoutBonus = 2

// ScoreResults annotates every result with base rank points plus the
// knockout bonus. The input is not modified.
func ScoreResults(t model.TournamentType, results []model.TournamentResult) []model.TournamentResult {
	table := PointsTable(t.Format(), len(results))

	scored := make([]model.TournamentResult, len(results))
	for i, r := range results {
		r.Points = BasePoints(table, r.Rank) + r.Knockouts*KnockoutBonus
		scored[i] = r
	}
	return scored
}

// Weekly meeting scoring
const (
	meetingKnockoutPoints = 3
)

var meetingPlacePoints = map[int]int{
	1: 20,
	2: 10,
	3: 6,
}

// MeetingPoints scores a weekly meeting game: 3 per knockout plus a bonus
// for the top three places, halved (rounding down) for hour games
func MeetingPoints(rank, knockouts int, hourGame bool) int {
	points := knockouts*meetingKnockoutPoints + meetingPlacePoints[rank]
	if hourGame {
		points /= 2
	}
	return points
}
