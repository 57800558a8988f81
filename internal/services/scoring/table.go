package scoring

import "github.com/mcoot/pokerclub/internal/model"

// FloorPoints is awarded to any rank beyond the end of a schedule
const FloorPoints = 5

// block is a run of identical point values
type block struct {
	count  int
	points int
}

// tier is one row of a points schedule. Head lists the explicit values for
// the top ranks and Tail the blocks that follow. A non-zero TailFill is
// repeated n-TailFillOffset times after the tail.
type tier struct {
	MinPlayers     int
	MaxPlayers     int // 0 means unbounded
	Head           []int
	Tail           []block
	TailFill       int
	TailFillOffset int
}

const unbounded = 0

var headsUpTiers = []tier{
	{
		MinPlayers: 0,
		MaxPlayers: 64,
		Head:       []int{125, 90, 70, 70, 45, 45, 45, 45},
		Tail:       []block{{8, 25}, {16, 15}, {32, 10}},
	},
	{
		MinPlayers:     65,
		MaxPlayers:     unbounded,
		Head:           []int{150, 115, 90, 90, 70, 70, 70, 70},
		Tail:           []block{{8, 45}, {16, 25}, {32, 15}},
		TailFill:       10,
		TailFillOffset: 64,
	},
}

var otherTiers = []tier{
	{
		MinPlayers: 0,
		MaxPlayers: 49,
		Head:       []int{125, 115, 100, 90, 80, 75, 70, 60, 50, 40, 30, 20, 10, 10, 9, 9, 9, 8, 8, 8},
		Tail:       []block{{4, 7}, {4, 6}, {21, 5}},
	},
	{
		MinPlayers: 50,
		MaxPlayers: 99,
		Head:       []int{150, 125, 115, 100, 90, 80, 75, 70, 60, 50, 40, 30, 20, 10, 10, 9, 9, 9, 8, 8, 8},
		Tail:       []block{{4, 7}, {4, 6}, {70, 5}},
	},
	{
		MinPlayers:     100,
		MaxPlayers:     unbounded,
		Head:           []int{225, 188, 173, 150, 135, 120, 113, 105, 90, 75, 60, 45, 30, 15, 15, 14, 14, 14, 12, 12, 12},
		Tail:           []block{{4, 11}, {4, 9}, {16, 8}, {30, 7}},
		TailFill:       5,
		TailFillOffset: 75,
	},
}

func (t tier) contains(n int) bool {
	return n >= t.MinPlayers && (t.MaxPlayers == unbounded || n <= t.MaxPlayers)
}

// schedule expands the tier into its full list of values for n players
func (t tier) schedule(n int) []int {
	values := make([]int, 0, n)
	values = append(values, t.Head...)
	for _, b := range t.Tail {
		for i := 0; i < b.count; i++ {
			values = append(values, b.points)
		}
	}
	if t.TailFill > 0 {
		for i := 0; i < n-t.TailFillOffset; i++ {
			values = append(values, t.TailFill)
		}
	}
	return values
}

func tiersFor(format model.Format) []tier {
	if format == model.FormatHeadsUp {
		return headsUpTiers
	}
	return otherTiers
}

// PointsTable returns the base points for ranks 1..n. The result always has
// exactly n entries: the tier schedule is cut at n and any rank past its end
// gets FloorPoints.
func PointsTable(format model.Format, n int) []int {
	if n <= 0 {
		return []int{}
	}

	var values []int
	for _, t := range tiersFor(format) {
		if t.contains(n) {
			values = t.schedule(n)
			break
		}
	}

	table := make([]int, n)
	for i := range table {
		table[i] = BasePoints(values, i+1)
	}
	return table
}

// BasePoints looks up the points for a rank, applying the floor for ranks
// outside the table
func BasePoints(table []int, rank int) int {
	if rank < 1 || rank > len(table) {
		return FloorPoints
	}
	return table[rank-1]
}
