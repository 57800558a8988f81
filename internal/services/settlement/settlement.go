package settlement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/pokerclub/internal/metrics"
	"github.com/mcoot/pokerclub/internal/model"
)

// Adjustment is a signed change to one player's ledger points
type Adjustment struct {
	PlayerID model.PlayerID
	Name     string
	Delta    int
}

// Ledger is the part of a store transaction the engine writes through.
// Increments never read the player's balance, so settlements touching the
// same player only conflict with a concurrent delete of that player.
type Ledger interface {
	IncrementPlayerPoints(ctx context.Context, id model.PlayerID, delta int) error
}

// Diff returns the per-player point changes that turn old into new.
// Players are matched by normalized name and a player absent from one side
// counts as zero there. Zero deltas are omitted. Players in new come first
// in new's order, followed by players only in old in old's order.
func Diff(old, new []model.TournamentResult) []Adjustment {
	oldPoints := totals(old)
	newPoints := totals(new)

	var adjustments []Adjustment
	seen := make(map[model.PlayerID]bool, len(new))
	add := func(r model.TournamentResult) {
		id := model.NormalizeName(r.Name)
		if seen[id] {
			return
		}
		seen[id] = true
		if delta := newPoints[id] - oldPoints[id]; delta != 0 {
			adjustments = append(adjustments, Adjustment{PlayerID: id, Name: r.Name, Delta: delta})
		}
	}
	for _, r := range new {
		add(r)
	}
	for _, r := range old {
		add(r)
	}
	return adjustments
}

func totals(results []model.TournamentResult) map[model.PlayerID]int {
	points := make(map[model.PlayerID]int, len(results))
	for _, r := range results {
		points[model.NormalizeName(r.Name)] += r.Points
	}
	return points
}

// Award credits every result's full points
func Award(results []model.TournamentResult) []Adjustment {
	return Diff(nil, results)
}

// Revoke debits every result's full points
func Revoke(results []model.TournamentResult) []Adjustment {
	return Diff(results, nil)
}

// Sum totals the deltas of a set of adjustments
func Sum(adjustments []Adjustment) int {
	total := 0
	for _, a := range adjustments {
		total += a.Delta
	}
	return total
}

// Engine applies adjustments to a ledger
type Engine struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewEngine creates a settlement engine
func NewEngine(logger *slog.Logger, recorder *metrics.Recorder) *Engine {
	return &Engine{
		logger:  logger,
		metrics: recorder,
	}
}

// Apply writes adjustments through the ledger. Every adjusted player must
// exist: the first missing one stops Apply with ErrPlayerNotFound and the
// caller's transaction is rolled back whole, including increments already
// issued.
func (e *Engine) Apply(ctx context.Context, ledger Ledger, source string, adjustments []Adjustment) error {
	for _, a := range adjustments {
		if err := ledger.IncrementPlayerPoints(ctx, a.PlayerID, a.Delta); err != nil {
			return fmt.Errorf("settle %s for %q: %w", source, a.Name, err)
		}
	}
	return nil
}

// Committed logs and counts adjustments once the transaction that applied
// them has committed. source labels the settlement.
func (e *Engine) Committed(source string, adjustments []Adjustment) {
	if len(adjustments) == 0 {
		return
	}
	for _, a := range adjustments {
		e.metrics.Settlement(source, a.Delta)
	}
	e.logger.Info("settlement applied",
		slog.String("source", source),
		slog.Int("adjustments", len(adjustments)),
		slog.Int("net_points", Sum(adjustments)),
	)
}
