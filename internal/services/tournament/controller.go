package tournament

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/pokerclub/internal/dependencies/clock"
	"github.com/mcoot/pokerclub/internal/dependencies/ids"
	"github.com/mcoot/pokerclub/internal/metrics"
	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/services/scoring"
	"github.com/mcoot/pokerclub/internal/services/settlement"
	"github.com/mcoot/pokerclub/internal/storage"
)

// Settlement sources, used as log and metric labels
const (
	sourceFinish       = "finish"
	sourceAddResult    = "add_result"
	sourceEditResult   = "edit_result"
	sourceDeleteResult = "delete_result"
)

// TournamentUpdate is a metadata change. Nil fields are left as they are.
type TournamentUpdate struct {
	Name     *string
	Type     *model.TournamentType
	IsActive *bool
}

// NewResult is a late result added to a finished tournament
type NewResult struct {
	Name      string
	Rank      int
	Knockouts int
}

// ResultEdit moves an existing result. Nil fields are left as they are.
type ResultEdit struct {
	Rank      *int
	Knockouts *int
}

// Controller manages the tournament lifecycle: entrants are knocked out
// while the tournament is active, points are awarded when it finishes,
// and later corrections are settled as point differences.
type Controller struct {
	storage storage.Storage
	engine  *settlement.Engine
	clock   clock.Clock
	ids     ids.Generator
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewController creates a new tournament Controller
func NewController(
	storage storage.Storage,
	engine *settlement.Engine,
	clock clock.Clock,
	ids ids.Generator,
	logger *slog.Logger,
	recorder *metrics.Recorder,
) *Controller {
	return &Controller{
		storage: storage,
		engine:  engine,
		clock:   clock,
		ids:     ids,
		logger:  logger,
		metrics: recorder,
	}
}

// update runs fn in one store transaction. Unexpected errors are wrapped
// with the operation name; domain errors are returned as they are.
func (c *Controller) update(ctx context.Context, op string, id model.TournamentID, fn func(ctx context.Context, tx storage.Tx) error) error {
	err := c.storage.RunInTx(ctx, fn)
	c.metrics.OperationError(op, err)
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrConflict) {
		c.logger.Warn("tournament update conflicted",
			slog.String("operation", op),
			slog.String("tournament_id", string(id)),
		)
	}
	if model.IsExpected(err) {
		return err
	}
	c.logger.Error("tournament update failed",
		slog.String("operation", op),
		slog.String("tournament_id", string(id)),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("%s %s: %w", strings.ReplaceAll(op, "_", " "), id, err)
}

// CreateTournament creates an active tournament with no results
func (c *Controller) CreateTournament(ctx context.Context, name string, tournamentType model.TournamentType) (*model.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidName
	}
	tournamentType, err := model.ParseTournamentType(string(tournamentType))
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	t := &model.Tournament{
		ID:        model.TournamentID(c.ids.NewID()),
		Name:      name,
		Type:      tournamentType,
		IsActive:  true,
		Results:   []model.TournamentResult{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = c.update(ctx, "create_tournament", t.ID, func(ctx context.Context, tx storage.Tx) error {
		return tx.SaveTournament(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("tournament created",
		slog.String("tournament_id", string(t.ID)),
		slog.String("type", string(t.Type)),
	)
	return t, nil
}

// GetTournament retrieves a tournament by ID
func (c *Controller) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	return c.storage.GetTournament(ctx, id)
}

// ListTournaments returns every tournament, oldest first
func (c *Controller) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	return c.storage.ListTournaments(ctx)
}

// UpdateTournament changes tournament metadata. Results and points are
// never touched, so IsActive may only restate the current value: finishing
// goes through FinishTournament and a finished tournament stays finished.
func (c *Controller) UpdateTournament(ctx context.Context, id model.TournamentID, update TournamentUpdate) (*model.Tournament, error) {
	var updated *model.Tournament
	err := c.update(ctx, "update_tournament", id, func(ctx context.Context, tx storage.Tx) error {
		t, err := tx.GetTournament(ctx, id)
		if err != nil {
			return err
		}

		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if name == "" {
				return model.ErrInvalidName
			}
			t.Name = name
		}
		if update.Type != nil {
			tournamentType, err := model.ParseTournamentType(string(*update.Type))
			if err != nil {
				return err
			}
			t.Type = tournamentType
		}
		if update.IsActive != nil && *update.IsActive != t.IsActive {
			if t.IsActive {
				return model.ErrTournamentActive
			}
			return model.ErrReactivation
		}
		t.UpdatedAt = c.clock.Now()

		updated = t
		return tx.UpdateTournamentMeta(ctx, id, storage.TournamentMeta{
			Name:      t.Name,
			Type:      t.Type,
			IsActive:  t.IsActive,
			UpdatedAt: t.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AddKnockout records a player leaving an active tournament. The player
// takes rank 1 and everyone already out moves down one place, so the last
// player added is the winner. In PKO tournaments the player's knockout
// counter grows by knockouts.
func (c *Controller) AddKnockout(ctx context.Context, id model.TournamentID, playerName string, knockouts int) (*model.Tournament, error) {
	if knockouts < 0 {
		return nil, model.ErrInvalidKnockouts
	}

	var updated *model.Tournament
	err := c.update(ctx, "add_knockout", id, func(ctx context.Context, tx storage.Tx) error {
		t, err := tx.GetTournament(ctx, id)
		if err != nil {
			return err
		}
		if !t.IsActive {
			return model.ErrTournamentFinished
		}

		player, err := tx.LookupPlayer(ctx, model.NormalizeName(playerName))
		if err != nil {
			return err
		}
		if t.FindResult(player.Name) >= 0 {
			return model.ErrAlreadyEntered
		}

		for i := range t.Results {
			t.Results[i].Rank++
		}
		t.Results = append([]model.TournamentResult{{
			Name:      player.Name,
			Rank:      1,
			Knockouts: knockouts,
		}}, t.Results...)
		t.UpdatedAt = c.clock.Now()

		if err := tx.SaveTournament(ctx, t); err != nil {
			return err
		}
		if err := countKnockouts(ctx, tx, t, player.Name, knockouts); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("knockout recorded",
		slog.String("tournament_id", string(id)),
		slog.String("player", playerName),
		slog.Int("knockouts", knockouts),
		slog.Int("entrants", len(updated.Results)),
	)
	return updated, nil
}

// countKnockouts moves a player's knockout counter with the knockouts
// recorded against them in an active PKO tournament
func countKnockouts(ctx context.Context, tx storage.Tx, t *model.Tournament, name string, delta int) error {
	if t.Type != model.TournamentPKO || delta == 0 {
		return nil
	}
	return tx.IncrementPlayerKnockouts(ctx, model.NormalizeName(name), delta)
}

// DeletePlayerFromTournament removes an entrant from an active tournament
// and closes the gap in the ranks. No points move; in PKO tournaments the
// entrant's knockouts come off their counter.
func (c *Controller) DeletePlayerFromTournament(ctx context.Context, id model.TournamentID, playerName string) (*model.Tournament, error) {
	var updated *model.Tournament
	err := c.update(ctx, "delete_entrant", id, func(ctx context.Context, tx storage.Tx) error {
		t, err := tx.GetTournament(ctx, id)
		if err != nil {
			return err
		}
		if !t.IsActive {
			return model.ErrTournamentFinished
		}

		idx := t.FindResult(playerName)
		if idx < 0 {
			return model.ErrResultNotFound
		}
		removed := t.Results[idx]
		t.Results = append(t.Results[:idx], t.Results[idx+1:]...)
		t.Rerank()
		t.UpdatedAt = c.clock.Now()

		if err := tx.SaveTournament(ctx, t); err != nil {
			return err
		}
		updated = t
		return countKnockouts(ctx, tx, t, removed.Name, -removed.Knockouts)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FinishTournament scores an active tournament, marks it finished and
// awards every result's points. A finished tournament cannot be finished
// again, so points are never awarded twice.
func (c *Controller) FinishTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	var updated *model.Tournament
	var awarded []settlement.Adjustment
	err := c.update(ctx, "finish_tournament", id, func(ctx context.Context, tx storage.Tx) error {
		t, err := tx.GetTournament(ctx, id)
		if err != nil {
			return err
		}
		if !t.IsActive {
			return model.ErrTournamentFinished
		}

		t.SortResults()
		t.Rerank()
		t.Results = scoring.ScoreResults(t.Type, t.Results)
		t.IsActive = false
		t.UpdatedAt = c.clock.Now()

		awarded = settlement.Award(t.Results)
		if err := c.engine.Apply(ctx, tx, sourceFinish, awarded); err != nil {
			return err
		}
		updated = t
		return tx.SaveTournament(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	c.engine.Committed(sourceFinish, awarded)

	c.logger.Info("tournament finished",
		slog.String("tournament_id", string(id)),
		slog.Int("entrants", len(updated.Results)),
		slog.Int("points_awarded", updated.TotalPoints()),
	)
	return updated, nil
}

// AddTournamentResult inserts a late result into a finished tournament.
// Results at or below the new rank move down one place, the tournament is
// rescored and only the changes in points are settled.
func (c *Controller) AddTournamentResult(ctx context.Context, id model.TournamentID, result NewResult) (*model.Tournament, error) {
	if result.Knockouts < 0 {
		return nil, model.ErrInvalidKnockouts
	}

	return c.settle(ctx, "add_result", sourceAddResult, id, func(ctx context.Context, tx storage.Tx, t *model.Tournament) error {
		player, err := tx.LookupPlayer(ctx, model.NormalizeName(result.Name))
		if err != nil {
			return err
		}
		if t.FindResult(player.Name) >= 0 {
			return model.ErrAlreadyEntered
		}
		if result.Rank < 1 || result.Rank > len(t.Results)+1 {
			return model.ErrInvalidRank
		}

		insertResult(t, model.TournamentResult{
			Name:      player.Name,
			Rank:      result.Rank,
			Knockouts: result.Knockouts,
		})
		return nil
	})
}

// EditTournamentResult moves a result to a new rank or changes its
// knockouts. Finished tournaments are rescored and settled; active ones
// only reorder their entrants and, in PKO, move the knockout counter.
func (c *Controller) EditTournamentResult(ctx context.Context, id model.TournamentID, playerName string, edit ResultEdit) (*model.Tournament, error) {
	if edit.Knockouts != nil && *edit.Knockouts < 0 {
		return nil, model.ErrInvalidKnockouts
	}

	apply := func(t *model.Tournament) (model.TournamentResult, error) {
		idx := t.FindResult(playerName)
		if idx < 0 {
			return model.TournamentResult{}, model.ErrResultNotFound
		}
		edited := t.Results[idx]
		previous := edited
		if edit.Rank != nil {
			if *edit.Rank < 1 || *edit.Rank > len(t.Results) {
				return model.TournamentResult{}, model.ErrInvalidRank
			}
		}

		removeResult(t, idx)
		if edit.Rank != nil {
			edited.Rank = *edit.Rank
		}
		if edit.Knockouts != nil {
			edited.Knockouts = *edit.Knockouts
		}
		insertResult(t, edited)
		return previous, nil
	}

	var updated *model.Tournament
	var adjustments []settlement.Adjustment
	err := c.update(ctx, "edit_result", id, func(ctx context.Context, tx storage.Tx) error {
		adjustments = nil
		t, err := tx.GetTournament(ctx, id)
		if err != nil {
			return err
		}

		old := t.CloneResults()
		previous, err := apply(t)
		if err != nil {
			return err
		}
		if t.IsActive {
			t.UpdatedAt = c.clock.Now()
			if err := tx.SaveTournament(ctx, t); err != nil {
				return err
			}
			updated = t
			delta := 0
			if edit.Knockouts != nil {
				delta = *edit.Knockouts - previous.Knockouts
			}
			return countKnockouts(ctx, tx, t, previous.Name, delta)
		}

		adjustments, err = c.rescore(ctx, tx, t, old, sourceEditResult)
		if err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.engine.Committed(sourceEditResult, adjustments)
	return updated, nil
}

// DeleteResultFromTournament removes a result from a finished tournament.
// Worse results move up one place, the tournament is rescored and the
// differences, including the removed player's full points, are settled.
func (c *Controller) DeleteResultFromTournament(ctx context.Context, id model.TournamentID, playerName string) (*model.Tournament, error) {
	return c.settle(ctx, "delete_result", sourceDeleteResult, id, func(ctx context.Context, tx storage.Tx, t *model.Tournament) error {
		idx := t.FindResult(playerName)
		if idx < 0 {
			return model.ErrResultNotFound
		}
		removeResult(t, idx)
		return nil
	})
}

// settle applies a result correction to a finished tournament: mutate
// changes the result list, then the tournament is rescored and settled,
// all in one transaction.
func (c *Controller) settle(
	ctx context.Context,
	op, source string,
	id model.TournamentID,
	mutate func(ctx context.Context, tx storage.Tx, t *model.Tournament) error,
) (*model.Tournament, error) {
	var updated *model.Tournament
	var adjustments []settlement.Adjustment
	err := c.update(ctx, op, id, func(ctx context.Context, tx storage.Tx) error {
		t, err := tx.GetTournament(ctx, id)
		if err != nil {
			return err
		}
		if t.IsActive {
			return model.ErrTournamentActive
		}

		old := t.CloneResults()
		if err := mutate(ctx, tx, t); err != nil {
			return err
		}
		adjustments, err = c.rescore(ctx, tx, t, old, source)
		if err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.engine.Committed(source, adjustments)
	return updated, nil
}

// rescore sorts and rescores a finished tournament, applies the difference
// from old to the ledger and saves the tournament
func (c *Controller) rescore(
	ctx context.Context,
	tx storage.Tx,
	t *model.Tournament,
	old []model.TournamentResult,
	source string,
) ([]settlement.Adjustment, error) {
	t.SortResults()
	t.Rerank()
	t.Results = scoring.ScoreResults(t.Type, t.Results)
	t.UpdatedAt = c.clock.Now()

	adjustments := settlement.Diff(old, t.Results)
	if err := c.engine.Apply(ctx, tx, source, adjustments); err != nil {
		return nil, err
	}
	if err := tx.SaveTournament(ctx, t); err != nil {
		return nil, err
	}
	return adjustments, nil
}

// DeleteTournament removes a tournament and takes its points back from
// every player, never leaving a balance below zero. Players no longer in
// the ledger are skipped.
func (c *Controller) DeleteTournament(ctx context.Context, id model.TournamentID) error {
	revoked := 0
	err := c.update(ctx, "delete_tournament", id, func(ctx context.Context, tx storage.Tx) error {
		revoked = 0
		t, err := tx.GetTournament(ctx, id)
		if err != nil {
			return err
		}

		balances := make(map[model.PlayerID]int)
		for _, r := range t.Results {
			if r.Points == 0 {
				continue
			}
			pid := model.NormalizeName(r.Name)
			current, ok := balances[pid]
			if !ok {
				player, err := tx.GetPlayer(ctx, pid)
				if errors.Is(err, model.ErrPlayerNotFound) {
					continue
				}
				if err != nil {
					return err
				}
				current = player.Points
			}
			balances[pid] = max(0, current-r.Points)
			revoked += current - balances[pid]
		}

		for pid, points := range balances {
			if err := tx.SetPlayerPoints(ctx, pid, points); err != nil {
				return err
			}
		}
		return tx.DeleteTournament(ctx, id)
	})
	if err != nil {
		return err
	}

	c.logger.Info("tournament deleted",
		slog.String("tournament_id", string(id)),
		slog.Int("points_revoked", revoked),
	)
	return nil
}

// insertResult places r at its rank, moving results at or below that
// rank down one place
func insertResult(t *model.Tournament, r model.TournamentResult) {
	for i := range t.Results {
		if t.Results[i].Rank >= r.Rank {
			t.Results[i].Rank++
		}
	}
	t.Results = append(t.Results, r)
	t.SortResults()
}

// removeResult drops the result at idx, moving worse results up one place
func removeResult(t *model.Tournament, idx int) {
	removed := t.Results[idx]
	t.Results = append(t.Results[:idx], t.Results[idx+1:]...)
	for i := range t.Results {
		if t.Results[i].Rank > removed.Rank {
			t.Results[i].Rank--
		}
	}
}
