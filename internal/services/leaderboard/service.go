package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcoot/pokerclub/internal/dependencies/clock"
	"github.com/mcoot/pokerclub/internal/metrics"
	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/storage"
)

// Service publishes ranked snapshots of the player ledger. Snapshots are
// only taken on request; ledger changes never republish on their own.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New creates a new leaderboard Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
		metrics: recorder,
	}
}

// Build ranks players by points, highest first. Players on equal points
// keep their input order and still get distinct ranks.
func Build(players []*model.Player) []model.LeaderboardEntry {
	sorted := make([]*model.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	entries := make([]model.LeaderboardEntry, len(sorted))
	for i, p := range sorted {
		entries[i] = model.LeaderboardEntry{
			Rank:   i + 1,
			Name:   p.Name,
			Points: p.Points,
		}
	}
	return entries
}

// Publish replaces the stored snapshot with the current standings
func (s *Service) Publish(ctx context.Context) (*model.Leaderboard, error) {
	var lb *model.Leaderboard
	err := s.storage.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		players, err := tx.ListPlayers(ctx)
		if err != nil {
			return err
		}
		lb = &model.Leaderboard{
			LastUpdated: s.clock.Now(),
			Rankings:    Build(players),
		}
		return tx.SaveLeaderboard(ctx, lb)
	})
	s.metrics.OperationError("publish_leaderboard", err)
	if err != nil {
		if model.IsExpected(err) {
			return nil, err
		}
		s.logger.Error("failed to publish leaderboard", slog.String("error", err.Error()))
		return nil, fmt.Errorf("publish leaderboard: %w", err)
	}

	s.metrics.LeaderboardPublished()
	s.logger.Info("leaderboard published",
		slog.Int("players", len(lb.Rankings)),
		slog.Time("last_updated", lb.LastUpdated),
	)
	return lb, nil
}

// Get returns the last published snapshot
func (s *Service) Get(ctx context.Context) (*model.Leaderboard, error) {
	return s.storage.GetLeaderboard(ctx)
}
