package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/pokerclub/internal/dependencies/clock"
	"github.com/mcoot/pokerclub/internal/metrics"
	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/storage"
)

// Service manages the club's player ledger entries
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New creates a new player Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
		metrics: recorder,
	}
}

// AddPlayer registers a player with zero points. The player's ID is the
// normalized name, so names differing only in case or spacing collide.
func (s *Service) AddPlayer(ctx context.Context, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	id := model.NormalizeName(name)
	if id == "" {
		return nil, model.ErrInvalidName
	}

	p := &model.Player{
		ID:        id,
		Name:      name,
		CreatedAt: s.clock.Now(),
	}
	err := s.storage.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		_, err := tx.GetPlayer(ctx, id)
		if err == nil {
			return model.ErrPlayerExists
		}
		if !errors.Is(err, model.ErrPlayerNotFound) {
			return err
		}
		return tx.CreatePlayer(ctx, p)
	})
	if err != nil {
		return nil, s.fail("add_player", err)
	}

	s.logger.Info("player added", slog.String("player_id", string(id)))
	return p, nil
}

// GetPlayer retrieves a player by ID
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// ListPlayers returns every player ordered by ID
func (s *Service) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// DeletePlayer removes a player whose balance is zero
func (s *Service) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	err := s.storage.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		p, err := tx.GetPlayer(ctx, id)
		if err != nil {
			return err
		}
		if p.Points != 0 {
			return model.ErrPlayerHasPoints
		}
		return tx.DeletePlayer(ctx, id)
	})
	if err != nil {
		return s.fail("delete_player", err)
	}

	s.logger.Info("player deleted", slog.String("player_id", string(id)))
	return nil
}

func (s *Service) fail(op string, err error) error {
	s.metrics.OperationError(op, err)
	if model.IsExpected(err) {
		return err
	}
	s.logger.Error("player update failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("%s: %w", strings.ReplaceAll(op, "_", " "), err)
}
