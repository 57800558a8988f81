package meeting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/pokerclub/internal/dependencies/clock"
	"github.com/mcoot/pokerclub/internal/dependencies/ids"
	"github.com/mcoot/pokerclub/internal/metrics"
	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/services/scoring"
	"github.com/mcoot/pokerclub/internal/storage"
)

// Entry is one game result recorded at a weekly meeting
type Entry struct {
	PlayerName string
	Rank       int
	Knockouts  int
	HourGame   bool
}

// Service records weekly meeting games and credits their points
// straight to the ledger
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ids.Generator
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New creates a new meeting Service
func New(storage storage.Storage, clock clock.Clock, ids ids.Generator, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
		logger:  logger,
		metrics: recorder,
	}
}

// CreateMeeting creates an empty meeting named after its date
func (s *Service) CreateMeeting(ctx context.Context, date string) (*model.Meeting, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, model.ErrInvalidName
	}

	m := &model.Meeting{
		ID:        model.MeetingID(s.ids.NewID()),
		Name:      date,
		Date:      date,
		Results:   []model.MeetingResult{},
		CreatedAt: s.clock.Now(),
	}
	err := s.storage.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.SaveMeeting(ctx, m)
	})
	if err != nil {
		return nil, s.fail("create_meeting", err)
	}

	s.logger.Info("meeting created",
		slog.String("meeting_id", string(m.ID)),
		slog.String("date", date),
	)
	return m, nil
}

// GetMeeting retrieves a meeting by ID
func (s *Service) GetMeeting(ctx context.Context, id model.MeetingID) (*model.Meeting, error) {
	return s.storage.GetMeeting(ctx, id)
}

// ListMeetings returns every meeting ordered by date
func (s *Service) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	return s.storage.ListMeetings(ctx)
}

// AddResult scores a game result, appends it to the meeting and credits
// the player, in one transaction
func (s *Service) AddResult(ctx context.Context, id model.MeetingID, entry Entry) (*model.Meeting, error) {
	if entry.Rank < 1 {
		return nil, model.ErrInvalidRank
	}
	if entry.Knockouts < 0 {
		return nil, model.ErrInvalidKnockouts
	}

	var updated *model.Meeting
	err := s.storage.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		m, err := tx.GetMeeting(ctx, id)
		if err != nil {
			return err
		}
		p, err := tx.LookupPlayer(ctx, model.NormalizeName(entry.PlayerName))
		if err != nil {
			return err
		}

		result := model.MeetingResult{
			Name:      p.Name,
			Rank:      entry.Rank,
			Knockouts: entry.Knockouts,
			HourGame:  entry.HourGame,
			Points:    scoring.MeetingPoints(entry.Rank, entry.Knockouts, entry.HourGame),
		}
		m.Results = append(m.Results, result)

		if err := tx.SaveMeeting(ctx, m); err != nil {
			return err
		}
		if result.Points != 0 {
			if err := tx.IncrementPlayerPoints(ctx, p.ID, result.Points); err != nil {
				return err
			}
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, s.fail("add_meeting_result", err)
	}
	return updated, nil
}

// DeleteResult removes the player's result at the given rank and takes
// its points back
func (s *Service) DeleteResult(ctx context.Context, id model.MeetingID, playerName string, rank int) (*model.Meeting, error) {
	var updated *model.Meeting
	err := s.storage.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		m, err := tx.GetMeeting(ctx, id)
		if err != nil {
			return err
		}

		pid := model.NormalizeName(playerName)
		idx := -1
		for i, r := range m.Results {
			if model.NormalizeName(r.Name) == pid && r.Rank == rank {
				idx = i
				break
			}
		}
		if idx < 0 {
			return model.ErrResultNotFound
		}
		removed := m.Results[idx]
		m.Results = append(m.Results[:idx], m.Results[idx+1:]...)

		if err := tx.SaveMeeting(ctx, m); err != nil {
			return err
		}
		if removed.Points != 0 {
			if err := tx.IncrementPlayerPoints(ctx, pid, -removed.Points); err != nil {
				return err
			}
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, s.fail("delete_meeting_result", err)
	}
	return updated, nil
}

// DeleteMeeting removes a meeting and takes back every result's points.
// Balances are not clamped, so they can go below zero.
func (s *Service) DeleteMeeting(ctx context.Context, id model.MeetingID) error {
	err := s.storage.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		m, err := tx.GetMeeting(ctx, id)
		if err != nil {
			return err
		}
		for _, r := range m.Results {
			if r.Points == 0 {
				continue
			}
			if err := tx.IncrementPlayerPoints(ctx, model.NormalizeName(r.Name), -r.Points); err != nil {
				return err
			}
		}
		return tx.DeleteMeeting(ctx, id)
	})
	if err != nil {
		return s.fail("delete_meeting", err)
	}

	s.logger.Info("meeting deleted", slog.String("meeting_id", string(id)))
	return nil
}

func (s *Service) fail(op string, err error) error {
	s.metrics.OperationError(op, err)
	if model.IsExpected(err) {
		return err
	}
	s.logger.Error("meeting update failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("%s: %w", strings.ReplaceAll(op, "_", " "), err)
}
