package redis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mcoot/pokerclub/internal/model"
)

// Hash fields

const (
	fieldName      = "name"
	fieldType      = "type"
	fieldIsActive  = "is_active"
	fieldResults   = "results"
	fieldPoints    = "points"
	fieldKnockouts = "knockouts"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// Tournaments are hashes so metadata updates merge fields without rewriting
// the result list.

func tournamentFields(t *model.Tournament) (map[string]any, error) {
	results, err := json.Marshal(t.Results)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		fieldName:      t.Name,
		fieldType:      string(t.Type),
		fieldIsActive:  strconv.FormatBool(t.IsActive),
		fieldResults:   string(results),
		fieldCreatedAt: formatTime(t.CreatedAt),
		fieldUpdatedAt: formatTime(t.UpdatedAt),
	}, nil
}

func decodeTournament(id model.TournamentID, h map[string]string) (*model.Tournament, error) {
	t := &model.Tournament{
		ID:   id,
		Name: h[fieldName],
		Type: model.TournamentType(h[fieldType]),
	}
	var err error
	if t.IsActive, err = strconv.ParseBool(h[fieldIsActive]); err != nil {
		return nil, fmt.Errorf("tournament %s: %s: %w", id, fieldIsActive, err)
	}
	if raw := h[fieldResults]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &t.Results); err != nil {
			return nil, fmt.Errorf("tournament %s: %s: %w", id, fieldResults, err)
		}
	}
	if t.CreatedAt, err = parseTime(h[fieldCreatedAt]); err != nil {
		return nil, fmt.Errorf("tournament %s: %s: %w", id, fieldCreatedAt, err)
	}
	if t.UpdatedAt, err = parseTime(h[fieldUpdatedAt]); err != nil {
		return nil, fmt.Errorf("tournament %s: %s: %w", id, fieldUpdatedAt, err)
	}
	return t, nil
}

// Players are hashes so points and knockouts can use HINCRBY

func playerFields(p *model.Player) map[string]any {
	return map[string]any{
		fieldName:      p.Name,
		fieldPoints:    p.Points,
		fieldKnockouts: p.Knockouts,
		fieldCreatedAt: formatTime(p.CreatedAt),
	}
}

func decodePlayer(id model.PlayerID, h map[string]string) (*model.Player, error) {
	p := &model.Player{ID: id, Name: h[fieldName]}
	var err error
	if p.Points, err = strconv.Atoi(h[fieldPoints]); err != nil {
		return nil, fmt.Errorf("player %s: %s: %w", id, fieldPoints, err)
	}
	if p.Knockouts, err = strconv.Atoi(h[fieldKnockouts]); err != nil {
		return nil, fmt.Errorf("player %s: %s: %w", id, fieldKnockouts, err)
	}
	if p.CreatedAt, err = parseTime(h[fieldCreatedAt]); err != nil {
		return nil, fmt.Errorf("player %s: %s: %w", id, fieldCreatedAt, err)
	}
	return p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
