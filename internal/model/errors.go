package model

import (
	"errors"
	"fmt"
)

// Error categories. Specific errors wrap one of these so callers can match
// on the category with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidState  = errors.New("invalid state")
	ErrConflict      = errors.New("concurrent modification, retry the operation")
)

var (
	// Not found errors
	ErrTournamentNotFound  = fmt.Errorf("tournament %w", ErrNotFound)
	ErrPlayerNotFound      = fmt.Errorf("player %w", ErrNotFound)
	ErrMeetingNotFound     = fmt.Errorf("meeting %w", ErrNotFound)
	ErrResultNotFound      = fmt.Errorf("player result %w", ErrNotFound)
	ErrLeaderboardNotFound = fmt.Errorf("leaderboard %w", ErrNotFound)

	// Already exists errors
	ErrPlayerExists   = fmt.Errorf("player %w", ErrAlreadyExists)
	ErrAlreadyEntered = fmt.Errorf("player is already in the tournament: %w", ErrAlreadyExists)

	// Invalid state errors
	ErrTournamentFinished    = fmt.Errorf("tournament is finished: %w", ErrInvalidState)
	ErrTournamentActive      = fmt.Errorf("tournament is still active: %w", ErrInvalidState)
	ErrReactivation          = fmt.Errorf("finished tournament cannot be reactivated: %w", ErrInvalidState)
	ErrPlayerHasPoints       = fmt.Errorf("cannot delete player with points: %w", ErrInvalidState)
	ErrInvalidRank           = fmt.Errorf("rank out of range: %w", ErrInvalidState)
	ErrInvalidKnockouts      = fmt.Errorf("knockouts must not be negative: %w", ErrInvalidState)
	ErrInvalidName           = fmt.Errorf("name must not be blank: %w", ErrInvalidState)
	ErrInvalidTournamentType = fmt.Errorf("unknown tournament type: %w", ErrInvalidState)
)

// IsExpected reports whether err falls into one of the categories a caller
// is expected to handle (not found, already exists, invalid state or
// conflict). Anything else is an unexpected store or system failure.
func IsExpected(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrConflict)
}
