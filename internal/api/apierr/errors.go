package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/pokerclub/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodePlayerNotFound        = "PLAYER_NOT_FOUND"
	CodeTournamentNotFound    = "TOURNAMENT_NOT_FOUND"
	CodeMeetingNotFound       = "MEETING_NOT_FOUND"
	CodeResultNotFound        = "RESULT_NOT_FOUND"
	CodeLeaderboardNotFound   = "LEADERBOARD_NOT_FOUND"
	CodePlayerExists          = "PLAYER_EXISTS"
	CodeAlreadyEntered        = "ALREADY_ENTERED"
	CodeTournamentFinished    = "TOURNAMENT_FINISHED"
	CodeTournamentActive      = "TOURNAMENT_ACTIVE"
	CodeReactivation          = "REACTIVATION_NOT_ALLOWED"
	CodePlayerHasPoints       = "PLAYER_HAS_POINTS"
	CodeInvalidRank           = "INVALID_RANK"
	CodeInvalidKnockouts      = "INVALID_KNOCKOUTS"
	CodeInvalidName           = "INVALID_NAME"
	CodeInvalidTournamentType = "INVALID_TOURNAMENT_TYPE"
	CodeConflict              = "CONFLICT"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrTournamentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTournamentNotFound, "Tournament not found"}}
	case errors.Is(err, model.ErrMeetingNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMeetingNotFound, "Meeting not found"}}
	case errors.Is(err, model.ErrResultNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeResultNotFound, "Player result not found"}}
	case errors.Is(err, model.ErrLeaderboardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeLeaderboardNotFound, "Leaderboard has not been published"}}
	case errors.Is(err, model.ErrPlayerExists):
		return &httpError{http.StatusConflict, APIError{CodePlayerExists, "A player with that name already exists"}}
	case errors.Is(err, model.ErrAlreadyEntered):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyEntered, "Player is already in the tournament"}}
	case errors.Is(err, model.ErrTournamentFinished):
		return &httpError{http.StatusConflict, APIError{CodeTournamentFinished, "Tournament is already finished"}}
	case errors.Is(err, model.ErrTournamentActive):
		return &httpError{http.StatusConflict, APIError{CodeTournamentActive, "Tournament is still active"}}
	case errors.Is(err, model.ErrReactivation):
		return &httpError{http.StatusConflict, APIError{CodeReactivation, "A finished tournament cannot be reactivated"}}
	case errors.Is(err, model.ErrPlayerHasPoints):
		return &httpError{http.StatusConflict, APIError{CodePlayerHasPoints, "Cannot delete a player with points"}}
	case errors.Is(err, model.ErrInvalidRank):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRank, "Rank is out of range"}}
	case errors.Is(err, model.ErrInvalidKnockouts):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidKnockouts, "Knockouts must not be negative"}}
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Name must not be blank"}}
	case errors.Is(err, model.ErrInvalidTournamentType):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTournamentType, "Tournament type must be Standard, HeadsUp, PKO or KO"}}
	case errors.Is(err, model.ErrConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "The data changed while saving, please retry"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Something went wrong, please try again"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Admin password required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Something went wrong, please try again"}}
}
