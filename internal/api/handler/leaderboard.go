package handler

import (
	"net/http"

	"github.com/mcoot/pokerclub/internal/api/response"
	"github.com/mcoot/pokerclub/internal/services/leaderboard"
)

// LeaderboardHandler serves the published leaderboard snapshot
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	lb, err := h.leaderboardService.Get(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(lb))
}

// Publish handles POST /api/v1/leaderboard/publish
func (h *LeaderboardHandler) Publish(w http.ResponseWriter, r *http.Request) {
	lb, err := h.leaderboardService.Publish(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(lb))
}
