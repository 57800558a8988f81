package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/pokerclub/internal/api/request"
	"github.com/mcoot/pokerclub/internal/api/response"
	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/services/player"
)

// PlayerHandler handles player ledger endpoints
type PlayerHandler struct {
	playerService *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *player.Service) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	p, err := h.playerService.AddPlayer(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.NormalizeName(mux.Vars(r)["id"])

	p, err := h.playerService.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.NormalizeName(mux.Vars(r)["id"])

	if err := h.playerService.DeletePlayer(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
