package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/pokerclub/internal/api/request"
	"github.com/mcoot/pokerclub/internal/api/response"
	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/services/tournament"
)

// TournamentHandler handles tournament lifecycle endpoints
type TournamentHandler struct {
	controller *tournament.Controller
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(controller *tournament.Controller) *TournamentHandler {
	return &TournamentHandler{
		controller: controller,
	}
}

func tournamentID(r *http.Request) model.TournamentID {
	return model.TournamentID(mux.Vars(r)["id"])
}

// List handles GET /api/v1/tournaments
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.controller.ListTournaments(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentsFromModel(tournaments))
}

// Create handles POST /api/v1/tournaments
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Type == "" {
		WriteError(w, NewInvalidRequestError("type is required"))
		return
	}

	t, err := h.controller.CreateTournament(r.Context(), req.Name, model.TournamentType(req.Type))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TournamentFromModel(t))
}

// Get handles GET /api/v1/tournaments/{id}
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.controller.GetTournament(r.Context(), tournamentID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// Update handles PATCH /api/v1/tournaments/{id}
func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	update := tournament.TournamentUpdate{
		Name:     req.Name,
		IsActive: req.IsActive,
	}
	if req.Type != nil {
		tt, err := model.ParseTournamentType(*req.Type)
		if err != nil {
			WriteError(w, err)
			return
		}
		update.Type = &tt
	}

	t, err := h.controller.UpdateTournament(r.Context(), tournamentID(r), update)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// Delete handles DELETE /api/v1/tournaments/{id}
func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.DeleteTournament(r.Context(), tournamentID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AddKnockout handles POST /api/v1/tournaments/{id}/knockouts
func (h *TournamentHandler) AddKnockout(w http.ResponseWriter, r *http.Request) {
	var req request.AddKnockoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerName == "" {
		WriteError(w, NewInvalidRequestError("player_name is required"))
		return
	}

	t, err := h.controller.AddKnockout(r.Context(), tournamentID(r), req.PlayerName, req.Knockouts)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// DeleteEntrant handles DELETE /api/v1/tournaments/{id}/entrants/{name}
func (h *TournamentHandler) DeleteEntrant(w http.ResponseWriter, r *http.Request) {
	t, err := h.controller.DeletePlayerFromTournament(r.Context(), tournamentID(r), mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// Finish handles POST /api/v1/tournaments/{id}/finish
func (h *TournamentHandler) Finish(w http.ResponseWriter, r *http.Request) {
	t, err := h.controller.FinishTournament(r.Context(), tournamentID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// AddResult handles POST /api/v1/tournaments/{id}/results
func (h *TournamentHandler) AddResult(w http.ResponseWriter, r *http.Request) {
	var req request.AddResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerName == "" {
		WriteError(w, NewInvalidRequestError("player_name is required"))
		return
	}

	t, err := h.controller.AddTournamentResult(r.Context(), tournamentID(r), tournament.NewResult{
		Name:      req.PlayerName,
		Rank:      req.Rank,
		Knockouts: req.Knockouts,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// EditResult handles PATCH /api/v1/tournaments/{id}/results/{name}
func (h *TournamentHandler) EditResult(w http.ResponseWriter, r *http.Request) {
	var req request.EditResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Rank == nil && req.Knockouts == nil {
		WriteError(w, NewInvalidRequestError("rank or knockouts is required"))
		return
	}

	t, err := h.controller.EditTournamentResult(r.Context(), tournamentID(r), mux.Vars(r)["name"], tournament.ResultEdit{
		Rank:      req.Rank,
		Knockouts: req.Knockouts,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// DeleteResult handles DELETE /api/v1/tournaments/{id}/results/{name}
func (h *TournamentHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	t, err := h.controller.DeleteResultFromTournament(r.Context(), tournamentID(r), mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}
