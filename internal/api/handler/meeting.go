package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/pokerclub/internal/api/request"
	"github.com/mcoot/pokerclub/internal/api/response"
	"github.com/mcoot/pokerclub/internal/model"
	"github.com/mcoot/pokerclub/internal/services/meeting"
)

// MeetingHandler handles weekly meeting endpoints
type MeetingHandler struct {
	meetingService *meeting.Service
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService *meeting.Service) *MeetingHandler {
	return &MeetingHandler{
		meetingService: meetingService,
	}
}

func meetingID(r *http.Request) model.MeetingID {
	return model.MeetingID(mux.Vars(r)["id"])
}

// List handles GET /api/v1/meetings
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.meetingService.ListMeetings(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MeetingsFromModel(meetings))
}

// Create handles POST /api/v1/meetings
func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Date == "" {
		WriteError(w, NewInvalidRequestError("date is required"))
		return
	}

	m, err := h.meetingService.CreateMeeting(r.Context(), req.Date)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MeetingFromModel(m))
}

// Get handles GET /api/v1/meetings/{id}
func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.meetingService.GetMeeting(r.Context(), meetingID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MeetingFromModel(m))
}

// Delete handles DELETE /api/v1/meetings/{id}
func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.meetingService.DeleteMeeting(r.Context(), meetingID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AddResult handles POST /api/v1/meetings/{id}/results
func (h *MeetingHandler) AddResult(w http.ResponseWriter, r *http.Request) {
	var req request.AddMeetingResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerName == "" {
		WriteError(w, NewInvalidRequestError("player_name is required"))
		return
	}

	m, err := h.meetingService.AddResult(r.Context(), meetingID(r), meeting.Entry{
		PlayerName: req.PlayerName,
		Rank:       req.Rank,
		Knockouts:  req.Knockouts,
		HourGame:   req.HourGame,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MeetingFromModel(m))
}

// DeleteResult handles DELETE /api/v1/meetings/{id}/results/{name}?rank=N
func (h *MeetingHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	rank, err := strconv.Atoi(r.URL.Query().Get("rank"))
	if err != nil {
		WriteError(w, NewInvalidRequestError("rank query parameter must be a number"))
		return
	}

	m, err := h.meetingService.DeleteResult(r.Context(), meetingID(r), mux.Vars(r)["name"], rank)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MeetingFromModel(m))
}
