package request

// CreatePlayerRequest is the request body for adding a player
type CreatePlayerRequest struct {
	Name string `json:"name"`
}

// CreateTournamentRequest is the request body for creating a tournament
type CreateTournamentRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// UpdateTournamentRequest is the request body for updating tournament
// metadata. Omitted fields are left unchanged.
type UpdateTournamentRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// AddKnockoutRequest is the request body for recording a knockout
type AddKnockoutRequest struct {
	PlayerName string `json:"player_name"`
	Knockouts  int    `json:"knockouts"`
}

// AddResultRequest is the request body for adding a late tournament result
type AddResultRequest struct {
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	Knockouts  int    `json:"knockouts"`
}

// EditResultRequest is the request body for editing a tournament result
type EditResultRequest struct {
	Rank      *int `json:"rank,omitempty"`
	Knockouts *int `json:"knockouts,omitempty"`
}

// CreateMeetingRequest is the request body for creating a meeting
type CreateMeetingRequest struct {
	Date string `json:"date"`
}

// AddMeetingResultRequest is the request body for recording a meeting game
type AddMeetingResultRequest struct {
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	Knockouts  int    `json:"knockouts"`
	HourGame   bool   `json:"hour_game"`
}
