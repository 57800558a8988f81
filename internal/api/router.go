package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcoot/pokerclub/internal/api/handler"
	"github.com/mcoot/pokerclub/internal/api/middleware"
	"github.com/mcoot/pokerclub/internal/metrics"
	"github.com/mcoot/pokerclub/internal/services/leaderboard"
	"github.com/mcoot/pokerclub/internal/services/meeting"
	"github.com/mcoot/pokerclub/internal/services/player"
	"github.com/mcoot/pokerclub/internal/services/tournament"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger               *slog.Logger
	Metrics              *metrics.Recorder
	TournamentController *tournament.Controller
	PlayerService        *player.Service
	MeetingService       *meeting.Service
	LeaderboardService   *leaderboard.Service
	// AdminPasswordHash is the bcrypt hash mutating routes are checked
	// against. Empty disables the check.
	AdminPasswordHash string
	// Gatherer backs GET /metrics. If nil the route is not registered.
	Gatherer prometheus.Gatherer
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	tournamentHandler := handler.NewTournamentHandler(cfg.TournamentController)
	meetingHandler := handler.NewMeetingHandler(cfg.MeetingService)

	// Create middleware
	admin := middleware.RequireAdmin(cfg.AdminPasswordHash, cfg.Logger)
	adminFunc := func(h http.HandlerFunc) http.Handler {
		return admin(h)
	}

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	if cfg.Metrics != nil {
		api.Use(middleware.Metrics(cfg.Metrics))
	}

	// Leaderboard routes
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)
	api.Handle("/leaderboard/publish", adminFunc(leaderboardHandler.Publish)).Methods(http.MethodPost)

	// Player routes
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.Handle("/players", adminFunc(playerHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.Handle("/players/{id}", adminFunc(playerHandler.Delete)).Methods(http.MethodDelete)

	// Tournament routes
	api.HandleFunc("/tournaments", tournamentHandler.List).Methods(http.MethodGet)
	api.Handle("/tournaments", adminFunc(tournamentHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/tournaments/{id}", tournamentHandler.Get).Methods(http.MethodGet)
	api.Handle("/tournaments/{id}", adminFunc(tournamentHandler.Update)).Methods(http.MethodPatch)
	api.Handle("/tournaments/{id}", adminFunc(tournamentHandler.Delete)).Methods(http.MethodDelete)
	api.Handle("/tournaments/{id}/knockouts", adminFunc(tournamentHandler.AddKnockout)).Methods(http.MethodPost)
	api.Handle("/tournaments/{id}/entrants/{name}", adminFunc(tournamentHandler.DeleteEntrant)).Methods(http.MethodDelete)
	api.Handle("/tournaments/{id}/finish", adminFunc(tournamentHandler.Finish)).Methods(http.MethodPost)
	api.Handle("/tournaments/{id}/results", adminFunc(tournamentHandler.AddResult)).Methods(http.MethodPost)
	api.Handle("/tournaments/{id}/results/{name}", adminFunc(tournamentHandler.EditResult)).Methods(http.MethodPatch)
	api.Handle("/tournaments/{id}/results/{name}", adminFunc(tournamentHandler.DeleteResult)).Methods(http.MethodDelete)

	// Meeting routes
	api.HandleFunc("/meetings", meetingHandler.List).Methods(http.MethodGet)
	api.Handle("/meetings", adminFunc(meetingHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/meetings/{id}", meetingHandler.Get).Methods(http.MethodGet)
	api.Handle("/meetings/{id}", adminFunc(meetingHandler.Delete)).Methods(http.MethodDelete)
	api.Handle("/meetings/{id}/results", adminFunc(meetingHandler.AddResult)).Methods(http.MethodPost)
	api.Handle("/meetings/{id}/results/{name}", adminFunc(meetingHandler.DeleteResult)).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
