// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/internal/event"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Authorizer

	// Login checks the shared passcode and issues a session token.
	Login(ctx context.Context, passcode string) (string, error)

	// Logout revokes a session token.
	Logout(ctx context.Context, token string)

	// Event returns the immutable event configuration.
	Event() *event.Event

	// Submit validates and persists one judge's scores for a key.
	Submit(ctx context.Context, sub model.Submission) (model.ScoreRecord, error)

	// Record returns the stored record for a (team, judge, category) key.
	Record(ctx context.Context, team, judge, category string) (model.ScoreRecord, error)

	// Read operations expose aggregated standings data.
	Summary(ctx context.Context, team, category string) (types.CategorySummary, error)
	Leaderboard(ctx context.Context, category string) ([]types.Standing, error)
	Standings(ctx context.Context) ([]types.Standing, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	loginHandler       *LoginHandler
	eventHandler       *EventHandler
	scoresHandler      *ScoresHandler
	summaryHandler     *SummaryHandler
	leaderboardHandler *LeaderboardHandler
	standingsHandler   *StandingsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		loginHandler:       NewLoginHandler(deps),
		eventHandler:       NewEventHandler(deps),
		scoresHandler:      NewScoresHandler(deps),
		summaryHandler:     NewSummaryHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		standingsHandler:   NewStandingsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. Everything except the login
// and health endpoints sits behind the session gate, mirroring the
// passcode check judges pass before seeing any data.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux, deps Dependencies) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/login", MetricsMiddleware(s.loginHandler.HandleLogin, "login"))
	mux.HandleFunc("/logout", MetricsMiddleware(s.loginHandler.HandleLogout, "logout"))
	mux.HandleFunc("/stats", MetricsMiddleware(SessionMiddleware(s.statsHandler.HandleStats, deps), "stats"))
	mux.HandleFunc("/event", MetricsMiddleware(SessionMiddleware(s.eventHandler.HandleGetEvent, deps), "event"))
	mux.HandleFunc("/scores", MetricsMiddleware(SessionMiddleware(s.scoresHandler.HandleScores, deps), "scores"))
	mux.HandleFunc("/teams/", MetricsMiddleware(SessionMiddleware(s.summaryHandler.HandleGetSummary, deps), "summary"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(SessionMiddleware(s.leaderboardHandler.HandleGetLeaderboard, deps), "leaderboard"))
	mux.HandleFunc("/standings", MetricsMiddleware(SessionMiddleware(s.standingsHandler.HandleGetStandings, deps), "standings"))
}

// scoreRequest mirrors the OpenAPI schema for POST /scores.
type scoreRequest struct {
	Team     string             `json:"team"`
	Judge    string             `json:"judge"`
	Category string             `json:"category"`
	Scores   map[string]float64 `json:"scores"`
	Notes    string             `json:"notes,omitempty"`
}

func (s scoreRequest) validate() error {
	switch {
	case strings.TrimSpace(s.Team) == "":
		return errors.New("missing team")
	case strings.TrimSpace(s.Judge) == "":
		return errors.New("missing judge")
	case strings.TrimSpace(s.Category) == "":
		return errors.New("missing category")
	case len(s.Scores) == 0:
		return errors.New("missing scores")
	}
	return nil
}

type loginRequest struct {
	Passcode string `json:"passcode"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
