// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/scoring"
)

// ScoresDependencies defines the interface for score submission and lookup.
type ScoresDependencies interface {
	Submit(ctx context.Context, sub model.Submission) (model.ScoreRecord, error)
	Record(ctx context.Context, team, judge, category string) (model.ScoreRecord, error)
}

// ScoresHandler handles score submission and lookup requests.
type ScoresHandler struct {
	deps ScoresDependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoresDependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// HandleScores dispatches /scores by method.
func (h *ScoresHandler) HandleScores(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePostScores(w, r)
	case http.MethodGet:
		h.handleGetScores(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handlePostScores handles POST /scores requests. The stored record for
// the (team, judge, category) key is replaced wholesale and persisted
// before the response; a failed save surfaces as a 500 so the judge
// knows to resubmit.
func (h *ScoresHandler) handlePostScores(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_scores"
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rec, err := h.deps.Submit(r.Context(), model.Submission{
		Team:     strings.TrimSpace(req.Team),
		Judge:    strings.TrimSpace(req.Judge),
		Category: strings.TrimSpace(req.Category),
		Scores:   req.Scores,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, scoring.ErrValidation) {
			writeError(w, http.StatusBadRequest, "validation_failed", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "save_failed", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleGetScores handles GET /scores?team=&judge=&category= requests.
func (h *ScoresHandler) handleGetScores(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_scores"
	q := r.URL.Query()
	team := q.Get("team")
	judge := q.Get("judge")
	category := q.Get("category")
	if team == "" || judge == "" || category == "" {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("team, judge and category are required")))
		return
	}

	rec, err := h.deps.Record(r.Context(), team, judge, category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
