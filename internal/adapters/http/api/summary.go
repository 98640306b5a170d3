// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/podium/internal/domain/types"
)

// SummaryDependencies defines the interface for team summary reads.
type SummaryDependencies interface {
	Summary(ctx context.Context, team, category string) (types.CategorySummary, error)
}

// SummaryHandler handles team summary requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /teams/{team}/summary?category= requests.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract the team name between /teams/ and /summary
	path := strings.TrimPrefix(r.URL.Path, "/teams/")
	team, rest, found := strings.Cut(path, "/")
	if !found || team == "" || rest != "summary" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("category is required")))
		return
	}

	summary, err := h.deps.Summary(r.Context(), team, category)
	if err != nil {
		if isUnknownEntity(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// isUnknownEntity reports whether err means the request named a team or
// category that is not part of the configured event.
func isUnknownEntity(err error) bool {
	return err != nil && strings.Contains(err.Error(), "unknown")
}
