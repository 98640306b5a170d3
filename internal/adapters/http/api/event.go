// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/podium/internal/event"
)

// EventDependencies defines the interface for event configuration reads.
type EventDependencies interface {
	Event() *event.Event
}

// EventHandler handles event configuration requests.
type EventHandler struct {
	deps EventDependencies
}

// NewEventHandler creates a new event handler.
func NewEventHandler(deps EventDependencies) *EventHandler {
	return &EventHandler{deps: deps}
}

// HandleGetEvent handles GET /event requests. Judging clients use this
// to render the score form: judges, teams, categories and criteria.
func (h *EventHandler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Event())
}
