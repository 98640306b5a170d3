// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// LoginDependencies defines the interface for the passcode gate.
type LoginDependencies interface {
	Login(ctx context.Context, passcode string) (string, error)
	Logout(ctx context.Context, token string)
}

// LoginHandler handles session login and logout requests.
type LoginHandler struct {
	deps LoginDependencies
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(deps LoginDependencies) *LoginHandler {
	return &LoginHandler{deps: deps}
}

// HandleLogin handles POST /login requests. A correct passcode yields a
// session token; anything else is a 401 with no hint about the passcode.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	token, err := h.deps.Login(r.Context(), req.Passcode)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", errors.New("invalid passcode"))
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// HandleLogout handles POST /logout requests. Revoking an unknown token
// is not an error; logout is idempotent.
func (h *LoginHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if token := bearerToken(r); token != "" {
		h.deps.Logout(r.Context(), token)
	}
	w.WriteHeader(http.StatusNoContent)
}
