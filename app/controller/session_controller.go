package controller

import (
	"net/http"

	"luxemarket/models"
	"luxemarket/repository"
)

// SessionController signs shoppers in and out of their browser session
type SessionController struct {
	users    repository.UserRepositoryInterface
	sessions *Sessions
}

// NewSessionController creates a new SessionController
func NewSessionController(users repository.UserRepositoryInterface, sessions *Sessions) *SessionController {
	return &SessionController{users: users, sessions: sessions}
}

// Session handles GET /session (current user), POST /session (sign in) and DELETE /session (sign out)
func (c *SessionController) Session(w http.ResponseWriter, r *http.Request) {
	session := c.sessions.ID(w, r)

	switch r.Method {
	case http.MethodGet:
		user, err := c.users.Get(r.Context(), session)
		if err != nil {
			writeError(w, "get session user", err)
			return
		}
		writeJSON(w, http.StatusOK, user)

	case http.MethodPost:
		var req models.User
		if !decodeBody(w, r, &req) {
			return
		}
		user, err := c.users.Set(r.Context(), session, req)
		if err != nil {
			writeError(w, "sign in", err)
			return
		}
		writeJSON(w, http.StatusOK, user)

	case http.MethodDelete:
		if err := c.users.Clear(r.Context(), session); err != nil {
			writeError(w, "sign out", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}
