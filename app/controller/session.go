package controller

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName  = "luxemarket-session"
	sessionIDKey = "sid"
)

// Sessions hands out a stable id per browser through a signed cookie.
// Cart and user data are stored under that id.
type Sessions struct {
	store *sessions.CookieStore
}

// NewSessions creates a cookie-backed session manager
func NewSessions(key []byte, secure bool) *Sessions {
	store := sessions.NewCookieStore(key)
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	store.Options.MaxAge = 86400 * 30
	return &Sessions{store: store}
}

// ID returns the session id for r, issuing a new cookie on w when there is none.
// A cookie that fails verification is replaced.
func (s *Sessions) ID(w http.ResponseWriter, r *http.Request) string {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		log.Printf("⚠️  Discarding invalid session cookie: %v", err)
	}
	if id, ok := session.Values[sessionIDKey].(string); ok && id != "" {
		return id
	}

	id := uuid.New().String()
	session.Values[sessionIDKey] = id
	if err := session.Save(r, w); err != nil {
		log.Printf("❌ Failed to save session: %v", err)
	}
	return id
}
