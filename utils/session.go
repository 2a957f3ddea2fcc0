package utils

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	SessionName   = "blog_session"
	sessionUserID = "user_id"
)

// SessionStore keeps the login identity and flash messages in a signed
// cookie that lives for the browser session.
type SessionStore struct {
	store *sessions.CookieStore
}

func NewSessionStore(secret string, secure bool) *SessionStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{store: store}
}

// UserID returns the logged-in user id, if any. A tampered or unreadable
// cookie reads as anonymous.
func (s *SessionStore) UserID(r *http.Request) (uint, bool) {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return 0, false
	}
	id, ok := session.Values[sessionUserID].(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

func (s *SessionStore) Login(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, _ := s.store.Get(r, SessionName)
	session.Values[sessionUserID] = userID
	return session.Save(r, w)
}

func (s *SessionStore) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, SessionName)
	delete(session.Values, sessionUserID)
	return session.Save(r, w)
}

func (s *SessionStore) AddFlash(w http.ResponseWriter, r *http.Request, message string) error {
	session, _ := s.store.Get(r, SessionName)
	session.AddFlash(message)
	return session.Save(r, w)
}

// Flashes pops every pending flash message.
func (s *SessionStore) Flashes(w http.ResponseWriter, r *http.Request) []string {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return nil
	}
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			messages = append(messages, m)
		}
	}
	_ = session.Save(r, w)
	return messages
}
