package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName       = "quiz-session"
	keyClientID      = "client_id"
	keySessionID     = "session_id"
	cookieMaxAgeDays = 30
)

// ClientCookies keeps the client ID and the current quiz session ID in a
// signed cookie.
type ClientCookies struct {
	store *sessions.CookieStore
}

func NewClientCookies(secret string, secure bool) *ClientCookies {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cookieMaxAgeDays * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &ClientCookies{store: store}
}

// get ignores decode errors: a tampered or stale cookie yields a fresh session.
func (cc *ClientCookies) get(c *gin.Context) *sessions.Session {
	session, _ := cc.store.Get(c.Request, cookieName)
	return session
}

// ClientID returns the client ID, issuing and saving a new one on first use.
func (cc *ClientCookies) ClientID(c *gin.Context) (string, error) {
	session := cc.get(c)
	if id, ok := session.Values[keyClientID].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	session.Values[keyClientID] = id
	if err := session.Save(c.Request, c.Writer); err != nil {
		return "", err
	}
	return id, nil
}

// CurrentSession returns the quiz session ID stored for this client.
func (cc *ClientCookies) CurrentSession(c *gin.Context) (string, bool) {
	id, ok := cc.get(c).Values[keySessionID].(string)
	return id, ok && id != ""
}

func (cc *ClientCookies) SetCurrentSession(c *gin.Context, sessionID string) error {
	session := cc.get(c)
	if _, ok := session.Values[keyClientID].(string); !ok {
		session.Values[keyClientID] = uuid.NewString()
	}
	session.Values[keySessionID] = sessionID
	return session.Save(c.Request, c.Writer)
}

// ClearCurrentSession forgets the quiz session if it is sessionID.
func (cc *ClientCookies) ClearCurrentSession(c *gin.Context, sessionID string) error {
	session := cc.get(c)
	if current, _ := session.Values[keySessionID].(string); current != sessionID {
		return nil
	}
	delete(session.Values, keySessionID)
	return session.Save(c.Request, c.Writer)
}
