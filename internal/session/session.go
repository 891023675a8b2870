// Package session binds the logged-in user to a server-side session and
// carries one-shot flash messages between a redirect and the next page.
package session

import (
	"encoding/gob"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pennywise/internal/config"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "pennywise_session"

	userKey = "user"
)

// User is the identity bound to a session after login.
type User struct {
	ID       string
	Username string
}

func init() {
	gob.Register(User{})
}

// Options returns the cookie options for sessions that live for ttl.
func Options(ttl time.Duration, secure bool) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewStore creates a database-backed session store. Session records live in
// the sessions table and expired ones are purged in the background.
func NewStore(cfg *config.Config, db *gorm.DB) sessions.Store {
	store := gormsessions.NewStore(db, true, []byte(cfg.SessionSecret))
	store.Options(Options(cfg.SessionTTL, cfg.IsProduction()))
	return store
}

// Middleware attaches the session named CookieName to every request.
func Middleware(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(CookieName, store)
}

// SetUser binds user to the current session.
func SetUser(c *gin.Context, user User) error {
	s := sessions.Default(c)
	s.Set(userKey, user)
	return s.Save()
}

// CurrentUser returns the user bound to the current session, if any.
func CurrentUser(c *gin.Context) (User, bool) {
	user, ok := sessions.Default(c).Get(userKey).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

// Destroy clears the session and expires its cookie and stored record.
func Destroy(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}
