package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/session"
)

const (
	// UserIDKey holds the session user's ID in the gin context.
	UserIDKey = "userID"
	// UserKey holds the full session.User in the gin context.
	UserKey = "user"
)

// RequireUser lets a request through only when a user is bound to its
// session. Anonymous requests are redirected to the login page with a flash;
// they never receive a 401 or 403.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := session.CurrentUser(c)
		if !ok {
			session.AddFlash(c, session.FlashError, apperrors.ErrUnauthorized.Message)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Next()
	}
}
