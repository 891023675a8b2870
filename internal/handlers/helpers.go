package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/middleware"
	"pennywise/internal/session"
)

// getUserID extracts the session user's ID set by the login gate.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// currentUser returns the logged-in user on gated and public pages alike.
func currentUser(c *gin.Context) (session.User, bool) {
	if user, ok := c.Get(middleware.UserKey); ok {
		if u, ok := user.(session.User); ok {
			return u, true
		}
	}
	return session.CurrentUser(c)
}

// render writes a full page. Every page receives its title, the current user
// and the flash messages queued for it, which are consumed here.
func render(c *gin.Context, page, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	if user, ok := currentUser(c); ok {
		data["User"] = user
	} else {
		data["User"] = nil
	}
	data["Success"], data["Errors"] = session.Flashes(c)

	c.HTML(http.StatusOK, page, data)
}

// redirectWithFlash queues msg and redirects to location.
func redirectWithFlash(c *gin.Context, kind session.FlashKind, msg, location string) {
	session.AddFlash(c, kind, msg)
	c.Redirect(http.StatusFound, location)
}

// redirectWithError turns err into an error flash and redirects to location.
// AppErrors show their message; the internal cause and any unexpected error
// are logged and replaced by a generic message.
func redirectWithError(c *gin.Context, err error, location string) {
	redirectWithFlash(c, session.FlashError, errorMessage(c, err), location)
}

func errorMessage(c *gin.Context, err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logError(c, err)
		}
		return appErr.Message
	}

	logError(c, err)
	return apperrors.ErrInternalServer.Message
}

// logError records a failure server-side only.
func logError(c *gin.Context, err error) {
	fields := []interface{}{
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fields = append(fields, "code", appErr.Code)
		if appErr.Internal != nil {
			fields = append(fields, "internal", appErr.Internal.Error())
		}
	}
	logger.Get().Errorw("request error", fields...)
}
