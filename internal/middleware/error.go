package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
)

// ErrorPage is the template rendered for every boundary failure.
const ErrorPage = "error.html"

// ErrorHandler returns a Gin middleware that renders the generic failure page
// for errors attached to the Gin context. The internal cause is logged and
// never shown; AppErrors only contribute their status and message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		appErr := apperrors.ErrInternalServer
		var target *apperrors.AppError
		if errors.As(err, &target) {
			appErr = target
		}

		logger.Get().Errorw("request failed",
			"code", appErr.Code,
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)

		if c.Writer.Written() {
			return
		}
		renderError(c, appErr.StatusCode, appErr.Message)
	}
}

// NotFound renders the not-found page for unmatched routes and methods.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		renderError(c, http.StatusNotFound, apperrors.ErrNotFound.Message)
	}
}

// Recovery turns panics into the generic failure page.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().Errorw("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		renderError(c, http.StatusInternalServerError, apperrors.ErrInternalServer.Message)
		c.Abort()
	})
}

func renderError(c *gin.Context, status int, message string) {
	data := gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	}
	if user, ok := c.Get(UserKey); ok {
		data["User"] = user
	}
	c.HTML(status, ErrorPage, data)
}
