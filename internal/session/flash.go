package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"pennywise/internal/logger"
)

// FlashKind selects the queue a flash message is stored in.
type FlashKind string

const (
	FlashSuccess FlashKind = "success_msg"
	FlashError   FlashKind = "error_msg"
)

// AddFlash queues msg for the next rendered page.
func AddFlash(c *gin.Context, kind FlashKind, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg, string(kind))
	if err := s.Save(); err != nil {
		logger.Get().Errorw("failed to save flash message",
			"kind", kind,
			"error", err,
			"path", c.Request.URL.Path,
		)
	}
}

// Flashes drains both queues. Each message is returned exactly once.
func Flashes(c *gin.Context) (success, errs []string) {
	s := sessions.Default(c)
	success = toStrings(s.Flashes(string(FlashSuccess)))
	errs = toStrings(s.Flashes(string(FlashError)))
	if len(success) == 0 && len(errs) == 0 {
		return nil, nil
	}

	if err := s.Save(); err != nil {
		logger.Get().Errorw("failed to consume flash messages",
			"error", err,
			"path", c.Request.URL.Path,
		)
	}
	return success, errs
}

func toStrings(values []interface{}) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
