package logger

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks statements that are logged as warnings.
const slowQueryThreshold = 200 * time.Millisecond

// gormWriter adapts a sugared logger to gorm's logger.Writer.
type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Infof(format, args...)
}

// Gorm returns a gorm logger that writes through zap. Production keeps only
// slow queries and errors; other environments also trace every statement.
func Gorm(env string) gormlogger.Interface {
	level := gormlogger.Info
	if env == "production" {
		level = gormlogger.Warn
	}

	return gormlogger.New(gormWriter{log: Named("gorm")}, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
