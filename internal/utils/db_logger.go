package utils

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// FilteredGormLogger suppresses SQL trace lines matching known-noisy queries.
// The dispatcher polls the reminder table on every worker tick, which would
// otherwise dominate the query log.
type FilteredGormLogger struct {
	logger.Interface
	ignoredQueryPatterns []string
}

// NewFilteredGormLogger wraps a gorm logger, dropping traces whose SQL
// contains any of the given substrings
func NewFilteredGormLogger(l logger.Interface, ignoredPatterns ...string) *FilteredGormLogger {
	return &FilteredGormLogger{
		Interface:            l,
		ignoredQueryPatterns: ignoredPatterns,
	}
}

// LogMode implements logger.Interface
func (l *FilteredGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &FilteredGormLogger{
		Interface:            l.Interface.LogMode(level),
		ignoredQueryPatterns: l.ignoredQueryPatterns,
	}
}

// Trace implements logger.Interface
func (l *FilteredGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	sql, _ := fc()
	for _, pattern := range l.ignoredQueryPatterns {
		if strings.Contains(sql, pattern) {
			return
		}
	}
	l.Interface.Trace(ctx, begin, fc, err)
}
