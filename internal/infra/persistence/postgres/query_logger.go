package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inventory/config"
	deliverycontext "inventory/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// queryLogger writes GORM output through the request logger when the query runs
// inside a request, so SQL lines carry request_id and user_id.
type queryLogger struct {
	fallback      *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
	logNotFound   bool
}

// NewQueryLogger builds the GORM logger from the database section of cfg.
// A negative slowQueryThreshold turns slow query reporting off.
func NewQueryLogger(fallback *slog.Logger, cfg *config.Config) logger.Interface {
	l := &queryLogger{
		fallback:      fallback,
		level:         logger.Warn,
		slowThreshold: defaultSlowQueryThreshold,
	}
	if cfg == nil {
		return l
	}

	if cfg.Env.Debug {
		l.level = logger.Info
	}
	switch threshold := cfg.Database.SlowQueryThreshold; {
	case threshold < 0:
		l.slowThreshold = 0
	case threshold > 0:
		l.slowThreshold = threshold
	}
	l.logNotFound = cfg.Database.LogRecordNotFound

	return l
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *queryLogger) message(ctx context.Context, minLevel logger.LogLevel, level slog.Level, format string, args []any) {
	log := l.loggerFor(ctx)
	if l.level < minLevel || log == nil {
		return
	}

	log.LogAttrs(ctx, level, "Database message", slog.String("message", fmt.Sprintf(format, args...)))
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	log := l.loggerFor(ctx)
	if l.level == logger.Silent || log == nil {
		return
	}

	elapsed := time.Since(begin)
	level, msg, extra, ok := l.classify(err, elapsed)
	if !ok {
		return
	}

	sql, rows := sqlAndRowsFn()
	attrs := append([]slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}, extra...)

	log.LogAttrs(ctx, level, msg, attrs...)
}

// classify picks what, if anything, a finished query is reported as.
// A failure beats slowness; plain queries only show in Info mode.
func (l *queryLogger) classify(err error, elapsed time.Duration) (slog.Level, string, []slog.Attr, bool) {
	switch {
	case err != nil && l.level >= logger.Error && (l.logNotFound || !errors.Is(err, gorm.ErrRecordNotFound)):
		return slog.LevelError, "Query failed", []slog.Attr{slog.String("error", err.Error())}, true
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		return slog.LevelWarn, "Slow query", []slog.Attr{slog.Duration("threshold", l.slowThreshold)}, true
	case l.level >= logger.Info:
		return slog.LevelDebug, "Query", nil, true
	default:
		return 0, "", nil, false
	}
}

func (l *queryLogger) loggerFor(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return l.fallback
	}

	return deliverycontext.GetLoggerOrDefault(ctx, l.fallback)
}
