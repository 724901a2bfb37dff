package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/you/pomodorosvc/domain"
)

// New builds the service logger. Debug level switches to a console writer.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if lvl <= zerolog.DebugLevel {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "pomodorosvc").Logger()
}

// AuditLoggerImpl implements domain.AuditLogger on top of zerolog
type AuditLoggerImpl struct {
	log zerolog.Logger
}

// NewAuditLogger creates an audit logger writing to log
func NewAuditLogger(log zerolog.Logger) domain.AuditLogger {
	return &AuditLoggerImpl{log: log.With().Str("component", "audit").Logger()}
}

// LogEvent implements domain.AuditLogger
func (a *AuditLoggerImpl) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	e := a.log.Info()
	if !event.Success {
		e = a.log.Warn().Str("error", event.ErrorMsg)
	}

	e = e.Str("event", string(event.EventType)).
		Time("at", event.Timestamp).
		Bool("success", event.Success)
	if event.UserID != "" {
		e = e.Str("user_id", event.UserID)
	}
	if event.Email != "" {
		e = e.Str("email", event.Email)
	}
	if len(event.Metadata) > 0 {
		e = e.Fields(event.Metadata)
	}
	e.Msg("audit")
}
