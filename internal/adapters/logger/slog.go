package logger

import (
	"log/slog"

	"github.com/lumenlang/lumen/internal/core/ports"
)

// Slog adapts a caller-supplied slog.Logger to ports.Logger. Level
// filtering stays with the caller's handler; records are handed over
// unconditionally.
type Slog struct {
	logger *slog.Logger
}

// FromSlog wraps l. A nil l discards everything.
func FromSlog(l *slog.Logger) ports.Logger {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Slog{logger: l}
}

// Debug forwards a verbose diagnostic record.
func (s *Slog) Debug(msg string, args ...any) {
	s.logger.Debug(msg, args...)
}

// Info forwards a status record.
func (s *Slog) Info(msg string) {
	s.logger.Info(msg)
}

// Warn forwards a warning record.
func (s *Slog) Warn(msg string) {
	s.logger.Warn(msg)
}

// Error forwards err as a structured attribute on a fixed message.
func (s *Slog) Error(err error) {
	if err == nil {
		return
	}
	s.logger.Error("operation failed", "error", err)
}
