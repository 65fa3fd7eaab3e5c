// Package logger adapts log/slog to the ports.Logger surface, with a
// styled terminal handler and a JSON mode.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/lumenlang/lumen/internal/core/domain"
	"github.com/lumenlang/lumen/internal/core/ports"
)

// Logger is the slog-backed ports.Logger used by the CLI.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	level    slog.Level
	jsonMode bool
	output   io.Writer
}

// New creates the process logger. Debug records are emitted only when
// LUMEN_DEBUG is set to a non-empty value.
func New() ports.Logger {
	l := &Logger{level: slog.LevelInfo, output: os.Stderr}
	if os.Getenv(domain.DebugEnvVar) != "" {
		l.level = slog.LevelDebug
	}
	l.rebuild()
	return l
}

// rebuild swaps in a handler matching the current output and mode.
// Callers must hold the write lock.
func (l *Logger) rebuild() {
	w := l.output
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: l.level}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(w, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(w, opts))
}

// SetOutput redirects log records to w, keeping the current mode.
// A nil writer falls back to os.Stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.output = w
	if l.output == nil {
		l.output = os.Stderr
	}
	l.rebuild()
}

// SetJSON toggles machine-readable output. The destination chosen by
// SetOutput is preserved across mode switches.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// Debug emits a verbose diagnostic line with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg, args...)
}

// Info emits a status line.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn emits a warning line.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error renders err with its cause chain and metadata. In JSON mode the
// error is attached as a single attribute instead.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(renderChain(collectChain(err)))
}
