package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/lumenlang/lumen/internal/ui/output"
	"github.com/lumenlang/lumen/internal/ui/style"
	"github.com/muesli/termenv"
)

// PrettyHandler is a slog.Handler that renders each record as a single
// decorated line for humans. JSON mode swaps it out entirely, so it never
// needs to care about machine readability.
type PrettyHandler struct {
	out   *termenv.Output
	mu    *sync.Mutex // shared by derived handlers writing to the same sink
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w. A nil writer falls
// back to stderr.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(slog.LevelInfo)
	if opts != nil && opts.Level != nil {
		levelVar.Set(opts.Level.Level())
	}

	return &PrettyHandler{
		out:   output.New(w),
		mu:    &sync.Mutex{},
		level: levelVar,
	}
}

// Enabled reports whether records at the given level are emitted.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle renders the record as one line: level decoration, message, then the
// accumulated handler attributes followed by the record's own, each as a
// key=value pair.
//
//nolint:gocritic // slog.Handler fixes the by-value Record parameter
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	line.WriteString(levelPrefix(r.Level))
	line.WriteString(r.Message)

	for _, attr := range h.attrs {
		line.WriteString(" ")
		line.WriteString(formatAttr(h.group, attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		line.WriteString(" ")
		line.WriteString(formatAttr(h.group, attr))
		return true
	})

	styled := h.out.String(line.String()).Foreground(levelColor(r.Level))
	if r.Level == slog.LevelDebug {
		styled = styled.Faint()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a handler that prepends the given attributes to every
// record it handles.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		mu:    h.mu,
		level: h.level,
		attrs: append(slices.Clone(h.attrs), attrs...),
		group: h.group,
	}
}

// WithGroup returns a handler qualifying attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &PrettyHandler{
		out:   h.out,
		mu:    h.mu,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}

// levelPrefix returns the icon decoration for a record level.
func levelPrefix(level slog.Level) string {
	switch level {
	case slog.LevelWarn:
		return style.Warning + " "
	case slog.LevelError:
		return style.Cross + " "
	default:
		return ""
	}
}

// levelColor returns the line color for a record level.
func levelColor(level slog.Level) termenv.Color {
	switch level {
	case slog.LevelWarn:
		return termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		return termenv.RGBColor(string(style.Red))
	default:
		return termenv.RGBColor(string(style.Slate))
	}
}

// formatAttr renders one attribute as key=value, qualified by group when set.
func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
