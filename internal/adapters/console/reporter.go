// Package console provides a line-oriented build progress reporter that
// interleaves cleanly with other terminal output.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/lumenlang/lumen/internal/core/ports"
	"github.com/lumenlang/lumen/internal/ui/output"
	"github.com/lumenlang/lumen/internal/ui/style"
	"github.com/muesli/termenv"
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter with chronological, line-buffered
// output. Every line stands on its own, so the stream stays readable when a
// host dev server writes to the same terminal.
type Reporter struct {
	out    io.Writer
	output *termenv.Output

	// showStart controls the per-module "Compiling..." lines. Plain mode
	// keeps completion lines only.
	showStart bool

	mu         sync.Mutex
	compiles   map[string]compileState // spanID -> state
	firstStart time.Time
	lastEnd    time.Time
	compiled   int
	cached     int
	failed     int
}

type compileState struct {
	name      string
	startTime time.Time
}

// New creates a Reporter writing to out. A nil out falls back to stderr.
// ModeAuto resolves against the current environment.
func New(out io.Writer, mode Mode) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	if mode == ModeAuto {
		mode = DetectMode()
	}

	return &Reporter{
		out:       out,
		output:    output.NewWithProfile(out, output.ColorProfileANSI),
		showStart: mode == ModeProgress,
		compiles:  make(map[string]compileState),
	}
}

// Start is a no-op; the reporter is synchronous.
func (r *Reporter) Start(_ context.Context) error {
	return nil
}

// Stop prints the session summary.
func (r *Reporter) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var symbol string
	var counts string
	if r.failed > 0 {
		symbol = r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		counts = fmt.Sprintf("%d failed, %d compiled, %d fresh", r.failed, r.compiled, r.cached)
	} else {
		symbol = r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		counts = fmt.Sprintf("%d compiled, %d fresh", r.compiled, r.cached)
	}

	if r.lastEnd.IsZero() {
		_, _ = fmt.Fprintf(r.out, "\n%s %s\n", symbol, counts)
		return nil
	}
	_, _ = fmt.Fprintf(r.out, "\n%s %s in %v\n", symbol, counts, r.lastEnd.Sub(r.firstStart))
	return nil
}

// OnPlan prints the number of modules scheduled for this build.
func (r *Reporter) OnPlan(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.out, "Building %d module(s)\n", len(paths))
}

// OnCompileStart records the compile and, in progress mode, announces it.
func (r *Reporter) OnCompileStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.compiles[spanID] = compileState{
		name:      name,
		startTime: startTime,
	}
	if r.firstStart.IsZero() || startTime.Before(r.firstStart) {
		r.firstStart = startTime
	}

	if !r.showStart {
		return
	}
	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.out, "%s Compiling...\n", prefix)
}

// OnCompileDone prints the completion line for the compile.
func (r *Reporter) OnCompileDone(spanID string, endTime time.Time, err error, cached bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.compiles[spanID]
	if !ok {
		return
	}
	delete(r.compiles, spanID)

	if endTime.After(r.lastEnd) {
		r.lastEnd = endTime
	}

	prefix := fmt.Sprintf("[%s]", state.name)
	switch {
	case err != nil:
		r.failed++
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.out, "%s %s Failed after %v: %v\n",
			prefix, symbol, endTime.Sub(state.startTime), err)
	case cached:
		r.cached++
		symbol := r.output.String(style.Circle).Faint().String()
		_, _ = fmt.Fprintf(r.out, "%s %s Fresh\n", prefix, symbol)
	default:
		r.compiled++
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.out, "%s %s Compiled in %v\n",
			prefix, symbol, endTime.Sub(state.startTime))
	}
}
