// Package watcher implements file system watching for the rebuild pipeline.
package watcher

import (
	"sync"
	"time"
	"unique"
)

// DefaultDebounceWindow is how long the debouncer waits for a burst of
// file events to go quiet.
const DefaultDebounceWindow = 50 * time.Millisecond

// Debouncer batches rapid file system events. Editors tend to write a
// file several times in quick succession; one batch per burst keeps the
// pipeline from recompiling the same module twice.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer returns a Debouncer that hands each quiet-window batch
// to callback.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records path as pending and restarts the debounce window. Paths are
// interned, so a burst of events for one file costs a single map entry.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(path)] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.expire)
}

// expire runs when the window closes without further events. The callback is
// invoked on its own goroutine so a slow consumer cannot back up the watch
// loop feeding Add.
func (d *Debouncer) expire() {
	paths := d.drain(false)
	if len(paths) > 0 && d.callback != nil {
		go d.callback(paths)
	}
}

// Flush delivers all pending paths on the calling goroutine, blocking until
// the callback returns. Shutdown paths use it to hand over the last batch
// before the watcher closes.
func (d *Debouncer) Flush() {
	paths := d.drain(true)
	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

// drain empties the pending set and returns its contents. With stopTimer set
// an armed timer is cancelled first; when the timer has already fired, drain
// yields nothing and the in-flight expire delivers the batch instead.
func (d *Debouncer) drain(stopTimer bool) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if stopTimer && d.timer != nil && !d.timer.Stop() {
		return nil
	}
	d.timer = nil

	if len(d.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(d.pending))
	for handle := range d.pending {
		paths = append(paths, handle.Value())
	}
	clear(d.pending)
	return paths
}
