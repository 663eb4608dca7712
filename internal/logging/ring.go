package logging

import (
	"strings"
	"sync"
)

// Ring is a bounded, concurrency-safe buffer of rendered log lines. It backs
// the on-screen log pane and doubles as a zapcore write sink.
type Ring struct {
	mu    sync.Mutex
	lines []string
	max   int
}

// NewRing creates a ring holding at most max lines.
func NewRing(max int) *Ring {
	if max < 1 {
		max = 1
	}
	return &Ring{max: max}
}

// Write appends encoded log output, one stored line per text line.
func (r *Ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		r.lines = append(r.lines, line)
	}
	if overflow := len(r.lines) - r.max; overflow > 0 {
		r.lines = append(r.lines[:0], r.lines[overflow:]...)
	}
	return len(p), nil
}

// Sync implements zapcore.WriteSyncer.
func (r *Ring) Sync() error {
	return nil
}

// Lines returns a copy of the buffered lines, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Len reports how many lines are buffered.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines)
}
