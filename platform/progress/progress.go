// Package progress records the timestamped milestones returned to clients
// alongside every diagnosis and speech response.
package progress

import (
	"fmt"
	"sync"
	"time"
)

// Trace is a request-scoped list of milestones relative to its start time.
type Trace struct {
	mu     sync.Mutex
	start  time.Time
	now    func() time.Time
	events []string
}

// New starts a trace at the current time.
func New() *Trace {
	return NewWithClock(time.Now)
}

// NewWithClock starts a trace using the given clock.
func NewWithClock(now func() time.Time) *Trace {
	return &Trace{start: now(), now: now, events: []string{}}
}

// Mark appends a milestone formatted as "[1.23s] message".
func (t *Trace) Mark(message string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	elapsed := t.now().Sub(t.start).Seconds()
	t.events = append(t.events, fmt.Sprintf("[%.2fs] %s", elapsed, message))
}

// Events returns a copy of the milestones recorded so far. Never nil.
func (t *Trace) Events() []string {
	if t == nil {
		return []string{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.events))
	copy(out, t.events)
	return out
}
