// Package stats tracks how long each document has been the active one.
package stats

import (
	"fmt"
	"time"

	"github.com/bethropolis/weave/internal/event"
	"github.com/bethropolis/weave/internal/logger"
)

// Tracker is an event observer accumulating editing time per document.
type Tracker struct {
	totals  map[string]time.Duration
	current string
	since   time.Time
	now     func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func New(opts ...Option) *Tracker {
	t := &Tracker{totals: make(map[string]time.Duration), now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Notify implements event.Observer.
func (t *Tracker) Notify(typ event.Type, fields event.Fields) error {
	path := fields.Filepath()
	switch typ {
	case event.TypeFileActivated:
		t.stop()
		t.current, t.since = path, t.now()
	case event.TypeFileClosed:
		if t.current == path {
			t.current = ""
		}
		delete(t.totals, path)
		logger.DebugTagf("stats", "Stats: reset %s", path)
	case event.TypeWorkspaceExit:
		t.stop()
	}
	return nil
}

func (t *Tracker) stop() {
	if t.current == "" {
		return
	}
	t.totals[t.current] += t.now().Sub(t.since)
	t.current = ""
}

// Duration is the time path has been active, including the running session.
func (t *Tracker) Duration(path string) time.Duration {
	d := t.totals[path]
	if path != "" && path == t.current {
		d += t.now().Sub(t.since)
	}
	return d
}

// Format renders Duration(path) coarsely: "42s", "5m", "1h 5m", "2d 3h".
func (t *Tracker) Format(path string) string {
	return FormatDuration(t.Duration(path))
}

func FormatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm", secs/60)
	case secs < 86400:
		h, m := secs/3600, secs%3600/60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh %dm", h, m)
	default:
		days, h := secs/86400, secs%86400/3600
		if h == 0 {
			return fmt.Sprintf("%dd", days)
		}
		return fmt.Sprintf("%dd %dh", days, h)
	}
}

var _ event.Observer = (*Tracker)(nil)
