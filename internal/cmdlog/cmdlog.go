// Package cmdlog appends the commands run on a document to a log file kept
// next to it.
package cmdlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bethropolis/weave/internal/event"
	"github.com/bethropolis/weave/internal/logger"
)

// TimeLayout formats log timestamps.
const TimeLayout = "20060102 15:04:05"

// ErrNoLog is returned by Show when a document has no log file.
var ErrNoLog = errors.New("no log for this file")

type logFile struct {
	excludes map[string]bool
	started  bool // session header written
}

// Logger is an event observer that writes one log per enabled document.
type Logger struct {
	files map[string]*logFile
	now   func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

func New(opts ...Option) *Logger {
	l := &Logger{files: make(map[string]*logFile), now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LogPath is the log file of path: ".<name>.log" in the same directory.
func LogPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".log")
}

// Enable starts logging path, skipping the named operations. Enabling an
// already enabled file only replaces its exclusions.
func (l *Logger) Enable(path string, excludes []string) error {
	f, ok := l.files[path]
	if !ok {
		f = &logFile{}
		l.files[path] = f
	}
	f.excludes = make(map[string]bool, len(excludes))
	for _, op := range excludes {
		f.excludes[op] = true
	}
	logger.DebugTagf("cmdlog", "CmdLog: enabled %s (excludes %v)", path, excludes)
	return l.startSession(path, f)
}

// Disable stops logging path. The log file is kept.
func (l *Logger) Disable(path string) {
	delete(l.files, path)
	logger.DebugTagf("cmdlog", "CmdLog: disabled %s", path)
}

func (l *Logger) IsEnabled(path string) bool {
	_, ok := l.files[path]
	return ok
}

// EnabledPaths lists the files being logged, sorted.
func (l *Logger) EnabledPaths() []string {
	out := make([]string, 0, len(l.files))
	for p := range l.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Show returns the content of path's log file.
func (l *Logger) Show(path string) (string, error) {
	data, err := os.ReadFile(LogPath(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrNoLog)
		}
		return "", fmt.Errorf("reading log of %s: %w", path, err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// Notify implements event.Observer.
func (l *Logger) Notify(t event.Type, fields event.Fields) error {
	path := fields.Filepath()
	switch t {
	case event.TypeFileLoaded:
		if fields.AutoEnable() && path != "" {
			return l.Enable(path, fields.Excludes())
		}
	case event.TypeCommandExecuted:
		return l.record(path, fields.Command())
	case event.TypeFileClosed:
		l.Disable(path)
	}
	return nil
}

func (l *Logger) record(path, command string) error {
	f, ok := l.files[path]
	if !ok || command == "" {
		return nil
	}
	if op, _, _ := strings.Cut(command, " "); f.excludes[op] {
		return nil
	}
	if err := l.startSession(path, f); err != nil {
		return err
	}
	return l.write(path, fmt.Sprintf("%s %s\n", l.now().Format(TimeLayout), command))
}

func (l *Logger) startSession(path string, f *logFile) error {
	if f.started {
		return nil
	}
	if err := l.write(path, fmt.Sprintf("session start at %s\n", l.now().Format(TimeLayout))); err != nil {
		return err
	}
	f.started = true
	return nil
}

func (l *Logger) write(path, line string) error {
	fh, err := os.OpenFile(LogPath(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log of %s: %w", path, err)
	}
	defer fh.Close()
	if _, err := fh.WriteString(line); err != nil {
		return fmt.Errorf("writing log of %s: %w", path, err)
	}
	return nil
}

var _ event.Observer = (*Logger)(nil)
