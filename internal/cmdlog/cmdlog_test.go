package cmdlog

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bethropolis/weave/internal/event"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
}

func TestLogPath(t *testing.T) {
	if got, want := LogPath(filepath.Join("dir", "a.txt")), filepath.Join("dir", ".a.txt.log"); got != want {
		t.Fatalf("LogPath = %q, want %q", got, want)
	}
}

func TestAutoEnableAndExcludes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	l := New(WithClock(fixedClock))

	_ = l.Notify(event.TypeCommandExecuted, event.Fields{event.KeyFilepath: path, event.KeyCommand: `append "early"`})
	if _, err := l.Show(path); !errors.Is(err, ErrNoLog) {
		t.Fatalf("disabled file was logged: %v", err)
	}

	if err := l.Notify(event.TypeFileLoaded, event.Fields{
		event.KeyFilepath: path, event.KeyAutoEnable: true, event.KeyExcludes: []string{"delete"},
	}); err != nil {
		t.Fatal(err)
	}
	for _, cmd := range []string{`append "x"`, "delete 1:1 1", "undo"} {
		if err := l.Notify(event.TypeCommandExecuted, event.Fields{event.KeyFilepath: path, event.KeyCommand: cmd}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := l.Show(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "session start at 20240309 14:05:07\n" +
		"20240309 14:05:07 append \"x\"\n" +
		"20240309 14:05:07 undo"
	if got != want {
		t.Fatalf("log =\n%s\nwant\n%s", got, want)
	}
}

func TestEnableDisable(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.xml")
	l := New(WithClock(fixedClock))
	_ = l.Enable(b, nil)
	_ = l.Enable(a, nil)
	if got := l.EnabledPaths(); len(got) != 2 || got[0] != a {
		t.Fatalf("EnabledPaths = %v", got)
	}
	_ = l.Notify(event.TypeFileClosed, event.Fields{event.KeyFilepath: b})
	l.Disable(a)
	if l.IsEnabled(a) || l.IsEnabled(b) {
		t.Fatalf("still enabled: %v", l.EnabledPaths())
	}
}

func TestWriteFailureIsReturned(t *testing.T) {
	l := New()
	missing := filepath.Join(t.TempDir(), "nope", "a.txt")
	if err := l.Enable(missing, nil); err == nil {
		t.Fatalf("Enable into a missing directory succeeded")
	}
}
