package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/weave/internal/config"
	"github.com/bethropolis/weave/internal/session"
	"github.com/bethropolis/weave/internal/types"
	"github.com/gdamore/tcell/v2"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
}

func testConfig(dir string) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Workspace.SessionFile = filepath.Join(dir, session.DefaultFile)
	return cfg
}

// newTestApp builds an app reading script and writing to the returned buffer.
func newTestApp(t *testing.T, cfg *config.Config, script string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	a, err := NewApp(cfg, WithIO(strings.NewReader(script), out), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return a, out
}

func mustContain(t *testing.T, out string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(out, p) {
			t.Errorf("output does not contain %q:\n%s", p, out)
		}
	}
}

func TestTextSessionScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	script := strings.Join([]string{
		fmt.Sprintf("init %q", path),
		`append "hello world"`,
		`insert 1:6 ","`,
		"show",
		"undo",
		"show 1:1",
		"editor-list",
		"exit",
		"n",
	}, "\n")
	a, out := newTestApp(t, testConfig(dir), script)
	if err := a.Run(nil); err != nil {
		t.Fatal(err)
	}

	mustContain(t, out.String(),
		"Created "+path+" (text)",
		"OK",
		"1: hello, world",
		`Undo: insert 1:6 ","`,
		"1: hello world",
		"> "+path+"* (0s)",
		"These files have unsaved changes:",
		"Save "+path+"? (y/n): ",
		"Workspace state saved. Goodbye!",
	)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file saved although the answer was n: %v", err)
	}

	m, err := session.Load(filepath.Join(dir, session.DefaultFile))
	if err != nil || m == nil {
		t.Fatalf("session = %v, %v", m, err)
	}
	if len(m.OpenFiles) != 1 || m.OpenFiles[0] != path || m.Active() != path {
		t.Errorf("memento = %+v", m)
	}
	if len(m.ModifiedFiles) != 1 {
		t.Errorf("modified files = %v", m.ModifiedFiles)
	}
}

func TestTreeCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xml")
	a, out := newTestApp(t, testConfig(dir), "")

	for _, line := range []string{
		fmt.Sprintf("init %q", path),
		"append-root html doc",
		"append-child body b1 doc",
		`append-child p p1 b1 "Hello there" class=intro`,
		"set-attr p1 lang en",
		"insert-before h1 t1 p1 Title",
		`edit-text t1 "New title"`,
		"edit-id t1 heading",
		"remove-attr p1 class",
		"save",
	} {
		if _, err := a.Execute(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}

	tree, err := a.Execute("xml-tree")
	if err != nil {
		t.Fatal(err)
	}
	mustContain(t, tree, "html", "body", "heading", "p1")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	mustContain(t, string(data), `<h1 id="heading">New title</h1>`, `lang="en"`, "Hello there")
	if strings.Contains(string(data), "intro") {
		t.Errorf("removed attribute still saved:\n%s", data)
	}

	// delete on a tree document removes a subtree
	if _, err := a.Execute("delete b1"); err != nil {
		t.Fatal(err)
	}
	if shown, _ := a.Execute("show"); strings.Contains(shown, "body") {
		t.Errorf("subtree still shown:\n%s", shown)
	}
	if _, err := a.Execute("undo"); err != nil {
		t.Fatal(err)
	}

	// yank an element, then errors for text-only commands
	yanked, err := a.Execute("yank heading")
	if err != nil || yanked != "Yanked 1 line" {
		t.Errorf("yank = %q, %v", yanked, err)
	}
	if _, err := a.Execute(`append "x"`); !errors.Is(err, types.ErrStructural) {
		t.Errorf("append on tree = %v", err)
	}
	if _, err := a.Execute("append-child p p1 b1"); !errors.Is(err, types.ErrStructural) {
		t.Errorf("duplicate id = %v", err)
	}
	_ = out
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	a, out := newTestApp(t, testConfig(dir), "")

	if _, err := a.Execute("frobnicate"); err == nil {
		t.Error("unknown command succeeded")
	}
	mustContain(t, out.String(), "Error: unknown command: frobnicate", "Type 'help'")

	if _, err := a.Execute("show"); !errors.Is(err, types.ErrState) {
		t.Errorf("show without document = %v", err)
	}

	out.Reset()
	if _, err := a.Execute("load"); !errors.Is(err, errUsage) {
		t.Errorf("load without path = %v", err)
	}
	mustContain(t, out.String(), "Usage: load <file>")

	path := filepath.Join(dir, "a.txt")
	if _, err := a.Execute(fmt.Sprintf("init %q", path)); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Execute(`insert 1-1 "x"`); err == nil || !strings.Contains(err.Error(), "line:col") {
		t.Errorf("bad position = %v", err)
	}
	if _, err := a.Execute("delete 1:3 10"); !errors.Is(err, types.ErrEmptyDocument) && !errors.Is(err, types.ErrPosition) {
		t.Errorf("delete on empty document = %v", err)
	}
	if _, err := a.Execute(`append "abc"`); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Execute("delete 1:3 10"); !errors.Is(err, types.ErrLength) {
		t.Errorf("delete past end = %v", err)
	}
	if _, err := a.Execute("init " + path + " json"); !errors.Is(err, errUsage) {
		t.Errorf("init with unknown kind = %v", err)
	}
}

func TestCloseAsksToSave(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	a, out := newTestApp(t, testConfig(dir), "y\n")

	for _, line := range []string{
		fmt.Sprintf("init %q", first),
		fmt.Sprintf("init %q", second),
		`append "keep me"`,
	} {
		if _, err := a.Execute(line); err != nil {
			t.Fatal(err)
		}
	}
	res, err := a.Execute("close")
	if err != nil {
		t.Fatal(err)
	}
	if res != "Closed "+second+"\nActive: "+first {
		t.Errorf("close = %q", res)
	}
	mustContain(t, out.String(), second+" has unsaved changes. Save? (y/n): ", "Saved: "+second)
	if data, err := os.ReadFile(second); err != nil || string(data) != "keep me" {
		t.Errorf("saved file = %q, %v", data, err)
	}

	// no input left: the answer is no and the file closes unsaved
	if _, err := a.Execute(`append "lost"`); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Execute("close"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Errorf("first.txt written: %v", err)
	}
	if list, _ := a.Execute("editor-list"); list != "No open files" {
		t.Errorf("editor-list = %q", list)
	}
}

func TestYankPasteAndLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	if err := os.WriteFile(path, []byte("# log -e show\nalpha\nbeta"), 0644); err != nil {
		t.Fatal(err)
	}
	a, _ := newTestApp(t, testConfig(dir), "")

	loaded, err := a.Execute(fmt.Sprintf("load %q", path))
	if err != nil {
		t.Fatal(err)
	}
	mustContain(t, loaded, "Loaded "+path+" (text)", "Logging enabled: "+path)

	if out, _ := a.Execute("yank 2:3"); out != "Yanked 2 lines" {
		t.Errorf("yank = %q", out)
	}
	if _, err := a.Execute("paste 3:5"); err != nil {
		t.Fatal(err)
	}
	shown, _ := a.Execute("show 3:4")
	if shown != "3: betaalpha\n4: beta" {
		t.Errorf("after paste:\n%s", shown)
	}

	log, err := a.Execute("log-show")
	if err != nil {
		t.Fatal(err)
	}
	mustContain(t, log, "session start at 20240501 09:30:00", "insert 3:5")

	if out, _ := a.Execute("log-off"); out != "Logging disabled: "+path {
		t.Errorf("log-off = %q", out)
	}
	if out, _ := a.Execute("log-on"); out != "Logging enabled: "+path {
		t.Errorf("log-on = %q", out)
	}
	if out, _ := a.Execute("log-on"); out != "Logging already enabled: "+path {
		t.Errorf("second log-on = %q", out)
	}
	if _, err := a.Execute("log-show missing.txt"); !errors.Is(err, types.ErrState) {
		t.Errorf("log-show of closed file = %v", err)
	}
}

func TestRestoreSession(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.txt")
	if err := os.WriteFile(keep, []byte("kept"), 0644); err != nil {
		t.Fatal(err)
	}
	// a directory cannot be read as a document
	broken := filepath.Join(dir, "folder.xml")
	if err := os.Mkdir(broken, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(dir)
	active := keep
	data, _ := json.Marshal(session.Memento{
		OpenFiles:       []string{keep, broken},
		ActiveFile:      &active,
		ModifiedFiles:   []string{keep},
		LogEnabledFiles: []string{keep},
	})
	if err := os.WriteFile(cfg.Workspace.SessionFile, data, 0644); err != nil {
		t.Fatal(err)
	}

	a, out := newTestApp(t, cfg, "show\n")
	if err := a.Run(nil); err != nil {
		t.Fatal(err)
	}
	mustContain(t, out.String(),
		"Some files could not be restored",
		"Restored 1 file(s) from the previous session",
		"Unsaved changes from the previous session were not kept: "+keep,
		"1: kept",
	)
	if !a.cmdLog.IsEnabled(keep) {
		t.Error("logging not re-enabled")
	}
}

func TestPluginAndThemeCommands(t *testing.T) {
	dir := t.TempDir()
	a, out := newTestApp(t, testConfig(dir), "")
	if _, err := a.Execute(fmt.Sprintf("init %q", filepath.Join(dir, "wc.txt"))); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Execute(`append "one two\nthree"`); err != nil {
		t.Fatal(err)
	}
	if res, err := a.Execute("WC"); err != nil || res != "Lines: 2, Words: 3, Bytes: 13" {
		t.Errorf("wc = %q, %v", res, err)
	}
	if res, _ := a.Execute("theme"); res != "Current theme: Weave Dark" {
		t.Errorf("theme = %q", res)
	}

	help, _ := a.Execute("help")
	mustContain(t, help, "Workspace:", "XML:", "Plugins:", "wc - count lines", "theme [name]", "append-root <tag>")

	err := a.editorAPI.RegisterCommand("load", "", func([]string) (string, error) { return "", nil })
	if err == nil {
		t.Error("plugin command shadowed a builtin")
	}
	a.editorAPI.Printf("from %s", "plugin")
	mustContain(t, out.String(), "from plugin\n")
}

func TestSpellCheckAndDirTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.txt")
	if err := os.WriteFile(path, []byte("I recieve mail"), 0644); err != nil {
		t.Fatal(err)
	}
	a, _ := newTestApp(t, testConfig(dir), "")
	if _, err := a.Execute(fmt.Sprintf("load %q", path)); err != nil {
		t.Fatal(err)
	}
	res, err := a.Execute("spell-check")
	if err != nil {
		t.Fatal(err)
	}
	mustContain(t, res, "Spell check results:", `line 1, col 3: "recieve"`)

	tree, err := a.Execute(fmt.Sprintf("dir-tree %q", dir))
	if err != nil {
		t.Fatal(err)
	}
	mustContain(t, tree, filepath.Base(dir), "└── s.txt")
}

// quitScreen presses q as soon as the viewer initialises the screen.
type quitScreen struct {
	tcell.SimulationScreen
}

func (s quitScreen) Init() error {
	if err := s.SimulationScreen.Init(); err != nil {
		return err
	}
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	return nil
}

func TestViewClosesOnQuit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v.xml")
	var sim tcell.SimulationScreen
	out := &bytes.Buffer{}
	a, err := NewApp(testConfig(dir),
		WithIO(strings.NewReader(""), out),
		WithScreen(func() (tcell.Screen, error) {
			sim = tcell.NewSimulationScreen("UTF-8")
			return quitScreen{sim}, nil
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Execute(fmt.Sprintf("init %q", path)); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Execute("view"); err != nil {
		t.Fatalf("view: %v", err)
	}
	if sim == nil {
		t.Fatal("screen factory not used")
	}
	d := a.Workspace().Active()
	if r := a.highlights.Highlights(d); len(r) == 0 {
		t.Error("tree document has no highlights")
	}
}

func TestFindAndSubstitute(t *testing.T) {
	dir := t.TempDir()
	a, _ := newTestApp(t, testConfig(dir), "")
	if _, err := a.Execute(fmt.Sprintf("init %q", filepath.Join(dir, "f.txt"))); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Execute(`append "cat hat\nbat cat cat"`); err != nil {
		t.Fatal(err)
	}

	found, err := a.Execute("find cat")
	if err != nil {
		t.Fatal(err)
	}
	if found != "3 match(es):\n  1:1: cat\n  2:5: cat\n  2:9: cat" {
		t.Errorf("find = %q", found)
	}
	if out, _ := a.Execute("find dog"); out != "No matches for 'dog'" {
		t.Errorf("find dog = %q", out)
	}

	if out, err := a.Execute("substitute /([bh])at/${1}ut/g"); err != nil || out != "Replaced 2 occurrence(s)" {
		t.Fatalf("substitute = %q, %v", out, err)
	}
	if shown, _ := a.Execute("show"); shown != "1: cat hut\n2: but cat cat" {
		t.Errorf("after substitute:\n%s", shown)
	}
	if out, _ := a.Execute("substitute /cat/dog/"); out != "Replaced 2 occurrence(s)" {
		t.Errorf("first-per-line substitute = %q", out)
	}
	if shown, _ := a.Execute("show 2"); shown != "2: but dog cat" {
		t.Errorf("line 2 = %q", shown)
	}
	for i := 0; i < 4; i++ {
		if _, err := a.Execute("undo"); err != nil {
			t.Fatal(err)
		}
	}
	if shown, _ := a.Execute("show"); shown != "1: cat hat\n2: bat cat cat" {
		t.Errorf("after undo:\n%s", shown)
	}
	if _, err := a.Execute("substitute cat"); !errors.Is(err, errUsage) {
		t.Errorf("malformed substitute = %v", err)
	}
}
