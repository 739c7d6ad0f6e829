package theme

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestGetStyleFallback(t *testing.T) {
	th := &WeaveDark
	if th.GetStyle("punctuation.bracket") != th.Styles["punctuation"] {
		t.Error("dotted name should fall back to its base")
	}
	if th.GetStyle("nonexistent") != th.Styles[StyleDefault] {
		t.Error("unknown name should fall back to Default")
	}
	empty := &Theme{Name: "empty"}
	if empty.GetStyle("tag") != tcell.StyleDefault {
		t.Error("theme without Default should use tcell's default")
	}
}

func TestLoadThemeFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.toml")
	body := `
is_dark = false

[styles.Default]
fg = "#101010"
bg = "white"

[styles.tag]
bold = true

[styles.string]
fg = "#12"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	th, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "paper" {
		t.Errorf("name = %q, want file name", th.Name)
	}
	fg, bg, _ := th.GetStyle("tag").Decompose()
	if fg != tcell.NewHexColor(0x101010) || bg != tcell.ColorWhite {
		t.Errorf("tag inherits fg=%v bg=%v", fg, bg)
	}
	if _, ok := th.Styles["string"]; ok {
		t.Error("invalid style should be skipped")
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	if m.Current() != &WeaveDark {
		t.Fatalf("default theme = %s", m.Current().Name)
	}
	if err := m.SetTheme("weave light"); err != nil || m.Current().Name != "Weave Light" {
		t.Fatalf("SetTheme = %v, current %s", err, m.Current().Name)
	}
	if err := m.SetTheme("solarized"); err == nil {
		t.Fatal("expected an error for an unknown theme")
	}

	dir := t.TempDir()
	_ = os.WriteFile(filepath.Join(dir, "a.toml"), []byte(`name = "Alpha"`), 0644)
	_ = os.WriteFile(filepath.Join(dir, "broken.toml"), []byte(`name = `), 0644)
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644)
	n, err := m.LoadDir(dir)
	if err != nil || n != 1 {
		t.Fatalf("LoadDir = %d, %v", n, err)
	}
	if got, want := m.ListThemes(), []string{"Alpha", "Weave Dark", "Weave Light"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ListThemes = %v, want %v", got, want)
	}
	if n, err := m.LoadDir(filepath.Join(dir, "missing")); n != 0 || err != nil {
		t.Fatalf("LoadDir(missing) = %d, %v", n, err)
	}
}
