package config

import (
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, NewDefaultConfig()) {
		t.Fatalf("Load = %+v, want defaults", cfg)
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "debug"
enabled_tags = ["history"]

[workspace]
history_limit = 50
restore_session = false

[viewer]
tab_width = -2
theme_file = "dark.toml"

[spell]
dictionary_file = "words.txt"

[plugins.autosave]
every = 5
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logger.LogLevel != "debug" || !reflect.DeepEqual(cfg.Logger.EnabledTags, []string{"history"}) {
		t.Errorf("logger = %+v", cfg.Logger)
	}
	if cfg.Workspace.HistoryLimit != 50 || cfg.Workspace.RestoreSession {
		t.Errorf("workspace = %+v", cfg.Workspace)
	}
	if cfg.Workspace.SessionFile != DefaultSessionFile {
		t.Errorf("session file = %q, want default", cfg.Workspace.SessionFile)
	}
	if cfg.Viewer.TabWidth != DefaultTabWidth || cfg.Viewer.ThemeFile != "dark.toml" {
		t.Errorf("viewer = %+v", cfg.Viewer)
	}
	if cfg.Spell.DictionaryFile != "words.txt" {
		t.Errorf("spell = %+v", cfg.Spell)
	}
	if v, ok := cfg.PluginValue("autosave", "every"); !ok || v != int64(5) {
		t.Errorf("plugins.autosave.every = %v (%T)", v, v)
	}
	if _, ok := cfg.PluginValue("wordcount", "every"); ok {
		t.Error("missing plugin table reported a value")
	}
}

func TestLoadBadFile(t *testing.T) {
	path := writeConfig(t, "[workspace\nhistory_limit = ")
	cfg, err := Load(path, nil)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if cfg == nil || cfg.Viewer.TabWidth != DefaultTabWidth {
		t.Fatalf("Load should still return a usable config, got %+v", cfg)
	}
}

func TestUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[viewer]\nwrap = true\n")
	if _, err := Load(path, nil); err != nil {
		t.Fatal(err)
	}
	if got := UnknownKeys(); !reflect.DeepEqual(got, []string{"viewer.wrap"}) {
		t.Fatalf("UnknownKeys = %v", got)
	}
}

func TestFlagOverrides(t *testing.T) {
	path := writeConfig(t, "[workspace]\nhistory_limit = 10\n")

	fs := flag.NewFlagSet("weave", flag.ContinueOnError)
	var f Flags
	f.DefineFlags(fs)
	err := fs.Parse([]string{
		"-history", "3",
		"-no-restore",
		"-log-tags", "history, cmdlog,,",
		"-scrolloff", "0",
		"notes.txt",
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, &f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workspace.HistoryLimit != 3 || cfg.Workspace.RestoreSession {
		t.Errorf("workspace = %+v", cfg.Workspace)
	}
	if !reflect.DeepEqual(cfg.Logger.EnabledTags, []string{"history", "cmdlog"}) {
		t.Errorf("tags = %q", cfg.Logger.EnabledTags)
	}
	if cfg.Viewer.ScrollOff != 0 || cfg.Viewer.TabWidth != DefaultTabWidth {
		t.Errorf("viewer = %+v", cfg.Viewer)
	}
	if got := fs.Args(); !reflect.DeepEqual(got, []string{"notes.txt"}) {
		t.Errorf("args = %v", got)
	}
}

func TestLoadConfigLoadsOnce(t *testing.T) {
	first, err := LoadConfig(writeConfig(t, "[viewer]\ntab_width = 2\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := LoadConfig(writeConfig(t, "[viewer]\ntab_width = 8\n"), nil)
	if first != second || second.Viewer.TabWidth != 2 {
		t.Fatalf("second LoadConfig = %p (tab_width %d), want %p", second, second.Viewer.TabWidth, first)
	}
}
