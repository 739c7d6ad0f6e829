package commands

import (
	"strings"
	"testing"

	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/event"
	"github.com/bethropolis/weave/internal/plugin"
	"github.com/bethropolis/weave/internal/theme"
)

type fakeAPI struct {
	cmds map[string]plugin.CommandFunc
}

func (f *fakeAPI) ActiveDocument() document.Document        { return nil }
func (f *fakeAPI) SaveDocument(string) error                { return nil }
func (f *fakeAPI) SubscribeEvent(event.Type, event.Handler) {}
func (f *fakeAPI) GetPluginConfigValue(string, string) (interface{}, bool) {
	return nil, false
}
func (f *fakeAPI) Printf(string, ...interface{}) {}

func (f *fakeAPI) RegisterCommand(name, usage string, fn plugin.CommandFunc) error {
	f.cmds[name] = fn
	return nil
}

func TestThemeCommands(t *testing.T) {
	api := &fakeAPI{cmds: make(map[string]plugin.CommandFunc)}
	m := theme.NewManager()
	RegisterAppCommands(api, m)

	out, err := api.cmds["theme"](nil)
	if err != nil || out != "Current theme: Weave Dark" {
		t.Fatalf("theme = %q, %v", out, err)
	}

	out, err = api.cmds["theme"]([]string{"weave", "light"})
	if err != nil || out != "Theme set to: Weave Light" {
		t.Fatalf("theme weave light = %q, %v", out, err)
	}
	if m.Current().Name != "Weave Light" {
		t.Errorf("active theme = %q", m.Current().Name)
	}

	if _, err := api.cmds["theme"]([]string{"nope"}); err == nil || !strings.Contains(err.Error(), "Available: Weave Dark, Weave Light") {
		t.Errorf("unknown theme error = %v", err)
	}

	out, _ = api.cmds["themes"](nil)
	if out != "Available themes: Weave Dark, Weave Light" {
		t.Errorf("themes = %q", out)
	}
}
