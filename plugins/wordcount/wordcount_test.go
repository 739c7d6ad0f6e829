package wordcount

import (
	"path/filepath"
	"testing"

	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/event"
	"github.com/bethropolis/weave/internal/plugin"
	"github.com/bethropolis/weave/internal/workspace"
)

type api struct {
	ws       *workspace.Workspace
	commands map[string]plugin.CommandFunc
}

func (a *api) ActiveDocument() document.Document { return a.ws.Active() }
func (a *api) SaveDocument(path string) error {
	_, err := a.ws.Save(path)
	return err
}
func (a *api) SubscribeEvent(t event.Type, h event.Handler) { a.ws.Events().Subscribe(t, h) }
func (a *api) RegisterCommand(name, usage string, fn plugin.CommandFunc) error {
	a.commands[name] = fn
	return nil
}
func (a *api) GetPluginConfigValue(string, string) (interface{}, bool) { return nil, false }
func (a *api) Printf(string, ...interface{})                           {}

func TestWordCount(t *testing.T) {
	a := &api{ws: workspace.New(), commands: make(map[string]plugin.CommandFunc)}
	p := New()
	if err := p.Initialize(a); err != nil {
		t.Fatal(err)
	}
	wc, ok := a.commands["wc"]
	if !ok {
		t.Fatal("wc not registered")
	}
	if _, err := wc(nil); err == nil {
		t.Fatal("wc without a document should fail")
	}

	dir := t.TempDir()
	_, _ = a.ws.Init(filepath.Join(dir, "a.txt"), document.KindText, false)
	_, _ = a.ws.Dispatch("append", "one two")
	_, _ = a.ws.Dispatch("append", "three")
	got, err := wc(nil)
	if err != nil || got != "Lines: 2, Words: 3, Bytes: 13" {
		t.Fatalf("wc(text) = %q, %v", got, err)
	}

	_, _ = a.ws.Init(filepath.Join(dir, "b.xml"), document.KindTree, false)
	_, _ = a.ws.Dispatch("appendChild", "p", "p1", "root", "four five")
	got, _ = wc(nil)
	if want := "Lines: 4, Words: 2, Bytes: "; len(got) < len(want) || got[:len(want)] != want {
		t.Fatalf("wc(tree) = %q", got)
	}
}
