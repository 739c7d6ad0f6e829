package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/weave/internal/types"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	m, err := Load(path)
	if m != nil || err != nil {
		t.Fatalf("Load(missing) = %v, %v", m, err)
	}

	if err := Save(path, Memento{OpenFiles: []string{"a.txt"}}); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	for _, want := range []string{`"activeFile": null`, `"modifiedFiles": []`, `"logEnabledFiles": []`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("session file missing %s:\n%s", want, data)
		}
	}

	active := "b.xml"
	in := Memento{OpenFiles: []string{"a.txt", "b.xml"}, ActiveFile: &active, ModifiedFiles: []string{"b.xml"}, LogEnabledFiles: []string{"a.txt"}}
	if err := Save(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Active() != "b.xml" || len(out.OpenFiles) != 2 || out.LogEnabledFiles[0] != "a.txt" {
		t.Fatalf("loaded %+v", out)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	_ = os.WriteFile(path, []byte("{not json"), 0644)
	if _, err := Load(path); !errors.Is(err, types.ErrIO) {
		t.Fatalf("Load(corrupt) error = %v", err)
	}
}
