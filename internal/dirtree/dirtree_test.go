package dirtree

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/weave/internal/types"
)

func TestRender(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	for _, dir := range []string{"src/core", "docs", ".git"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	for _, file := range []string{"main.go", "README.md", "src/core/a.go", "src/b.go", ".hidden"} {
		if err := os.WriteFile(filepath.Join(root, file), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Render(root)
	if err != nil {
		t.Fatal(err)
	}
	want := "project\n" +
		"├── docs\n" +
		"├── src\n" +
		"│   ├── core\n" +
		"│   │   └── a.go\n" +
		"│   └── b.go\n" +
		"├── README.md\n" +
		"└── main.go"
	if got != want {
		t.Fatalf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Render(filepath.Join(dir, "missing")); !errors.Is(err, types.ErrIO) {
		t.Errorf("missing dir: %v", err)
	}
	file := filepath.Join(dir, "f.txt")
	_ = os.WriteFile(file, nil, 0644)
	if _, err := Render(file); !errors.Is(err, types.ErrState) {
		t.Errorf("regular file: %v", err)
	}
}
