// Package dirtree draws a directory as a box-drawing tree.
package dirtree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/weave/internal/types"
)

// Render returns the tree below path ("" means the working directory). The
// first line is the directory's own name. Hidden entries are skipped and
// directories are listed before files.
func Render(path string) (string, error) {
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", types.IOError(err, "cannot read %s", path)
	}
	if !info.IsDir() {
		return "", types.StateErrorf("%s is not a directory", path)
	}

	name := path
	if abs, err := filepath.Abs(path); err == nil {
		name = abs
		if base := filepath.Base(abs); base != string(filepath.Separator) {
			name = base
		}
	}

	lines := []string{name}
	walk(path, "", &lines)
	return strings.Join(lines, "\n"), nil
}

type entry struct {
	name string
	dir  bool
}

func walk(dir, prefix string, lines *[]string) {
	des, err := os.ReadDir(dir)
	if err != nil {
		*lines = append(*lines, prefix+"[error: "+err.Error()+"]")
		return
	}

	entries := make([]entry, 0, len(des))
	for _, de := range des {
		if strings.HasPrefix(de.Name(), ".") {
			continue
		}
		entries = append(entries, entry{name: de.Name(), dir: isDir(de)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].dir != entries[j].dir {
			return entries[i].dir
		}
		return entries[i].name < entries[j].name
	})

	for i, e := range entries {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(entries)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		*lines = append(*lines, prefix+connector+e.name)
		if e.dir {
			walk(filepath.Join(dir, e.name), childPrefix, lines)
		}
	}
}

// isDir reports real directories only; symlinks are listed but never followed.
func isDir(de os.DirEntry) bool {
	return de.Type()&os.ModeSymlink == 0 && de.IsDir()
}
