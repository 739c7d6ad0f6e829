// Package buffer holds the line model behind text documents and its file format.
package buffer

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/bethropolis/weave/internal/types"
)

// Buffer is the read side of a line buffer.
type Buffer interface {
	Lines() []string
	Line(n int) (string, error)
	LineCount() int
	RuneCount(n int) int
	Bytes() []byte
}

// Parse splits file content into lines. "\n", "\r\n" and "\r" all end a line,
// a trailing line break does not start an extra line, and empty input has no lines.
func Parse(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	text := string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Join renders lines in the saved form: joined by "\n", no trailing break.
func Join(lines []string) []byte {
	return []byte(strings.Join(lines, "\n"))
}

// ReadFile loads the lines of path. A missing file is not an error: found is false
// and lines is empty.
func ReadFile(path string) (lines []string, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, types.IOError(err, "cannot read %s", path)
	}
	return Parse(data), true, nil
}

// WriteFile saves lines to path.
func WriteFile(path string, lines []string) error {
	if err := os.WriteFile(path, Join(lines), 0644); err != nil {
		return types.IOError(err, "cannot write %s", path)
	}
	return nil
}
