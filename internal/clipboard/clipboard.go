// Package clipboard stores yanked text for the paste operation.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/weave/internal/logger"
)

// ErrEmpty is returned by Read when nothing was yanked yet.
var ErrEmpty = errors.New("clipboard is empty")

// Clipboard holds one piece of text.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// Memory is a process-local clipboard.
type Memory struct {
	text string
	set  bool
}

func (m *Memory) Read() (string, error) {
	if !m.set {
		return "", ErrEmpty
	}
	return m.text, nil
}

func (m *Memory) Write(text string) error {
	m.text, m.set = text, true
	return nil
}

// System uses the operating system clipboard.
type System struct{}

func (System) Read() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading system clipboard: %w", err)
	}
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

func (System) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing system clipboard: %w", err)
	}
	return nil
}

// New returns the system clipboard when useSystem is set and the platform
// supports it, and a Memory clipboard otherwise.
func New(useSystem bool) Clipboard {
	if useSystem {
		if !clipboard.Unsupported {
			return System{}
		}
		logger.Warnf("Clipboard: system clipboard unsupported here, using internal clipboard")
	}
	return &Memory{}
}
