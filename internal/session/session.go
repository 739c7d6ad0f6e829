// Package session persists which documents were open between runs.
package session

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/types"
)

// DefaultFile is the session file name used when the config gives none.
const DefaultFile = ".workspace.json"

// Memento is a snapshot of the workspace state.
type Memento struct {
	OpenFiles       []string `json:"openFiles"`
	ActiveFile      *string  `json:"activeFile"`
	ModifiedFiles   []string `json:"modifiedFiles"`
	LogEnabledFiles []string `json:"logEnabledFiles"`
}

// Active returns the active file, or "".
func (m *Memento) Active() string {
	if m == nil || m.ActiveFile == nil {
		return ""
	}
	return *m.ActiveFile
}

// Save writes m to path as indented JSON.
func Save(path string, m Memento) error {
	// Lists are always arrays in the file.
	for _, l := range []*[]string{&m.OpenFiles, &m.ModifiedFiles, &m.LogEnabledFiles} {
		if *l == nil {
			*l = []string{}
		}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return types.IOError(err, "cannot encode session")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return types.IOError(err, "cannot write session %s", path)
	}
	logger.Debugf("Session: saved %d open file(s) to %s", len(m.OpenFiles), path)
	return nil
}

// Load reads a memento. A missing file returns nil and no error.
func Load(path string) (*Memento, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, types.IOError(err, "cannot read session %s", path)
	}
	var m Memento
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, types.IOError(err, "cannot decode session %s", path)
	}
	return &m, nil
}
