package history

import (
	"fmt"
	"sync"

	"github.com/bethropolis/weave/internal/logger"
)

// Manager keeps the undo and redo stacks of one document.
type Manager struct {
	target     Applier
	undo       []Command
	redo       []Command
	maxHistory int // 0 = unbounded
	mutex      sync.Mutex
}

// NewManager creates a history manager applying commands to target.
// maxHistory <= 0 keeps every command.
func NewManager(target Applier, maxHistory int) *Manager {
	if maxHistory < 0 {
		maxHistory = 0
	}
	return &Manager{
		target:     target,
		maxHistory: maxHistory,
	}
}

// Execute applies cmd. On success it is pushed onto the undo stack and the
// redo stack is discarded; on failure nothing changes.
func (m *Manager) Execute(cmd Command) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.target.Apply(cmd); err != nil {
		logger.DebugTagf("history", "History: %q rejected: %v", cmd.Description(), err)
		return err
	}

	m.undo = append(m.undo, cmd)
	m.redo = nil

	if m.maxHistory > 0 && len(m.undo) > m.maxHistory {
		// Oldest entries go first.
		m.undo = append([]Command(nil), m.undo[len(m.undo)-m.maxHistory:]...)
	}

	logger.DebugTagf("history", "History: executed %q. Undo: %d", cmd.Description(), len(m.undo))
	return nil
}

// Undo reverts the most recent command. ok is false when there is nothing to undo.
func (m *Manager) Undo() (cmd Command, ok bool, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.undo) == 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return nil, false, nil
	}

	cmd = m.undo[len(m.undo)-1]
	if err := m.target.Revert(cmd); err != nil {
		logger.Errorf("History: Error undoing %q: %v", cmd.Description(), err)
		return cmd, false, fmt.Errorf("undo failed: %w", err)
	}
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, cmd)

	logger.DebugTagf("history", "History: undid %q. Undo: %d Redo: %d", cmd.Description(), len(m.undo), len(m.redo))
	return cmd, true, nil
}

// Redo re-applies the most recently undone command with its original inputs.
func (m *Manager) Redo() (cmd Command, ok bool, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.redo) == 0 {
		logger.DebugTagf("history", "History: Nothing to redo.")
		return nil, false, nil
	}

	cmd = m.redo[len(m.redo)-1]
	if err := m.target.Apply(cmd); err != nil {
		logger.Errorf("History: Error redoing %q: %v", cmd.Description(), err)
		return cmd, false, fmt.Errorf("redo failed: %w", err)
	}
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, cmd)

	logger.DebugTagf("history", "History: redid %q. Undo: %d Redo: %d", cmd.Description(), len(m.undo), len(m.redo))
	return cmd, true, nil
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.undo = nil
	m.redo = nil
	logger.DebugTagf("history", "History: Cleared.")
}

// CanUndo returns true if there are commands that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undo) > 0
}

// CanRedo returns true if there are commands that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redo) > 0
}

func (m *Manager) UndoDepth() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undo)
}

func (m *Manager) RedoDepth() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redo)
}
