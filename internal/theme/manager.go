// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/weave/internal/logger"
)

// Manager holds loaded themes and the active one.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	mutex       sync.RWMutex
}

// NewManager creates a manager with the builtin themes, Weave Dark active.
func NewManager() *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	for _, t := range []*Theme{&WeaveDark, &WeaveLight} {
		m.themes[strings.ToLower(t.Name)] = t
	}
	m.activeTheme = &WeaveDark
	return m
}

// Add registers t, replacing a theme with the same name.
func (m *Manager) Add(t *Theme) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Warnf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadFile loads a theme file, registers it and makes it active.
func (m *Manager) LoadFile(path string) error {
	t, err := LoadThemeFromFile(path)
	if err != nil {
		return err
	}
	m.Add(t)
	return m.SetTheme(t.Name)
}

// LoadDir loads every .toml file of dir. A missing dir is not an error;
// files that fail to parse are skipped.
func (m *Manager) LoadDir(dir string) (int, error) {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	loaded := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		t, err := LoadThemeFromFile(path)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", path, err)
			continue
		}
		m.Add(t)
		loaded++
	}
	logger.Infof("Loaded %d custom themes from %s.", loaded, dir)
	return loaded, nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	t, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != t {
		m.activeTheme = t
		logger.Infof("Active theme set to: %s", t.Name)
	}
	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
