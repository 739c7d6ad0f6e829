// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/weave/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`
	Workspace WorkspaceConfig `toml:"workspace"`
	Viewer    ViewerConfig    `toml:"viewer"`
	Spell     SpellConfig     `toml:"spell"`
	// Plugins holds one table per plugin: [plugins.autosave] ...
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// PluginValue returns key of the [plugins.<name>] table.
func (c *Config) PluginValue(name, key string) (interface{}, bool) {
	table, ok := c.Plugins[name]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// WorkspaceConfig holds document and session settings.
type WorkspaceConfig struct {
	SessionFile     string `toml:"session_file"`
	RestoreSession  bool   `toml:"restore_session"`
	HistoryLimit    int    `toml:"history_limit"` // 0 keeps every command
	SystemClipboard bool   `toml:"system_clipboard"`
}

// ViewerConfig holds settings of the full-screen viewer.
type ViewerConfig struct {
	TabWidth  int    `toml:"tab_width"`
	ScrollOff int    `toml:"scroll_off"`
	ThemeFile string `toml:"theme_file"`
}

// SpellConfig holds spell checker settings.
type SpellConfig struct {
	DictionaryFile string `toml:"dictionary_file"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Workspace: WorkspaceConfig{
			SessionFile:     DefaultSessionFile,
			RestoreSession:  true,
			HistoryLimit:    DefaultHistoryLimit,
			SystemClipboard: SystemClipboard,
		},
		Viewer: ViewerConfig{
			TabWidth:  DefaultTabWidth,
			ScrollOff: DefaultScrollOff,
		},
	}
}

// DefaultPath returns the config file location under the user config dir,
// or "" when there is none.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// ThemesDir returns the directory user themes are loaded from, or "".
func ThemesDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, ThemesDirName)
}

// decodeFile decodes filePath over cfg. Keys absent from the file keep the
// values already in cfg. A missing file is not an error.
func decodeFile(filePath string, cfg *Config) (found bool, err error) {
	unknownKeys = nil
	_, err = os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return true, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	// The logger is not initialised yet; main reports these after Init.
	unknownKeys = metadata.Undecoded()
	return true, nil
}

var unknownKeys []toml.Key

// UnknownKeys lists keys of the last decoded file that matched no setting.
func UnknownKeys() []string {
	out := make([]string, len(unknownKeys))
	for i, k := range unknownKeys {
		out[i] = k.String()
	}
	return out
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Viewer.TabWidth <= 0 {
		c.Viewer.TabWidth = defaults.Viewer.TabWidth
	}
	if c.Viewer.ScrollOff < 0 { // 0 is allowed
		c.Viewer.ScrollOff = defaults.Viewer.ScrollOff
	}
	if c.Workspace.HistoryLimit < 0 {
		c.Workspace.HistoryLimit = defaults.Workspace.HistoryLimit
	}
	if c.Workspace.SessionFile == "" {
		c.Workspace.SessionFile = defaults.Workspace.SessionFile
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds a configuration from defaults, the file at configFilePath
// ("" means DefaultPath) and the flags that were set.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var err error
	if effectivePath != "" {
		_, err = decodeFile(effectivePath, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig loads the process-wide configuration. It should be called only
// once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}
