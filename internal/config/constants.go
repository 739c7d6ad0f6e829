package config

// Base application details
const AppName = "weave"
const ConfigDirName = "weave"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml" // main config file

// Workspace
const DefaultSessionFile = ".workspace.json"
const DefaultHistoryLimit = 0 // unbounded
const SystemClipboard = false

// Viewer
const DefaultTabWidth = 4
const DefaultScrollOff = 3
