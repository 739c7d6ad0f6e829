// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero values.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	SessionFile    *string
	NoRestore      *bool
	HistoryLimit   *int
	TabWidth       *int
	ScrollOff      *int
	ThemeFile      *string
	Dictionary     *string
	// logger filters
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	SystemClipboard *bool
}

// DefineFlags registers the flags on fs (flag.CommandLine when nil).
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.set = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.SessionFile = fs.String("session", "", "Workspace session file - Overrides config file")
	f.NoRestore = fs.Bool("no-restore", false, "Do not reopen the previous session")
	f.HistoryLimit = fs.Int("history", -1, "Maximum undo depth per document, 0 for unbounded - Overrides config file") // -1 means unset
	f.TabWidth = fs.Int("tabwidth", 0, "Viewer spaces per tab - Overrides config file")                                  // 0 means unset
	f.ScrollOff = fs.Int("scrolloff", -1, "Viewer lines of context - Overrides config file")                             // -1 means unset
	f.ThemeFile = fs.String("theme", "", "Viewer theme file - Overrides config file")
	f.Dictionary = fs.String("dictionary", "", "Spell check word list - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Use the system clipboard for yank and paste")
}

// ParseFlags defines and parses the process flags. It returns the remaining
// non-flag arguments (files to open).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags(nil)
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates cfg with the flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // "-" is valid
		case "session":
			if *f.SessionFile != "" {
				cfg.Workspace.SessionFile = *f.SessionFile
			}
		case "no-restore":
			cfg.Workspace.RestoreSession = !*f.NoRestore
		case "history":
			if *f.HistoryLimit >= 0 {
				cfg.Workspace.HistoryLimit = *f.HistoryLimit
			}
		case "tabwidth":
			if *f.TabWidth > 0 {
				cfg.Viewer.TabWidth = *f.TabWidth
			}
		case "scrolloff":
			if *f.ScrollOff >= 0 {
				cfg.Viewer.ScrollOff = *f.ScrollOff
			}
		case "theme":
			cfg.Viewer.ThemeFile = *f.ThemeFile
		case "dictionary":
			cfg.Spell.DictionaryFile = *f.Dictionary
		case "system-clipboard":
			cfg.Workspace.SystemClipboard = *f.SystemClipboard
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
