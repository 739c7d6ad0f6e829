package commands

import (
	"fmt"
	"strings"

	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/plugin"
)

// RegisterAppCommands registers the built-in commands that go through the
// plugin API rather than the workspace.
func RegisterAppCommands(api plugin.API, themeAPI ThemeAPI) {
	RegisterThemeCommands(api, themeAPI)
}

// RegisterThemeCommands registers "theme [name]" and "themes".
func RegisterThemeCommands(api plugin.API, themeAPI ThemeAPI) {
	themeCmdFunc := func(args []string) (string, error) {
		if len(args) == 0 {
			return fmt.Sprintf("Current theme: %s", themeAPI.Current().Name), nil
		}

		themeName := strings.Join(args, " ") // theme names may contain spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			themeList := strings.Join(themeAPI.ListThemes(), ", ")
			return "", fmt.Errorf("theme '%s' not found. Available: %s", themeName, themeList)
		}
		return fmt.Sprintf("Theme set to: %s", themeAPI.Current().Name), nil
	}

	themeListCmdFunc := func(args []string) (string, error) {
		return "Available themes: " + strings.Join(themeAPI.ListThemes(), ", "), nil
	}

	if err := api.RegisterCommand("theme", "theme [name] - show or set the viewer theme", themeCmdFunc); err != nil {
		logger.Warnf("Failed to register 'theme' command: %v", err)
	}
	if err := api.RegisterCommand("themes", "themes - list available themes", themeListCmdFunc); err != nil {
		logger.Warnf("Failed to register 'themes' command: %v", err)
	}
}
