package commands

import "github.com/bethropolis/weave/internal/theme"

// ThemeAPI is the theme surface the theme commands need. theme.Manager
// implements it.
type ThemeAPI interface {
	SetTheme(name string) error
	Current() *theme.Theme
	ListThemes() []string
}

var _ ThemeAPI = (*theme.Manager)(nil)
