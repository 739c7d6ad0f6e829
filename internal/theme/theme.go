// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/weave/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names the viewer draws with. Syntax captures use their capture name
// ("tag", "attribute", "string", ...).
const (
	StyleDefault           = "Default"
	StyleLineNumber        = "LineNumber"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, falling back to the part before the first dot and
// then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Builtin themes.
var (
	WeaveDark  Theme
	WeaveLight Theme
)

func init() {
	// --- Palette for Weave Dark ---
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	WeaveDark = Theme{
		Name:   "Weave Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleLineNumber:        base.Foreground(muted),
			StyleStatusBar:         tcell.StyleDefault.Background(bg).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(bg).Foreground(yellow),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),

			"tag":         base.Foreground(blue).Bold(true),
			"attribute":   base.Foreground(yellow),
			"string":      base.Foreground(green),
			"comment":     base.Foreground(muted).Italic(true),
			"constant":    base.Foreground(orange),
			"punctuation": base.Foreground(muted),
			"error":       base.Foreground(magenta).Underline(true),
		},
	}

	// --- Palette for Weave Light ---
	lfg := tcell.NewHexColor(0x383a42)
	lmuted := tcell.NewHexColor(0xa0a1a7)
	lbase := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(lfg)
	lbar := tcell.NewHexColor(0xe5e5e6)
	WeaveLight = Theme{
		Name: "Weave Light",
		Styles: map[string]tcell.Style{
			StyleDefault:           lbase,
			StyleLineNumber:        lbase.Foreground(lmuted),
			StyleStatusBar:         tcell.StyleDefault.Background(lbar).Foreground(lfg),
			StyleStatusBarModified: tcell.StyleDefault.Background(lbar).Foreground(tcell.NewHexColor(0xc18401)),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(lbar).Foreground(lfg).Bold(true),

			"tag":         lbase.Foreground(tcell.NewHexColor(0xe45649)),
			"attribute":   lbase.Foreground(tcell.NewHexColor(0x986801)),
			"string":      lbase.Foreground(tcell.NewHexColor(0x50a14f)),
			"comment":     lbase.Foreground(lmuted).Italic(true),
			"constant":    lbase.Foreground(tcell.NewHexColor(0x0184bc)),
			"punctuation": lbase.Foreground(lmuted),
			"error":       lbase.Foreground(tcell.NewHexColor(0xa626a4)).Underline(true),
		},
	}
}
