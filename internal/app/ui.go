package app

import (
	"fmt"

	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/tui"
	"github.com/bethropolis/weave/internal/types"
)

// cmdView shows a document in the full screen viewer until the user quits.
func (a *App) cmdView(args []token) (string, error) {
	var d document.Document
	if len(args) > 0 {
		var ok bool
		if d, ok = a.workspace.Document(args[0].val); !ok {
			return "", types.StateErrorf("%s is not open", args[0].val)
		}
	} else if d = a.workspace.Active(); d == nil {
		return "", types.StateErrorf("no active document")
	}

	screen, err := a.newScreen()
	if err != nil {
		return "", fmt.Errorf("failed to create screen: %w", err)
	}
	activeTheme := a.themeManager.Current()
	t, err := tui.NewWithScreen(screen, activeTheme)
	if err != nil {
		return "", err
	}
	defer t.Close()

	v := tui.NewViewer(t, d, tui.Options{
		TabWidth:   a.cfg.Viewer.TabWidth,
		ScrollOff:  a.cfg.Viewer.ScrollOff,
		Kind:       d.Kind().String(),
		Theme:      activeTheme,
		Highlights: a.highlights.Highlights(d),
	})
	logger.Debugf("App: viewing %s with theme %s", d.Path(), activeTheme.Name)
	v.Run()
	return "", nil
}
