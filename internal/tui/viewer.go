package tui

import (
	"strings"

	"github.com/bethropolis/weave/internal/highlighter"
	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/statusbar"
	"github.com/bethropolis/weave/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// Source is what the viewer displays. Documents satisfy it.
type Source interface {
	Path() string
	Modified() bool
	Content() []byte
}

// Options configures a Viewer.
type Options struct {
	TabWidth   int
	ScrollOff  int
	Kind       string // shown in the status bar
	Theme      *theme.Theme
	Highlights highlighter.Result // nil draws plain text
}

// Viewer is a read-only, scrollable view of one document.
type Viewer struct {
	tui        *TUI
	lines      []string
	theme      *theme.Theme
	highlights highlighter.Result
	status     *statusbar.StatusBar
	tabWidth   int
	scrollOff  int

	cursor int // 0-based current line
	viewY  int
	viewX  int // horizontal scroll in cells
}

// NewViewer prepares a view of src on t.
func NewViewer(t *TUI, src Source, opts Options) *Viewer {
	if opts.Theme == nil {
		opts.Theme = &theme.WeaveDark
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	if opts.ScrollOff < 0 {
		opts.ScrollOff = 0
	}
	v := &Viewer{
		tui:        t,
		lines:      strings.Split(string(src.Content()), "\n"),
		theme:      opts.Theme,
		highlights: opts.Highlights,
		status:     statusbar.New(statusbar.ConfigFromTheme(opts.Theme)),
		tabWidth:   opts.TabWidth,
		scrollOff:  opts.ScrollOff,
	}
	v.status.SetFileInfo(src.Path(), opts.Kind, src.Modified())
	return v
}

// Status exposes the status bar, e.g. to show a message before Run.
func (v *Viewer) Status() *statusbar.StatusBar { return v.status }

// Run draws and handles keys until the user closes the view.
func (v *Viewer) Run() {
	for {
		v.Draw()
		v.tui.Show()
		switch ev := v.tui.PollEvent().(type) {
		case *tcell.EventResize:
			v.tui.Sync()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return
			}
		case nil:
			return // screen finalized
		}
	}
}

// HandleKey applies a key press. It reports whether the view should close.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	_, height := v.tui.Size()
	page := height - 1
	if page < 1 {
		page = 1
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.moveCursor(-1)
	case tcell.KeyDown:
		v.moveCursor(1)
	case tcell.KeyPgUp:
		v.moveCursor(-page)
	case tcell.KeyPgDn:
		v.moveCursor(page)
	case tcell.KeyHome:
		v.moveCursor(-len(v.lines))
	case tcell.KeyEnd:
		v.moveCursor(len(v.lines))
	case tcell.KeyLeft:
		v.scrollX(-v.tabWidth)
	case tcell.KeyRight:
		v.scrollX(v.tabWidth)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			v.moveCursor(-1)
		case 'j':
			v.moveCursor(1)
		case 'g':
			v.moveCursor(-len(v.lines))
		case 'G':
			v.moveCursor(len(v.lines))
		case 'h':
			v.scrollX(-v.tabWidth)
		case 'l':
			v.scrollX(v.tabWidth)
		}
	}
	return false
}

func (v *Viewer) moveCursor(delta int) {
	v.cursor += delta
	if v.cursor >= len(v.lines) {
		v.cursor = len(v.lines) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.scrollToCursor()
}

func (v *Viewer) scrollX(delta int) {
	v.viewX += delta
	if v.viewX < 0 {
		v.viewX = 0
	}
}

// scrollToCursor keeps scrollOff lines of context around the cursor.
func (v *Viewer) scrollToCursor() {
	_, height := v.tui.Size()
	viewHeight := height - 1
	if viewHeight <= 0 {
		return
	}
	off := v.scrollOff
	if off*2 >= viewHeight {
		off = (viewHeight - 1) / 2
	}

	if v.cursor < v.viewY+off {
		v.viewY = v.cursor - off
	}
	if v.cursor > v.viewY+viewHeight-1-off {
		v.viewY = v.cursor - viewHeight + 1 + off
	}
	if maxY := len(v.lines) - viewHeight; v.viewY > maxY {
		v.viewY = maxY
	}
	if v.viewY < 0 {
		v.viewY = 0
	}
	logger.DebugTagf("viewer", "cursor=%d viewY=%d", v.cursor, v.viewY)
}

// Draw paints the visible lines and the status bar.
func (v *Viewer) Draw() {
	width, height := v.tui.Size()
	DrawLines(v.tui.GetScreen(), v.lines, v.highlights, v.theme, Viewport{
		Top:      v.viewY,
		Left:     v.viewX,
		Current:  v.cursor,
		Height:   height - 1,
		Width:    width,
		TabWidth: v.tabWidth,
	})
	v.status.SetPosition(v.cursor+1, len(v.lines))
	v.status.Draw(v.tui.GetScreen(), width, height)
}
