// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/weave/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	MessageTimeout time.Duration
}

// ConfigFromTheme takes the status bar styles of t.
func ConfigFromTheme(t *theme.Theme) Config {
	return Config{
		StyleDefault:   t.GetStyle(theme.StyleStatusBar),
		StyleModified:  t.GetStyle(theme.StyleStatusBarModified),
		StyleMessage:   t.GetStyle(theme.StyleStatusBarMessage),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the last screen line of the viewer.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	filePath   string
	kind       string
	isModified bool
	line       int // 1-based
	lineCount  int

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetFileInfo updates the document shown in the status bar.
func (sb *StatusBar) SetFileInfo(path, kind string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.kind = kind
	sb.isModified = modified
}

// SetPosition updates the current line and the line count.
func (sb *StatusBar) SetPosition(line, lineCount int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.line = line
	sb.lineCount = lineCount
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// Text returns the status line as it would be drawn and whether it is a
// temporary message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, true
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}
	kind := ""
	if sb.kind != "" {
		kind = " (" + sb.kind + ")"
	}
	return fmt.Sprintf("%s%s%s -- Line: %d/%d -- q to close", fPath, kind, modifiedIndicator, sb.line, sb.lineCount), false
}

// Draw renders the status bar on the last screen row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, temporary := sb.Text()
	sb.mu.RLock()
	style := sb.config.StyleDefault
	switch {
	case temporary:
		style = sb.config.StyleMessage
	case sb.isModified:
		style = sb.config.StyleModified
	}
	sb.mu.RUnlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(currentX, y, runes[0], runes[1:], style)
		currentX += clusterWidth
	}
}
