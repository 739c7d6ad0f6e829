// internal/tui/drawing.go
package tui

import (
	"fmt"

	"github.com/bethropolis/weave/internal/highlighter"
	"github.com/bethropolis/weave/internal/theme"
	"github.com/bethropolis/weave/internal/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Viewport is the part of the document DrawLines paints.
type Viewport struct {
	Top, Left     int // first line, first visual column
	Current       int // line whose number is drawn bold
	Height, Width int // text area size in cells
	TabWidth      int
}

// gutterWidth is the line number column plus one space, or 0 when the
// screen is too narrow for text next to it.
func gutterWidth(lineCount, width int) int {
	if lineCount == 0 {
		lineCount = 1
	}
	w := utils.Digits(lineCount) + 1
	if w >= width {
		return 0
	}
	return w
}

// DrawLines draws the visible lines with a line number gutter. Syntax spans
// use the theme style named after their capture.
func DrawLines(screen tcell.Screen, lines []string, hl highlighter.Result, t *theme.Theme, vp Viewport) {
	if vp.Height <= 0 || vp.Width <= 0 {
		return
	}
	defaultStyle := t.GetStyle(theme.StyleDefault)
	lineNumberStyle := t.GetStyle(theme.StyleLineNumber)

	maxDigits := utils.Digits(len(lines))
	gutter := gutterWidth(len(lines), vp.Width)
	textAreaWidth := vp.Width - gutter

	for screenY := 0; screenY < vp.Height; screenY++ {
		lineIdx := screenY + vp.Top

		for x := 0; x < vp.Width; x++ {
			screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}
		if lineIdx < 0 || lineIdx >= len(lines) {
			continue
		}

		if gutter > 0 {
			style := lineNumberStyle
			if lineIdx == vp.Current {
				style = style.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", maxDigits, lineIdx+1) {
				screen.SetContent(i, screenY, r, nil, style)
			}
		}

		gr := uniseg.NewGraphemes(lines[lineIdx])
		visualX, runeIdx := 0, 0
		for gr.Next() {
			runes := gr.Runes()
			clusterWidth := gr.Width()
			if runes[0] == '\t' {
				clusterWidth = vp.TabWidth - visualX%vp.TabWidth
			}

			style := defaultStyle
			if name := hl.StyleAt(lineIdx, runeIdx); name != "" {
				style = t.GetStyle(name)
			}

			screenX := visualX - vp.Left + gutter
			if visualX >= vp.Left && screenX+clusterWidth <= vp.Width {
				if runes[0] == '\t' {
					for i := 0; i < clusterWidth; i++ {
						screen.SetContent(screenX+i, screenY, ' ', nil, style)
					}
				} else {
					screen.SetContent(screenX, screenY, runes[0], runes[1:], style)
				}
			}

			visualX += clusterWidth
			runeIdx += len(runes)
			if visualX >= vp.Left+textAreaWidth {
				break
			}
		}
	}
}
