// pkg/render/screen.go
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/isoglide/pkg/arena"
	"github.com/opd-ai/isoglide/pkg/engine"
)

// Screen is the part of tcell.Screen the screen renderer draws through.
type Screen interface {
	Clear()
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	Show()
}

var glyphStyles = map[rune]tcell.Style{
	glyphSolid:  tcell.StyleDefault.Foreground(tcell.ColorGray),
	glyphCanopy: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	'@':         tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	'^':         tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
	'v':         tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	'Y':         tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true),
}

// ScreenRenderer draws the side view onto a tcell screen, with the status
// line on the row below it.
type ScreenRenderer struct {
	view   *TerminalRenderer
	screen Screen
}

// NewScreenRenderer creates a width x height cell view on screen.
func NewScreenRenderer(screen Screen, width, height int, scale float64, cfg arena.Config) *ScreenRenderer {
	return &ScreenRenderer{
		view:   NewTerminalRenderer(nil, width, height, scale, cfg, false),
		screen: screen,
	}
}

// Render implements FrameRenderer.
func (r *ScreenRenderer) Render(f engine.Frame) error {
	r.view.draw(f)

	r.screen.Clear()
	for y, row := range r.view.buffer {
		for x, c := range row {
			if c == glyphEmpty {
				continue
			}
			style, ok := glyphStyles[c]
			if !ok {
				style = tcell.StyleDefault
			}
			r.screen.SetContent(x, y, c, nil, style)
		}
	}
	for x, c := range []rune(statusLine(f)) {
		r.screen.SetContent(x, r.view.height, c, nil, tcell.StyleDefault)
	}
	r.screen.Show()
	return nil
}
