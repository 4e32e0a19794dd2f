// pkg/render/terminal.go
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/arena"
	"github.com/opd-ai/isoglide/pkg/engine"
)

const (
	glyphEmpty  = ' '
	glyphSolid  = '#'
	glyphCanopy = '~'
)

// phaseGlyphs maps a locomotion phase to the character glyph.
var phaseGlyphs = map[string]rune{
	"grounded":  '@',
	"ascending": '^',
	"falling":   'v',
	"gliding":   'Y',
}

// TerminalRenderer draws a side view of the arena as ASCII, centered on the
// character. World Y points up the screen.
type TerminalRenderer struct {
	out       io.Writer
	width     int
	height    int
	buffer    [][]rune
	scale     float64 // World units per cell
	centerPos mgl64.Vec2
	floorY    float64
	blocks    []arena.Block
	ansi      bool
}

// NewTerminalRenderer creates a width x height cell view of the arena
// described by cfg. With ansi set, each frame clears the terminal first.
func NewTerminalRenderer(out io.Writer, width, height int, scale float64, cfg arena.Config, ansi bool) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		out:    out,
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
		floorY: cfg.FloorY,
		blocks: cfg.Blocks,
		ansi:   ansi,
	}
}

// SetCenter sets the world position at the middle of the view.
func (r *TerminalRenderer) SetCenter(pos mgl64.Vec2) {
	r.centerPos = pos
}

// worldToScreen converts a world position to a cell. Cells outside the
// view are returned as is.
func (r *TerminalRenderer) worldToScreen(pos mgl64.Vec2) (int, int) {
	screenX := int(math.Floor((pos.X()-r.centerPos.X())/r.scale + float64(r.width)/2))
	screenY := int(math.Floor(float64(r.height)/2 - (pos.Y()-r.centerPos.Y())/r.scale))
	return screenX, screenY
}

// screenToWorld returns the world position at the middle of a cell.
func (r *TerminalRenderer) screenToWorld(x, y int) mgl64.Vec2 {
	return mgl64.Vec2{
		r.centerPos.X() + (float64(x)+0.5-float64(r.width)/2)*r.scale,
		r.centerPos.Y() + (float64(r.height)/2-float64(y)-0.5)*r.scale,
	}
}

// Clear blanks the buffer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = glyphEmpty
		}
	}
}

func (r *TerminalRenderer) solid(p mgl64.Vec2) bool {
	if p.Y() < r.floorY {
		return true
	}
	for _, b := range r.blocks {
		max := b.Min.Add(b.Size)
		if p.X() >= b.Min.X() && p.X() < max.X() && p.Y() >= b.Min.Y() && p.Y() < max.Y() {
			return true
		}
	}
	return false
}

// RenderArena fills the cells whose centers lie inside the floor or a block.
func (r *TerminalRenderer) RenderArena() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			if r.solid(r.screenToWorld(x, y)) {
				r.buffer[y][x] = glyphSolid
			}
		}
	}
}

// RenderCharacter draws the character one cell above its feet, and its
// canopy above that while gliding.
func (r *TerminalRenderer) RenderCharacter(f engine.Frame) {
	feet := mgl64.Vec2{f.Position.X(), f.Position.Y()}
	x, y := r.worldToScreen(feet.Add(mgl64.Vec2{0, r.scale / 2}))

	glyph, ok := phaseGlyphs[f.Phase]
	if !ok {
		glyph = '?'
	}
	r.set(x, y, glyph)

	if f.Canopy.Len() > 0.5 {
		for dx := -1; dx <= 1; dx++ {
			r.set(x+dx, y-1, glyphCanopy)
		}
	}
}

func (r *TerminalRenderer) set(x, y int, glyph rune) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = glyph
	}
}

// Present writes the buffer inside a border, followed by a status line.
func (r *TerminalRenderer) Present(f engine.Frame) error {
	var sb strings.Builder

	if r.ansi {
		sb.WriteString("\033[H\033[2J")
	}

	border := "+" + strings.Repeat("-", r.width) + "+\n"
	sb.WriteString(border)
	for y := range r.buffer {
		sb.WriteRune('|')
		sb.WriteString(string(r.buffer[y]))
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	sb.WriteString(statusLine(f))
	sb.WriteByte('\n')

	_, err := io.WriteString(r.out, sb.String())
	return err
}

// Render implements FrameRenderer.
func (r *TerminalRenderer) Render(f engine.Frame) error {
	r.draw(f)
	return r.Present(f)
}

// draw fills the buffer with the view of f centered on the character.
func (r *TerminalRenderer) draw(f engine.Frame) {
	r.SetCenter(mgl64.Vec2{f.Position.X(), f.Position.Y()})
	r.Clear()
	r.RenderArena()
	r.RenderCharacter(f)
}

func statusLine(f engine.Frame) string {
	return fmt.Sprintf("t=%6.2f  %-9s  x=%6.2f  y=%6.2f  vy=%6.2f",
		f.Time, f.Phase, f.Position.X(), f.Position.Y(), f.Velocity.Y())
}
