// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/locomotion"
)

// Input binding names.
const (
	AxisHorizontal = "horizontal"
	AxisVertical   = "vertical"

	ButtonJump      = "jump"
	ButtonGlide     = "glide"
	ButtonZoomIn    = "zoomIn"
	ButtonZoomOut   = "zoomOut"
	ButtonResetZoom = "resetZoom"
)

// InputSource is the subset of engo's input manager the systems read.
type InputSource interface {
	AxisValue(name string) float32
	Down(button string) bool
	JustPressed(button string) bool
	JustReleased(button string) bool
}

// EngineInput reads from engo.Input.
type EngineInput struct{}

// AxisValue returns the value of a registered axis.
func (EngineInput) AxisValue(name string) float32 { return engo.Input.Axis(name).Value() }

// Down reports whether a registered button is held.
func (EngineInput) Down(button string) bool { return engo.Input.Button(button).Down() }

// JustPressed reports whether a registered button went down this frame.
func (EngineInput) JustPressed(button string) bool { return engo.Input.Button(button).JustPressed() }

// JustReleased reports whether a registered button went up this frame.
func (EngineInput) JustReleased(button string) bool {
	return engo.Input.Button(button).JustReleased()
}

// SampleInput reads one frame of locomotion input. Diagonal keyboard input
// is normalized so it is no faster than a single direction.
func SampleInput(src InputSource) locomotion.Input {
	move := mgl64.Vec2{float64(src.AxisValue(AxisHorizontal)), float64(src.AxisValue(AxisVertical))}
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}

	return locomotion.Input{
		Move:          move,
		JumpPressed:   src.JustPressed(ButtonJump),
		JumpHeld:      src.Down(ButtonJump),
		GlidePressed:  src.JustPressed(ButtonGlide),
		GlideReleased: src.JustReleased(ButtonGlide),
	}
}

// SetupInputBindings sets up the key bindings for the demo
func SetupInputBindings() {
	// Movement axes
	engo.Input.RegisterAxis(AxisHorizontal,
		engo.AxisKeyPair{Min: engo.KeyA, Max: engo.KeyD},
		engo.AxisKeyPair{Min: engo.KeyArrowLeft, Max: engo.KeyArrowRight},
	)
	engo.Input.RegisterAxis(AxisVertical,
		engo.AxisKeyPair{Min: engo.KeyS, Max: engo.KeyW},
		engo.AxisKeyPair{Min: engo.KeyArrowDown, Max: engo.KeyArrowUp},
	)

	// Actions
	engo.Input.RegisterButton(ButtonJump, engo.KeySpace)
	engo.Input.RegisterButton(ButtonGlide, engo.KeyLeftShift, engo.KeyE)

	// Camera
	engo.Input.RegisterButton(ButtonZoomIn, engo.KeyEquals)
	engo.Input.RegisterButton(ButtonZoomOut, engo.KeyDash)
	engo.Input.RegisterButton(ButtonResetZoom, engo.KeyZero)
}
