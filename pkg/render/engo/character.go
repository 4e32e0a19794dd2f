// pkg/render/engo/character.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/engine"
	"github.com/opd-ai/isoglide/pkg/locomotion"
)

// canopyHideScale is the canopy scale below which it is not drawn.
const canopyHideScale = 1e-3

type spriteEntity struct {
	basic  *ecs.BasicEntity
	render *common.RenderComponent
	space  *common.SpaceComponent
	// unscaled size in pixels and the drawable scale producing it
	width, height float32
	base          engo.Point
}

func newSpriteEntity(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) *spriteEntity {
	return &spriteEntity{
		basic:  basic,
		render: render,
		space:  space,
		width:  space.Width,
		height: space.Height,
		base:   render.Scale,
	}
}

// CharacterSystem samples input, steps the simulation at its fixed rate and
// copies the result onto the render entities.
type CharacterSystem struct {
	sim           *engine.Sim
	input         InputSource
	pixelsPerUnit float64

	body   *spriteEntity
	canopy *spriteEntity

	// unsimulated frame time in seconds
	accumulator float64
	// edges sampled on frames that did not reach a tick
	pending locomotion.Input
}

// NewCharacterSystem creates a character system.
func NewCharacterSystem(sim *engine.Sim, input InputSource, pixelsPerUnit float64) *CharacterSystem {
	return &CharacterSystem{
		sim:           sim,
		input:         input,
		pixelsPerUnit: pixelsPerUnit,
	}
}

// AddBody registers the entity that draws the character.
func (s *CharacterSystem) AddBody(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	s.body = newSpriteEntity(basic, render, space)
	s.sync()
}

// AddCanopy registers the entity that draws the parachute.
func (s *CharacterSystem) AddCanopy(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	s.canopy = newSpriteEntity(basic, render, space)
	s.sync()
}

// Remove satisfies the ecs.System interface
func (s *CharacterSystem) Remove(basic ecs.BasicEntity) {
	if s.body != nil && s.body.basic.ID() == basic.ID() {
		s.body = nil
	}
	if s.canopy != nil && s.canopy.basic.ID() == basic.ID() {
		s.canopy = nil
	}
}

// Update runs as many simulation ticks as fit in the elapsed frame time.
// Edges seen since the last tick are delivered to the next tick only.
func (s *CharacterSystem) Update(dt float32) {
	s.accumulator += float64(dt)

	in := SampleInput(s.input)
	in.JumpPressed = in.JumpPressed || s.pending.JumpPressed
	in.GlidePressed = in.GlidePressed || s.pending.GlidePressed
	in.GlideReleased = in.GlideReleased || s.pending.GlideReleased
	s.pending = in

	for s.accumulator >= s.sim.TimeStep {
		s.sim.Step(s.pending)
		s.accumulator -= s.sim.TimeStep
		s.pending.JumpPressed = false
		s.pending.GlidePressed = false
		s.pending.GlideReleased = false
	}

	s.sync()
}

func (s *CharacterSystem) sync() {
	frame := s.sim.Snapshot()
	feet := Project(frame.Position, s.pixelsPerUnit)

	if s.body != nil {
		placeSprite(s.body, feet, frame.Scale, 0)
	}
	if s.canopy != nil {
		s.canopy.render.Hidden = frame.Canopy.Len() < canopyHideScale
		lift := float32(0)
		if s.body != nil {
			lift = s.body.space.Height
		}
		placeSprite(s.canopy, feet, frame.Canopy, lift)
		s.canopy.space.Rotation = float32(rollDegrees(s.sim.Parachute.Rotation()))
	}
}

// placeSprite anchors a sprite's bottom center at the given screen point,
// raised by lift pixels.
func placeSprite(e *spriteEntity, anchor engo.Point, scale mgl64.Vec3, lift float32) {
	sx, sy := float32(scale.X()), float32(scale.Y())
	w, h := e.width*sx, e.height*sy

	e.render.Scale = engo.Point{X: e.base.X * sx, Y: e.base.Y * sy}
	e.space.Width = w
	e.space.Height = h
	e.space.Position = engo.Point{X: anchor.X - w/2, Y: anchor.Y - lift - h}
}

// rollDegrees is the screen-plane roll of q, taken as the angle its local
// up axis leans toward screen X.
func rollDegrees(q mgl64.Quat) float64 {
	up := q.Rotate(mgl64.Vec3{0, 1, 0})
	return mgl64.RadToDeg(math.Atan2(up.X(), up.Y()))
}
