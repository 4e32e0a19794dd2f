// Package arena is a small collision world for a single character. It
// implements the ground probe and mover the locomotion controller needs.
//
// Collision is resolved in the vertical X-Y plane with resolv: blocks are
// platforms that extend infinitely along Z, and the character moves freely
// in depth. World units are Y-up; resolv space is pixel based and Y-down.
package arena

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

const (
	tagSolid     = "solid"
	tagCharacter = "character"

	// groundProbe is how far, in pixels, below the feet a floor still
	// counts as underfoot.
	groundProbe = 1.0
	// touchEpsilon keeps surfaces that only touch from counting as overlap.
	touchEpsilon = 1e-6
)

// Config sizes the arena. Lengths are in world units.
type Config struct {
	Width         float64    `json:"width" toml:"width"`
	Height        float64    `json:"height" toml:"height"`
	PixelsPerUnit float64    `json:"pixelsPerUnit" toml:"pixelsPerUnit"`
	CellSize      int        `json:"cellSize" toml:"cellSize"`
	BodyWidth     float64    `json:"bodyWidth" toml:"bodyWidth"`
	BodyHeight    float64    `json:"bodyHeight" toml:"bodyHeight"`
	Spawn         mgl64.Vec3 `json:"spawn" toml:"spawn"`
	// FloorY places a full-width floor whose top is at this height.
	FloorY float64 `json:"floorY" toml:"floorY"`
	Blocks []Block `json:"blocks,omitempty" toml:"blocks,omitempty"`
}

// Block is a solid platform given by its lower-left corner and extent.
type Block struct {
	Min  mgl64.Vec2 `json:"min" toml:"min"`
	Size mgl64.Vec2 `json:"size" toml:"size"`
}

// DefaultConfig returns a 200x100 arena with a floor at y=0 and the
// character standing on it.
func DefaultConfig() Config {
	return Config{
		Width:         200,
		Height:        100,
		PixelsPerUnit: 10,
		CellSize:      8,
		BodyWidth:     1,
		BodyHeight:    2,
		FloorY:        0,
	}
}

// Arena owns the collision space and the character body.
type Arena struct {
	cfg      Config
	space    *resolv.Space
	body     *resolv.Object
	z        float64
	grounded bool
}

// New creates an arena with a floor and the character at cfg.Spawn.
func New(cfg Config) *Arena {
	ppu := cfg.PixelsPerUnit
	space := resolv.NewSpace(
		int(math.Ceil(cfg.Width*ppu)),
		int(math.Ceil(cfg.Height*ppu)),
		cfg.CellSize, cfg.CellSize,
	)

	a := &Arena{cfg: cfg, space: space, z: cfg.Spawn.Z()}
	// The floor extends down to the bottom of the space.
	a.AddBlock(mgl64.Vec2{-cfg.Width / 2, -cfg.Height / 2}, mgl64.Vec2{cfg.Width, cfg.FloorY + cfg.Height/2})
	for _, b := range cfg.Blocks {
		a.AddBlock(b.Min, b.Size)
	}

	a.body = resolv.NewObject(
		a.toSpaceX(cfg.Spawn.X()-cfg.BodyWidth/2),
		a.toSpaceY(cfg.Spawn.Y()+cfg.BodyHeight),
		cfg.BodyWidth*ppu,
		cfg.BodyHeight*ppu,
		tagCharacter,
	)
	space.Add(a.body)
	return a
}

// AddBlock adds a solid platform. min is its lower-left corner in world X-Y
// and size its extent.
func (a *Arena) AddBlock(min, size mgl64.Vec2) {
	ppu := a.cfg.PixelsPerUnit
	a.space.Add(resolv.NewObject(
		a.toSpaceX(min.X()),
		a.toSpaceY(min.Y()+size.Y()),
		size.X()*ppu,
		size.Y()*ppu,
		tagSolid,
	))
}

// Position returns the world position of the character's feet.
func (a *Arena) Position() mgl64.Vec3 {
	ppu := a.cfg.PixelsPerUnit
	x := (a.body.X+a.body.W/2)/ppu - a.cfg.Width/2
	y := a.cfg.Height/2 - (a.body.Y+a.body.H)/ppu
	return mgl64.Vec3{x, y, a.z}
}

// IsGrounded reports whether the last Move ended on a floor.
func (a *Arena) IsGrounded() bool { return a.grounded }

// Move displaces the character, stopping at solids. Horizontal motion is
// resolved before vertical.
func (a *Arena) Move(d mgl64.Vec3) {
	ppu := a.cfg.PixelsPerUnit
	a.moveX(d.X() * ppu)
	a.moveY(-d.Y() * ppu)
	a.z += d.Z()
}

func (a *Arena) moveX(dx float64) {
	if dx == 0 {
		return
	}
	if check := a.body.Check(dx, 0, tagSolid); check != nil {
		for _, o := range check.ObjectsByTags(tagSolid) {
			if !overlaps(a.body.Y, a.body.H, o.Y, o.H) {
				continue
			}
			if c := check.ContactWithObject(o).X(); reachable(c, dx) {
				dx = c
			}
		}
	}
	a.body.X += dx
	a.body.Update()
}

func (a *Arena) moveY(dy float64) {
	probe := dy
	if dy >= 0 {
		probe += groundProbe
	}

	hit := false
	if check := a.body.Check(0, probe, tagSolid); check != nil {
		for _, o := range check.ObjectsByTags(tagSolid) {
			if !overlaps(a.body.X, a.body.W, o.X, o.W) {
				continue
			}
			if c := check.ContactWithObject(o).Y(); reachable(c, probe) {
				probe = c
				hit = true
			}
		}
	}

	a.grounded = hit && dy >= 0
	if hit {
		dy = probe
	}
	a.body.Y += dy
	a.body.Update()
}

// reachable reports whether a contact offset lies along the move and no
// farther than it.
func reachable(contact, move float64) bool {
	if move > 0 {
		return contact >= -touchEpsilon && contact <= move
	}
	return contact <= touchEpsilon && contact >= move
}

func overlaps(aStart, aLen, bStart, bLen float64) bool {
	return aStart < bStart+bLen-touchEpsilon && bStart < aStart+aLen-touchEpsilon
}

func (a *Arena) toSpaceX(x float64) float64 {
	return (x + a.cfg.Width/2) * a.cfg.PixelsPerUnit
}

func (a *Arena) toSpaceY(y float64) float64 {
	return (a.cfg.Height/2 - y) * a.cfg.PixelsPerUnit
}
