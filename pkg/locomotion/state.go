package locomotion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Phase is the composite locomotion state derived from the flags in State.
type Phase int

const (
	Grounded Phase = iota
	Ascending
	Falling
	Gliding
)

func (p Phase) String() string {
	switch p {
	case Grounded:
		return "grounded"
	case Ascending:
		return "ascending"
	case Falling:
		return "falling"
	case Gliding:
		return "gliding"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// GravityKind identifies which gravitational acceleration a tick integrated
// with.
type GravityKind int

const (
	GravityBasic GravityKind = iota
	GravityFall
	GravityLowJump
	// GravityNone marks ticks where the glide spring replaced gravity.
	GravityNone
)

func (g GravityKind) String() string {
	switch g {
	case GravityBasic:
		return "basic"
	case GravityFall:
		return "fall"
	case GravityLowJump:
		return "low_jump"
	case GravityNone:
		return "none"
	default:
		return fmt.Sprintf("gravity(%d)", int(g))
	}
}

// State is the per-character locomotion state. Only Controller.Tick mutates
// it. Both countdowns may go negative; a non-positive value means expired.
type State struct {
	Grounded    bool
	Jumping     bool
	Gliding     bool
	WantToGlide bool

	Velocity mgl64.Vec3

	// GlideVelocity is the spring velocity of Velocity.Y while gliding.
	GlideVelocity float64

	// GlideOffset is seeded when a glide starts and cleared when it stops.
	// The glide spring does not read it; it is reported for inspection.
	GlideOffset float64

	JumpBufferCounter float64
	CoyoteTimeCounter float64

	InputRot          mgl64.Vec3
	InputRotVelocity  mgl64.Vec3
	InputMove         mgl64.Vec3
	InputMoveVelocity mgl64.Vec3

	DampingMove float64
	DampingRot  float64

	Gravity GravityKind
	// Moving records whether the move axis was active on the previous tick.
	Moving bool
}

// Phase classifies the state.
func (s State) Phase() Phase {
	switch {
	case s.Gliding:
		return Gliding
	case s.Grounded:
		return Grounded
	case s.Velocity.Y() > 0:
		return Ascending
	default:
		return Falling
	}
}

// Report summarises one tick.
type Report struct {
	Phase        Phase
	Velocity     mgl64.Vec3
	Displacement mgl64.Vec3
	Gravity      GravityKind

	// GlideOffset is State.GlideOffset after the tick.
	GlideOffset float64

	Jumped       bool
	Landed       bool
	GlideStarted bool
	GlideStopped bool
}
