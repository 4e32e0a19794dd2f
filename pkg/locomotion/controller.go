// Package locomotion drives an isometric character's walking, jumping and
// gliding one frame at a time.
//
// A Controller owns the character's State. Each call to Tick reads the ground
// probe, eases the stick input, runs the jump and glide transitions,
// integrates vertical velocity and hands the frame's displacement to the
// Mover. Cosmetic effects are notified through the Actuator interface.
package locomotion

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/event"
	"github.com/opd-ai/isoglide/pkg/logging"
	"github.com/opd-ai/isoglide/pkg/physics"
	"github.com/opd-ai/isoglide/pkg/smoothing"
	"github.com/opd-ai/isoglide/pkg/spring"
)

const (
	// airborneRotMaxSpeed caps how fast the facing input can change in the air.
	airborneRotMaxSpeed = 6.0
	// meshTurnSpeed is how fast, in degrees per second, the mesh follows the
	// facing plus tilt.
	meshTurnSpeed = 100.0
	// idleMoveMagnitude is the smoothed move length below which an idle
	// character snaps to rest.
	idleMoveMagnitude = 0.01
	// sideTiltScale converts the facing input's rate of change into tilt.
	sideTiltScale = 0.2
	// parallelDot suppresses side tilt when the input is changing along its
	// own direction.
	parallelDot = 0.95
	// glideDecimals is the precision vertical glide velocity is rounded to.
	glideDecimals = 6
)

// GroundProbe reports whether the character touched the ground during the
// last move.
type GroundProbe interface {
	IsGrounded() bool
}

// Mover applies a displacement, resolving collisions.
type Mover interface {
	Move(displacement mgl64.Vec3)
}

// Actuator is a fire-and-forget cosmetic effect.
type Actuator interface {
	Activate()
	Deactivate()
}

// Input is one frame's sampled input. Edge flags must be true for exactly
// one tick per press or release.
type Input struct {
	Move          mgl64.Vec2
	JumpPressed   bool
	JumpHeld      bool
	GlidePressed  bool
	GlideReleased bool
}

// Collaborators are the external components a Controller talks to. Ground
// and Mover are required; the rest may be nil.
type Collaborators struct {
	Ground     GroundProbe
	Mover      Mover
	JumpEffect Actuator
	Parachute  Actuator
	Events     *event.Bus
	Logger     *logging.Logger
}

type noopActuator struct{}

func (noopActuator) Activate()   {}
func (noopActuator) Deactivate() {}

// Controller is the locomotion state machine for one character.
type Controller struct {
	cfg   Config
	deps  Collaborators
	state State

	facing mgl64.Quat
	mesh   mgl64.Quat
}

// New creates a controller at rest.
func New(cfg Config, deps Collaborators) *Controller {
	if deps.JumpEffect == nil {
		deps.JumpEffect = noopActuator{}
	}
	if deps.Parachute == nil {
		deps.Parachute = noopActuator{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	return &Controller{
		cfg:    cfg,
		deps:   deps,
		facing: mgl64.QuatIdent(),
		mesh:   mgl64.QuatIdent(),
	}
}

// Config returns the controller's tuning.
func (c *Controller) Config() Config { return c.cfg }

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// Facing returns the character's yaw orientation.
func (c *Controller) Facing() mgl64.Quat { return c.facing }

// MeshRotation returns the world orientation of the mesh, facing plus tilt.
func (c *Controller) MeshRotation() mgl64.Quat { return c.mesh }

// MeshTilt returns the mesh orientation relative to the facing.
func (c *Controller) MeshTilt() mgl64.Quat {
	return c.facing.Inverse().Mul(c.mesh)
}

// Tick advances the character by dt seconds.
func (c *Controller) Tick(dt float64, in Input) Report {
	s := &c.state
	var r Report

	if in.GlideReleased && (s.Gliding || s.WantToGlide) {
		r.GlideStopped = s.Gliding
		c.stopGlide()
	}

	wasGrounded := s.Grounded
	s.Grounded = c.deps.Ground.IsGrounded()

	c.updateInputDamping(in)
	c.smoothInput(in, dt)
	c.updateFacing(dt)

	s.CoyoteTimeCounter -= dt
	if s.Grounded {
		if s.Gliding || s.WantToGlide {
			r.GlideStopped = r.GlideStopped || s.Gliding
			c.stopGlide()
		} else if s.Jumping {
			s.Jumping = false
			c.deps.JumpEffect.Deactivate()
		}
		s.CoyoteTimeCounter = c.cfg.CoyoteTime

		if s.Velocity[1] < 0 {
			s.Velocity[1] = 0
		}
		if !wasGrounded {
			r.Landed = true
			c.publish(event.Landed)
		}
	}

	s.JumpBufferCounter -= dt
	if in.JumpPressed {
		s.JumpBufferCounter = c.cfg.JumpBufferTime
	}

	// Glide waits for the apex; the request is latched until then.
	if in.GlidePressed && !s.Grounded && s.CoyoteTimeCounter < 0 {
		s.WantToGlide = true
		c.publish(event.GlideRequested)
	}

	if s.JumpBufferCounter > 0 && s.CoyoteTimeCounter > 0 {
		c.jump()
		r.Jumped = true
	}

	if s.WantToGlide && !s.Gliding && !s.Grounded &&
		s.JumpBufferCounter < 0 && s.CoyoteTimeCounter < 0 && s.Velocity[1] < 0 {
		c.startGlide()
		r.GlideStarted = true
	}

	s.Gravity = c.selectGravity(in)
	c.integrateVertical(dt)
	s.Velocity[1] = mgl64.Clamp(s.Velocity[1], -c.cfg.TerminalVelocity, c.cfg.TerminalVelocity)

	move := physics.ToIso(s.InputMove)
	s.Velocity[0] = move.X() * c.cfg.Speed
	s.Velocity[2] = move.Z() * c.cfg.Speed

	displacement := s.Velocity.Mul(dt)
	c.deps.Mover.Move(displacement)

	r.Phase = s.Phase()
	r.Velocity = s.Velocity
	r.Displacement = displacement
	r.Gravity = s.Gravity
	r.GlideOffset = s.GlideOffset
	return r
}

// updateInputDamping picks the smoothing times for this tick by comparing
// the new stick direction with the current smoothed direction.
func (c *Controller) updateInputDamping(in Input) {
	s := &c.state
	moving := in.Move.Len() > 0

	s.DampingRot = c.cfg.InputDampingRotation
	if moving && !s.Moving {
		s.DampingMove = c.cfg.InputDampingMovementAccel
	}
	s.Moving = moving

	if !moving && s.Grounded {
		s.DampingMove = c.cfg.InputDampingMovementDecel
	}

	current := physics.Normalize(physics.ToIso(s.InputMove))
	if moving && current != (mgl64.Vec3{}) {
		wanted := physics.Normalize(physics.ToIso(physics.Flat(in.Move)))
		if wanted.Dot(current) > 0 {
			s.DampingMove = c.cfg.InputDampingMovementBasic
			if !s.Grounded {
				s.DampingMove += c.cfg.MidAirDampingMove
				s.DampingRot = c.cfg.InputDampingRotation + c.cfg.MidAirDampingRot
			}
		} else {
			s.DampingMove = c.cfg.InputDampingMovementTurn
			if !s.Grounded {
				s.DampingMove += c.cfg.MidAirDampingMove
			}
		}
	}

	if !moving && s.InputMove.Len() < idleMoveMagnitude {
		s.DampingMove = 0
	}
}

func (c *Controller) smoothInput(in Input, dt float64) {
	s := &c.state
	raw := physics.Flat(in.Move)

	rotMaxSpeed := smoothing.Unlimited
	if !s.Grounded {
		rotMaxSpeed = airborneRotMaxSpeed
	}
	s.InputRot, s.InputRotVelocity = smoothing.SmoothDampVec3(s.InputRot, raw, s.InputRotVelocity, s.DampingRot, rotMaxSpeed, dt)
	s.InputMove, s.InputMoveVelocity = smoothing.SmoothDampVec3(s.InputMove, raw, s.InputMoveVelocity, s.DampingMove, c.cfg.TurnSpeed, dt)
}

// updateFacing turns the character toward the smoothed input and tilts the
// mesh into the motion.
func (c *Controller) updateFacing(dt float64) {
	s := &c.state
	if physics.Normalize(s.InputRot) == (mgl64.Vec3{}) {
		return
	}

	target := physics.LookRotation(physics.ToIso(s.InputRot), physics.Up)
	c.facing = physics.RotateTowards(c.facing, target, c.cfg.TurnRotationSpeed*dt)

	forwardTilt := 0.0
	if !s.Gliding {
		forwardTilt = s.InputRot.Len() * c.cfg.TiltAngle
	}

	dir := physics.Normalize(s.InputRot)
	change := physics.Normalize(s.InputRotVelocity)
	sideTilt := 0.0
	if math.Abs(dir.Dot(change)) < parallelDot {
		sideTilt = s.InputRotVelocity.Len() * sideTiltScale *
			-physics.AngleDir(dir, change, physics.Up) * c.cfg.TiltAngle
	}

	tilt := physics.Euler(forwardTilt, 0, sideTilt)
	c.mesh = physics.RotateTowards(c.mesh, target.Mul(tilt), meshTurnSpeed*dt)
}

func (c *Controller) jump() {
	s := &c.state
	s.Jumping = true
	s.JumpBufferCounter = 0
	s.CoyoteTimeCounter = 0
	// Flat assignment: JumpHeight is used as the launch speed, not a height.
	s.Velocity[1] = c.cfg.JumpHeight

	c.deps.JumpEffect.Activate()
	c.publish(event.Jumped)
}

func (c *Controller) startGlide() {
	s := &c.state
	s.WantToGlide = false
	s.Gliding = true
	c.deps.Parachute.Activate()

	s.GlideOffset = -c.cfg.Gravity * c.cfg.FallMultiplier
	if c.cfg.GlideDamping > 0 {
		s.GlideOffset -= s.Velocity[1] / c.cfg.GlideDamping
	}
	c.publish(event.GlideStarted)
}

func (c *Controller) stopGlide() {
	s := &c.state
	wasGliding := s.Gliding
	s.Gliding = false
	s.WantToGlide = false
	s.GlideOffset = 0
	c.deps.Parachute.Deactivate()
	if wasGliding {
		c.publish(event.GlideStopped)
	}
}

func (c *Controller) selectGravity(in Input) GravityKind {
	s := &c.state
	switch {
	case s.Gliding:
		return GravityNone
	case s.Velocity[1] > 0 && !in.JumpHeld:
		return GravityLowJump
	case s.Velocity[1] < c.cfg.JumpVelocityFalloff:
		return GravityFall
	default:
		return GravityBasic
	}
}

// Acceleration returns the vertical acceleration for a gravity kind.
func (c *Controller) Acceleration(kind GravityKind) float64 {
	switch kind {
	case GravityLowJump:
		return c.cfg.Gravity * c.cfg.LowJumpMultiplier
	case GravityFall:
		return c.cfg.Gravity * c.cfg.FallMultiplier
	case GravityNone:
		return 0
	default:
		return c.cfg.Gravity
	}
}

func (c *Controller) integrateVertical(dt float64) {
	s := &c.state
	if s.Gliding {
		vy, glideVel := spring.Step(s.Velocity[1], s.GlideVelocity, -c.cfg.GlideDrag,
			dt, c.cfg.GlideSpringFrequency, c.cfg.GlideDamping)
		s.Velocity[1] = physics.Round(vy, glideDecimals)
		s.GlideVelocity = glideVel
		return
	}
	s.Velocity[1] += c.Acceleration(s.Gravity) * dt
}

func (c *Controller) publish(t event.Type) {
	s := &c.state
	c.deps.Logger.Debug(context.Background(), "locomotion transition",
		"event", string(t),
		"phase", s.Phase().String(),
		"velocity_y", s.Velocity[1],
	)
	if c.deps.Events != nil {
		c.deps.Events.Publish(event.NewLocomotionEvent(t, c, s.Phase().String(), s.Velocity))
	}
}
