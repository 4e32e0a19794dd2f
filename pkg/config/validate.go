package config

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError describes one out-of-range setting.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (%v): %s", e.Field, e.Value, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

type validator struct {
	errs []error
}

func (v *validator) fail(field string, value interface{}, format string, args ...interface{}) {
	v.errs = append(v.errs, &ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) finite(field string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		v.fail(field, value, "must be finite")
		return false
	}
	return true
}

func (v *validator) nonNegative(field string, value float64) {
	if v.finite(field, value) && value < 0 {
		v.fail(field, value, "must not be negative")
	}
}

func (v *validator) positive(field string, value float64) {
	if v.finite(field, value) && value <= 0 {
		v.fail(field, value, "must be positive")
	}
}

func (v *validator) inRange(field string, value, min, max float64) {
	if v.finite(field, value) && (value < min || value > max) {
		v.fail(field, value, "must be within [%g, %g]", min, max)
	}
}

// Validate checks every setting and reports all violations at once. Each
// violation is a *ValidationError wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	v := &validator{}

	l := c.Config
	v.nonNegative("speed", l.Speed)
	v.positive("turnSpeed", l.TurnSpeed)
	v.nonNegative("turnRotationSpeed", l.TurnRotationSpeed)
	v.inRange("tiltAngle", l.TiltAngle, -90, 90)
	if v.finite("gravity", l.Gravity) && l.Gravity > 0 {
		v.fail("gravity", l.Gravity, "must point down (zero or negative)")
	}
	v.nonNegative("glideDrag", l.GlideDrag)
	v.positive("terminalVelocity", l.TerminalVelocity)
	v.nonNegative("jumpHeight", l.JumpHeight)
	v.finite("jumpVelocityFalloff", l.JumpVelocityFalloff)
	v.nonNegative("fallMultiplier", l.FallMultiplier)
	v.nonNegative("lowJumpMultiplier", l.LowJumpMultiplier)
	v.nonNegative("jumpBufferTime", l.JumpBufferTime)
	v.nonNegative("coyoteTime", l.CoyoteTime)
	v.nonNegative("inputDampingRotation", l.InputDampingRotation)
	v.nonNegative("inputDampingMovementBasic", l.InputDampingMovementBasic)
	v.nonNegative("inputDampingMovementAccel", l.InputDampingMovementAccel)
	v.nonNegative("inputDampingMovementDecel", l.InputDampingMovementDecel)
	v.nonNegative("inputDampingMovementTurn", l.InputDampingMovementTurn)
	v.nonNegative("midAirDampingMove", l.MidAirDampingMove)
	v.nonNegative("midAirDampingRot", l.MidAirDampingRot)
	v.nonNegative("glideDamping", l.GlideDamping)
	v.nonNegative("glideSpringFrequency", l.GlideSpringFrequency)

	s := c.JumpSquash
	v.inRange("jumpSquash.dampingJump", s.DampingJump, 0, 1)
	v.inRange("jumpSquash.frequencyJump", s.FrequencyJump, 0, 100)
	v.inRange("jumpSquash.dampingLand", s.DampingLand, 0, 1)
	v.inRange("jumpSquash.frequencyLand", s.FrequencyLand, 0, 100)

	p := c.Parachute
	v.nonNegative("parachute.rotationDamping", p.RotationDamping)
	v.inRange("parachute.scaleDamping", p.ScaleDamping, 0, 1)
	v.inRange("parachute.scaleStiffness", p.ScaleStiffness, 0, 100)

	v.nonNegative("camera.smoothTime", c.Camera.SmoothTime)

	a := c.Arena
	v.positive("arena.width", a.Width)
	v.positive("arena.height", a.Height)
	v.positive("arena.pixelsPerUnit", a.PixelsPerUnit)
	if a.CellSize < 1 {
		v.fail("arena.cellSize", a.CellSize, "must be at least 1")
	}
	v.positive("arena.bodyWidth", a.BodyWidth)
	v.positive("arena.bodyHeight", a.BodyHeight)

	if c.TickRate < 1 || c.TickRate > 1000 {
		v.fail("tickRate", c.TickRate, "must be within [1, 1000]")
	}

	return errors.Join(v.errs...)
}
