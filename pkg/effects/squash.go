// Package effects implements the cosmetic actuators the locomotion controller
// notifies: a squash-and-stretch spring on the character mesh and the
// parachute that opens while gliding.
package effects

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/spring"
)

// SquashConfig tunes the jump and landing squash. Damping values are damping
// ratios in [0,1]; frequencies are angular frequencies in [0,100].
type SquashConfig struct {
	ScaleJump     mgl64.Vec3 `json:"scaleJump" toml:"scaleJump"`
	DampingJump   float64    `json:"dampingJump" toml:"dampingJump"`
	FrequencyJump float64    `json:"frequencyJump" toml:"frequencyJump"`

	ScaleLand     mgl64.Vec3 `json:"scaleLand" toml:"scaleLand"`
	DampingLand   float64    `json:"dampingLand" toml:"dampingLand"`
	FrequencyLand float64    `json:"frequencyLand" toml:"frequencyLand"`
}

// DefaultSquashConfig stretches the mesh upward on takeoff and flattens it on
// landing.
func DefaultSquashConfig() SquashConfig {
	return SquashConfig{
		ScaleJump:     mgl64.Vec3{-2, 4, -2},
		DampingJump:   0.3,
		FrequencyJump: 20,
		ScaleLand:     mgl64.Vec3{3, -4, 3},
		DampingLand:   0.25,
		FrequencyLand: 25,
	}
}

// JumpSquash nudges a scale spring when the character jumps and lands. The
// spring always rests at unit scale; only its velocity is kicked.
type JumpSquash struct {
	cfg    SquashConfig
	spring *spring.Actuator
}

// NewJumpSquash creates a squash effect resting at unit scale.
func NewJumpSquash(cfg SquashConfig) *JumpSquash {
	return &JumpSquash{
		cfg:    cfg,
		spring: spring.NewActuator(mgl64.Vec3{1, 1, 1}, cfg.DampingLand, cfg.FrequencyLand),
	}
}

// Bind attaches the scale target.
func (j *JumpSquash) Bind(t spring.Target) { j.spring.Bind(t) }

// Activate plays the takeoff stretch.
func (j *JumpSquash) Activate() {
	j.spring.Damping = j.cfg.DampingJump
	j.spring.Stiffness = j.cfg.FrequencyJump
	j.spring.Nudge(j.cfg.ScaleJump)
}

// Deactivate plays the landing squash.
func (j *JumpSquash) Deactivate() {
	j.spring.Damping = j.cfg.DampingLand
	j.spring.Stiffness = j.cfg.FrequencyLand
	j.spring.Nudge(j.cfg.ScaleLand)
}

// Update advances the spring.
func (j *JumpSquash) Update(dt float64) { j.spring.Update(dt) }

// Scale returns the current mesh scale.
func (j *JumpSquash) Scale() mgl64.Vec3 { return j.spring.Value() }
