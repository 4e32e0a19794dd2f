package effects

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/physics"
	"github.com/opd-ai/isoglide/pkg/smoothing"
	"github.com/opd-ai/isoglide/pkg/spring"
)

// ParachuteConfig tunes the parachute.
type ParachuteConfig struct {
	GoalScale mgl64.Vec3 `json:"goalScale" toml:"goalScale"`
	// RotationDamping is the smoothing time used to ease the canopy toward
	// the mesh tilt.
	RotationDamping float64 `json:"rotationDamping" toml:"rotationDamping"`
	ScaleDamping    float64 `json:"scaleDamping" toml:"scaleDamping"`
	ScaleStiffness  float64 `json:"scaleStiffness" toml:"scaleStiffness"`
}

// DefaultParachuteConfig returns the demo parachute.
func DefaultParachuteConfig() ParachuteConfig {
	return ParachuteConfig{
		GoalScale:       mgl64.Vec3{1, 1, 1},
		RotationDamping: 0.2,
		ScaleDamping:    0.5,
		ScaleStiffness:  10,
	}
}

// Parachute springs its canopy open while active and folds it away when
// deactivated. While open, its rotation trails the character's mesh tilt.
type Parachute struct {
	cfg    ParachuteConfig
	active bool

	scale       *spring.Actuator
	rotation    mgl64.Quat
	rotVelocity float64
}

// NewParachute creates a folded parachute.
func NewParachute(cfg ParachuteConfig) *Parachute {
	return &Parachute{
		cfg:      cfg,
		scale:    spring.NewActuator(mgl64.Vec3{}, cfg.ScaleDamping, cfg.ScaleStiffness),
		rotation: mgl64.QuatIdent(),
	}
}

// Bind attaches the scale target.
func (p *Parachute) Bind(t spring.Target) { p.scale.Bind(t) }

// Activate opens the canopy.
func (p *Parachute) Activate() {
	p.active = true
	p.scale.SpringTo(p.cfg.GoalScale)
}

// Deactivate folds the canopy.
func (p *Parachute) Deactivate() {
	p.active = false
	p.scale.SpringTo(mgl64.Vec3{})
}

// Active reports whether the canopy is open or opening.
func (p *Parachute) Active() bool { return p.active }

// Update advances the scale spring and eases the rotation toward meshTilt
// while active, or back to identity otherwise.
func (p *Parachute) Update(dt float64, meshTilt mgl64.Quat) {
	p.scale.Update(dt)

	target := mgl64.QuatIdent()
	if p.active {
		target = meshTilt
	}

	delta := physics.QuatAngle(p.rotation, target)
	if delta <= 0 {
		return
	}
	var remaining float64
	remaining, p.rotVelocity = smoothing.SmoothDampAngle(delta, 0, p.rotVelocity, p.cfg.RotationDamping, smoothing.Unlimited, dt)
	p.rotation = mgl64.QuatSlerp(p.rotation, target, 1-remaining/delta)
}

// Scale returns the canopy scale.
func (p *Parachute) Scale() mgl64.Vec3 { return p.scale.Value() }

// Rotation returns the canopy rotation relative to the character.
func (p *Parachute) Rotation() mgl64.Quat { return p.rotation }
