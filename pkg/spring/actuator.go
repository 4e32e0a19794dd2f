package spring

import "github.com/go-gl/mathgl/mgl64"

// Target receives the actuator's value after every update. Transforms,
// scale handles and render components implement it.
type Target interface {
	SetValue(v mgl64.Vec3)
}

// Actuator is a stateful 3D spring that drives a Target toward a goal.
// Damping is the damping ratio and Stiffness the angular frequency; range
// checks belong to configuration validation.
type Actuator struct {
	Damping   float64
	Stiffness float64

	position mgl64.Vec3
	velocity mgl64.Vec3
	goal     mgl64.Vec3
	target   Target
}

// NewActuator creates an actuator resting at initial with the goal set to
// the same value.
func NewActuator(initial mgl64.Vec3, damping, stiffness float64) *Actuator {
	return &Actuator{
		Damping:   damping,
		Stiffness: stiffness,
		position:  initial,
		goal:      initial,
	}
}

// Bind attaches the target that receives values and pushes the current value
// to it immediately.
func (a *Actuator) Bind(t Target) {
	a.target = t
	if t != nil {
		t.SetValue(a.position)
	}
}

// SpringTo replaces the goal. Position and velocity are kept so the spring
// carries its momentum into the new target.
func (a *Actuator) SpringTo(goal mgl64.Vec3) {
	a.goal = goal
}

// Nudge adds a one-shot velocity impulse. The goal is unchanged, so the value
// swings away and settles back.
func (a *Actuator) Nudge(impulse mgl64.Vec3) {
	a.velocity = a.velocity.Add(impulse)
}

// Update advances the spring by dt seconds and pushes the new value to the
// bound target.
func (a *Actuator) Update(dt float64) {
	params := ComputeParams(dt, a.Stiffness, a.Damping)
	a.position, a.velocity = Apply3(a.position, a.velocity, a.goal, params)
	if a.target != nil {
		a.target.SetValue(a.position)
	}
}

// Value returns the current position.
func (a *Actuator) Value() mgl64.Vec3 { return a.position }

// Velocity returns the current velocity.
func (a *Actuator) Velocity() mgl64.Vec3 { return a.velocity }

// Goal returns the current goal.
func (a *Actuator) Goal() mgl64.Vec3 { return a.goal }

// Settled reports whether the spring is within eps of its goal and nearly at
// rest.
func (a *Actuator) Settled(eps float64) bool {
	return a.position.Sub(a.goal).Len() <= eps && a.velocity.Len() <= eps
}
