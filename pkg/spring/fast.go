package spring

import "github.com/go-gl/mathgl/mgl64"

// StepFast advances a spring with one explicit Euler step. It skips the
// branch selection and input clamping of ComputeParams, so it is cheaper but
// only stable for small time steps and moderate frequencies. The damping term
// is applied per call, not per second.
func StepFast(position, velocity, equilibrium, deltaTime, angularFrequency, dampingRatio float64) (float64, float64) {
	x := position - equilibrium
	velocity += -dampingRatio*velocity - angularFrequency*x
	position += velocity * deltaTime
	return position, velocity
}

// StepFast2 is StepFast for 2D values.
func StepFast2(position, velocity, equilibrium mgl64.Vec2, deltaTime, angularFrequency, dampingRatio float64) (mgl64.Vec2, mgl64.Vec2) {
	x := position.Sub(equilibrium)
	velocity = velocity.Add(velocity.Mul(-dampingRatio).Sub(x.Mul(angularFrequency)))
	position = position.Add(velocity.Mul(deltaTime))
	return position, velocity
}

// StepFast3 is StepFast for 3D values.
func StepFast3(position, velocity, equilibrium mgl64.Vec3, deltaTime, angularFrequency, dampingRatio float64) (mgl64.Vec3, mgl64.Vec3) {
	x := position.Sub(equilibrium)
	velocity = velocity.Add(velocity.Mul(-dampingRatio).Sub(x.Mul(angularFrequency)))
	position = position.Add(velocity.Mul(deltaTime))
	return position, velocity
}
