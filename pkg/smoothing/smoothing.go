// Package smoothing provides critically damped exponential easing driven by a
// smoothing time constant.
//
// The functions use the rational approximation of exp(-x) from Game
// Programming Gems 4 (ch. 1.10), which is cheap and stable for any step size.
// Callers own the velocity state and pass it back on every call.
package smoothing

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MinSmoothTime is the smallest smoothing time accepted; shorter values are
// raised to it.
const MinSmoothTime = 1e-4

// Unlimited disables the max-speed clamp.
var Unlimited = math.Inf(1)

func decay(smoothTime, deltaTime float64) (omega, exp float64) {
	omega = 2 / smoothTime
	x := omega * deltaTime
	exp = 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	return omega, exp
}

// SmoothDamp moves current toward target over roughly smoothTime seconds
// without overshooting. The change per call is limited to maxSpeed *
// smoothTime. It returns the new value and velocity.
func SmoothDamp(current, target, velocity, smoothTime, maxSpeed, deltaTime float64) (float64, float64) {
	smoothTime = math.Max(MinSmoothTime, smoothTime)
	omega, exp := decay(smoothTime, deltaTime)

	goal := target
	maxChange := maxSpeed * smoothTime
	change := mgl64.Clamp(current-target, -maxChange, maxChange)
	target = current - change

	temp := (velocity + omega*change) * deltaTime
	velocity = (velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// Never overshoot the requested target.
	if (goal-current > 0) == (output > goal) {
		return goal, 0
	}
	return output, velocity
}

// SmoothDampVec3 is SmoothDamp for 3D vectors. The max-speed clamp applies to
// the length of the change.
func SmoothDampVec3(current, target, velocity mgl64.Vec3, smoothTime, maxSpeed, deltaTime float64) (mgl64.Vec3, mgl64.Vec3) {
	smoothTime = math.Max(MinSmoothTime, smoothTime)
	omega, exp := decay(smoothTime, deltaTime)

	goal := target
	change := current.Sub(target)

	maxChange := maxSpeed * smoothTime
	if sqr := change.LenSqr(); sqr > maxChange*maxChange {
		change = change.Mul(maxChange / math.Sqrt(sqr))
	}
	target = current.Sub(change)

	temp := velocity.Add(change.Mul(omega)).Mul(deltaTime)
	velocity = velocity.Sub(temp.Mul(omega)).Mul(exp)
	output := target.Add(change.Add(temp).Mul(exp))

	if goal.Sub(current).Dot(output.Sub(goal)) > 0 {
		return goal, mgl64.Vec3{}
	}
	return output, velocity
}

// SmoothDampAngle eases an angle in degrees along the shortest arc.
func SmoothDampAngle(current, target, velocity, smoothTime, maxSpeed, deltaTime float64) (float64, float64) {
	target = current + DeltaAngle(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, maxSpeed, deltaTime)
}

// DeltaAngle returns the shortest signed difference between two angles in
// degrees, in (-180, 180].
func DeltaAngle(current, target float64) float64 {
	delta := repeat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

func repeat(t, length float64) float64 {
	return mgl64.Clamp(t-math.Floor(t/length)*length, 0, length)
}
