// Package spring integrates damped harmonic oscillators in closed form.
//
// The solver computes, for a time step, angular frequency and damping ratio,
// the 2x2 linear map that advances a (position, velocity) pair exactly. The
// same map is valid for every axis that shares those three inputs, so vector
// variants reuse one MotionParams per call.
//
// Derivation follows Ryan Juckett's "Damped Springs" article
// (https://www.ryanjuckett.com/damped-springs/).
package spring

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon separates the critically damped branch from the over- and
// under-damped ones and marks the degenerate (zero frequency) case.
const Epsilon = 1e-4

// MotionParams is the linear map that advances a spring by one step.
//
//	newPos = PosPos*oldPos + PosVel*oldVel
//	newVel = VelPos*oldPos + VelVel*oldVel
//
// oldPos is measured relative to the equilibrium position.
type MotionParams struct {
	PosPos, PosVel float64
	VelPos, VelVel float64
}

// Identity returns the map that leaves position and velocity untouched.
func Identity() MotionParams {
	return MotionParams{PosPos: 1, VelVel: 1}
}

// ComputeParams returns the motion parameters for advancing a spring by
// deltaTime seconds. Negative frequencies and damping ratios are clamped to
// zero. The function is total: every input produces a finite map.
func ComputeParams(deltaTime, angularFrequency, dampingRatio float64) MotionParams {
	dampingRatio = math.Max(0, dampingRatio)
	angularFrequency = math.Max(0, angularFrequency)

	// No restoring force.
	if angularFrequency < Epsilon {
		return Identity()
	}

	switch {
	case dampingRatio > 1+Epsilon:
		return overDamped(deltaTime, angularFrequency, dampingRatio)
	case dampingRatio < 1-Epsilon:
		return underDamped(deltaTime, angularFrequency, dampingRatio)
	default:
		return criticallyDamped(deltaTime, angularFrequency)
	}
}

func overDamped(dt, omega, zeta float64) MotionParams {
	za := -omega * zeta
	zb := omega * math.Sqrt(zeta*zeta-1)
	z1 := za - zb
	z2 := za + zb

	e1 := math.Exp(z1 * dt)
	e2 := math.Exp(z2 * dt)

	// 1 / (z2 - z1)
	invTwoZb := 1 / (2 * zb)

	e1OverTwoZb := e1 * invTwoZb
	e2OverTwoZb := e2 * invTwoZb

	z1e1OverTwoZb := z1 * e1OverTwoZb
	z2e2OverTwoZb := z2 * e2OverTwoZb

	return MotionParams{
		PosPos: e1OverTwoZb*z2 - z2e2OverTwoZb + e2,
		PosVel: -e1OverTwoZb + e2OverTwoZb,
		VelPos: (z1e1OverTwoZb - z2e2OverTwoZb + e2) * z2,
		VelVel: -z1e1OverTwoZb + z2e2OverTwoZb,
	}
}

func underDamped(dt, omega, zeta float64) MotionParams {
	omegaZeta := omega * zeta
	alpha := omega * math.Sqrt(1-zeta*zeta)

	expTerm := math.Exp(-omegaZeta * dt)
	sinTerm, cosTerm := math.Sincos(alpha * dt)

	invAlpha := 1 / alpha

	expSin := expTerm * sinTerm
	expCos := expTerm * cosTerm
	expOmegaZetaSinOverAlpha := expTerm * omegaZeta * sinTerm * invAlpha

	return MotionParams{
		PosPos: expCos + expOmegaZetaSinOverAlpha,
		PosVel: expSin * invAlpha,
		VelPos: -expSin*alpha - omegaZeta*expOmegaZetaSinOverAlpha,
		VelVel: expCos - expOmegaZetaSinOverAlpha,
	}
}

func criticallyDamped(dt, omega float64) MotionParams {
	expTerm := math.Exp(-omega * dt)
	timeExp := dt * expTerm
	timeExpFreq := timeExp * omega

	return MotionParams{
		PosPos: timeExpFreq + expTerm,
		PosVel: timeExp,
		VelPos: -omega * timeExpFreq,
		VelVel: -timeExpFreq + expTerm,
	}
}

// Apply advances one scalar spring toward equilibrium using p.
func Apply(position, velocity, equilibrium float64, p MotionParams) (float64, float64) {
	oldPos := position - equilibrium
	oldVel := velocity

	newPos := oldPos*p.PosPos + oldVel*p.PosVel + equilibrium
	newVel := oldPos*p.VelPos + oldVel*p.VelVel
	return newPos, newVel
}

// Apply2 advances each axis of a 2D spring with the shared params.
func Apply2(position, velocity, equilibrium mgl64.Vec2, p MotionParams) (mgl64.Vec2, mgl64.Vec2) {
	var pos, vel mgl64.Vec2
	for i := range pos {
		pos[i], vel[i] = Apply(position[i], velocity[i], equilibrium[i], p)
	}
	return pos, vel
}

// Apply3 advances each axis of a 3D spring with the shared params.
func Apply3(position, velocity, equilibrium mgl64.Vec3, p MotionParams) (mgl64.Vec3, mgl64.Vec3) {
	var pos, vel mgl64.Vec3
	for i := range pos {
		pos[i], vel[i] = Apply(position[i], velocity[i], equilibrium[i], p)
	}
	return pos, vel
}

// Step computes params and applies them in one call.
func Step(position, velocity, equilibrium, deltaTime, angularFrequency, dampingRatio float64) (float64, float64) {
	return Apply(position, velocity, equilibrium, ComputeParams(deltaTime, angularFrequency, dampingRatio))
}

// Step2 is Step for 2D values.
func Step2(position, velocity, equilibrium mgl64.Vec2, deltaTime, angularFrequency, dampingRatio float64) (mgl64.Vec2, mgl64.Vec2) {
	return Apply2(position, velocity, equilibrium, ComputeParams(deltaTime, angularFrequency, dampingRatio))
}

// Step3 is Step for 3D values.
func Step3(position, velocity, equilibrium mgl64.Vec3, deltaTime, angularFrequency, dampingRatio float64) (mgl64.Vec3, mgl64.Vec3) {
	return Apply3(position, velocity, equilibrium, ComputeParams(deltaTime, angularFrequency, dampingRatio))
}
