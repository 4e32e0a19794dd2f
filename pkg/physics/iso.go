// Package physics holds the vector and rotation helpers shared by the motion
// packages: the isometric change of basis, Unity-style quaternion helpers and
// a few scalar utilities.
//
// World space is Y-up. Horizontal input is carried in the XZ plane with Y=0.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// IsoAngle is the yaw, in degrees, of the isometric camera relative to the
// world axes.
const IsoAngle = 45.0

// Basis vectors.
var (
	Up      = mgl64.Vec3{0, 1, 0}
	Right   = mgl64.Vec3{1, 0, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

var isoMatrix = mgl64.Rotate3DY(mgl64.DegToRad(IsoAngle))

// ToIso rotates v by IsoAngle about the up axis so that screen-aligned input
// maps onto world axes.
func ToIso(v mgl64.Vec3) mgl64.Vec3 {
	return isoMatrix.Mul3x1(v)
}

// FromIso is the inverse of ToIso.
func FromIso(v mgl64.Vec3) mgl64.Vec3 {
	return isoMatrix.Transpose().Mul3x1(v)
}

// Flat lifts a 2D stick value into the XZ plane.
func Flat(v mgl64.Vec2) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[1]}
}

// normalizeEpsilon matches the threshold below which a vector is treated as
// having no direction.
const normalizeEpsilon = 1e-5

// Normalize returns v scaled to unit length, or the zero vector when v is too
// short to have a direction.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l <= normalizeEpsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// ClampMagnitude limits the length of v to maxLength.
func ClampMagnitude(v mgl64.Vec3, maxLength float64) mgl64.Vec3 {
	if sqr := v.LenSqr(); sqr > maxLength*maxLength {
		return v.Mul(maxLength / math.Sqrt(sqr))
	}
	return v
}

// Round rounds v to the given number of decimal digits.
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// AngleDir reports which side of fwd the target direction lies on, as seen
// from up: 1 for right, -1 for left, 0 when aligned.
func AngleDir(fwd, target, up mgl64.Vec3) float64 {
	right := up.Cross(fwd)
	dir := right.Dot(target)
	switch {
	case dir > 0:
		return 1
	case dir < 0:
		return -1
	default:
		return 0
	}
}
