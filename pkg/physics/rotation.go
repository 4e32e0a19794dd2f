package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LookRotation returns the rotation whose local +Z points along forward and
// whose local +Y is as close to up as possible. A zero forward yields the
// identity.
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	f := Normalize(forward)
	if f == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}

	r := Normalize(up.Cross(f))
	if r == (mgl64.Vec3{}) {
		// forward is parallel to up
		return mgl64.QuatBetweenVectors(Forward, f)
	}
	u := f.Cross(r)

	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(r, u, f).Mat4()).Normalize()
}

// QuatAngle returns the angle in degrees between two orientations.
func QuatAngle(a, b mgl64.Quat) float64 {
	dot := math.Min(math.Abs(a.Normalize().Dot(b.Normalize())), 1)
	if dot > 1-1e-9 {
		return 0
	}
	return mgl64.RadToDeg(2 * math.Acos(dot))
}

// RotateTowards rotates from toward to by at most maxDegrees.
func RotateTowards(from, to mgl64.Quat, maxDegrees float64) mgl64.Quat {
	angle := QuatAngle(from, to)
	if angle == 0 {
		return to
	}
	return mgl64.QuatSlerp(from, to, math.Min(1, maxDegrees/angle))
}

// Euler builds a rotation from angles in degrees, applied about Z, then X,
// then Y.
func Euler(x, y, z float64) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(x), Right)
	qy := mgl64.QuatRotate(mgl64.DegToRad(y), Up)
	qz := mgl64.QuatRotate(mgl64.DegToRad(z), Forward)
	return qy.Mul(qx).Mul(qz)
}
