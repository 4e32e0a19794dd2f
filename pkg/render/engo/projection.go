package engo

import (
	"math"

	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/physics"
)

// cameraPitch is the elevation of the isometric camera in degrees.
const cameraPitch = 30.0

var pitchSin, pitchCos = math.Sincos(mgl64.DegToRad(cameraPitch))

// Project maps a world position to screen pixels for the isometric camera.
// Screen X grows right and screen Y grows down.
func Project(p mgl64.Vec3, pixelsPerUnit float64) engo.Point {
	q := physics.FromIso(p)
	x := q.X() * pixelsPerUnit
	y := -(q.Z()*pitchSin + p.Y()*pitchCos) * pixelsPerUnit
	return engo.Point{X: float32(x), Y: float32(y)}
}
