// Package camera keeps a camera trailing a moving target at a fixed offset.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/smoothing"
)

// Follow eases a camera position toward target + offset. The offset is the
// separation between camera and target at the moment Follow was created.
type Follow struct {
	position   mgl64.Vec3
	velocity   mgl64.Vec3
	offset     mgl64.Vec3
	smoothTime float64
}

// NewFollow captures the offset between camera and target.
func NewFollow(camera, target mgl64.Vec3, smoothTime float64) *Follow {
	return &Follow{
		position:   camera,
		offset:     camera.Sub(target),
		smoothTime: smoothTime,
	}
}

// Update moves the camera toward the target's new position and returns the
// camera position. Call it after the target has moved for the frame.
func (f *Follow) Update(target mgl64.Vec3, dt float64) mgl64.Vec3 {
	goal := target.Add(f.offset)
	f.position, f.velocity = smoothing.SmoothDampVec3(f.position, goal, f.velocity, f.smoothTime, smoothing.Unlimited, dt)
	return f.position
}

// Position returns the current camera position.
func (f *Follow) Position() mgl64.Vec3 { return f.position }

// Offset returns the captured camera offset.
func (f *Follow) Offset() mgl64.Vec3 { return f.offset }

// SetSmoothTime changes the follow lag.
func (f *Follow) SetSmoothTime(smoothTime float64) { f.smoothTime = smoothTime }

// SmoothTime returns the follow lag.
func (f *Follow) SmoothTime() float64 { return f.smoothTime }

// Snap jumps the camera to its goal for target and clears its velocity.
func (f *Follow) Snap(target mgl64.Vec3) {
	f.position = target.Add(f.offset)
	f.velocity = mgl64.Vec3{}
}
