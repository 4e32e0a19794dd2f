// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraSink receives the camera transform each frame.
type CameraSink interface {
	MoveTo(x, y float32)
	Zoom(zoom float32)
}

// MailboxCamera forwards camera updates to engo's camera system.
type MailboxCamera struct{}

// MoveTo centers the engo camera on a screen point.
func (MailboxCamera) MoveTo(x, y float32) {
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.XAxis, Value: x})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.YAxis, Value: y})
}

// Zoom sets the absolute engo camera distance.
func (MailboxCamera) Zoom(zoom float32) {
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.ZAxis, Value: 1 / zoom})
}

// CameraSystem centers the view on a world point supplied each frame,
// usually the look-at point of the simulation's follow rig.
type CameraSystem struct {
	focus func() mgl64.Vec3
	input InputSource
	sink  CameraSink

	pixelsPerUnit float64

	// Camera properties
	zoom    float32
	minZoom float32
	maxZoom float32

	// Current view center in screen pixels
	center engo.Point
}

// NewCameraSystem creates a camera system that tracks focus every frame.
// input and sink may be nil.
func NewCameraSystem(focus func() mgl64.Vec3, input InputSource, sink CameraSink, pixelsPerUnit float64) *CameraSystem {
	cs := &CameraSystem{
		focus:         focus,
		input:         input,
		sink:          sink,
		pixelsPerUnit: pixelsPerUnit,
		zoom:          1.0,
		minZoom:       0.25,
		maxZoom:       4.0,
	}
	cs.center = Project(focus(), pixelsPerUnit)
	return cs
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update reads the focus point and pushes the view to the sink.
func (cs *CameraSystem) Update(dt float32) {
	if cs.input != nil {
		cs.handleZoomInput()
	}

	cs.center = Project(cs.focus(), cs.pixelsPerUnit)

	if cs.sink != nil {
		cs.sink.MoveTo(cs.center.X, cs.center.Y)
		cs.sink.Zoom(cs.zoom)
	}
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	if cs.input.Down(ButtonZoomIn) {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if cs.input.Down(ButtonZoomOut) {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if cs.input.JustPressed(ButtonResetZoom) {
		cs.SetZoom(1.0)
	}
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// SetZoomLimits sets the minimum and maximum zoom levels
func (cs *CameraSystem) SetZoomLimits(min, max float32) {
	cs.minZoom = min
	cs.maxZoom = max
	cs.zoom = cs.clampZoom(cs.zoom)
}

// GetZoomLimits returns the current zoom limits
func (cs *CameraSystem) GetZoomLimits() (float32, float32) {
	return cs.minZoom, cs.maxZoom
}

// Center returns the current view center in screen pixels.
func (cs *CameraSystem) Center() engo.Point {
	return cs.center
}

// WorldToScreen converts a world position to window coordinates.
func (cs *CameraSystem) WorldToScreen(p mgl64.Vec3, viewWidth, viewHeight float32) engo.Point {
	s := Project(p, cs.pixelsPerUnit)
	return engo.Point{
		X: (s.X-cs.center.X)*cs.zoom + viewWidth/2,
		Y: (s.Y-cs.center.Y)*cs.zoom + viewHeight/2,
	}
}
