package engo

import (
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"
)

type recordingSink struct {
	moves []engo.Point
	zooms []float32
}

func (r *recordingSink) MoveTo(x, y float32) { r.moves = append(r.moves, engo.Point{X: x, Y: y}) }
func (r *recordingSink) Zoom(zoom float32)   { r.zooms = append(r.zooms, zoom) }

func fixedFocus(p mgl64.Vec3) func() mgl64.Vec3 {
	return func() mgl64.Vec3 { return p }
}

func TestNewCameraSystem(t *testing.T) {
	focus := mgl64.Vec3{0, 2, 0}
	cs := NewCameraSystem(fixedFocus(focus), nil, nil, 10)

	if cs.GetZoom() != 1.0 {
		t.Errorf("expected initial zoom 1.0, got %f", cs.GetZoom())
	}
	min, max := cs.GetZoomLimits()
	if min != 0.25 || max != 4.0 {
		t.Errorf("expected zoom limits [0.25, 4], got [%f, %f]", min, max)
	}
	if cs.Center() != Project(focus, 10) {
		t.Errorf("initial center = %v, want %v", cs.Center(), Project(focus, 10))
	}
}

func TestCameraSystem_clampZoom(t *testing.T) {
	cs := NewCameraSystem(fixedFocus(mgl64.Vec3{}), nil, nil, 10)

	testCases := []struct {
		name     string
		input    float32
		expected float32
	}{
		{"ValidZoom", 1.5, 1.5},
		{"BelowMin", 0.1, 0.25},
		{"AboveMax", 5.0, 4.0},
		{"ExactMin", 0.25, 0.25},
		{"ExactMax", 4.0, 4.0},
		{"NegativeZoom", -1.0, 0.25},
		{"ZeroZoom", 0.0, 0.25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cs.SetZoom(tc.input)
			if got := cs.GetZoom(); got != tc.expected {
				t.Errorf("SetZoom(%f) left zoom %f, want %f", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCameraSystem_ZoomLimits(t *testing.T) {
	cs := NewCameraSystem(fixedFocus(mgl64.Vec3{}), nil, nil, 10)
	cs.SetZoom(3.0)
	cs.SetZoomLimits(0.5, 2.0)

	if cs.GetZoom() != 2.0 {
		t.Errorf("zoom should be clamped into the new limits, got %f", cs.GetZoom())
	}
}

func TestCameraSystem_ZoomInput(t *testing.T) {
	tests := []struct {
		name   string
		button string
		check  func(zoom float32) bool
	}{
		{"zoom in", ButtonZoomIn, func(z float32) bool { return z > 1 }},
		{"zoom out", ButtonZoomOut, func(z float32) bool { return z < 1 }},
		{"reset", ButtonResetZoom, func(z float32) bool { return z == 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeInput()
			src.press(tt.button)
			cs := NewCameraSystem(fixedFocus(mgl64.Vec3{}), src, nil, 10)
			if tt.button == ButtonResetZoom {
				cs.SetZoom(2)
			}

			cs.Update(1.0 / 60)
			if !tt.check(cs.GetZoom()) {
				t.Errorf("zoom after %s = %f", tt.button, cs.GetZoom())
			}
		})
	}
}

func TestCameraSystem_UpdateFollowsFocus(t *testing.T) {
	focus := mgl64.Vec3{}
	sink := &recordingSink{}
	cs := NewCameraSystem(func() mgl64.Vec3 { return focus }, nil, sink, 10)

	focus = mgl64.Vec3{1, 0, -1}
	cs.Update(1.0 / 60)
	focus = mgl64.Vec3{2, 1, -2}
	cs.Update(1.0 / 60)

	if len(sink.moves) != 2 || len(sink.zooms) != 2 {
		t.Fatalf("sink got %d moves and %d zooms, want 2 each", len(sink.moves), len(sink.zooms))
	}
	if want := Project(focus, 10); sink.moves[1] != want {
		t.Errorf("last move = %v, want %v", sink.moves[1], want)
	}
	if sink.zooms[1] != 1 {
		t.Errorf("zoom sent = %f, want 1", sink.zooms[1])
	}
}

func TestCameraSystem_WorldToScreen(t *testing.T) {
	focus := mgl64.Vec3{3, 1, 2}
	cs := NewCameraSystem(fixedFocus(focus), nil, nil, 10)

	center := cs.WorldToScreen(focus, 800, 600)
	if !approxEqual32(center.X, 400, 1e-3) || !approxEqual32(center.Y, 300, 1e-3) {
		t.Errorf("focus should map to the view center, got %v", center)
	}

	cs.SetZoom(2)
	above := cs.WorldToScreen(focus.Add(mgl64.Vec3{0, 1, 0}), 800, 600)
	if want := 300 - float32(2*10*pitchCos); !approxEqual32(above.Y, want, 1e-3) {
		t.Errorf("one unit above focus at zoom 2: y = %f, want %f", above.Y, want)
	}
}

func TestCameraSystem_ECSInterface(t *testing.T) {
	cs := NewCameraSystem(fixedFocus(mgl64.Vec3{}), nil, nil, 10)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Remove method panicked: %v", r)
		}
	}()

	var mockEntity ecs.BasicEntity
	cs.Remove(mockEntity)

	var _ ecs.System = cs
}
