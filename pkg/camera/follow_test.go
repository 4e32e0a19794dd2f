package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewFollow_CapturesOffset(t *testing.T) {
	f := NewFollow(mgl64.Vec3{10, 12, -10}, mgl64.Vec3{1, 0, 1}, 0.3)

	want := mgl64.Vec3{9, 12, -11}
	if f.Offset() != want {
		t.Errorf("offset = %v, want %v", f.Offset(), want)
	}
	if f.Position() != (mgl64.Vec3{10, 12, -10}) {
		t.Errorf("position = %v, want the initial camera position", f.Position())
	}
}

func TestFollow_Update(t *testing.T) {
	tests := []struct {
		name   string
		target mgl64.Vec3
		ticks  int
	}{
		{"stationary target", mgl64.Vec3{0, 0, 0}, 10},
		{"moved target", mgl64.Vec3{5, 1, -3}, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFollow(mgl64.Vec3{0, 10, -10}, mgl64.Vec3{}, 0.25)
			goal := tt.target.Add(f.Offset())

			prev := f.Position().Sub(goal).Len()
			for i := 0; i < tt.ticks; i++ {
				pos := f.Update(tt.target, 1.0/60)
				dist := pos.Sub(goal).Len()
				if dist > prev+1e-12 {
					t.Fatalf("tick %d moved away from goal: %v -> %v", i, prev, dist)
				}
				prev = dist
			}

			if f.Position().Sub(goal).Len() > 1e-3 {
				t.Errorf("position = %v, want %v", f.Position(), goal)
			}
		})
	}
}

func TestFollow_LagsBehindMovingTarget(t *testing.T) {
	f := NewFollow(mgl64.Vec3{0, 10, -10}, mgl64.Vec3{}, 0.5)

	target := mgl64.Vec3{}
	for i := 0; i < 30; i++ {
		target = target.Add(mgl64.Vec3{0.1, 0, 0})
		f.Update(target, 1.0/60)
	}

	goal := target.Add(f.Offset())
	if f.Position().X() >= goal.X() {
		t.Errorf("camera x = %v, want it trailing the goal %v", f.Position().X(), goal.X())
	}
	if f.Position().X() <= 0 {
		t.Errorf("camera x = %v, want it to have started following", f.Position().X())
	}
}

func TestFollow_Snap(t *testing.T) {
	f := NewFollow(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{}, 1)
	f.Update(mgl64.Vec3{3, 0, 0}, 0.1)

	f.Snap(mgl64.Vec3{7, 0, 0})
	if f.Position() != (mgl64.Vec3{7, 5, 0}) {
		t.Errorf("position after snap = %v", f.Position())
	}
	if got := f.Update(mgl64.Vec3{7, 0, 0}, 0.1); got != (mgl64.Vec3{7, 5, 0}) {
		t.Errorf("snapped camera drifted to %v", got)
	}
}
