// pkg/engine/sim.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/arena"
	"github.com/opd-ai/isoglide/pkg/camera"
	"github.com/opd-ai/isoglide/pkg/config"
	"github.com/opd-ai/isoglide/pkg/effects"
	"github.com/opd-ai/isoglide/pkg/event"
	"github.com/opd-ai/isoglide/pkg/locomotion"
	"github.com/opd-ai/isoglide/pkg/logging"
)

// Status is the run state of a simulation.
type Status int

const (
	StatusWaiting Status = iota
	StatusRunning
	StatusStopped
)

// Frame is a snapshot of the simulation after a tick.
type Frame struct {
	Tick     uint64     `json:"tick"`
	Time     float64    `json:"time"`
	Phase    string     `json:"phase"`
	Gravity  string     `json:"gravity"`
	Position mgl64.Vec3 `json:"position"`
	Velocity mgl64.Vec3 `json:"velocity"`
	Grounded bool       `json:"grounded"`
	Scale    mgl64.Vec3 `json:"scale"`
	Canopy   mgl64.Vec3 `json:"canopy"`
	Camera   mgl64.Vec3 `json:"camera"`

	GlideOffset float64 `json:"glideOffset,omitempty"`

	Jumped       bool `json:"jumped,omitempty"`
	Landed       bool `json:"landed,omitempty"`
	GlideStarted bool `json:"glideStarted,omitempty"`
	GlideStopped bool `json:"glideStopped,omitempty"`
}

// InputFunc supplies the input for a tick at the given simulation time.
type InputFunc func(tick uint64, t float64) locomotion.Input

// Sim owns one character, its arena and its cosmetic effects, and steps
// them at a fixed rate.
type Sim struct {
	Config     *config.Config
	Arena      *arena.Arena
	Controller *locomotion.Controller
	Squash     *effects.JumpSquash
	Parachute  *effects.Parachute
	Camera     *camera.Follow
	EventBus   *event.Bus
	Logger     *logging.Logger

	TimeStep    float64 // Seconds per tick
	CurrentTick uint64
	ElapsedTime float64
	Status      Status

	lock   sync.RWMutex
	last   Frame
	counts map[event.Type]int
}

// NewSim assembles a simulation from cfg. A nil logger discards output.
func NewSim(cfg *config.Config, logger *logging.Logger) *Sim {
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Sim{
		Config:    cfg,
		Arena:     arena.New(cfg.Arena),
		Squash:    effects.NewJumpSquash(cfg.JumpSquash),
		Parachute: effects.NewParachute(cfg.Parachute),
		EventBus:  event.NewEventBus(),
		Logger:    logger,
		TimeStep:  cfg.TickDuration(),
		counts:    make(map[event.Type]int),
	}

	s.Controller = locomotion.New(cfg.Locomotion(), locomotion.Collaborators{
		Ground:     s.Arena,
		Mover:      s.Arena,
		JumpEffect: s.Squash,
		Parachute:  s.Parachute,
		Events:     s.EventBus,
		Logger:     logger,
	})

	spawn := s.Arena.Position()
	s.Camera = camera.NewFollow(spawn.Add(cfg.Camera.Offset), spawn, cfg.Camera.SmoothTime)

	s.registerEventHandlers()
	s.last = s.snapshot(locomotion.Report{Phase: s.Controller.State().Phase()})
	return s
}

// registerEventHandlers counts locomotion transitions.
func (s *Sim) registerEventHandlers() {
	for _, t := range []event.Type{event.Jumped, event.Landed, event.GlideStarted, event.GlideStopped} {
		t := t
		s.EventBus.Subscribe(t, func(event.Event) {
			s.counts[t]++
		})
	}
}

// Start marks the simulation as running.
func (s *Sim) Start() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Status = StatusRunning
}

// Stop marks the simulation as stopped.
func (s *Sim) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Status = StatusStopped
}

// Running reports whether the simulation has been started and not stopped.
func (s *Sim) Running() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.Status == StatusRunning
}

// Step advances every component by one tick.
func (s *Sim) Step(in locomotion.Input) Frame {
	s.lock.Lock()
	defer s.lock.Unlock()

	dt := s.TimeStep
	report := s.Controller.Tick(dt, in)
	s.Squash.Update(dt)
	s.Parachute.Update(dt, s.Controller.MeshTilt())
	s.Camera.Update(s.Arena.Position(), dt)

	s.CurrentTick++
	s.ElapsedTime += dt
	s.last = s.snapshot(report)
	return s.last
}

// ErrInvalidDuration is returned by Run for a negative or non-finite duration.
var ErrInvalidDuration = errors.New("invalid duration")

// Run steps the simulation until duration has elapsed, calling emit after
// every tick. When realtime is set, ticks are paced by a ticker; otherwise
// the loop runs as fast as possible. It returns ctx.Err() if cancelled.
func (s *Sim) Run(ctx context.Context, duration float64, realtime bool, input InputFunc, emit func(Frame) error) error {
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: %v seconds", ErrInvalidDuration, duration)
	}

	s.Start()
	defer s.Stop()

	var ticker *time.Ticker
	if realtime {
		ticker = time.NewTicker(time.Duration(s.TimeStep * float64(time.Second)))
		defer ticker.Stop()
	}

	total := uint64(duration/s.TimeStep + 0.5)
	for i := uint64(0); i < total; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		frame := s.Step(input(s.CurrentTick, s.ElapsedTime))
		if emit != nil {
			if err := emit(frame); err != nil {
				return err
			}
		}
	}

	s.Logger.Info(ctx, "simulation finished",
		"ticks", s.CurrentTick,
		"jumps", s.EventCount(event.Jumped),
		"landings", s.EventCount(event.Landed),
		"glides", s.EventCount(event.GlideStarted),
	)
	return nil
}

// Snapshot returns the frame produced by the last tick.
func (s *Sim) Snapshot() Frame {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.last
}

// Focus returns the point the camera rig is looking at.
func (s *Sim) Focus() mgl64.Vec3 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.Camera.Position().Sub(s.Camera.Offset())
}

// EventCount returns how many events of type t have been published.
func (s *Sim) EventCount(t event.Type) int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.counts[t]
}

func (s *Sim) snapshot(r locomotion.Report) Frame {
	return Frame{
		Tick:         s.CurrentTick,
		Time:         s.ElapsedTime,
		Phase:        r.Phase.String(),
		Gravity:      r.Gravity.String(),
		Position:     s.Arena.Position(),
		Velocity:     r.Velocity,
		Grounded:     s.Arena.IsGrounded(),
		Scale:        s.Squash.Scale(),
		Canopy:       s.Parachute.Scale(),
		Camera:       s.Camera.Position(),
		GlideOffset:  r.GlideOffset,
		Jumped:       r.Jumped,
		Landed:       r.Landed,
		GlideStarted: r.GlideStarted,
		GlideStopped: r.GlideStopped,
	}
}
