// cmd/charsim/script.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/locomotion"
)

// Step holds a set of inputs over a time window. A zero Duration lasts a
// single tick. Moves of overlapping steps add up.
type Step struct {
	At       float64    `toml:"at"`
	Duration float64    `toml:"duration"`
	Move     mgl64.Vec2 `toml:"move"`
	Jump     bool       `toml:"jump"`
	Glide    bool       `toml:"glide"`
}

// Script is a timed list of input steps.
type Script struct {
	Steps []Step `toml:"step"`
}

var errInvalidScript = errors.New("invalid script")

// LoadScript reads a TOML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(string(data))
}

// ParseScript decodes and validates a TOML script.
func ParseScript(data string) (*Script, error) {
	var s Script
	md, err := toml.Decode(data, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", errInvalidScript, undecoded[0].String())
	}

	for i, step := range s.Steps {
		if step.At < 0 || step.Duration < 0 {
			return nil, fmt.Errorf("%w: step %d has a negative time", errInvalidScript, i)
		}
		if step.Move.Len() > 1+1e-9 {
			return nil, fmt.Errorf("%w: step %d move %v is longer than 1", errInvalidScript, i, step.Move)
		}
	}
	return &s, nil
}

// Player turns a script into per-tick input, deriving press and release
// edges from the held buttons of consecutive ticks.
type Player struct {
	script *Script
	dt     float64

	jumpHeld  bool
	glideHeld bool
}

// NewPlayer creates a player for ticks of length dt. A nil script yields
// idle input.
func NewPlayer(script *Script, dt float64) *Player {
	if script == nil {
		script = &Script{}
	}
	return &Player{script: script, dt: dt}
}

// Input returns the input for the tick starting at time t. Ticks must be
// requested in order.
func (p *Player) Input(_ uint64, t float64) locomotion.Input {
	// Sample at the tick midpoint so accumulated float error cannot move a
	// step boundary by a tick.
	mid := t + p.dt/2

	var in locomotion.Input
	jump, glide := false, false
	for _, step := range p.script.Steps {
		end := step.At + step.Duration
		if step.Duration == 0 {
			end = step.At + p.dt
		}
		if mid < step.At || mid >= end {
			continue
		}
		in.Move = in.Move.Add(step.Move)
		jump = jump || step.Jump
		glide = glide || step.Glide
	}

	if l := in.Move.Len(); l > 1 {
		in.Move = in.Move.Mul(1 / l)
	}
	in.JumpHeld = jump
	in.JumpPressed = jump && !p.jumpHeld
	in.GlidePressed = glide && !p.glideHeld
	in.GlideReleased = !glide && p.glideHeld

	p.jumpHeld = jump
	p.glideHeld = glide
	return in
}
