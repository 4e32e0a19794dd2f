// pkg/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/arena"
	"github.com/opd-ai/isoglide/pkg/effects"
	"github.com/opd-ai/isoglide/pkg/locomotion"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config contains every tunable of a character simulation. The locomotion
// options are inlined so files use the option names directly.
type Config struct {
	locomotion.Config

	JumpSquash effects.SquashConfig    `json:"jumpSquash" toml:"jumpSquash"`
	Parachute  effects.ParachuteConfig `json:"parachute" toml:"parachute"`
	Camera     CameraConfig            `json:"camera" toml:"camera"`
	Arena      arena.Config            `json:"arena" toml:"arena"`

	// TickRate is the fixed simulation rate in ticks per second.
	TickRate int `json:"tickRate" toml:"tickRate"`
}

// CameraConfig contains camera follow settings
type CameraConfig struct {
	// Offset is the camera position relative to the character at attach
	// time.
	Offset     mgl64.Vec3 `json:"offset" toml:"offset"`
	SmoothTime float64    `json:"smoothTime" toml:"smoothTime"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Config:     locomotion.DefaultConfig(),
		JumpSquash: effects.DefaultSquashConfig(),
		Parachute:  effects.DefaultParachuteConfig(),
		Camera: CameraConfig{
			Offset:     mgl64.Vec3{-10, 12, -10},
			SmoothTime: 0.15,
		},
		Arena:    arena.DefaultConfig(),
		TickRate: 60,
	}
}

// Locomotion returns the controller tuning.
func (c *Config) Locomotion() locomotion.Config {
	return c.Config
}

// TickDuration returns the length of one tick in seconds.
func (c *Config) TickDuration() float64 {
	return 1 / float64(c.TickRate)
}

// LoadConfig loads a configuration from a JSON or TOML file, chosen by
// extension. Fields missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig saves a configuration to a file, as TOML when the extension is
// .toml and indented JSON otherwise.
func SaveConfig(config *Config, path string) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
