package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/arena"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
	if config.TickRate != 60 {
		t.Errorf("Expected TickRate 60, got %d", config.TickRate)
	}
	if config.Gravity != -9.81 {
		t.Errorf("Expected Gravity -9.81, got %f", config.Gravity)
	}
	if config.Locomotion() != config.Config {
		t.Error("Locomotion() should return the inlined locomotion settings")
	}
	if d := config.TickDuration(); math.Abs(d-1.0/60) > 1e-15 {
		t.Errorf("Expected TickDuration 1/60, got %v", d)
	}
}

func TestLoadConfig_JSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "character.json")
	data := `{
  "speed": 8,
  "jumpHeight": 5,
  "coyoteTime": 0.2,
  "jumpSquash": {"scaleJump": [0, 2, 0], "dampingJump": 0.4},
  "camera": {"smoothTime": 0.5},
  "tickRate": 120
}`
	if err := os.WriteFile(configPath, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Speed != 8 || config.JumpHeight != 5 || config.CoyoteTime != 0.2 {
		t.Errorf("locomotion overrides not applied: %+v", config.Locomotion())
	}
	if config.JumpSquash.ScaleJump != (mgl64.Vec3{0, 2, 0}) {
		t.Errorf("Expected scaleJump [0 2 0], got %v", config.JumpSquash.ScaleJump)
	}
	if config.JumpSquash.DampingJump != 0.4 {
		t.Errorf("Expected dampingJump 0.4, got %v", config.JumpSquash.DampingJump)
	}
	if config.Camera.SmoothTime != 0.5 {
		t.Errorf("Expected camera smoothTime 0.5, got %v", config.Camera.SmoothTime)
	}
	if config.TickRate != 120 {
		t.Errorf("Expected TickRate 120, got %d", config.TickRate)
	}

	// Unset fields keep their defaults.
	defaults := DefaultConfig()
	if config.Gravity != defaults.Gravity {
		t.Errorf("Expected default Gravity %v, got %v", defaults.Gravity, config.Gravity)
	}
	if config.JumpSquash.FrequencyJump != defaults.JumpSquash.FrequencyJump {
		t.Errorf("Expected default frequencyJump, got %v", config.JumpSquash.FrequencyJump)
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "character.toml")
	data := `
speed = 9.5
glideDrag = 3.0
tickRate = 30

[parachute]
goalScale = [2.0, 2.0, 2.0]
scaleStiffness = 12.0

[arena]
width = 80.0
floorY = -1.0
`
	if err := os.WriteFile(configPath, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Speed != 9.5 || config.GlideDrag != 3 || config.TickRate != 30 {
		t.Errorf("top level values not applied: speed=%v glideDrag=%v tickRate=%d",
			config.Speed, config.GlideDrag, config.TickRate)
	}
	if config.Parachute.GoalScale != (mgl64.Vec3{2, 2, 2}) {
		t.Errorf("Expected parachute goalScale [2 2 2], got %v", config.Parachute.GoalScale)
	}
	if config.Parachute.ScaleStiffness != 12 {
		t.Errorf("Expected scaleStiffness 12, got %v", config.Parachute.ScaleStiffness)
	}
	if config.Arena.Width != 80 || config.Arena.FloorY != -1 {
		t.Errorf("arena values not applied: %+v", config.Arena)
	}
	if config.Arena.Height != DefaultConfig().Arena.Height {
		t.Errorf("Expected default arena height, got %v", config.Arena.Height)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		contents    string
		wantSubstr  string
		wantInvalid bool
	}{
		{"missing file", "", "", "failed to read config file", false},
		{"invalid json", "bad.json", `{"speed": 8, invalid json}`, "failed to parse config file", false},
		{"invalid toml", "bad.toml", "speed = = 3", "failed to parse config file", false},
		{"out of range", "range.json", `{"terminalVelocity": -1}`, "terminalVelocity", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "does-not-exist.json")
			if tt.file != "" {
				path = filepath.Join(t.TempDir(), tt.file)
				if err := os.WriteFile(path, []byte(tt.contents), 0o644); err != nil {
					t.Fatalf("Failed to write test file: %v", err)
				}
			}

			config, err := LoadConfig(path)
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if config != nil {
				t.Error("Expected nil config on error")
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("Expected error to contain %q, got %q", tt.wantSubstr, err.Error())
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tt.wantInvalid {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v, want %v", got, tt.wantInvalid)
			}
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	steps := []arena.Block{
		{Min: mgl64.Vec2{4, 0}, Size: mgl64.Vec2{3, 0.5}},
		{Min: mgl64.Vec2{7, 0}, Size: mgl64.Vec2{3, 1}},
	}

	tests := []struct {
		file   string
		blocks []arena.Block
	}{
		{"saved.json", nil},
		{"saved.toml", nil},
		{"blocks.json", steps},
		{"blocks.toml", steps},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			config := DefaultConfig()
			config.Speed = 14
			config.Parachute.GoalScale = mgl64.Vec3{1.5, 1, 1.5}
			config.Arena.Spawn = mgl64.Vec3{2, 0, -3}
			config.Arena.Blocks = tt.blocks

			path := filepath.Join(t.TempDir(), tt.file)
			if err := SaveConfig(config, path); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}

			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if loaded.Locomotion() != config.Locomotion() {
				t.Errorf("locomotion settings differ after round trip:\n got %+v\nwant %+v",
					loaded.Locomotion(), config.Locomotion())
			}
			if loaded.Parachute != config.Parachute {
				t.Errorf("parachute = %+v, want %+v", loaded.Parachute, config.Parachute)
			}
			if !reflect.DeepEqual(loaded.Arena, config.Arena) {
				t.Errorf("arena = %+v, want %+v", loaded.Arena, config.Arena)
			}
			if len(loaded.Arena.Blocks) != len(tt.blocks) {
				t.Errorf("got %d blocks, want %d", len(loaded.Arena.Blocks), len(tt.blocks))
			}
		})
	}
}

func TestSaveConfig_InvalidPath(t *testing.T) {
	err := SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "missing", "config.json"))
	if err == nil {
		t.Fatal("Expected error writing to a missing directory")
	}
	if !strings.Contains(err.Error(), "failed to write config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		field  string
	}{
		{"valid", func(c *Config) {}, ""},
		{"negative speed", func(c *Config) { c.Speed = -1 }, "speed"},
		{"zero turn speed", func(c *Config) { c.TurnSpeed = 0 }, "turnSpeed"},
		{"upward gravity", func(c *Config) { c.Gravity = 9.81 }, "gravity"},
		{"NaN glide drag", func(c *Config) { c.GlideDrag = math.NaN() }, "glideDrag"},
		{"zero terminal velocity", func(c *Config) { c.TerminalVelocity = 0 }, "terminalVelocity"},
		{"negative coyote time", func(c *Config) { c.CoyoteTime = -0.1 }, "coyoteTime"},
		{"squash damping above one", func(c *Config) { c.JumpSquash.DampingJump = 1.5 }, "jumpSquash.dampingJump"},
		{"squash frequency above 100", func(c *Config) { c.JumpSquash.FrequencyLand = 101 }, "jumpSquash.frequencyLand"},
		{"parachute stiffness negative", func(c *Config) { c.Parachute.ScaleStiffness = -2 }, "parachute.scaleStiffness"},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }, "tickRate"},
		{"zero cell size", func(c *Config) { c.Arena.CellSize = 0 }, "arena.cellSize"},
		{"infinite arena", func(c *Config) { c.Arena.Width = math.Inf(1) }, "arena.width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)

			err := config.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Expected no validation error, got: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Expected validation error, got none")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error does not wrap ErrInvalidConfig: %v", err)
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %T: %v", err, err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("Expected error for field %q, got %q", tt.field, validationErr.Field)
			}
		})
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	config := DefaultConfig()
	config.Speed = -1
	config.TickRate = 0
	config.Camera.SmoothTime = -1

	err := config.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, field := range []string{"speed", "tickRate", "camera.smoothTime"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err.Error(), field)
		}
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvSpeed, "20")
	t.Setenv(EnvGravity, "-20")
	t.Setenv(EnvJumpHeight, "7.5")
	t.Setenv(EnvTerminalVelocity, "30")
	t.Setenv(EnvCoyoteTime, "0.25")
	t.Setenv(EnvJumpBufferTime, "not-a-number")
	t.Setenv(EnvTickRate, "144")

	config := DefaultConfig()
	if err := ApplyEnvOverrides(config); err != nil {
		t.Fatalf("ApplyEnvOverrides failed: %v", err)
	}

	if config.Speed != 20 {
		t.Errorf("Expected Speed 20, got %v", config.Speed)
	}
	if config.Gravity != -20 {
		t.Errorf("Expected Gravity -20, got %v", config.Gravity)
	}
	if config.JumpHeight != 7.5 {
		t.Errorf("Expected JumpHeight 7.5, got %v", config.JumpHeight)
	}
	if config.TerminalVelocity != 30 {
		t.Errorf("Expected TerminalVelocity 30, got %v", config.TerminalVelocity)
	}
	if config.CoyoteTime != 0.25 {
		t.Errorf("Expected CoyoteTime 0.25, got %v", config.CoyoteTime)
	}
	if config.JumpBufferTime != DefaultConfig().JumpBufferTime {
		t.Errorf("unparseable value should keep the default, got %v", config.JumpBufferTime)
	}
	if config.TickRate != 144 {
		t.Errorf("Expected TickRate 144, got %d", config.TickRate)
	}
}

func TestApplyEnvOverrides_ValidatesResult(t *testing.T) {
	t.Setenv(EnvGravity, "9.81")

	err := ApplyEnvOverrides(DefaultConfig())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestGetEnvHelperFunctions(t *testing.T) {
	t.Setenv("ISOGLIDE_TEST_STRING", "test_value")
	if result := getEnvOrDefault("ISOGLIDE_TEST_STRING", "default"); result != "test_value" {
		t.Errorf("getEnvOrDefault: expected 'test_value', got '%s'", result)
	}
	if result := getEnvOrDefault("ISOGLIDE_NONEXISTENT", "default"); result != "default" {
		t.Errorf("getEnvOrDefault: expected 'default', got '%s'", result)
	}

	t.Setenv("ISOGLIDE_TEST_INT", "42")
	if result := getEnvAsIntOrDefault("ISOGLIDE_TEST_INT", 10); result != 42 {
		t.Errorf("getEnvAsIntOrDefault: expected 42, got %d", result)
	}
	t.Setenv("ISOGLIDE_TEST_INT", "invalid")
	if result := getEnvAsIntOrDefault("ISOGLIDE_TEST_INT", 10); result != 10 {
		t.Errorf("getEnvAsIntOrDefault with invalid value: expected 10, got %d", result)
	}

	t.Setenv("ISOGLIDE_TEST_FLOAT", "3.14")
	if result := getEnvAsFloatOrDefault("ISOGLIDE_TEST_FLOAT", 1.0); result != 3.14 {
		t.Errorf("getEnvAsFloatOrDefault: expected 3.14, got %f", result)
	}
	if result := getEnvAsFloatOrDefault("ISOGLIDE_NONEXISTENT", 1.0); result != 1.0 {
		t.Errorf("getEnvAsFloatOrDefault: expected 1.0, got %f", result)
	}
}
