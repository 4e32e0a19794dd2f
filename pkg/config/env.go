package config

import (
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvSpeed            = "ISOGLIDE_SPEED"
	EnvGravity          = "ISOGLIDE_GRAVITY"
	EnvJumpHeight       = "ISOGLIDE_JUMP_HEIGHT"
	EnvTerminalVelocity = "ISOGLIDE_TERMINAL_VELOCITY"
	EnvCoyoteTime       = "ISOGLIDE_COYOTE_TIME"
	EnvJumpBufferTime   = "ISOGLIDE_JUMP_BUFFER_TIME"
	EnvTickRate         = "ISOGLIDE_TICK_RATE"
)

// ApplyEnvOverrides replaces settings with values from ISOGLIDE_*
// environment variables and validates the result. Unparseable values are
// ignored.
func ApplyEnvOverrides(config *Config) error {
	config.Speed = getEnvAsFloatOrDefault(EnvSpeed, config.Speed)
	config.Gravity = getEnvAsFloatOrDefault(EnvGravity, config.Gravity)
	config.JumpHeight = getEnvAsFloatOrDefault(EnvJumpHeight, config.JumpHeight)
	config.TerminalVelocity = getEnvAsFloatOrDefault(EnvTerminalVelocity, config.TerminalVelocity)
	config.CoyoteTime = getEnvAsFloatOrDefault(EnvCoyoteTime, config.CoyoteTime)
	config.JumpBufferTime = getEnvAsFloatOrDefault(EnvJumpBufferTime, config.JumpBufferTime)
	config.TickRate = getEnvAsIntOrDefault(EnvTickRate, config.TickRate)

	return config.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnvOrDefault(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}
