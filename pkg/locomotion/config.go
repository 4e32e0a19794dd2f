package locomotion

// Config holds every tunable of the controller. Durations are in seconds,
// angles in degrees, speeds in world units per second.
type Config struct {
	Speed             float64 `json:"speed" toml:"speed"`
	TurnSpeed         float64 `json:"turnSpeed" toml:"turnSpeed"`
	TurnRotationSpeed float64 `json:"turnRotationSpeed" toml:"turnRotationSpeed"`
	TiltAngle         float64 `json:"tiltAngle" toml:"tiltAngle"`

	Gravity             float64 `json:"gravity" toml:"gravity"`
	GlideDrag           float64 `json:"glideDrag" toml:"glideDrag"`
	TerminalVelocity    float64 `json:"terminalVelocity" toml:"terminalVelocity"`
	JumpHeight          float64 `json:"jumpHeight" toml:"jumpHeight"`
	JumpVelocityFalloff float64 `json:"jumpVelocityFalloff" toml:"jumpVelocityFalloff"`
	FallMultiplier      float64 `json:"fallMultiplier" toml:"fallMultiplier"`
	LowJumpMultiplier   float64 `json:"lowJumpMultiplier" toml:"lowJumpMultiplier"`

	JumpBufferTime float64 `json:"jumpBufferTime" toml:"jumpBufferTime"`
	CoyoteTime     float64 `json:"coyoteTime" toml:"coyoteTime"`

	InputDampingRotation      float64 `json:"inputDampingRotation" toml:"inputDampingRotation"`
	InputDampingMovementBasic float64 `json:"inputDampingMovementBasic" toml:"inputDampingMovementBasic"`
	InputDampingMovementAccel float64 `json:"inputDampingMovementAccel" toml:"inputDampingMovementAccel"`
	InputDampingMovementDecel float64 `json:"inputDampingMovementDecel" toml:"inputDampingMovementDecel"`
	InputDampingMovementTurn  float64 `json:"inputDampingMovementTurn" toml:"inputDampingMovementTurn"`
	MidAirDampingMove         float64 `json:"midAirDampingMove" toml:"midAirDampingMove"`
	MidAirDampingRot          float64 `json:"midAirDampingRot" toml:"midAirDampingRot"`

	GlideDamping         float64 `json:"glideDamping" toml:"glideDamping"`
	GlideSpringFrequency float64 `json:"glideSpringFrequency" toml:"glideSpringFrequency"`
}

// DefaultConfig returns the tuning used by the demo character.
func DefaultConfig() Config {
	return Config{
		Speed:             12,
		TurnSpeed:         10,
		TurnRotationSpeed: 45,
		TiltAngle:         15,

		Gravity:             -9.81,
		GlideDrag:           4,
		TerminalVelocity:    15,
		JumpHeight:          3,
		JumpVelocityFalloff: 2.5,
		FallMultiplier:      2.5,
		LowJumpMultiplier:   2,

		JumpBufferTime: 0.15,
		CoyoteTime:     0.1,

		InputDampingRotation:      0.1,
		InputDampingMovementBasic: 0.1,
		InputDampingMovementAccel: 0.1,
		InputDampingMovementDecel: 0.05,
		InputDampingMovementTurn:  0.1,
		MidAirDampingMove:         0.15,
		MidAirDampingRot:          0.15,

		GlideDamping:         0.5,
		GlideSpringFrequency: 6,
	}
}
