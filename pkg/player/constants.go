package player

// Default tuning values, mirrored from the teacher's render.Camera defaults
// (orientation, FOV, pitch clamp, move/rotate speed) and extended with the
// physical constants freecam.rs's update_movement folds into its single
// "crane or drone" branch (gravity, jump, and impulse decay).
const (
	DefaultYaw   = -90.0 // facing -Z, matching render.Camera
	DefaultPitch = 0.0

	DefaultFOV = 45.0
	MinFOV     = 1.0
	MaxFOV     = 45.0

	MaxPitch = 89.0
	MinPitch = -89.0

	DefaultMoveSpeed   = 10.0
	DefaultRotateSpeed = 0.1

	DefaultGravity      = 24.0
	DefaultJumpSpeed    = 8.0
	DefaultImpulseDecay = 0.85
)
