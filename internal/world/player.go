package world

import "math"

const (
	dampingRate     = 10.0 // per second
	moveAccel       = 100.0
	eyeHeight       = 0.6 // first-person camera above the avatar centre
	thirdPersonLift = 2.0 // third-person camera above the orbit point
	maxPitch        = math.Pi/2 - 0.01

	// FirstPersonThreshold is the hard cutoff between camera modes: a
	// distance below it is first-person, anything else third-person.
	FirstPersonThreshold = 0.5

	// AvatarGroundY is the avatar centre height above the ground plane.
	AvatarGroundY = 1.0
)

// CameraMode is derived from the camera distance every tick.
type CameraMode uint8

const (
	FirstPerson CameraMode = iota
	ThirdPerson
)

func (m CameraMode) String() string {
	if m == FirstPerson {
		return "first_person"
	}
	return "third_person"
}

// ModeFor selects the camera mode for a distance. There is no hysteresis.
func ModeFor(distance float64) CameraMode {
	if distance < FirstPersonThreshold {
		return FirstPerson
	}
	return ThirdPerson
}

// PlayerConfig holds the tuneable controller parameters.
type PlayerConfig struct {
	MaxDistance      float64 // camera distance upper clamp
	StartDistance    float64 // initial camera distance
	WheelSensitivity float64 // distance change per unit of wheel delta
	LookSensitivity  float64 // radians per unit of pointer motion
}

// DefaultPlayerConfig starts in third person at half the canonical range.
var DefaultPlayerConfig = PlayerConfig{
	MaxDistance:      10,
	StartDistance:    5,
	WheelSensitivity: 0.5,
	LookSensitivity:  0.002,
}

// PlayerState is the controller's pose snapshot. Yaw and Pitch orient the
// camera; AvatarYaw follows the camera heading.
type PlayerState struct {
	Position       Vec3
	VelocityX      float64 // view-space right component
	VelocityZ      float64 // view-space forward component
	Yaw            float64
	Pitch          float64
	AvatarYaw      float64
	CameraDistance float64
	CameraPosition Vec3
	CameraForward  Vec3
}

// PlayerController owns the avatar and camera. It honours input only while
// locked; unlocked, the avatar and camera stay frozen.
type PlayerController struct {
	cfg    PlayerConfig
	state  PlayerState
	locked bool
}

// NewPlayerController places the avatar at (x, z) looking down -Z.
func NewPlayerController(cfg PlayerConfig, x, z float64) *PlayerController {
	if cfg.MaxDistance < 0 {
		cfg.MaxDistance = 0
	}
	pc := &PlayerController{cfg: cfg}
	pc.state.Position = Vec3{X: x, Y: AvatarGroundY, Z: z}
	pc.state.CameraDistance = clamp(cfg.StartDistance, 0, cfg.MaxDistance)
	pc.placeCamera()
	return pc
}

func (pc *PlayerController) Lock()        { pc.locked = true }
func (pc *PlayerController) Unlock()      { pc.locked = false }
func (pc *PlayerController) Locked() bool { return pc.locked }

// State returns a copy of the current pose.
func (pc *PlayerController) State() PlayerState { return pc.state }

// Mode reports the camera mode for the current distance.
func (pc *PlayerController) Mode() CameraMode { return ModeFor(pc.state.CameraDistance) }

// MaxDistance is the configured upper clamp.
func (pc *PlayerController) MaxDistance() float64 { return pc.cfg.MaxDistance }

// SetCameraDistance sets and clamps the distance, then re-places the camera.
func (pc *PlayerController) SetCameraDistance(d float64) {
	pc.state.CameraDistance = clamp(d, 0, pc.cfg.MaxDistance)
	pc.placeCamera()
}

// Forward is the camera's look direction.
func (pc *PlayerController) Forward() Vec3 {
	cp := math.Cos(pc.state.Pitch)
	return Vec3{
		X: -math.Sin(pc.state.Yaw) * cp,
		Y: math.Sin(pc.state.Pitch),
		Z: -math.Cos(pc.state.Yaw) * cp,
	}
}

// Heading is the camera forward projected onto the ground plane.
func (pc *PlayerController) Heading() Vec3 {
	return pc.Forward().Horizontal()
}

// Update advances one tick. It returns false, changing nothing, while
// unlocked.
func (pc *PlayerController) Update(in InputState, dt float64) bool {
	if !pc.locked {
		return false
	}
	if dt < 0 {
		dt = 0
	}
	s := &pc.state

	s.Yaw -= in.LookDX * pc.cfg.LookSensitivity
	s.Pitch = clamp(s.Pitch-in.LookDY*pc.cfg.LookSensitivity, -maxPitch, maxPitch)
	s.CameraDistance = clamp(s.CameraDistance+in.WheelDelta*pc.cfg.WheelSensitivity, 0, pc.cfg.MaxDistance)

	damp := math.Min(dampingRate*dt, 1)
	s.VelocityX -= s.VelocityX * damp
	s.VelocityZ -= s.VelocityZ * damp

	dir := in.MoveDir()
	if in.Forward || in.Backward {
		s.VelocityZ -= dir.Z * moveAccel * dt
	}
	if in.Left || in.Right {
		s.VelocityX -= dir.X * moveAccel * dt
	}

	// side = up x heading points to the left of the heading, so a
	// negative VelocityX (right key) moves the avatar right.
	heading := pc.Heading()
	side := Up.Cross(heading)
	s.Position = s.Position.
		Add(heading.Scale(-s.VelocityZ * dt)).
		Add(side.Scale(s.VelocityX * dt))

	if heading != (Vec3{}) {
		s.AvatarYaw = math.Atan2(heading.X, heading.Z)
	}
	pc.placeCamera()
	return true
}

// AvatarVisible reports whether the avatar mesh should be drawn.
func (pc *PlayerController) AvatarVisible() bool {
	return pc.Mode() == ThirdPerson
}

// placeCamera recomputes the camera pose from the two-mode rule.
func (pc *PlayerController) placeCamera() {
	s := &pc.state
	fwd := pc.Forward()
	s.CameraForward = fwd
	if ModeFor(s.CameraDistance) == FirstPerson {
		s.CameraPosition = s.Position.Add(Vec3{Y: eyeHeight})
		return
	}
	back := fwd.Scale(-1)
	s.CameraPosition = s.Position.
		Add(back.Scale(s.CameraDistance)).
		Add(Vec3{Y: thirdPersonLift})
}
