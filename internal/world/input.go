package world

// InputState is written by the host's input handlers and sampled once at
// the start of each tick. Held keys are levels; wheel, look and shoot are
// accumulated between ticks and cleared by Consume.
type InputState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool

	WheelDelta float64 // accumulated wheel motion, positive moves the camera out
	LookDX     float64 // accumulated pointer motion while captured
	LookDY     float64

	ShootRequested bool
}

// AddWheel accumulates wheel motion.
func (in *InputState) AddWheel(d float64) { in.WheelDelta += d }

// AddLook accumulates pointer motion.
func (in *InputState) AddLook(dx, dy float64) {
	in.LookDX += dx
	in.LookDY += dy
}

// RequestShoot flags a shot for the next tick.
func (in *InputState) RequestShoot() { in.ShootRequested = true }

// Consume clears the one-shot fields after a tick has sampled them.
func (in *InputState) Consume() {
	in.WheelDelta = 0
	in.LookDX = 0
	in.LookDY = 0
	in.ShootRequested = false
}

// MoveDir is the normalised desired movement in view space:
// X = right - left, Z = forward - backward. No keys yields the zero vector.
func (in InputState) MoveDir() Vec3 {
	return Vec3{
		X: boolf(in.Right) - boolf(in.Left),
		Z: boolf(in.Forward) - boolf(in.Backward),
	}.Normalize()
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
