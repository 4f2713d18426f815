package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/city-walk/internal/world"
)

// frameInput is one frame of raw host input.
type frameInput struct {
	forward  bool
	backward bool
	left     bool
	right    bool

	wheelY  float64 // positive when scrolling up
	cursorX int
	cursorY int

	click  bool // left button went down this frame
	escape bool
}

// pollFrame samples ebiten's input state. WASD and the arrow keys are
// equivalent.
func pollFrame() frameInput {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	_, wy := ebiten.Wheel()
	cx, cy := ebiten.CursorPosition()
	return frameInput{
		forward:  pressed(ebiten.KeyW, ebiten.KeyArrowUp),
		backward: pressed(ebiten.KeyS, ebiten.KeyArrowDown),
		left:     pressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		right:    pressed(ebiten.KeyD, ebiten.KeyArrowRight),
		wheelY:   wy,
		cursorX:  cx,
		cursorY:  cy,
		click:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		escape:   inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

// captureRequest asks the host to change the cursor mode.
type captureRequest int

const (
	captureNone captureRequest = iota
	captureAcquire
	captureRelease
)

// inputMapper turns raw frames into session input. It remembers the last
// cursor position so captured motion becomes look deltas.
type inputMapper struct {
	prevX, prevY int
	tracking     bool
}

// apply writes one frame into in. Movement flags are levels; wheel, look
// and shots accumulate until the session consumes them. A click while
// unlocked asks for capture instead of shooting.
func (m *inputMapper) apply(f frameInput, locked bool, in *world.InputState) captureRequest {
	in.Forward = f.forward
	in.Backward = f.backward
	in.Left = f.left
	in.Right = f.right
	// Scrolling down moves the camera out.
	in.AddWheel(-f.wheelY)

	if locked {
		if m.tracking {
			in.AddLook(float64(f.cursorX-m.prevX), float64(f.cursorY-m.prevY))
		}
		m.prevX, m.prevY, m.tracking = f.cursorX, f.cursorY, true
	} else {
		// Re-seed on the next captured frame so the capture jump is not a look.
		m.tracking = false
	}

	switch {
	case locked && f.escape:
		return captureRelease
	case locked && f.click:
		in.RequestShoot()
	case !locked && f.click:
		return captureAcquire
	}
	return captureNone
}
