package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/Garsondee/city-walk/internal/config"
	"github.com/Garsondee/city-walk/internal/render"
	"github.com/Garsondee/city-walk/internal/world"
)

var skyColor = color.RGBA{R: 135, G: 206, B: 235, A: 255}

// Game is the ebiten frontend for one session.
type Game struct {
	width  int
	height int

	session *world.Session
	scene   *render.Scene
	logger  *slog.Logger

	input     inputMapper
	events    *EventLog
	logCursor int // SimLog entries already mirrored into events

	hitFlash  int  // ticks left on the red crosshair
	showDebug bool // F3 overlay

	face     *text.GoXFace
	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// New generates a city from cfg and seed and wires it to an in-memory
// scene.
func New(cfg config.Config, seed int64, logger *slog.Logger) *Game {
	g := &Game{
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		scene:  render.NewScene(),
		logger: logger,
		events: NewEventLog(),
		face:   newHUDFace(),
		white:  newWhiteSubImage(),
	}
	g.session = world.NewSession(cfg.Session(), g.scene,
		world.WithSeed(seed),
		world.WithLogger(logger),
		world.WithScoreSink(g),
	)
	g.drainEvents()
	return g
}

// Session exposes the running session.
func (g *Game) Session() *world.Session { return g.session }

// OnScoreIncrement flashes the crosshair.
func (g *Game) OnScoreIncrement() {
	g.hitFlash = hitFlashTicks
}

func (g *Game) Update() error {
	// The host decides whether capture actually happened.
	locked := ebiten.CursorMode() == ebiten.CursorModeCaptured
	g.session.SetLocked(locked)

	switch g.input.apply(pollFrame(), locked, &g.session.Input) {
	case captureAcquire:
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	case captureRelease:
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySeed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}

	g.session.Step(1 / float64(ebiten.TPS()))
	g.drainEvents()
	if g.hitFlash > 0 {
		g.hitFlash--
	}
	return nil
}

// drainEvents mirrors new SimLog entries into the on-screen log.
func (g *Game) drainEvents() {
	entries := g.session.SimLog.Entries()
	for _, e := range entries[g.logCursor:] {
		g.events.AddSim(e)
	}
	g.logCursor = len(entries)
}

func (g *Game) copySeed() {
	seed := strconv.FormatInt(g.session.Seed, 10)
	if err := clipboard.WriteAll(seed); err != nil {
		g.logger.Warn("clipboard unavailable", "error", err)
		return
	}
	g.logger.Info("seed copied to clipboard", "seed", seed)
	g.events.Add(EventEntry{Tick: g.session.Tick, Label: "--", Category: "ui", Message: "seed copied " + seed})
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	g.drawScene(screen)
	g.drawHUD(screen)
	g.events.Draw(screen, g.height)

	if g.showDebug {
		st := g.session.Player.State()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  tick %d  pos %.1f,%.1f  yaw %.2f  pitch %.2f",
			ebiten.ActualTPS(), ebiten.ActualFPS(), g.session.Tick,
			st.Position.X, st.Position.Z, st.Yaw, st.Pitch), g.width-520, 4)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
