package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/city-walk/internal/world"
)

const (
	hudLineSpacing = 16
	crosshairSize  = 8
	hitFlashTicks  = 12
)

var (
	hudTextColor   = color.RGBA{R: 240, G: 240, B: 230, A: 255}
	crosshairColor = color.RGBA{R: 255, G: 255, B: 255, A: 220}
	crosshairHit   = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	overlayShade   = color.RGBA{R: 0, G: 0, B: 0, A: 140}
)

func newHUDFace() *text.GoXFace {
	return text.NewGoXFace(basicfont.Face7x13)
}

// hudLines are the always-on status lines.
func hudLines(score int, mode world.CameraMode, distance float64, seed int64) []string {
	return []string{
		fmt.Sprintf("SCORE %d", score),
		fmt.Sprintf("VIEW  %s  (%.1f)", mode, distance),
		fmt.Sprintf("SEED  %d  [C] copy", seed),
	}
}

// overlayLines are shown while the pointer is not captured.
var overlayLines = []string{
	"CLICK TO PLAY",
	"",
	"WASD / arrows  move",
	"mouse          look",
	"wheel          zoom (in past 0.5 for first person)",
	"click          shoot",
	"Esc            release mouse",
}

func (g *Game) drawText(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = hudLineSpacing
	text.Draw(dst, s, g.face, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.session.Player.State()
	for i, line := range hudLines(g.session.Score, g.session.Player.Mode(), st.CameraDistance, g.session.Seed) {
		g.drawText(screen, line, 10, 10+float64(i*hudLineSpacing), hudTextColor)
	}

	if g.session.Player.Locked() {
		g.drawCrosshair(screen)
		return
	}

	b := screen.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	vector.FillRect(screen, 0, 0, w, h, overlayShade, false)

	var blockW float64
	for _, l := range overlayLines {
		lw, _ := text.Measure(l, g.face, hudLineSpacing)
		blockW = max(blockW, lw)
	}
	blockH := float64(len(overlayLines) * hudLineSpacing)
	x0 := (float64(w) - blockW) / 2
	y0 := (float64(h) - blockH) / 2
	for i, l := range overlayLines {
		g.drawText(screen, l, x0, y0+float64(i*hudLineSpacing), hudTextColor)
	}
}

func (g *Game) drawCrosshair(screen *ebiten.Image) {
	b := screen.Bounds()
	cx, cy := float32(b.Dx())/2, float32(b.Dy())/2
	col := crosshairColor
	if g.hitFlash > 0 {
		col = crosshairHit
	}
	vector.StrokeLine(screen, cx-crosshairSize, cy, cx+crosshairSize, cy, 2, col, false)
	vector.StrokeLine(screen, cx, cy-crosshairSize, cx, cy+crosshairSize, 2, col, false)
}
