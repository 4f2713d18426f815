package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/city-walk/internal/render"
)

// maxBatchVertices keeps every batch addressable by uint16 indices.
const maxBatchVertices = 60000

// newWhiteSubImage returns the 1x1 source image faces are filled from.
func newWhiteSubImage() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// appendFace appends one convex face as a triangle fan.
func appendFace(vs []ebiten.Vertex, is []uint16, f render.Face) ([]ebiten.Vertex, []uint16) {
	if len(f.Points) < 3 {
		return vs, is
	}
	r := float32(f.Color.R) / 255
	g := float32(f.Color.G) / 255
	b := float32(f.Color.B) / 255
	a := float32(f.Color.A) / 255

	base := uint16(len(vs))
	for _, p := range f.Points {
		vs = append(vs, ebiten.Vertex{
			DstX:   float32(p[0]),
			DstY:   float32(p[1]),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	for i := 1; i+1 < len(f.Points); i++ {
		is = append(is, base, base+uint16(i), base+uint16(i+1))
	}
	return vs, is
}

// drawScene paints the scene's faces back to front. Triangles inside one
// DrawTriangles call are rasterised in order, so batching keeps the
// painter's order.
func (g *Game) drawScene(screen *ebiten.Image) {
	b := screen.Bounds()
	faces := g.scene.Faces(float64(b.Dx()), float64(b.Dy()))

	flush := func() {
		if len(g.indices) > 0 {
			screen.DrawTriangles(g.vertices, g.indices, g.white, &ebiten.DrawTrianglesOptions{})
		}
		g.vertices = g.vertices[:0]
		g.indices = g.indices[:0]
	}

	for _, f := range faces {
		if len(g.vertices)+len(f.Points) > maxBatchVertices {
			flush()
		}
		g.vertices, g.indices = appendFace(g.vertices, g.indices, f)
	}
	flush()
}
