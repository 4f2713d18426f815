package render

import (
	"image/color"
	"sort"

	"github.com/Garsondee/city-walk/internal/world"
)

// Face is one projected, shaded box side ready to be filled.
type Face struct {
	Points [][2]float64 // screen-space convex polygon
	Color  color.RGBA
	Depth  float64 // distance from the camera to the face centre
	layer  int
}

// boxFace lists one side of a unit box by corner signs and its normal.
type boxFace struct {
	corners [4][3]float64
	normal  world.Vec3
	shade   float64
}

var boxFaces = [6]boxFace{
	{[4][3]float64{{-1, 1, -1}, {1, 1, -1}, {1, 1, 1}, {-1, 1, 1}}, world.Vec3{Y: 1}, 1.0},      // top
	{[4][3]float64{{-1, -1, 1}, {1, -1, 1}, {1, -1, -1}, {-1, -1, -1}}, world.Vec3{Y: -1}, 0.4}, // bottom
	{[4][3]float64{{-1, -1, 1}, {-1, 1, 1}, {1, 1, 1}, {1, -1, 1}}, world.Vec3{Z: 1}, 0.8},      // +Z
	{[4][3]float64{{1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, {-1, -1, -1}}, world.Vec3{Z: -1}, 0.7}, // -Z
	{[4][3]float64{{1, -1, 1}, {1, 1, 1}, {1, 1, -1}, {1, -1, -1}}, world.Vec3{X: 1}, 0.9},      // +X
	{[4][3]float64{{-1, -1, -1}, {-1, 1, -1}, {-1, 1, 1}, {-1, -1, 1}}, world.Vec3{X: -1}, 0.6}, // -X
}

// layerOf orders flat ground layers beneath everything else; the painter's
// sort only applies within a layer.
func layerOf(k world.MeshKind) int {
	switch k {
	case world.MeshGround:
		return 0
	case world.MeshRoad:
		return 1
	default:
		return 2
	}
}

// Faces returns the visible, front-facing sides of every visible mesh,
// projected to a w×h screen and ordered back to front.
func (s *Scene) Faces(w, h float64) []Face {
	cam := s.Camera
	faces := make([]Face, 0, len(s.meshes)*3)
	for i := range s.meshes {
		m := &s.meshes[i]
		if !m.Visible {
			continue
		}
		half := m.Dims.Scale(0.5)
		for _, bf := range boxFaces {
			normal := rotateY(bf.normal, m.Yaw)
			var corners [4]world.Vec3
			var centre world.Vec3
			for j, c := range bf.corners {
				local := world.Vec3{X: c[0] * half.X, Y: c[1] * half.Y, Z: c[2] * half.Z}
				corners[j] = rotateY(local, m.Yaw).Add(m.Position)
				centre = centre.Add(corners[j])
			}
			centre = centre.Scale(0.25)
			if normal.Dot(cam.Position.Sub(centre)) <= 0 {
				continue
			}
			pts := cam.ProjectPolygon(corners[:], w, h)
			if pts == nil {
				continue
			}
			faces = append(faces, Face{
				Points: pts,
				Color:  shade(m.Color, bf.shade),
				Depth:  cam.Position.Sub(centre).Len(),
				layer:  layerOf(m.Kind),
			})
		}
	}
	sort.SliceStable(faces, func(i, j int) bool {
		if faces[i].layer != faces[j].layer {
			return faces[i].layer < faces[j].layer
		}
		return faces[i].Depth > faces[j].Depth
	})
	return faces
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
