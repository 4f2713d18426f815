package render

import (
	"math"

	"github.com/Garsondee/city-walk/internal/world"
)

// Camera is a pinhole perspective camera.
type Camera struct {
	Position world.Vec3
	Forward  world.Vec3
	FOV      float64 // vertical field of view, radians
	Near     float64
	Far      float64
}

// DefaultCamera is a 75° fov camera clipping at 0.1 and 1000.
func DefaultCamera() Camera {
	return Camera{
		Position: world.Vec3{Y: 5, Z: 10},
		Forward:  world.Vec3{Z: -1},
		FOV:      75 * math.Pi / 180,
		Near:     0.1,
		Far:      1000,
	}
}

// basis returns the camera's right, up and forward unit vectors.
func (c Camera) basis() (right, up, fwd world.Vec3) {
	fwd = c.Forward.Normalize()
	if fwd == (world.Vec3{}) {
		fwd = world.Vec3{Z: -1}
	}
	right = fwd.Cross(world.Up).Normalize()
	if right == (world.Vec3{}) {
		right = world.Vec3{X: 1}
	}
	up = right.Cross(fwd)
	return right, up, fwd
}

// ToView converts a world point to camera space: X right, Y up, Z depth
// along the view direction.
func (c Camera) ToView(p world.Vec3) world.Vec3 {
	right, up, fwd := c.basis()
	d := p.Sub(c.Position)
	return world.Vec3{X: d.Dot(right), Y: d.Dot(up), Z: d.Dot(fwd)}
}

// Project maps a world point onto a w×h screen. ok is false for points in
// front of the near plane or beyond the far plane.
func (c Camera) Project(p world.Vec3, w, h float64) (sx, sy, depth float64, ok bool) {
	v := c.ToView(p)
	if v.Z < c.Near || v.Z > c.Far {
		return 0, 0, v.Z, false
	}
	sx, sy = c.projectView(v, w, h)
	return sx, sy, v.Z, true
}

func (c Camera) projectView(v world.Vec3, w, h float64) (float64, float64) {
	focal := (h / 2) / math.Tan(c.FOV/2)
	return w/2 + v.X*focal/v.Z, h/2 - v.Y*focal/v.Z
}

// ProjectPolygon clips a convex world polygon against the near plane and
// projects what remains. It returns nil when nothing is in front of the
// camera.
func (c Camera) ProjectPolygon(poly []world.Vec3, w, h float64) [][2]float64 {
	view := make([]world.Vec3, len(poly))
	for i, p := range poly {
		view[i] = c.ToView(p)
	}
	clipped := clipNear(view, c.Near)
	if len(clipped) < 3 {
		return nil
	}
	out := make([][2]float64, len(clipped))
	for i, v := range clipped {
		x, y := c.projectView(v, w, h)
		out[i] = [2]float64{x, y}
	}
	return out
}

// clipNear keeps the part of a convex view-space polygon with Z >= near
// (Sutherland–Hodgman against a single plane).
func clipNear(poly []world.Vec3, near float64) []world.Vec3 {
	if len(poly) == 0 {
		return nil
	}
	out := make([]world.Vec3, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevIn := prev.Z >= near
	for _, cur := range poly {
		curIn := cur.Z >= near
		if curIn != prevIn {
			t := (near - prev.Z) / (cur.Z - prev.Z)
			out = append(out, prev.Add(cur.Sub(prev).Scale(t)))
		}
		if curIn {
			out = append(out, cur)
		}
		prev, prevIn = cur, curIn
	}
	return out
}
