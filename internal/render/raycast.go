package render

import (
	"math"

	"github.com/Garsondee/city-walk/internal/world"
)

// rayAABBHitT returns the first ray parameter t >= 0 where the ray o + t*d
// enters the box [min, max]. A ray starting inside the box hits at t = 0.
// The bool is false when no hit exists.
func rayAABBHitT(o, d, min, max world.Vec3) (float64, bool) {
	tMin := 0.0
	tMax := math.Inf(1)

	slab := func(o, d, lo, hi float64) bool {
		if math.Abs(d) < 1e-12 {
			return o >= lo && o <= hi
		}
		invD := 1.0 / d
		t1 := (lo - o) * invD
		t2 := (hi - o) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		return tMin <= tMax
	}

	if !slab(o.X, d.X, min.X, max.X) {
		return 0, false
	}
	if !slab(o.Y, d.Y, min.Y, max.Y) {
		return 0, false
	}
	if !slab(o.Z, d.Z, min.Z, max.Z) {
		return 0, false
	}
	return tMin, true
}

// rotateY rotates v by angle radians about +Y (right-handed, +Z toward +X).
func rotateY(v world.Vec3, angle float64) world.Vec3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return world.Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// hitMesh intersects a ray with a mesh's yaw-rotated box. The ray is moved
// into the mesh's local frame, so the distance is preserved for a unit dir.
func hitMesh(m *Mesh, origin, dir world.Vec3) (float64, bool) {
	local := rotateY(origin.Sub(m.Position), -m.Yaw)
	ldir := rotateY(dir, -m.Yaw)
	half := m.Dims.Scale(0.5)
	return rayAABBHitT(local, ldir, half.Scale(-1), half)
}
