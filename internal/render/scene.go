// Package render is an in-memory scene graph implementing the world's
// rendering backend: mesh registry, poses, visibility, raycasting and a
// pinhole camera. It has no graphics dependency; frontends draw the faces
// it produces.
package render

import (
	"image/color"
	"math"

	"github.com/Garsondee/city-walk/internal/world"
)

// Mesh is one registered box.
type Mesh struct {
	Handle   world.Handle
	Kind     world.MeshKind
	Dims     world.Vec3
	Color    color.RGBA
	Position world.Vec3
	Yaw      float64
	Visible  bool
}

// Scene holds every mesh plus the viewer camera.
type Scene struct {
	meshes []Mesh // index = handle - 1
	Camera Camera

	// Raycasts counts Raycast invocations.
	Raycasts int
}

// NewScene creates an empty scene with the default camera.
func NewScene() *Scene {
	return &Scene{Camera: DefaultCamera()}
}

func (s *Scene) CreateMesh(kind world.MeshKind, dims world.Vec3, c color.RGBA) world.Handle {
	h := world.Handle(len(s.meshes) + 1)
	s.meshes = append(s.meshes, Mesh{
		Handle:  h,
		Kind:    kind,
		Dims:    dims,
		Color:   c,
		Visible: true,
	})
	return h
}

func (s *Scene) SetPose(h world.Handle, pos world.Vec3, yaw float64) {
	if m := s.mesh(h); m != nil {
		m.Position = pos
		m.Yaw = yaw
	}
}

func (s *Scene) SetVisible(h world.Handle, visible bool) {
	if m := s.mesh(h); m != nil {
		m.Visible = visible
	}
}

func (s *Scene) SetCamera(pos, forward world.Vec3) {
	s.Camera.Position = pos
	s.Camera.Forward = forward
}

// Raycast returns the nearest visible candidate the ray enters. Unknown
// handles and hidden meshes are skipped.
func (s *Scene) Raycast(origin, dir world.Vec3, candidates []world.Handle) (world.Handle, float64, bool) {
	s.Raycasts++
	dir = dir.Normalize()
	if dir == (world.Vec3{}) {
		return 0, 0, false
	}
	var best world.Handle
	bestT := math.Inf(1)
	for _, h := range candidates {
		m := s.mesh(h)
		if m == nil || !m.Visible {
			continue
		}
		t, ok := hitMesh(m, origin, dir)
		if ok && t < bestT {
			best, bestT = h, t
		}
	}
	if best == 0 {
		return 0, 0, false
	}
	return best, bestT, true
}

// Mesh returns a copy of a registered mesh.
func (s *Scene) Mesh(h world.Handle) (Mesh, bool) {
	if m := s.mesh(h); m != nil {
		return *m, true
	}
	return Mesh{}, false
}

// Len is the number of registered meshes.
func (s *Scene) Len() int { return len(s.meshes) }

// CountKind counts registered meshes of one kind.
func (s *Scene) CountKind(kind world.MeshKind) int {
	n := 0
	for i := range s.meshes {
		if s.meshes[i].Kind == kind {
			n++
		}
	}
	return n
}

func (s *Scene) mesh(h world.Handle) *Mesh {
	i := int(h) - 1
	if i < 0 || i >= len(s.meshes) {
		return nil
	}
	return &s.meshes[i]
}
