package world

import (
	"image/color"
	"testing"
)

// constSource returns the same draw forever.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

// scriptedSource replays a fixed sequence of draws and fails the test if
// the generator asks for more.
type scriptedSource struct {
	t    *testing.T
	vals []float64
	pos  int
}

func newScriptedSource(t *testing.T, vals ...float64) *scriptedSource {
	t.Helper()
	return &scriptedSource{t: t, vals: vals}
}

func (s *scriptedSource) Float64() float64 {
	if s.pos >= len(s.vals) {
		s.t.Fatalf("scripted source exhausted after %d draws", len(s.vals))
		return 0
	}
	v := s.vals[s.pos]
	s.pos++
	return v
}

func (s *scriptedSource) remaining() int { return len(s.vals) - s.pos }

type fakeMesh struct {
	kind    MeshKind
	dims    Vec3
	pos     Vec3
	yaw     float64
	visible bool
}

// fakeBackend records mesh requests; raycasts return whatever castFn says.
type fakeBackend struct {
	meshes   map[Handle]*fakeMesh
	next     Handle
	camPos   Vec3
	camFwd   Vec3
	raycasts int
	castFn   func(origin, dir Vec3, candidates []Handle) (Handle, float64, bool)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{meshes: map[Handle]*fakeMesh{}}
}

func (f *fakeBackend) CreateMesh(kind MeshKind, dims Vec3, _ color.RGBA) Handle {
	f.next++
	f.meshes[f.next] = &fakeMesh{kind: kind, dims: dims, visible: true}
	return f.next
}

func (f *fakeBackend) SetPose(h Handle, pos Vec3, yaw float64) {
	if m, ok := f.meshes[h]; ok {
		m.pos, m.yaw = pos, yaw
	}
}

func (f *fakeBackend) SetVisible(h Handle, visible bool) {
	if m, ok := f.meshes[h]; ok {
		m.visible = visible
	}
}

func (f *fakeBackend) SetCamera(pos, forward Vec3) {
	f.camPos, f.camFwd = pos, forward
}

func (f *fakeBackend) Raycast(origin, dir Vec3, candidates []Handle) (Handle, float64, bool) {
	f.raycasts++
	if f.castFn == nil {
		return 0, 0, false
	}
	return f.castFn(origin, dir, candidates)
}

func (f *fakeBackend) count(kind MeshKind) int {
	n := 0
	for _, m := range f.meshes {
		if m.kind == kind {
			n++
		}
	}
	return n
}

// countingSink counts score increments.
type countingSink struct{ n int }

func (c *countingSink) OnScoreIncrement() { c.n++ }

// logOnFailure dumps the session's SimLog when the test fails.
func logOnFailure(t *testing.T, s *Session) {
	t.Helper()
	t.Cleanup(func() {
		if t.Failed() {
			t.Log("sim log:\n" + s.SimLog.Format())
		}
	})
}
