package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/city-walk/internal/world"
)

func TestCamera_ProjectCentre(t *testing.T) {
	cam := DefaultCamera()
	cam.Position = world.Vec3{}
	cam.Forward = world.Vec3{Z: -1}

	sx, sy, depth, ok := cam.Project(world.Vec3{Z: -10}, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 400.0, sx, 1e-9)
	assert.InDelta(t, 300.0, sy, 1e-9)
	assert.InDelta(t, 10.0, depth, 1e-9)

	// Right of the view axis lands right of centre, above lands higher up.
	sx, sy, _, ok = cam.Project(world.Vec3{X: 1, Y: 1, Z: -10}, 800, 600)
	require.True(t, ok)
	assert.Greater(t, sx, 400.0)
	assert.Less(t, sy, 300.0)
}

func TestCamera_ProjectBehindAndBeyond(t *testing.T) {
	cam := DefaultCamera()
	cam.Position = world.Vec3{}
	cam.Forward = world.Vec3{Z: -1}

	_, _, _, ok := cam.Project(world.Vec3{Z: 5}, 800, 600)
	assert.False(t, ok, "behind the camera")
	_, _, _, ok = cam.Project(world.Vec3{Z: -0.05}, 800, 600)
	assert.False(t, ok, "inside the near plane")
	_, _, _, ok = cam.Project(world.Vec3{Z: -2000}, 800, 600)
	assert.False(t, ok, "past the far plane")
}

func TestCamera_StraightDownStillHasBasis(t *testing.T) {
	cam := DefaultCamera()
	cam.Position = world.Vec3{Y: 10}
	cam.Forward = world.Vec3{Y: -1}

	_, _, depth, ok := cam.Project(world.Vec3{}, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 10.0, depth, 1e-9)
}

func TestClipNear(t *testing.T) {
	tri := []world.Vec3{{X: 0, Z: -1}, {X: 1, Z: 5}, {X: -1, Z: 5}}
	out := clipNear(tri, 0.1)

	require.Len(t, out, 4, "one vertex behind turns a triangle into a quad")
	for _, v := range out {
		assert.GreaterOrEqual(t, v.Z, 0.1-1e-12)
	}

	assert.Empty(t, clipNear([]world.Vec3{{Z: -1}, {X: 1, Z: -1}, {Z: -2}}, 0.1))
	assert.Len(t, clipNear([]world.Vec3{{Z: 1}, {X: 1, Z: 1}, {Z: 2}}, 0.1), 3)
	assert.Nil(t, clipNear(nil, 0.1))
}
