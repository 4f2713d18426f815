package world

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / ReferenceHz

func TestUpdateEntities_AdvancesBySpeed(t *testing.T) {
	ents := []Entity{NewCar(0, 0, 0.5), NewPedestrian(10, 10)}
	flips := UpdateEntities(ents, 100, frame)

	assert.Empty(t, flips)
	assert.InDelta(t, 0.5, ents[0].Position.X, 1e-12)
	assert.InDelta(t, 10.05, ents[1].Position.X, 1e-12)
	assert.InDelta(t, 10.0, ents[1].Position.Z, 1e-12)
	assert.InDelta(t, EntityGroundY, ents[0].Position.Y, 1e-12)
}

func TestUpdateEntities_FrameRateIndependent(t *testing.T) {
	one := []Entity{NewCar(-50, 0, 0.3)}
	two := []Entity{NewCar(-50, 0, 0.3)}

	UpdateEntities(one, 100, 0.5)
	for i := 0; i < 30; i++ {
		UpdateEntities(two, 100, 0.5/30)
	}
	assert.InDelta(t, one[0].Position.X, two[0].Position.X, 1e-9)
}

func TestUpdateEntities_FlipsX(t *testing.T) {
	ents := []Entity{NewCar(99.8, 5, 0.5)}
	flips := UpdateEntities(ents, 100, frame)

	require.Len(t, flips, 1)
	assert.Equal(t, Flip{Index: 0, Axis: AxisX, From: ents[0].Position.X * -1}, flips[0])
	assert.InDelta(t, -100.3, ents[0].Position.X, 1e-9)
	assert.InDelta(t, 5.0, ents[0].Position.Z, 1e-12, "z untouched")
	assert.Equal(t, Vec3{X: 1}, ents[0].Direction, "direction is never altered")
	assert.InDelta(t, 0.5, ents[0].Speed, 1e-12)
}

func TestUpdateEntities_FlipsNegativeSide(t *testing.T) {
	e := NewPedestrian(-99.98, 0)
	e.Direction = Vec3{X: -1}
	ents := []Entity{e}
	UpdateEntities(ents, 100, frame)

	assert.InDelta(t, 100.03, ents[0].Position.X, 1e-9)
	assert.Equal(t, Vec3{X: -1}, ents[0].Direction)
}

func TestUpdateEntities_FlipsBothAxesInOneTick(t *testing.T) {
	e := NewCar(99.9, 99.9, 0.5)
	e.Direction = Vec3{X: 1, Z: 1}.Normalize()
	ents := []Entity{e}
	flips := UpdateEntities(ents, 100, frame)

	require.Len(t, flips, 2)
	assert.Equal(t, AxisX, flips[0].Axis)
	assert.Equal(t, AxisZ, flips[1].Axis)
	assert.Less(t, ents[0].Position.X, -100.0)
	assert.Less(t, ents[0].Position.Z, -100.0)
}

func TestUpdateEntities_BoundaryProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	const boundary = 100.0
	ents := make([]Entity, 64)
	for i := range ents {
		angle := rng.Float64() * 2 * math.Pi
		ents[i] = NewCar(rng.Float64()*200-100, rng.Float64()*200-100, CarMinSpeed+rng.Float64()*0.3)
		ents[i].Direction = Vec3{X: math.Cos(angle), Z: math.Sin(angle)}
	}

	for tick := 0; tick < 2000; tick++ {
		dt := frame * (0.5 + rng.Float64())
		before := make([]Entity, len(ents))
		copy(before, ents)
		UpdateEntities(ents, boundary, dt)

		for i := range ents {
			b, a := before[i], ents[i]
			moved := b.Position.Add(b.Direction.Scale(b.Speed * dt * ReferenceHz))
			if math.Abs(moved.X) > boundary {
				assert.InDelta(t, -moved.X, a.Position.X, 1e-9, "tick %d entity %d x", tick, i)
			} else {
				assert.InDelta(t, moved.X, a.Position.X, 1e-9)
			}
			if math.Abs(moved.Z) > boundary {
				assert.InDelta(t, -moved.Z, a.Position.Z, 1e-9, "tick %d entity %d z", tick, i)
			} else {
				assert.InDelta(t, moved.Z, a.Position.Z, 1e-9)
			}
			assert.Equal(t, b.Direction, a.Direction)
			assert.Equal(t, b.Speed, a.Speed)

			step := b.Speed * dt * ReferenceHz
			assert.LessOrEqual(t, math.Abs(a.Position.X), boundary+step+1e-9)
			assert.LessOrEqual(t, math.Abs(a.Position.Z), boundary+step+1e-9)
		}
		if t.Failed() {
			return
		}
	}
}

func TestUpdateEntities_ZeroDt(t *testing.T) {
	ents := []Entity{NewCar(1, 2, 0.4)}
	UpdateEntities(ents, 100, 0)
	assert.Equal(t, Vec3{X: 1, Y: EntityGroundY, Z: 2}, ents[0].Position)
}
