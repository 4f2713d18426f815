package world

import "math"

// Axis names a horizontal world axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisZ
)

func (a Axis) String() string {
	if a == AxisZ {
		return "z"
	}
	return "x"
}

// Flip records one boundary sign flip performed during an update.
type Flip struct {
	Index int  // index into the entity slice
	Axis  Axis // axis whose sign was negated
	From  float64
}

// UpdateEntities advances every entity along its direction by
// speed * dt * ReferenceHz, then applies the boundary rule: when |x| exceeds
// boundary, x is negated; independently the same for z. Direction and speed
// are never touched. The returned flips are in entity order, x before z.
//
// An entity ends within one advance of the boundary only while every dt
// is at most 1/ReferenceHz; Session.Step substeps to keep it that way.
func UpdateEntities(entities []Entity, boundary, dt float64) []Flip {
	var flips []Flip
	step := dt * ReferenceHz
	for i := range entities {
		e := &entities[i]
		e.Position = e.Position.Add(e.Direction.Scale(e.Speed * step))

		if math.Abs(e.Position.X) > boundary {
			flips = append(flips, Flip{Index: i, Axis: AxisX, From: e.Position.X})
			e.Position.X = -e.Position.X
		}
		if math.Abs(e.Position.Z) > boundary {
			flips = append(flips, Flip{Index: i, Axis: AxisZ, From: e.Position.Z})
			e.Position.Z = -e.Position.Z
		}
	}
	return flips
}
