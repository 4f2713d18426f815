package world

const (
	CarMinSpeed     = 0.2  // units per reference frame
	CarMaxSpeed     = 0.5  // units per reference frame
	PedestrianSpeed = 0.05 // units per reference frame
	EntityGroundY   = 1.0  // entity centre height above the ground plane

	// ReferenceHz is the frame rate entity speeds are expressed against.
	// Movement is scaled by elapsed time so it does not depend on the
	// host's actual frame rate.
	ReferenceHz = 60.0
)

// EntityKind tags the patrol entity variant.
type EntityKind uint8

const (
	KindCar EntityKind = iota
	KindPedestrian
)

func (k EntityKind) String() string {
	switch k {
	case KindCar:
		return "car"
	case KindPedestrian:
		return "pedestrian"
	default:
		return "unknown"
	}
}

// Dimensions returns the box the entity is drawn and hit-tested as.
func (k EntityKind) Dimensions() Vec3 {
	switch k {
	case KindCar:
		return Vec3{X: 4, Y: 2, Z: 2}
	default:
		return Vec3{X: 1, Y: 2, Z: 1}
	}
}

// Entity is a patrolling car or pedestrian. Direction is a unit vector and
// never changes; Position is mutated only by UpdateEntities.
type Entity struct {
	Kind      EntityKind
	Position  Vec3
	Direction Vec3
	Speed     float64

	mesh Handle
}

// NewCar creates a car at (x, z) heading +X.
func NewCar(x, z, speed float64) Entity {
	return Entity{
		Kind:      KindCar,
		Position:  Vec3{X: x, Y: EntityGroundY, Z: z},
		Direction: Vec3{X: 1},
		Speed:     clamp(speed, CarMinSpeed, CarMaxSpeed),
	}
}

// NewPedestrian creates a pedestrian at (x, z) heading +X.
func NewPedestrian(x, z float64) Entity {
	return Entity{
		Kind:      KindPedestrian,
		Position:  Vec3{X: x, Y: EntityGroundY, Z: z},
		Direction: Vec3{X: 1},
		Speed:     PedestrianSpeed,
	}
}

// Mesh returns the backend handle the entity was materialised as.
func (e *Entity) Mesh() Handle {
	return e.mesh
}
