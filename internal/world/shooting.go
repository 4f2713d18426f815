package world

// DefaultShotRange matches the camera far plane.
const DefaultShotRange = 1000.0

// Hit is the nearest entity struck by a shot.
type Hit struct {
	Index    int // index into the entity slice
	Kind     EntityKind
	Distance float64
}

// Shooter resolves shoot requests against the entity set through the
// backend's raycast.
type Shooter struct {
	raycaster Backend
	sink      ScoreSink
	Range     float64
}

// NewShooter creates a shooter. sink may be nil.
func NewShooter(b Backend, sink ScoreSink) *Shooter {
	return &Shooter{raycaster: b, sink: sink, Range: DefaultShotRange}
}

// Fire casts a ray from origin along forward. While unlocked it is a no-op:
// no raycast and no score. A hit within Range increments the score once.
func (sh *Shooter) Fire(locked bool, origin, forward Vec3, entities []Entity) (Hit, bool) {
	if !locked {
		return Hit{}, false
	}
	dir := forward.Normalize()
	if dir == (Vec3{}) || len(entities) == 0 {
		return Hit{}, false
	}

	candidates := make([]Handle, 0, len(entities))
	byHandle := make(map[Handle]int, len(entities))
	for i := range entities {
		h := entities[i].mesh
		if h == 0 {
			continue
		}
		candidates = append(candidates, h)
		byHandle[h] = i
	}

	h, dist, ok := sh.raycaster.Raycast(origin, dir, candidates)
	if !ok || dist > sh.Range {
		return Hit{}, false
	}
	idx, known := byHandle[h]
	if !known {
		return Hit{}, false
	}
	if sh.sink != nil {
		sh.sink.OnScoreIncrement()
	}
	return Hit{Index: idx, Kind: entities[idx].Kind, Distance: dist}, true
}
