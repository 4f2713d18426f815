package world

// EntitySnapshot is the serialisable form of a spawned entity.
type EntitySnapshot struct {
	Kind  string  `yaml:"kind"`
	X     float64 `yaml:"x"`
	Z     float64 `yaml:"z"`
	Speed float64 `yaml:"speed"`
}

// CitySnapshot is a generated layout in the form written by the headless
// report's -dump flag and read back by fixtures.
type CitySnapshot struct {
	Seed       int64            `yaml:"seed,omitempty"`
	GridSize   int              `yaml:"gridSize"`
	CellSize   int              `yaml:"cellSize"`
	RoadPeriod int              `yaml:"roadPeriod"`
	Roads      []RoadSegment    `yaml:"roads"`
	Buildings  []Building       `yaml:"buildings"`
	Entities   []EntitySnapshot `yaml:"entities"`
}

// Snapshot captures the city as generated.
func (c City) Snapshot() CitySnapshot {
	snap := CitySnapshot{
		GridSize:   c.Config.GridSize,
		CellSize:   c.Config.CellSize,
		RoadPeriod: c.Config.RoadPeriod,
		Roads:      append([]RoadSegment{}, c.Roads...),
		Buildings:  append([]Building{}, c.Buildings...),
		Entities:   make([]EntitySnapshot, 0, len(c.Entities)),
	}
	for _, e := range c.Entities {
		snap.Entities = append(snap.Entities, EntitySnapshot{
			Kind:  e.Kind.String(),
			X:     e.Position.X,
			Z:     e.Position.Z,
			Speed: e.Speed,
		})
	}
	return snap
}
