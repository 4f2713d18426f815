package world

const (
	buildingMinWidth  = 10.0
	buildingMaxWidth  = 18.0
	buildingMinHeight = 10.0
	buildingMaxHeight = 60.0
	buildingMinDepth  = 10.0
	buildingMaxDepth  = 18.0
	buildingJitter    = 1.0 // total jitter span; offsets stay within ±0.5

	// RoadY lifts road tiles just above the ground plane.
	RoadY = 0.01
)

// Source is the uniform random source the generator draws from.
// *rand.Rand satisfies it; tests inject scripted sources.
type Source interface {
	Float64() float64
}

// CityConfig holds the tuneable parameters for city generation.
type CityConfig struct {
	GridSize    int     // side length of the square city in world units
	CellSize    int     // side length of one cell
	RoadPeriod  int     // a road runs every RoadPeriod units on each axis
	SpawnChance float64 // probability a road cell spawns an entity
	SkipChance  float64 // probability a building site stays empty
}

// DefaultCityConfig is the canonical 200-unit city.
var DefaultCityConfig = CityConfig{
	GridSize:    200,
	CellSize:    20,
	RoadPeriod:  60,
	SpawnChance: 0.1,
	SkipChance:  0.25,
}

// Layout returns the grid the config describes.
func (c CityConfig) Layout() GridLayout {
	return GridLayout{GridSize: c.GridSize, CellSize: c.CellSize, RoadPeriod: c.RoadPeriod}
}

// Building is a static box resting on the ground plane.
type Building struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Depth    float64 `yaml:"depth"`
	Position Vec3    `yaml:"position"`
}

// Dimensions returns the building's box size.
func (b Building) Dimensions() Vec3 {
	return Vec3{X: b.Width, Y: b.Height, Z: b.Depth}
}

// RoadSegment is one flat road tile.
type RoadSegment struct {
	X    float64 `yaml:"x"`
	Z    float64 `yaml:"z"`
	Size float64 `yaml:"size"`
}

// Position returns the tile centre.
func (r RoadSegment) Position() Vec3 {
	return Vec3{X: r.X, Y: RoadY, Z: r.Z}
}

// City is the output of one generation run.
type City struct {
	Config    CityConfig
	Buildings []Building
	Roads     []RoadSegment
	Entities  []Entity
}

// Generate walks the grid once and emits roads, buildings and patrol
// entities. Draws from src happen in this order per cell:
//
//	road:  spawn roll, then (on spawn) kind roll, then (car only) speed roll
//	site:  skip roll, then (if kept) width, height, depth, x jitter, z jitter
func Generate(cfg CityConfig, src Source) City {
	layout := cfg.Layout()
	cells := layout.Cells()
	city := City{
		Config:    cfg,
		Buildings: make([]Building, 0, len(cells)),
		Roads:     make([]RoadSegment, 0, len(cells)),
	}
	for _, c := range cells {
		x, z := float64(c.X), float64(c.Z)
		if c.Kind == CellRoad {
			city.Roads = append(city.Roads, RoadSegment{X: x, Z: z, Size: float64(cfg.CellSize)})
			if src.Float64() < cfg.SpawnChance {
				city.Entities = append(city.Entities, spawnEntity(x, z, src))
			}
			continue
		}
		if src.Float64() < cfg.SkipChance {
			continue
		}
		w := uniform(src, buildingMinWidth, buildingMaxWidth)
		h := uniform(src, buildingMinHeight, buildingMaxHeight)
		d := uniform(src, buildingMinDepth, buildingMaxDepth)
		jx := (src.Float64() - 0.5) * buildingJitter
		jz := (src.Float64() - 0.5) * buildingJitter
		city.Buildings = append(city.Buildings, Building{
			Width:    w,
			Height:   h,
			Depth:    d,
			Position: Vec3{X: x + jx, Y: h / 2, Z: z + jz},
		})
	}
	return city
}

// spawnEntity rolls the kind (and a car's speed) for a road-cell spawn.
func spawnEntity(x, z float64, src Source) Entity {
	if src.Float64() < 0.5 {
		return NewCar(x, z, uniform(src, CarMinSpeed, CarMaxSpeed))
	}
	return NewPedestrian(x, z)
}

func uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}
