package world

// CellKind classifies one cell of the generation grid.
type CellKind uint8

const (
	CellBuildingSite CellKind = iota // eligible for a building
	CellRoad                         // always paved
)

func (k CellKind) String() string {
	switch k {
	case CellRoad:
		return "road"
	case CellBuildingSite:
		return "building_site"
	default:
		return "unknown"
	}
}

// Cell is one square of the generation grid. X and Z are the world
// coordinates the generator visits; IX and IZ are the grid indices.
type Cell struct {
	IX, IZ int
	X, Z   int
	Kind   CellKind
}

// Classify reports whether the cell at world coordinates (x, z) is a road.
// A cell is a road when either absolute coordinate is a multiple of
// roadPeriod. roadPeriod must be positive.
func Classify(x, z, roadPeriod int) CellKind {
	if intAbs(x)%roadPeriod == 0 || intAbs(z)%roadPeriod == 0 {
		return CellRoad
	}
	return CellBuildingSite
}

// GridLayout partitions the square [-GridSize/2, GridSize/2) into cells of
// CellSize, with a road every RoadPeriod world units.
type GridLayout struct {
	GridSize   int
	CellSize   int
	RoadPeriod int
}

// Origin is the world coordinate of the first visited cell on each axis.
func (l GridLayout) Origin() int {
	return -l.GridSize / 2
}

// Dim is the number of cells along one axis.
func (l GridLayout) Dim() int {
	if l.CellSize <= 0 {
		return 0
	}
	n := 0
	for v := l.Origin(); v < l.GridSize/2; v += l.CellSize {
		n++
	}
	return n
}

// CellAt maps world coordinates to grid indices. Coordinates outside the
// grid map to indices outside [0, Dim()).
func (l GridLayout) CellAt(x, z float64) (ix, iz int) {
	o := float64(l.Origin())
	cs := float64(l.CellSize)
	return floorDiv(x-o, cs), floorDiv(z-o, cs)
}

// Cells returns every cell in generation order: x outer, z inner.
func (l GridLayout) Cells() []Cell {
	dim := l.Dim()
	cells := make([]Cell, 0, dim*dim)
	half := l.GridSize / 2
	ix := 0
	for x := l.Origin(); x < half; x += l.CellSize {
		iz := 0
		for z := l.Origin(); z < half; z += l.CellSize {
			cells = append(cells, Cell{
				IX:   ix,
				IZ:   iz,
				X:    x,
				Z:    z,
				Kind: Classify(x, z, l.RoadPeriod),
			})
			iz++
		}
		ix++
	}
	return cells
}

// Boundary is the half-extent entities patrol within.
func (l GridLayout) Boundary() float64 {
	return float64(l.GridSize) / 2
}

func floorDiv(v, d float64) int {
	q := v / d
	i := int(q)
	if float64(i) > q {
		i--
	}
	return i
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
