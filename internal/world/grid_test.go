package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_PinnedConstants(t *testing.T) {
	assert.Equal(t, CellRoad, Classify(0, 0, 60))
	assert.Equal(t, CellBuildingSite, Classify(20, 20, 60))
	assert.Equal(t, CellRoad, Classify(60, 20, 60))
	assert.Equal(t, CellRoad, Classify(-40, -60, 60))
	assert.Equal(t, CellBuildingSite, Classify(-40, -20, 60))
	assert.Equal(t, CellRoad, Classify(-100, 100, 50))
}

func TestClassify_MatchesRuleForEveryCell(t *testing.T) {
	for _, period := range []int{20, 40, 60, 100} {
		layout := GridLayout{GridSize: 200, CellSize: 20, RoadPeriod: period}
		for _, c := range layout.Cells() {
			ax, az := intAbs(c.X), intAbs(c.Z)
			want := ax%period == 0 || az%period == 0
			assert.Equal(t, want, c.Kind == CellRoad, "cell (%d,%d) period %d", c.X, c.Z, period)
			assert.Equal(t, c.Kind, Classify(c.X, c.Z, period), "classification must be pure")
		}
	}
}

func TestGridLayout_Cells(t *testing.T) {
	layout := DefaultCityConfig.Layout()
	cells := layout.Cells()

	require.Equal(t, 10, layout.Dim())
	require.Len(t, cells, 100)

	assert.Equal(t, Cell{IX: 0, IZ: 0, X: -100, Z: -100, Kind: CellBuildingSite}, cells[0])
	assert.Equal(t, -80, cells[1].Z, "z is the inner loop")
	assert.Equal(t, -100, cells[1].X)
	assert.Equal(t, 80, cells[len(cells)-1].X)
	assert.Equal(t, 80, cells[len(cells)-1].Z)

	roads := 0
	for _, c := range cells {
		if c.Kind == CellRoad {
			roads++
		}
	}
	// Three road lines per axis (-60, 0, 60): 100 - 7*7 cells.
	assert.Equal(t, 51, roads)
}

func TestGridLayout_CellAt(t *testing.T) {
	layout := DefaultCityConfig.Layout()

	ix, iz := layout.CellAt(-100, -100)
	assert.Equal(t, [2]int{0, 0}, [2]int{ix, iz})

	ix, iz = layout.CellAt(-81, 5)
	assert.Equal(t, [2]int{0, 5}, [2]int{ix, iz})

	ix, iz = layout.CellAt(0, 0)
	assert.Equal(t, [2]int{5, 5}, [2]int{ix, iz})

	ix, _ = layout.CellAt(-101, 0)
	assert.Equal(t, -1, ix, "outside the grid maps outside the index range")
}

func TestGridLayout_Boundary(t *testing.T) {
	assert.InDelta(t, 100.0, DefaultCityConfig.Layout().Boundary(), 1e-12)
	assert.Equal(t, 0, GridLayout{GridSize: 100}.Dim(), "zero cell size yields no cells")
}
