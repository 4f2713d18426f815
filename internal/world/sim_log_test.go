package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimLog_Queries(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "player", CatShot, "miss", "shot#1", 0)
	sl.Add(2, "ped3", CatShot, "hit", "shot#2 pedestrian at 12.0", 12)
	sl.Add(3, "player", CatCamera, "mode_change", "third_person → first_person", 0.4)
	sl.Add(4, "car0", CatShot, "hit", "shot#3 car at 30.5", 30.5)

	assert.Equal(t, 3, sl.Count(CatShot, ""))
	assert.Equal(t, 2, sl.Count(CatShot, "hit"))
	assert.Zero(t, sl.Count(CatCity, ""))

	last, ok := sl.Last(CatShot, "hit")
	require.True(t, ok)
	assert.Equal(t, "car0", last.Subject)
	_, ok = sl.Last(CatPlayer, "lock")
	assert.False(t, ok)

	assert.True(t, sl.Contains(CatShot, "hit", "pedestrian"))
	assert.False(t, sl.Contains(CatShot, "miss", "pedestrian"))

	var ticks []int
	for e := range sl.Matching(CatShot, "hit") {
		ticks = append(ticks, e.Tick)
		break
	}
	assert.Equal(t, []int{2}, ticks, "iteration stops when the consumer does")
}

func TestSimLog_VerboseGate(t *testing.T) {
	quiet := NewSimLog(false)
	quiet.AddVerbose(1, "car0", CatEntity, "flip", "x 100.30 → -100.30", 100.3)
	assert.Empty(t, quiet.Entries())

	loud := NewSimLog(true)
	loud.AddVerbose(1, "car0", CatEntity, "flip", "x 100.30 → -100.30", 100.3)
	assert.Len(t, loud.Entries(), 1)
}

func TestSimLog_Format(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(42, "player", CatCamera, "mode_change", "third_person → first_person", 0.4)
	sl.Add(43, "--", CatCity, "generated", "buildings=0 roads=0 entities=0", 0)

	lines := strings.Split(strings.TrimRight(sl.Format(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[T=042] player camera   mode_change"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "buildings=0 roads=0 entities=0"), lines[1])
}
