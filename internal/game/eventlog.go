package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/city-walk/internal/world"
)

const (
	eventLogMaxEntries = 8
	eventLogLineHeight = 14
	eventLogWidth      = 360
)

// EventEntry is a single line in the on-screen event log.
type EventEntry struct {
	Tick     int
	Label    string // e.g. "player", "car3"
	Category string
	Message  string
}

// EventLog is a ring buffer of recent session events rendered on-screen.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventEntry, eventLogMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(e EventEntry) {
	el.entries[el.head] = e
	el.head = (el.head + 1) % eventLogMaxEntries
	if el.count < eventLogMaxEntries {
		el.count++
	}
}

// AddSim appends a SimLog entry. Per-tick flips are left out; they are
// only interesting in the headless report.
func (el *EventLog) AddSim(e world.SimLogEntry) {
	if e.Category == world.CatEntity {
		return
	}
	el.Add(EventEntry{
		Tick:     e.Tick,
		Label:    e.Subject,
		Category: string(e.Category),
		Message:  fmt.Sprintf("%s %s", e.Key, e.Value),
	})
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + eventLogMaxEntries) % eventLogMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// Draw renders the log in the bottom-left corner, newest at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, screenH int) {
	entries := el.Recent()
	if len(entries) == 0 {
		return
	}
	panelH := len(entries)*eventLogLineHeight + 8
	y0 := screenH - panelH - 8
	vector.FillRect(screen, 8, float32(y0), eventLogWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 170}, false)
	vector.StrokeLine(screen, 8, float32(y0), 8+eventLogWidth, float32(y0), 1.0, color.RGBA{R: 80, G: 100, B: 80, A: 200}, false)

	y := y0 + 4
	for i, e := range entries {
		// Highlight the newest line.
		if i == len(entries)-1 {
			vector.FillRect(screen, 10, float32(y), eventLogWidth-4, eventLogLineHeight, color.RGBA{R: 40, G: 50, B: 40, A: 160}, false)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d [%s] %s", e.Tick, e.Label, e.Message), 14, y)
		y += eventLogLineHeight
	}
}
