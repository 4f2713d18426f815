package world

import (
	"fmt"
	"iter"
	"strings"
)

// Category groups SimLog entries by the system that produced them.
type Category string

const (
	CatCity   Category = "city"
	CatPlayer Category = "player"
	CatCamera Category = "camera"
	CatEntity Category = "entity"
	CatShot   Category = "shot"
)

// SimLogEntry is one recorded session event. Subject is "player", an
// entity label such as "car3" or "ped7", or "--" for city-wide events.
type SimLogEntry struct {
	Tick     int
	Subject  string
	Category Category
	Key      string
	Value    string
	NumVal   float64 // distance, camera distance or pre-flip coordinate
}

//	[T=042] player camera   mode_change     third_person → first_person
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-6s %-8s %-15s %s",
		e.Tick, e.Subject, e.Category, e.Key, e.Value)
}

// SimLog is the unbounded event record a Session appends to. Boundary
// flips are only kept in verbose mode since every entity produces one
// each time it wraps.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Add(tick int, subject string, cat Category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Subject:  subject,
		Category: cat,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose is Add gated on verbose mode.
func (sl *SimLog) AddVerbose(tick int, subject string, cat Category, key, value string, numVal float64) {
	if sl.verbose {
		sl.Add(tick, subject, cat, key, value, numVal)
	}
}

func (sl *SimLog) Verbose() bool { return sl.verbose }

// Entries returns the backing slice; callers must not modify it.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Matching yields entries of one category, oldest first. An empty key
// matches every key in the category.
func (sl *SimLog) Matching(cat Category, key string) iter.Seq[SimLogEntry] {
	return func(yield func(SimLogEntry) bool) {
		for _, e := range sl.entries {
			if e.Category != cat || (key != "" && e.Key != key) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func (sl *SimLog) Count(cat Category, key string) int {
	n := 0
	for range sl.Matching(cat, key) {
		n++
	}
	return n
}

// Last returns the newest matching entry.
func (sl *SimLog) Last(cat Category, key string) (SimLogEntry, bool) {
	var last SimLogEntry
	found := false
	for e := range sl.Matching(cat, key) {
		last, found = e, true
	}
	return last, found
}

// Contains reports whether a matching entry's Value contains substr.
func (sl *SimLog) Contains(cat Category, key, substr string) bool {
	for e := range sl.Matching(cat, key) {
		if strings.Contains(e.Value, substr) {
			return true
		}
	}
	return false
}

// Format renders the log one entry per line, for test failure output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
