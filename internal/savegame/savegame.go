// Package savegame persists engine runtime state between sessions as a
// YAML document. The Program itself is never saved; it is reloaded from the
// static data file, and a record only makes sense against the same file.
package savegame

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kirilian/tui-advent/internal/datafile"
	"github.com/kirilian/tui-advent/internal/engine"
)

// TranscriptWindow bounds how many trailing display/input lines a record
// keeps for UI continuity.
const TranscriptWindow = 25

// Record is the serialized form of one session's mutable state.
type Record struct {
	Version         int      `yaml:"version"`
	AdventureNumber int      `yaml:"adventure_number"`
	CurrentRoom     int      `yaml:"current_room"`
	Counter         int      `yaml:"counter"`
	SavedRoom       int      `yaml:"saved_room"`
	Counters        []int    `yaml:"counters"`
	SavedRooms      []int    `yaml:"saved_rooms"`
	Flags           []bool   `yaml:"flags"`
	Dark            bool     `yaml:"dark"`
	LightTime       int      `yaml:"light_time"`
	LampFuel        int      `yaml:"lamp_fuel"`
	LastNoun        string   `yaml:"last_noun,omitempty"`
	ItemLocations   []int    `yaml:"item_locations"`
	Transcript      []string `yaml:"transcript,omitempty"`
}

// Capture snapshots the engine's runtime state plus a bounded transcript
// tail.
func Capture(e *engine.Engine, transcript []string) Record {
	s := e.State()
	p := e.Program()

	if len(transcript) > TranscriptWindow {
		transcript = transcript[len(transcript)-TranscriptWindow:]
	}

	r := Record{
		Version:         p.Trailer.Version,
		AdventureNumber: p.Trailer.AdventureNumber,
		CurrentRoom:     s.CurrentRoom,
		Counter:         s.Counter,
		SavedRoom:       s.SavedRoom,
		Counters:        append([]int(nil), s.Counters[:]...),
		SavedRooms:      append([]int(nil), s.SavedRooms[:]...),
		Flags:           append([]bool(nil), s.Flags[:]...),
		Dark:            s.Flags[engine.FlagDark],
		LightTime:       p.Header.LightTime,
		LampFuel:        s.LampFuel,
		LastNoun:        s.LastNoun,
		ItemLocations:   make([]int, len(p.Items)),
		Transcript:      append([]string(nil), transcript...),
	}
	for i := range p.Items {
		r.ItemLocations[i] = p.Items[i].Location
	}
	return r
}

// Apply replaces the engine's runtime state with the record's, in place.
// Item locations are matched by index; a record from a different data file
// is the caller's problem, guarded loosely by the version fields.
func (r Record) Apply(e *engine.Engine) {
	s := &engine.State{
		CurrentRoom: r.CurrentRoom,
		Counter:     r.Counter,
		SavedRoom:   r.SavedRoom,
		LampFuel:    r.LampFuel,
		LastNoun:    r.LastNoun,
	}
	copyInts(s.Counters[:], r.Counters)
	copyInts(s.SavedRooms[:], r.SavedRooms)
	for i := range s.Flags {
		if i < len(r.Flags) {
			s.Flags[i] = r.Flags[i]
		}
	}
	s.Flags[engine.FlagDark] = r.Dark
	e.ReplaceState(s)

	items := e.Program().Items
	for i := range items {
		if i < len(r.ItemLocations) {
			items[i].Location = r.ItemLocations[i]
		}
	}
}

// Matches reports whether the record was taken from the same adventure.
func (r Record) Matches(t datafile.Trailer) bool {
	return r.Version == t.Version && r.AdventureNumber == t.AdventureNumber
}

// Save writes the record to path, creating parent directories as needed.
func Save(path string, r Record) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("savegame: marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("savegame: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("savegame: %w", err)
	}
	return nil
}

// Load reads a record from path. A missing or undecodable file reports
// ok=false so callers leave the current state untouched.
func Load(path string) (Record, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, false
	}
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Record{}, false
	}
	return r, true
}

// Restore loads path and applies it to the engine. On any failure the
// engine is left exactly as it was. Returns the saved transcript tail.
func Restore(path string, e *engine.Engine) ([]string, bool) {
	r, ok := Load(path)
	if !ok || !r.Matches(e.Program().Trailer) {
		return nil, false
	}
	r.Apply(e)
	return r.Transcript, true
}

func copyInts(dst []int, src []int) {
	for i := range dst {
		if i < len(src) {
			dst[i] = src[i]
		}
	}
}
