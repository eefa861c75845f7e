// Package engine interprets a loaded adventure Program: it resolves player
// commands against the vocabulary, matches and executes action rules, and
// mutates the runtime state one turn at a time. The engine performs no I/O;
// everything the player sees goes through the Terminal interface.
package engine

// Runtime register sizes. Flags 15 and 16 are reserved by the format for
// darkness and lamp exhaustion.
const (
	NumFlags      = 32
	NumCounters   = 16
	NumSavedRooms = 32

	FlagDark     = 15
	FlagLampDead = 16
)

// LightSourceItem is the fixed item index of the lamp.
const LightSourceItem = 9

// Verb indices fixed by the data format convention.
const (
	VerbGo   = 1
	VerbGet  = 10
	VerbDrop = 18
)

// FinishReason explains why a session ended.
type FinishReason int

const (
	ReasonScoreVictory FinishReason = 0 // all treasures stored
	ReasonGameOver     FinishReason = 1 // explicit end-game instruction
	ReasonFellInDark   FinishReason = 2 // moved blind through a missing exit
	ReasonKilled       FinishReason = 3 // death instruction
)

// State is the mutable runtime state of a session: everything that changes
// during play apart from item locations, which live on the Program's items.
// It is the unit of save and restore.
type State struct {
	CurrentRoom int
	Flags       [NumFlags]bool
	Counter     int // the active counter
	Counters    [NumCounters]int
	SavedRoom   int // register swapped with the current room
	SavedRooms  [NumSavedRooms]int
	LampFuel    int
	LastNoun    string
	NeedsLook   bool
	Finished    bool
	Reason      FinishReason
}

// Dark reports the reserved darkness flag.
func (s *State) Dark() bool { return s.Flags[FlagDark] }

// Terminal is the engine's display and input boundary. Display may be
// called any number of times per turn; Prompt exactly once, signaling that
// the host should collect the next command line.
type Terminal interface {
	Display(text string)
	Prompt(text string)
}

// Saver is an optional Terminal capability. When the program executes its
// in-game save instruction the engine hands control to the host, which owns
// the save location and format.
type Saver interface {
	SaveRequested()
}
