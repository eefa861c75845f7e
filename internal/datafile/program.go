// Package datafile reads classic Scott Adams adventure data files into an
// in-memory Program: header counts, action table, vocabulary, rooms,
// messages and items. The format is line-oriented text where integers sit
// on their own lines and strings are double-quoted, possibly spanning
// several physical lines.
package datafile

import "strings"

// Item location sentinels. Any other value is a room index.
const (
	LocCarried = -1 // in the player's inventory
	LocNowhere = 0  // destroyed / not in play
)

// Directions per room, in N, S, E, W, Up, Down order.
const NumExits = 6

// Slots per action entry in the raw file: 1 verb/noun word, 5 packed
// conditions, 2 packed instruction pairs.
const (
	NumConditions       = 5
	NumInstructionSlots = 2
	actionEntryInts     = 1 + NumConditions + NumInstructionSlots
)

// Header holds the counts and parameters from the file prologue. All count
// fields are inclusive: a count of N means N+1 entries exist (index 0 is
// always present).
type Header struct {
	Unknown      int // first field, unused by interpreters
	NumItems     int
	NumActions   int
	NumWords     int // verb/noun pairs
	NumRooms     int
	MaxCarry     int
	StartRoom    int
	NumTreasures int
	WordLength   int // significant characters for vocabulary matching
	LightTime    int // lamp fuel in turns
	NumMessages  int
	TreasureRoom int
}

// Trailer holds the three integers after the action comments.
type Trailer struct {
	Version         int
	AdventureNumber int
	Magic           int
}

// Room is a description plus six exits. A zero exit means no passage in
// that direction.
type Room struct {
	Description string
	Exits       [NumExits]int
}

// Item is a game object. Description may carry a leading "*" marking it a
// treasure. Name is the optional /NAME/ sub-token used by the automatic
// get/drop handlers; empty when the item cannot be picked up by name.
type Item struct {
	Description   string
	Name          string
	Location      int
	StartLocation int
}

// IsTreasure reports whether the item counts toward the treasure score.
func (it Item) IsTreasure() bool {
	return strings.HasPrefix(it.Description, "*")
}

// DisplayName returns the description without the treasure markers.
func (it Item) DisplayName() string {
	return strings.TrimSuffix(strings.TrimPrefix(it.Description, "*"), "*")
}

// Condition is one decoded condition slot of an action. Op zero slots are
// not stored here; their values go to the action's Args list instead.
type Condition struct {
	Op    int
	Value int
}

// Action is one rule of the action table. Instructions holds the up to four
// non-zero sub-codes decoded from the two packed instruction values, in
// execution order. Args holds the literal parameters stolen from op-zero
// condition slots, consumed left to right during execution.
type Action struct {
	Verb         int
	Noun         int
	Conditions   []Condition
	Instructions []int
	Args         []int
	Comment      string
}

// Vocabulary is the two parallel word lists. Index 0 is the reserved
// unmatched entry. Entries starting with "*" are synonyms for the nearest
// preceding entry without the marker.
type Vocabulary struct {
	Verbs []string
	Nouns []string
}

// Program is a fully loaded adventure. Everything is read-only after load
// except Item.Location, which the engine mutates during play.
type Program struct {
	Header   Header
	Trailer  Trailer
	Actions  []Action
	Words    Vocabulary
	Rooms    []Room
	Messages []string
	Items    []Item
}

// FindWord resolves a player word against a word list, honoring the
// configured match length and synonym runs. Both the truncated and the full
// word may match. A hit on a "*"-prefixed entry walks back to the first
// entry of the contiguous starred run. Returns 0 when the query is empty or
// nothing matches.
func FindWord(word string, list []string, matchLen int) int {
	if word == "" {
		return 0
	}
	up := strings.ToUpper(word)
	short := truncate(up, matchLen)

	for i, entry := range list {
		cand := strings.ToUpper(entry)
		starred := strings.HasPrefix(cand, "*")
		stripped := strings.TrimPrefix(cand, "*")

		hit := short == truncate(cand, matchLen) || up == cand
		if !hit && starred {
			hit = short == truncate(stripped, matchLen) || up == stripped
		}
		if !hit {
			continue
		}
		if starred {
			// Resolve to the canonical entry heading this synonym run.
			for i > 0 && strings.HasPrefix(list[i], "*") {
				i--
			}
		}
		return i
	}
	return 0
}

func truncate(s string, n int) string {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
