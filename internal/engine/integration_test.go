package engine

import (
	"testing"

	"github.com/kirilian/tui-advent/internal/datafile"
)

// tinyGameFile is a complete raw data file: one rule (WAVE WAND prints a
// message), three word pairs, two rooms, one real item. It exercises the
// whole path from the on-disk format to displayed text.
const tinyGameFile = `0
1
1
2
1
1
1
0
3
100
1
1
0
0
0
0
0
0
0
0
302
0
0
0
0
0
150
0
"AUT"
"ANY"
"GO"
"NOR"
"WAV"
"WAN"
0
0
0
0
0
0
""
0
0
0
0
0
0
"wizard's den"
""
"A sparkle fills the air."
"" 0
"Willow wand/WAN/" 1
""
"wave the wand"
1
7
0
`

func TestLoadedProgramPlaysEndToEnd(t *testing.T) {
	prog, err := datafile.Load(tinyGameFile)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	term := &recorder{}
	e := New(prog, term, Options{Seed: 1})
	e.Begin()

	if !term.contains("I'm in a wizard's den") {
		t.Errorf("Opening should describe the loaded room, got %q", term.lines)
	}
	if !term.contains("Visible items: Willow wand") {
		t.Errorf("The wand should be visible, got %q", term.lines)
	}
	if !term.contains("Obvious exits: none") {
		t.Errorf("A room without exits lists none, got %q", term.lines)
	}

	// The file's sole rule: verb 2, noun 2 displays message 1.
	e.ProcessTurn("wave wand")
	if !term.contains("A sparkle fills the air.") {
		t.Errorf("The rule's message should display, got %q", term.lines)
	}

	// The rule requires its noun; the bare verb matches nothing.
	e.ProcessTurn("wave")
	if !term.contains("I don't understand your command.") {
		t.Errorf("Expected the not-understood message, got %q", term.lines)
	}
}
