package engine

import (
	"testing"

	"github.com/kirilian/tui-advent/internal/datafile"
)

// recorder captures everything the engine sends to its terminal.
type recorder struct {
	lines   []string
	prompts int
	saves   int
}

func (r *recorder) Display(text string) { r.lines = append(r.lines, text) }
func (r *recorder) Prompt(text string)  { r.prompts++ }
func (r *recorder) SaveRequested()      { r.saves++ }

func (r *recorder) contains(s string) bool {
	return r.count(s) > 0
}

func (r *recorder) count(s string) int {
	n := 0
	for _, line := range r.lines {
		if line == s {
			n++
		}
	}
	return n
}

// testProgram builds a tiny adventure: a cottage between a cellar and an
// attic, a treasure crown, a key and a lamp.
func testProgram() *datafile.Program {
	verbs := make([]string, 19)
	nouns := make([]string, 19)

	verbs[VerbGo] = "GO"
	verbs[2] = "*ENTER"
	verbs[4] = "LOOK"
	verbs[5] = "SCORE"
	verbs[6] = "INVENTORY"
	verbs[VerbGet] = "GET"
	verbs[11] = "*TAKE"
	verbs[14] = "RUB"
	verbs[VerbDrop] = "DROP"

	copy(nouns[1:], []string{"NORTH", "SOUTH", "EAST", "WEST", "UP", "DOWN", "CROWN", "KEY"})

	items := make([]datafile.Item, 10)
	items[1] = datafile.Item{Description: "*Golden crown*", Name: "CRO", Location: 2, StartLocation: 2}
	items[2] = datafile.Item{Description: "Rusty key", Name: "KEY", Location: 3, StartLocation: 3}
	items[9] = datafile.Item{Description: "Old brass lamp", Name: "LAM"}

	return &datafile.Program{
		Header: datafile.Header{
			NumItems:     len(items) - 1,
			NumWords:     18,
			NumRooms:     3,
			MaxCarry:     1,
			StartRoom:    1,
			NumTreasures: 1,
			WordLength:   3,
			LightTime:    100,
			NumMessages:  2,
			TreasureRoom: 1,
		},
		Rooms: []datafile.Room{
			{},
			{Description: "cozy cottage", Exits: [datafile.NumExits]int{0, 0, 0, 0, 3, 2}},
			{Description: "damp cellar", Exits: [datafile.NumExits]int{0, 0, 0, 0, 1, 0}},
			{Description: "*Dusty attic.", Exits: [datafile.NumExits]int{0, 0, 0, 0, 0, 1}},
		},
		Messages: []string{"", "The crown gleams softly.", "Nothing happens."},
		Items:    items,
		Words:    datafile.Vocabulary{Verbs: verbs, Nouns: nouns},
		Actions: []datafile.Action{
			{},
			{Verb: 4, Instructions: []int{64}},
			{Verb: 5, Instructions: []int{65}},
			{Verb: 6, Instructions: []int{66}},
			{Verb: 14, Noun: 7, Conditions: []datafile.Condition{{Op: 1, Value: 1}}, Instructions: []int{1}},
		},
	}
}

func newTestEngine(t *testing.T, prog *datafile.Program, opts Options) (*Engine, *recorder) {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	term := &recorder{}
	return New(prog, term, opts), term
}

func TestBeginDescribesStartRoom(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()

	if !term.contains("I'm in a cozy cottage") {
		t.Errorf("Opening should describe the start room, got %q", term.lines)
	}
	if !term.contains("Obvious exits: UP DOWN") {
		t.Errorf("Opening should list exits, got %q", term.lines)
	}
	if term.prompts != 1 {
		t.Errorf("Expected exactly one prompt, got %d", term.prompts)
	}
}

func TestLiteralRoomDescription(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()
	e.ProcessTurn("go up")

	if e.State().CurrentRoom != 3 {
		t.Fatalf("Expected room 3, got %d", e.State().CurrentRoom)
	}
	// A "*" description is shown verbatim, without the "I'm in a" prefix.
	if !term.contains("Dusty attic.") {
		t.Errorf("Expected literal description, got %q", term.lines)
	}
}

func TestLoneDirectionWord(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()
	e.ProcessTurn("d")

	if e.State().CurrentRoom != 2 {
		t.Errorf("Expected room 2 after a bare direction, got %d", e.State().CurrentRoom)
	}
	if !term.contains("I'm in a damp cellar") {
		t.Errorf("Moving should redescribe the room, got %q", term.lines)
	}
	if !term.contains("Visible items: *Golden crown*") {
		t.Errorf("Room items should be listed, got %q", term.lines)
	}
}

func TestGoBlockedDirection(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()
	e.ProcessTurn("go north")

	if !term.contains("I can't go in that direction.") {
		t.Errorf("Expected the blocked-direction message, got %q", term.lines)
	}
	if e.State().CurrentRoom != 1 {
		t.Errorf("Player should not have moved, got room %d", e.State().CurrentRoom)
	}
}

func TestGoWithoutDirection(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()
	e.ProcessTurn("go")

	if !term.contains("Give me a direction too.") {
		t.Errorf("Expected a direction request, got %q", term.lines)
	}
}

func TestDarkMoveThroughMissingExit(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()
	e.State().Flags[FlagDark] = true

	e.ProcessTurn("go north")

	if !term.contains("Dangerous to move in the dark!") {
		t.Errorf("Expected the dark warning, got %q", term.lines)
	}
	if !term.contains("I fell down and broke my neck.") {
		t.Errorf("Expected the fatal fall message, got %q", term.lines)
	}
	if !e.State().Finished || e.State().Reason != ReasonFellInDark {
		t.Errorf("Expected session to end with ReasonFellInDark, got %+v", e.State())
	}

	// Input after the end gets the session-over notice and changes nothing.
	e.ProcessTurn("look")
	if !term.contains("This game is over. Restart to play again.") {
		t.Errorf("Expected the session-over notice, got %q", term.lines)
	}
}

func TestDarkMoveThroughOpenExitSurvives(t *testing.T) {
	e, _ := newTestEngine(t, testProgram(), Options{})
	e.Begin()
	e.State().Flags[FlagDark] = true

	e.ProcessTurn("go down")

	if e.State().Finished {
		t.Error("Moving through an existing exit in the dark should not kill")
	}
	if e.State().CurrentRoom != 2 {
		t.Errorf("Expected room 2, got %d", e.State().CurrentRoom)
	}
}

func TestAutoGetAndCarryLimit(t *testing.T) {
	prog := testProgram()
	prog.Items[2].Location = 2 // key shares the cellar with the crown
	e, term := newTestEngine(t, prog, Options{})
	e.Begin()
	e.ProcessTurn("d")

	e.ProcessTurn("get crown")
	if prog.Items[1].Location != datafile.LocCarried {
		t.Errorf("Crown should be carried, got location %d", prog.Items[1].Location)
	}
	if !term.contains("OK.") {
		t.Errorf("Expected OK after get, got %q", term.lines)
	}

	e.ProcessTurn("get key")
	if !term.contains("I've too much to carry!") {
		t.Errorf("Expected the carry-limit message, got %q", term.lines)
	}
	if prog.Items[2].Location != 2 {
		t.Errorf("Key should have stayed put, got location %d", prog.Items[2].Location)
	}
}

func TestAutoGetAbsentItem(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()
	e.ProcessTurn("get key") // the key is in the attic, player in the cottage

	if !term.contains("I don't see it here.") {
		t.Errorf("Expected the not-here message, got %q", term.lines)
	}
}

func TestAutoDrop(t *testing.T) {
	prog := testProgram()
	e, term := newTestEngine(t, prog, Options{})
	e.Begin()

	e.ProcessTurn("drop crown")
	if !term.contains("I'm not carrying it.") {
		t.Errorf("Expected the not-carrying message, got %q", term.lines)
	}

	prog.Items[1].Location = datafile.LocCarried
	e.ProcessTurn("drop crown")
	if prog.Items[1].Location != 1 {
		t.Errorf("Crown should land in the current room, got %d", prog.Items[1].Location)
	}
}

func TestGetBySynonym(t *testing.T) {
	prog := testProgram()
	prog.Items[1].Location = 1
	e, _ := newTestEngine(t, prog, Options{})
	e.Begin()

	e.ProcessTurn("take crown")
	if prog.Items[1].Location != datafile.LocCarried {
		t.Errorf("TAKE should resolve to GET, crown at %d", prog.Items[1].Location)
	}
}

func TestGoNonDirectionNoun(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()

	// "go crown" is not a movement command; no rule handles it either.
	e.ProcessTurn("go crown")

	if !term.contains("I don't understand your command.") {
		t.Errorf("Expected the not-understood message, got %q", term.lines)
	}
	if term.contains("Give me a direction too.") {
		t.Errorf("A non-direction noun is not a direction request, got %q", term.lines)
	}
	if e.State().CurrentRoom != 1 {
		t.Errorf("Player should not have moved, got room %d", e.State().CurrentRoom)
	}
}

func TestGetAndDropWithoutNoun(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()

	e.ProcessTurn("get")
	if term.count("What?") != 1 {
		t.Errorf("A bare get should ask what, got %q", term.lines)
	}

	e.ProcessTurn("drop")
	if term.count("What?") != 2 {
		t.Errorf("A bare drop should ask what, got %q", term.lines)
	}
}

func TestUnknownWordsLeaveStateAlone(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()
	before := *e.State()

	e.ProcessTurn("xyzzy nonsense")

	if !term.contains("You use word(s) I don't know.") {
		t.Errorf("Expected the cryptic-words message, got %q", term.lines)
	}
	if *e.State() != before {
		t.Errorf("State changed on unknown input: %+v vs %+v", e.State(), before)
	}
}

func TestKnownVerbNoRuleNoFallback(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()
	e.ProcessTurn("rub key")

	if !term.contains("I don't understand your command.") {
		t.Errorf("Expected the no-rule message, got %q", term.lines)
	}
}

func TestBlockedRuleSaysCantDoYet(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()
	// The rub rule requires the crown to be carried, which it is not.
	e.ProcessTurn("rub crown")

	if !term.contains("I can't do that yet.") {
		t.Errorf("Expected the blocked message, got %q", term.lines)
	}
}

func TestRuleFiresWhenConditionsPass(t *testing.T) {
	prog := testProgram()
	prog.Items[1].Location = datafile.LocCarried
	e, term := newTestEngine(t, prog, Options{})
	e.Begin()

	e.ProcessTurn("rub crown")

	if !term.contains("The crown gleams softly.") {
		t.Errorf("Expected the rule's message, got %q", term.lines)
	}
}

func TestContinueChain(t *testing.T) {
	prog := testProgram()
	prog.Actions = []datafile.Action{
		{},
		{Verb: 4, Instructions: []int{73, 1}},
		{Instructions: []int{2}},
		{Verb: 5, Instructions: []int{1}}, // different trigger ends the chain
	}
	e, term := newTestEngine(t, prog, Options{})
	e.Begin()

	e.ProcessTurn("look")

	if term.count("The crown gleams softly.") != 1 {
		t.Errorf("Expected the rule's own message once, got %q", term.lines)
	}
	if term.count("Nothing happens.") != 1 {
		t.Errorf("Expected the chained rule to fire once, got %q", term.lines)
	}
}

func TestContinueChainChecksConditions(t *testing.T) {
	prog := testProgram()
	prog.Actions = []datafile.Action{
		{},
		{Verb: 4, Instructions: []int{73}},
		{Conditions: []datafile.Condition{{Op: 1, Value: 1}}, Instructions: []int{2}},
	}
	e, term := newTestEngine(t, prog, Options{})
	e.Begin()

	e.ProcessTurn("look")
	if term.contains("Nothing happens.") {
		t.Errorf("Chained rule with failing conditions must not fire, got %q", term.lines)
	}

	prog.Items[1].Location = datafile.LocCarried
	e.ProcessTurn("look")
	if !term.contains("Nothing happens.") {
		t.Errorf("Chained rule should fire once its conditions pass, got %q", term.lines)
	}
}

func TestAmbientRuleAlwaysAt100(t *testing.T) {
	prog := testProgram()
	prog.Actions = append(prog.Actions, datafile.Action{Noun: 100, Instructions: []int{2}})
	e, term := newTestEngine(t, prog, Options{Seed: 7})
	e.Begin()

	// A 100 percent chance fires on the opening scan and every turn after.
	if term.count("Nothing happens.") != 1 {
		t.Errorf("Expected the ambient rule on the opening scan, got %q", term.lines)
	}
	e.ProcessTurn("look")
	if term.count("Nothing happens.") != 2 {
		t.Errorf("Expected the ambient rule again after the turn, got %q", term.lines)
	}
}

func TestAmbientRollDeterministicBySeed(t *testing.T) {
	run := func(seed int64) []string {
		prog := testProgram()
		prog.Actions = append(prog.Actions, datafile.Action{Noun: 50, Instructions: []int{2}})
		e, term := newTestEngine(t, prog, Options{Seed: seed})
		e.Begin()
		for i := 0; i < 10; i++ {
			e.ProcessTurn("look")
		}
		return term.lines
	}

	a, b := run(42), run(42)
	if len(a) != len(b) {
		t.Fatalf("Same seed produced different transcripts: %d vs %d lines", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Same seed diverged at line %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestLampCountdown(t *testing.T) {
	prog := testProgram()
	prog.Header.LightTime = 3
	prog.Items[9].Location = datafile.LocCarried
	e, term := newTestEngine(t, prog, Options{})
	e.Begin()

	e.ProcessTurn("look") // fuel 3 -> 2
	e.ProcessTurn("look") // 2 -> 1
	if term.contains("Your light has run out!") {
		t.Fatalf("Light should not be out yet, got %q", term.lines)
	}

	e.ProcessTurn("look") // 1 -> 0
	if term.count("Your light has run out!") != 1 {
		t.Errorf("Expected the light-out message once, got %q", term.lines)
	}
	if !e.State().Flags[FlagLampDead] {
		t.Error("Lamp-dead flag should be set at zero fuel")
	}

	e.ProcessTurn("look")
	if term.count("Your light has run out!") != 1 {
		t.Errorf("Light-out message must not repeat, got %q", term.lines)
	}
}

func TestLampDimWarnings(t *testing.T) {
	prog := testProgram()
	prog.Header.LightTime = 11
	prog.Items[9].Location = datafile.LocCarried
	e, term := newTestEngine(t, prog, Options{})
	e.Begin()

	// Warnings come below 25 fuel, every fifth turn.
	for i := 0; i < 7; i++ {
		e.ProcessTurn("look") // fuel 11 -> 4, warning at 10 and 5
	}
	if got := term.count("Your light is growing dim."); got != 2 {
		t.Errorf("Expected 2 dim warnings, got %d", got)
	}
}

func TestLampIgnoredWhenOutOfPlay(t *testing.T) {
	prog := testProgram()
	prog.Header.LightTime = 5
	// Lamp location stays 0: not in play, fuel must not burn.
	e, _ := newTestEngine(t, prog, Options{})
	e.Begin()

	e.ProcessTurn("look")
	if e.State().LampFuel != 5 {
		t.Errorf("Fuel burned while the lamp was out of play: %d", e.State().LampFuel)
	}
}

func TestDarknessHidesRoom(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.State().Flags[FlagDark] = true
	e.Begin()

	if !term.contains("I can't see. It's too dark!") {
		t.Errorf("Expected the darkness notice, got %q", term.lines)
	}
	if term.contains("I'm in a cozy cottage") {
		t.Errorf("Room must stay hidden in the dark, got %q", term.lines)
	}
}

func TestCarriedLampLightsTheDark(t *testing.T) {
	prog := testProgram()
	prog.Items[9].Location = datafile.LocCarried
	e, term := newTestEngine(t, prog, Options{})
	e.State().Flags[FlagDark] = true
	e.Begin()

	if !term.contains("I'm in a cozy cottage") {
		t.Errorf("A carried lamp should light the room, got %q", term.lines)
	}
}

func TestScoreVictory(t *testing.T) {
	prog := testProgram()
	prog.Items[1].Location = 1 // crown already in the treasure room
	e, term := newTestEngine(t, prog, Options{})
	e.Begin()

	e.ProcessTurn("score")

	if !term.contains("Well done.") {
		t.Errorf("Expected the victory message, got %q", term.lines)
	}
	if !e.State().Finished || e.State().Reason != ReasonScoreVictory {
		t.Errorf("Expected ReasonScoreVictory, got %+v", e.State())
	}
}

func TestTreasurePercentTracksLocations(t *testing.T) {
	prog := testProgram()
	e, _ := newTestEngine(t, prog, Options{})

	if got := e.TreasurePercent(); got != 0 {
		t.Errorf("TreasurePercent() = %d, want 0", got)
	}

	prog.Items[1].Location = prog.Header.TreasureRoom
	if got := e.TreasurePercent(); got != 100 {
		t.Errorf("TreasurePercent() = %d, want 100 with the crown stored", got)
	}

	prog.Items[1].Location = 3
	if got := e.TreasurePercent(); got != 0 {
		t.Errorf("TreasurePercent() = %d, want 0 after moving the crown away", got)
	}
}

func TestInventoryListing(t *testing.T) {
	prog := testProgram()
	e, term := newTestEngine(t, prog, Options{})
	e.Begin()

	e.ProcessTurn("inventory")
	if !term.contains("Nothing.") {
		t.Errorf("Empty inventory should say Nothing., got %q", term.lines)
	}

	prog.Items[1].Location = datafile.LocCarried
	prog.Items[2].Location = datafile.LocCarried
	e.ProcessTurn("i")
	if !term.contains("*Golden crown* - Rusty key") {
		t.Errorf("Expected both carried items listed, got %q", term.lines)
	}
}

func TestRestartResetsEverything(t *testing.T) {
	prog := testProgram()
	e, _ := newTestEngine(t, prog, Options{})
	e.Begin()

	e.ProcessTurn("d")
	e.ProcessTurn("get crown")
	e.State().Flags[FlagDark] = true

	e.Restart()

	if e.State().CurrentRoom != prog.Header.StartRoom {
		t.Errorf("Expected start room after restart, got %d", e.State().CurrentRoom)
	}
	if prog.Items[1].Location != prog.Items[1].StartLocation {
		t.Errorf("Item locations should reset, crown at %d", prog.Items[1].Location)
	}
	if e.State().Dark() {
		t.Error("Flags should reset on restart")
	}
}

func TestWizardCommands(t *testing.T) {
	prog := testProgram()
	e, term := newTestEngine(t, prog, Options{Wizard: true})
	e.Begin()

	e.ProcessTurn("teleport 3")
	if e.State().CurrentRoom != 3 {
		t.Errorf("Expected teleport to room 3, got %d", e.State().CurrentRoom)
	}

	e.ProcessTurn("summon 1")
	if prog.Items[1].Location != datafile.LocCarried {
		t.Errorf("Expected summoned crown to be carried, got %d", prog.Items[1].Location)
	}

	e.ProcessTurn("teleport 99")
	if !term.contains(`No such room "99".`) {
		t.Errorf("Expected a bounds complaint, got %q", term.lines)
	}
}

func TestWizardDisabledByDefault(t *testing.T) {
	e, term := newTestEngine(t, testProgram(), Options{})
	e.Begin()

	e.ProcessTurn("teleport 3")

	if e.State().CurrentRoom != 1 {
		t.Errorf("Wizard command must not work when disabled, room %d", e.State().CurrentRoom)
	}
	if !term.contains("You use word(s) I don't know.") {
		t.Errorf("Expected normal parsing to reject the input, got %q", term.lines)
	}
}
