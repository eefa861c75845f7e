package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/kirilian/tui-advent/internal/datafile"
)

// Player-visible fixed texts. These are part of the interpreter's observable
// behavior and are asserted by tests; change with care.
const (
	msgCrypticWords   = "You use word(s) I don't know."
	msgDontUnderstand = "I don't understand your command."
	msgCantDoYet      = "I can't do that yet."
	msgTooMuchToCarry = "I've too much to carry!"
	msgOK             = "OK."
	msgDarkMove       = "Dangerous to move in the dark!"
	msgBrokeNeck      = "I fell down and broke my neck."
	msgCantGo         = "I can't go in that direction."
	msgNeedDirection  = "Give me a direction too."
	msgTooDark        = "I can't see. It's too dark!"
	msgLightOut       = "Your light has run out!"
	msgLightDim       = "Your light is growing dim."
	msgNotCarrying    = "I'm not carrying it."
	msgDontSeeIt      = "I don't see it here."
	msgWhat           = "What?"
	msgDead           = "I'm dead..."
	msgGameOver       = "The game is now over."
	msgWellDone       = "Well done."
	msgSessionOver    = "This game is over. Restart to play again."
	defaultPrompt     = "Tell me what to do"
)

const lightWarningThreshold = 25

// Options tune a session. A zero Seed picks one from the clock.
type Options struct {
	Seed       int64
	Wizard     bool
	WordLength int // overrides the header's match length when positive
}

// Engine runs one play session over a loaded Program. It is not safe for
// concurrent use; a session has exactly one owner.
type Engine struct {
	prog  *datafile.Program
	state *State
	term  Terminal
	rng   *rand.Rand
	opts  Options

	wordLength int

	// wizard diagnostics toggles
	traceConditions   bool
	traceInstructions bool
	traceParse        bool
}

// New builds an engine for the program with fresh runtime state.
func New(prog *datafile.Program, term Terminal, opts Options) *Engine {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	wl := prog.Header.WordLength
	if opts.WordLength > 0 {
		wl = opts.WordLength
	}
	e := &Engine{
		prog:       prog,
		term:       term,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		opts:       opts,
		wordLength: wl,
	}
	e.state = e.freshState()
	return e
}

func (e *Engine) freshState() *State {
	return &State{
		CurrentRoom: e.prog.Header.StartRoom,
		LampFuel:    e.prog.Header.LightTime,
	}
}

// Program exposes the loaded program; item locations on it are live.
func (e *Engine) Program() *datafile.Program { return e.prog }

// State exposes the runtime state for save and restore.
func (e *Engine) State() *State { return e.state }

// ReplaceState swaps in restored runtime state wholesale.
func (e *Engine) ReplaceState(s *State) { e.state = s }

// Restart resets the runtime state and item locations to their load-time
// values and replays the session opening.
func (e *Engine) Restart() {
	for i := range e.prog.Items {
		e.prog.Items[i].Location = e.prog.Items[i].StartLocation
	}
	e.state = e.freshState()
	e.Begin()
}

// Begin opens a session: describes the starting room, gives ambient rules
// their first scan, and asks the host for input.
func (e *Engine) Begin() {
	e.describeRoom()
	e.runMatchingActions(0, 0)
	e.flushLook()
	e.term.Prompt(defaultPrompt)
}

// ProcessTurn handles one player command line end to end, then prompts for
// the next. Nothing escapes as an error; every failure becomes display text.
func (e *Engine) ProcessTurn(input string) {
	if e.state.Finished {
		e.display(msgSessionOver)
		e.term.Prompt(defaultPrompt)
		return
	}

	if e.opts.Wizard && e.runWizardCommand(input) {
		e.flushLook()
		e.term.Prompt(defaultPrompt)
		return
	}

	cmd := e.parse(input)
	if e.traceParse {
		e.display(fmt.Sprintf("[parse] verb=%d noun=%d %q", cmd.Verb, cmd.Noun, cmd.NounWord))
	}

	if cmd.Verb == 0 {
		e.display(msgCrypticWords)
		e.term.Prompt(defaultPrompt)
		return
	}
	e.state.LastNoun = cmd.NounWord

	switch e.runMatchingActions(cmd.Verb, cmd.Noun) {
	case matchHandled:
	case matchBlocked:
		if !e.runFallbacks(cmd) {
			e.display(msgCantDoYet)
		}
	case matchNone:
		if !e.runFallbacks(cmd) {
			e.display(msgDontUnderstand)
		}
	}

	if !e.state.Finished {
		e.tickLamp()
		e.runMatchingActions(0, 0)
	}
	e.flushLook()
	e.term.Prompt(defaultPrompt)
}

type matchResult int

const (
	matchNone matchResult = iota
	matchBlocked
	matchHandled
)

// runMatchingActions scans the action table for the verb/noun pair. Verb 0
// is the ambient scan: every (0,chance) rule rolls its noun as a percent
// gate and fires independently. A continue instruction keeps execution
// flowing into the (0,0) rules immediately following, until a rule with any
// other trigger breaks the chain.
func (e *Engine) runMatchingActions(verb, noun int) matchResult {
	matchedWord := false
	actionDone := false
	contFlag := false

	for i := range e.prog.Actions {
		if e.state.Finished {
			break
		}
		a := &e.prog.Actions[i]

		if contFlag {
			if a.Verb == 0 && a.Noun == 0 {
				if e.conditionsPass(a) {
					e.execute(a)
				}
				continue
			}
			contFlag = false
		}

		if verb == 0 {
			// Ambient rules; the noun field is a percent chance,
			// re-rolled on every scan.
			if a.Verb == 0 && a.Noun > 0 && e.rng.Intn(100) < a.Noun {
				if e.traceConditions {
					e.display(fmt.Sprintf("[ambient] rule %d fires", i))
				}
				if e.conditionsPass(a) {
					contFlag = e.execute(a)
				}
			}
			continue
		}

		if actionDone || a.Verb != verb {
			continue
		}
		if a.Noun != 0 && a.Noun != noun {
			continue
		}
		matchedWord = true
		if !e.conditionsPass(a) {
			if e.traceConditions {
				e.display(fmt.Sprintf("[cond] rule %d blocked", i))
			}
			continue
		}
		if e.traceInstructions {
			e.display(fmt.Sprintf("[exec] rule %d", i))
		}
		contFlag = e.execute(a)
		actionDone = true
		if !contFlag {
			return matchHandled
		}
	}

	if verb == 0 || actionDone {
		return matchHandled
	}
	if matchedWord {
		return matchBlocked
	}
	return matchNone
}

// runFallbacks tries the built-in movement, get and drop handlers in order.
func (e *Engine) runFallbacks(cmd Command) bool {
	return e.autoGo(cmd) || e.autoGet(cmd) || e.autoDrop(cmd)
}

func (e *Engine) autoGo(cmd Command) bool {
	if cmd.Verb != VerbGo {
		return false
	}
	// A non-direction noun is not a movement command at all.
	if cmd.Noun > datafile.NumExits {
		return false
	}
	if cmd.Noun < 1 {
		e.display(msgNeedDirection)
		return true
	}

	dark := e.inDarkness()
	if dark {
		e.display(msgDarkMove)
	}

	dest := e.currentRoom().Exits[cmd.Noun-1]
	if dest < 1 {
		if dark {
			e.display(msgBrokeNeck)
			e.finish(ReasonFellInDark)
			return true
		}
		e.display(msgCantGo)
		return true
	}

	e.state.CurrentRoom = dest
	e.state.NeedsLook = true
	return true
}

func (e *Engine) autoGet(cmd Command) bool {
	if cmd.Verb != VerbGet {
		return false
	}
	if cmd.NounWord == "" {
		e.display(msgWhat)
		return true
	}
	idx, n := e.matchItemByName(cmd.NounWord, e.state.CurrentRoom)
	if n != 1 {
		e.display(msgDontSeeIt)
		return true
	}
	if e.atCarryLimit() {
		e.display(msgTooMuchToCarry)
		return true
	}
	e.prog.Items[idx].Location = datafile.LocCarried
	e.display(msgOK)
	return true
}

func (e *Engine) autoDrop(cmd Command) bool {
	if cmd.Verb != VerbDrop {
		return false
	}
	if cmd.NounWord == "" {
		e.display(msgWhat)
		return true
	}
	idx, n := e.matchItemByName(cmd.NounWord, datafile.LocCarried)
	if n != 1 {
		e.display(msgNotCarrying)
		return true
	}
	e.prog.Items[idx].Location = e.state.CurrentRoom
	e.display(msgOK)
	return true
}

// matchItemByName finds items at the location whose short name matches the
// word, case-insensitively, up to the configured word length. The count
// lets callers reject ambiguous matches.
func (e *Engine) matchItemByName(word string, location int) (idx, count int) {
	if word == "" {
		return 0, 0
	}
	want := truncateUpper(word, e.wordLength)
	for i := range e.prog.Items {
		it := &e.prog.Items[i]
		if it.Location != location || it.Name == "" {
			continue
		}
		if truncateUpper(it.Name, e.wordLength) == want {
			idx = i
			count++
		}
	}
	return idx, count
}

// inDarkness: the dark flag is set and the lamp is neither carried nor here.
func (e *Engine) inDarkness() bool {
	if !e.state.Dark() {
		return false
	}
	loc := e.itemLocation(LightSourceItem)
	return loc != datafile.LocCarried && loc != e.state.CurrentRoom
}

// tickLamp burns one turn of fuel while the lamp is in play, warning as the
// light dims and announcing exhaustion exactly once.
func (e *Engine) tickLamp() {
	s := e.state
	if s.LampFuel <= 0 || e.itemLocation(LightSourceItem) == datafile.LocNowhere {
		return
	}
	s.LampFuel--
	if s.LampFuel == 0 {
		e.setFlag(FlagLampDead, true)
		e.display(msgLightOut)
		if e.inDarkness() {
			s.NeedsLook = true
		}
		return
	}
	if s.LampFuel < lightWarningThreshold && s.LampFuel%5 == 0 {
		e.display(msgLightDim)
	}
}

func (e *Engine) finish(reason FinishReason) {
	if e.state.Finished {
		return
	}
	e.state.Finished = true
	e.state.Reason = reason
}

func (e *Engine) flushLook() {
	if e.state.NeedsLook {
		e.state.NeedsLook = false
		e.describeRoom()
	}
}

// describeRoom renders the room, its visible items and its exits, or only a
// darkness notice when the player cannot see.
func (e *Engine) describeRoom() {
	if e.inDarkness() {
		e.display(msgTooDark)
		return
	}
	room := e.currentRoom()

	// A leading "*" marks a literal description; anything else reads as
	// "I'm in a ...".
	if strings.HasPrefix(room.Description, "*") {
		e.display(strings.TrimPrefix(room.Description, "*"))
	} else {
		e.display("I'm in a " + room.Description)
	}

	items := ""
	for i := range e.prog.Items {
		it := &e.prog.Items[i]
		if it.Location != e.state.CurrentRoom {
			continue
		}
		if items != "" {
			items += " - "
		}
		items += it.Description
	}
	if items != "" {
		e.display("Visible items: " + items)
	}

	exits := ""
	for d, dest := range room.Exits {
		if dest == 0 {
			continue
		}
		if exits != "" {
			exits += " "
		}
		exits += directionNames[d]
	}
	if exits == "" {
		exits = "none"
	}
	e.display("Obvious exits: " + exits)
}

var emptyRoom datafile.Room

func (e *Engine) currentRoom() *datafile.Room {
	i := e.state.CurrentRoom
	if i < 0 || i >= len(e.prog.Rooms) {
		return &emptyRoom
	}
	return &e.prog.Rooms[i]
}

func (e *Engine) display(text string) {
	e.term.Display(text)
}

func truncateUpper(s string, n int) string {
	s = strings.ToUpper(s)
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
