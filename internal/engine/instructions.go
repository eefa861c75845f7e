package engine

import (
	"fmt"

	"github.com/kirilian/tui-advent/internal/datafile"
)

// Instruction code ranges. Values at or below msgLowMax and at or above
// msgHighMin are display requests into the message table; the band between
// maxOpcode and msgHighMin is unused by the format.
const (
	msgLowMax  = 51
	maxOpcode  = 89
	msgHighMin = 102
)

// execute runs one action's instruction list against a private copy of its
// literal arguments. Returns true if a continue instruction fired, which
// arms the chained (0,0) rules that follow in the action table.
func (e *Engine) execute(a *datafile.Action) bool {
	args := append([]int(nil), a.Args...)
	cont := false
	for _, code := range a.Instructions {
		if e.state.Finished {
			break
		}
		switch {
		case code <= msgLowMax:
			e.showMessage(code)
		case code >= msgHighMin:
			e.showMessage(code - 50)
		default:
			if e.executeOpcode(code, &args) {
				cont = true
			}
		}
	}
	return cont
}

func (e *Engine) showMessage(idx int) {
	if idx >= 0 && idx < len(e.prog.Messages) {
		e.display(e.prog.Messages[idx])
	}
}

// popArg consumes the next literal argument. Corrupt programs that consume
// more arguments than their condition slots supplied default to zero, which
// keeps turn processing recoverable.
func popArg(args *[]int) int {
	if len(*args) == 0 {
		return 0
	}
	v := (*args)[0]
	*args = (*args)[1:]
	return v
}

func (e *Engine) executeOpcode(code int, args *[]int) bool {
	s := e.state
	switch code {
	case 52: // get item, enforcing the carry limit
		itemIdx := popArg(args)
		if e.atCarryLimit() {
			e.display(msgTooMuchToCarry)
			return false
		}
		e.moveItem(itemIdx, datafile.LocCarried)

	case 53: // drop item into the current room
		e.moveItem(popArg(args), s.CurrentRoom)

	case 54: // teleport the player
		s.CurrentRoom = popArg(args)
		s.NeedsLook = true

	case 55, 59: // destroy item (two codes by format quirk)
		e.moveItem(popArg(args), datafile.LocNowhere)

	case 56:
		e.setFlag(FlagDark, true)

	case 57:
		e.setFlag(FlagDark, false)

	case 58:
		e.setFlag(popArg(args), true)

	case 60:
		e.setFlag(popArg(args), false)

	case 61: // death
		e.display(msgDead)
		e.setFlag(FlagDark, true)
		s.CurrentRoom = len(e.prog.Rooms) - 1
		s.NeedsLook = true
		e.finish(ReasonKilled)

	case 62: // move item to a room
		itemIdx := popArg(args)
		room := popArg(args)
		e.moveItem(itemIdx, room)

	case 63:
		e.display(msgGameOver)
		e.finish(ReasonGameOver)

	case 64, 76: // redraw the room
		s.NeedsLook = true

	case 65:
		e.showScore()

	case 66:
		e.showInventory()

	case 67:
		e.setFlag(0, true)

	case 68:
		e.setFlag(0, false)

	case 69: // refill the lamp
		s.LampFuel = e.prog.Header.LightTime
		e.setFlag(FlagLampDead, false)
		e.moveItem(LightSourceItem, datafile.LocCarried)

	case 70: // clear screen; hosts own the screen, nothing to do

	case 71: // in-game save, delegated to the host when it can
		if saver, ok := e.term.(Saver); ok {
			saver.SaveRequested()
		}

	case 72: // swap two items' locations
		a := popArg(args)
		b := popArg(args)
		ia, ib := e.item(a), e.item(b)
		if ia != nil && ib != nil {
			ia.Location, ib.Location = ib.Location, ia.Location
		}

	case 73: // continue into the following (0,0) rules
		return true

	case 74: // superget: no carry-limit check
		e.moveItem(popArg(args), datafile.LocCarried)

	case 75: // move item to another item's location
		a := popArg(args)
		b := popArg(args)
		if ib := e.item(b); ib != nil {
			e.moveItem(a, ib.Location)
		}

	case 77:
		s.Counter--

	case 78:
		e.display(fmt.Sprintf("%d", s.Counter))

	case 79:
		s.Counter = popArg(args)

	case 80: // swap the current room with the saved-room register
		s.CurrentRoom, s.SavedRoom = s.SavedRoom, s.CurrentRoom
		s.NeedsLook = true

	case 81: // select counter: swap the active counter with a slot
		slot := popArg(args)
		if slot >= 0 && slot < NumCounters {
			s.Counter, s.Counters[slot] = s.Counters[slot], s.Counter
		}

	case 82:
		s.Counter += popArg(args)

	case 83:
		s.Counter -= popArg(args)
		if s.Counter < -1 {
			s.Counter = -1
		}

	case 84, 85: // print the last noun the player referenced
		e.display(s.LastNoun)

	case 86:
		e.display("")

	case 87: // swap the current room with a saved-rooms slot
		slot := popArg(args)
		if slot >= 0 && slot < NumSavedRooms {
			s.CurrentRoom, s.SavedRooms[slot] = s.SavedRooms[slot], s.CurrentRoom
			s.NeedsLook = true
		}

	case 88: // delay in the original; the engine never blocks

	case 89: // draw picture placeholder
	}
	return false
}

func (e *Engine) atCarryLimit() bool {
	limit := e.prog.Header.MaxCarry
	return limit >= 0 && e.countCarried() >= limit
}

func (e *Engine) moveItem(idx, loc int) {
	if it := e.item(idx); it != nil {
		it.Location = loc
	}
}

func (e *Engine) showScore() {
	stored := e.storedTreasures()
	e.display(fmt.Sprintf("I've stored %d treasures. On a scale of 0 to 100, that rates a %d.",
		stored, e.TreasurePercent()))
	if e.prog.Header.NumTreasures > 0 && stored == e.prog.Header.NumTreasures {
		e.display(msgWellDone)
		e.finish(ReasonScoreVictory)
	}
}

func (e *Engine) showInventory() {
	e.display("I'm carrying:")
	names := ""
	for i := range e.prog.Items {
		it := &e.prog.Items[i]
		if it.Location != datafile.LocCarried {
			continue
		}
		if names != "" {
			names += " - "
		}
		names += it.Description
	}
	if names == "" {
		names = "Nothing."
	}
	e.display(names)
}

func (e *Engine) storedTreasures() int {
	stored := 0
	for i := range e.prog.Items {
		it := &e.prog.Items[i]
		if it.IsTreasure() && it.Location == e.prog.Header.TreasureRoom {
			stored++
		}
	}
	return stored
}

// TreasurePercent is the current score: the integer percentage of treasures
// sitting in the treasure room, recomputed from live item locations.
func (e *Engine) TreasurePercent() int {
	total := e.prog.Header.NumTreasures
	if total <= 0 {
		return 0
	}
	return 100 * e.storedTreasures() / total
}
