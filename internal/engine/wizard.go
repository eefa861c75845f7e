package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kirilian/tui-advent/internal/datafile"
)

// Wizard mode: out-of-band commands for poking at a running session.
// Recognized only when Options.Wizard is set, checked before normal
// parsing so vocabulary words cannot shadow them.
//
//	teleport <room>   move the player anywhere
//	summon <item>     force an item into inventory
//	locate <item>     show an item's description and whereabouts
//	trace <c|i|p>     toggle condition/instruction/parse diagnostics
func (e *Engine) runWizardCommand(input string) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch strings.ToLower(fields[0]) {
	case "teleport":
		room, err := strconv.Atoi(arg)
		if err != nil || room < 0 || room >= len(e.prog.Rooms) {
			e.display(fmt.Sprintf("No such room %q.", arg))
			return true
		}
		e.state.CurrentRoom = room
		e.state.NeedsLook = true
		return true

	case "summon":
		idx, err := strconv.Atoi(arg)
		if err != nil || e.item(idx) == nil {
			e.display(fmt.Sprintf("No such item %q.", arg))
			return true
		}
		e.prog.Items[idx].Location = datafile.LocCarried
		e.display(msgOK)
		return true

	case "locate":
		idx, err := strconv.Atoi(arg)
		if err != nil || e.item(idx) == nil {
			e.display(fmt.Sprintf("No such item %q.", arg))
			return true
		}
		it := e.item(idx)
		where := "nowhere"
		switch {
		case it.Location == datafile.LocCarried:
			where = "carried"
		case it.Location > 0 && it.Location < len(e.prog.Rooms):
			where = e.prog.Rooms[it.Location].Description
		}
		e.display(fmt.Sprintf("%s is at %d (%s)", it.Description, it.Location, where))
		return true

	case "trace":
		switch arg {
		case "c":
			e.traceConditions = !e.traceConditions
		case "i":
			e.traceInstructions = !e.traceInstructions
		case "p":
			e.traceParse = !e.traceParse
		default:
			e.display(fmt.Sprintf("Unknown trace flag %q.", arg))
			return true
		}
		e.display(msgOK)
		return true
	}
	return false
}
