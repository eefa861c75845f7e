package engine

import "github.com/kirilian/tui-advent/internal/datafile"

// Condition opcodes. Op 0 never reaches evaluation; the loader turns those
// slots into instruction arguments.
const (
	condCarried    = 1
	condHere       = 2
	condPresent    = 3
	condAt         = 4
	condNotHere    = 5
	condNotCarried = 6
	condNotAt      = 7
	condFlagSet    = 8
	condFlagClear  = 9
	condLoaded     = 10
	condNotLoaded  = 11
	condNotPresent = 12
	condInPlay     = 13
	condNotInPlay  = 14
	condCounterLE  = 15
	condCounterGT  = 16
	condNotMoved   = 17
	condMoved      = 18
	condCounterEQ  = 19
)

// evalCondition is a pure predicate over the engine state and one operand.
// Unknown opcodes fail closed so a corrupt rule can never fire.
func (e *Engine) evalCondition(c datafile.Condition) bool {
	s := e.state
	switch c.Op {
	case condCarried:
		return e.itemLocation(c.Value) == datafile.LocCarried
	case condHere:
		return e.itemLocation(c.Value) == s.CurrentRoom
	case condPresent:
		loc := e.itemLocation(c.Value)
		return loc == datafile.LocCarried || loc == s.CurrentRoom
	case condAt:
		return s.CurrentRoom == c.Value
	case condNotHere:
		return e.itemLocation(c.Value) != s.CurrentRoom
	case condNotCarried:
		return e.itemLocation(c.Value) != datafile.LocCarried
	case condNotAt:
		return s.CurrentRoom != c.Value
	case condFlagSet:
		return e.flag(c.Value)
	case condFlagClear:
		return !e.flag(c.Value)
	case condLoaded:
		return e.countCarried() > 0
	case condNotLoaded:
		return e.countCarried() == 0
	case condNotPresent:
		loc := e.itemLocation(c.Value)
		return loc != datafile.LocCarried && loc != s.CurrentRoom
	case condInPlay:
		return e.itemLocation(c.Value) != datafile.LocNowhere
	case condNotInPlay:
		return e.itemLocation(c.Value) == datafile.LocNowhere
	case condCounterLE:
		return s.Counter <= c.Value
	case condCounterGT:
		return s.Counter > c.Value
	case condNotMoved:
		it := e.item(c.Value)
		return it == nil || it.Location == it.StartLocation
	case condMoved:
		it := e.item(c.Value)
		return it != nil && it.Location != it.StartLocation
	case condCounterEQ:
		return s.Counter == c.Value
	}
	return false
}

func (e *Engine) conditionsPass(a *datafile.Action) bool {
	for _, c := range a.Conditions {
		if !e.evalCondition(c) {
			return false
		}
	}
	return true
}

func (e *Engine) flag(i int) bool {
	if i < 0 || i >= NumFlags {
		return false
	}
	return e.state.Flags[i]
}

func (e *Engine) setFlag(i int, v bool) {
	if i >= 0 && i < NumFlags {
		e.state.Flags[i] = v
	}
}

func (e *Engine) item(i int) *datafile.Item {
	if i < 0 || i >= len(e.prog.Items) {
		return nil
	}
	return &e.prog.Items[i]
}

func (e *Engine) itemLocation(i int) int {
	if it := e.item(i); it != nil {
		return it.Location
	}
	return datafile.LocNowhere
}

func (e *Engine) countCarried() int {
	n := 0
	for i := range e.prog.Items {
		if e.prog.Items[i].Location == datafile.LocCarried {
			n++
		}
	}
	return n
}
