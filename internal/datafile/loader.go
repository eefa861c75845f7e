package datafile

import (
	"fmt"
	"strings"
)

// Load parses a complete game data file. The schema is strictly sequential:
// header, actions, vocabulary, rooms, messages, items, action comments,
// trailer. Any read failure aborts the load; a partially built Program is
// never returned because the engine indexes arrays by header counts.
func Load(data string) (*Program, error) {
	r := NewReader(data)

	hdr, err := loadHeader(r)
	if err != nil {
		return nil, err
	}

	p := &Program{Header: hdr}

	if p.Actions, err = loadActions(r, hdr.NumActions); err != nil {
		return nil, err
	}
	if p.Words, err = loadVocabulary(r, hdr.NumWords); err != nil {
		return nil, err
	}
	if p.Rooms, err = loadRooms(r, hdr.NumRooms); err != nil {
		return nil, err
	}
	if p.Messages, err = loadMessages(r, hdr.NumMessages); err != nil {
		return nil, err
	}
	if p.Items, err = loadItems(r, hdr.NumItems); err != nil {
		return nil, err
	}
	if err = loadComments(r, p.Actions); err != nil {
		return nil, err
	}
	if p.Trailer, err = loadTrailer(r); err != nil {
		return nil, err
	}

	return p, nil
}

func loadHeader(r *Reader) (Header, error) {
	var h Header
	fields := []*int{
		&h.Unknown, &h.NumItems, &h.NumActions, &h.NumWords, &h.NumRooms,
		&h.MaxCarry, &h.StartRoom, &h.NumTreasures, &h.WordLength,
		&h.LightTime, &h.NumMessages, &h.TreasureRoom,
	}
	for i, f := range fields {
		v, err := r.ReadInt()
		if err != nil {
			return h, fmt.Errorf("header field %d: %w", i, err)
		}
		*f = v
	}

	for _, c := range []struct {
		name  string
		value int
	}{
		{"item count", h.NumItems},
		{"action count", h.NumActions},
		{"word count", h.NumWords},
		{"room count", h.NumRooms},
		{"message count", h.NumMessages},
	} {
		if c.value < 0 {
			return h, fmt.Errorf("header: negative %s %d", c.name, c.value)
		}
	}
	return h, nil
}

func loadActions(r *Reader, count int) ([]Action, error) {
	actions := make([]Action, 0, count+1)
	for i := 0; i <= count; i++ {
		var raw [actionEntryInts]int
		for j := range raw {
			v, err := r.ReadInt()
			if err != nil {
				return nil, fmt.Errorf("action %d value %d: %w", i, j, err)
			}
			raw[j] = v
		}

		var a Action
		a.Verb, a.Noun = UnpackVerbNoun(raw[0])

		for j := 1; j <= NumConditions; j++ {
			op, value := UnpackCondition(raw[j])
			if op == 0 {
				// Not a condition: the slot carries a literal argument
				// for the instruction list.
				a.Args = append(a.Args, value)
				continue
			}
			a.Conditions = append(a.Conditions, Condition{Op: op, Value: value})
		}

		for j := 1 + NumConditions; j < actionEntryInts; j++ {
			first, second := UnpackInstructions(raw[j])
			if first != 0 {
				a.Instructions = append(a.Instructions, first)
			}
			if second != 0 {
				a.Instructions = append(a.Instructions, second)
			}
		}

		actions = append(actions, a)
	}
	return actions, nil
}

func loadVocabulary(r *Reader, count int) (Vocabulary, error) {
	v := Vocabulary{
		Verbs: make([]string, 0, count+1),
		Nouns: make([]string, 0, count+1),
	}
	// Verb and noun lines strictly alternate, one pair per entry.
	for i := 0; i <= count; i++ {
		verb, err := r.NextLine()
		if err != nil {
			return v, fmt.Errorf("verb %d: %w", i, err)
		}
		noun, err := r.NextLine()
		if err != nil {
			return v, fmt.Errorf("noun %d: %w", i, err)
		}
		v.Verbs = append(v.Verbs, verb)
		v.Nouns = append(v.Nouns, noun)
	}
	return v, nil
}

func loadRooms(r *Reader, count int) ([]Room, error) {
	rooms := make([]Room, 0, count+1)
	for i := 0; i <= count; i++ {
		var room Room
		for d := 0; d < NumExits; d++ {
			v, err := r.ReadInt()
			if err != nil {
				return nil, fmt.Errorf("room %d exit %d: %w", i, d, err)
			}
			room.Exits[d] = v
		}
		desc, err := r.NextLine()
		if err != nil {
			return nil, fmt.Errorf("room %d description: %w", i, err)
		}
		room.Description = unquoteBackticks(desc)
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func loadMessages(r *Reader, count int) ([]string, error) {
	messages := make([]string, 0, count+1)
	for i := 0; i <= count; i++ {
		m, err := r.NextLine()
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		messages = append(messages, unquoteBackticks(m))
	}
	return messages, nil
}

func loadItems(r *Reader, count int) ([]Item, error) {
	items := make([]Item, 0, count+1)
	for i := 0; i <= count; i++ {
		line, err := r.NextLine()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		var it Item
		it.Description, it.Name = splitItemName(unquoteBackticks(line))

		// The location integer usually trails the closing quote but some
		// files put it on a line of its own.
		if r.NextLineIsNumeric() {
			loc, err := r.ReadInt()
			if err != nil {
				return nil, fmt.Errorf("item %d location: %w", i, err)
			}
			it.Location = loc
		}
		it.StartLocation = it.Location
		items = append(items, it)
	}
	return items, nil
}

func loadComments(r *Reader, actions []Action) error {
	for i := range actions {
		c, err := r.NextLine()
		if err != nil {
			return fmt.Errorf("action comment %d: %w", i, err)
		}
		actions[i].Comment = c
	}
	return nil
}

func loadTrailer(r *Reader) (Trailer, error) {
	var t Trailer
	fields := []*int{&t.Version, &t.AdventureNumber, &t.Magic}
	for i, f := range fields {
		v, err := r.ReadInt()
		if err != nil {
			return t, fmt.Errorf("trailer field %d: %w", i, err)
		}
		*f = v
	}
	return t, nil
}

// splitItemName extracts the /NAME/ sub-token from an item description.
// The token is removed from the displayed text.
func splitItemName(desc string) (display, name string) {
	start := strings.Index(desc, "/")
	if start < 0 {
		return desc, ""
	}
	rest := desc[start+1:]
	end := strings.Index(rest, "/")
	if end < 0 {
		return desc, ""
	}
	name = strings.ToUpper(strings.TrimSpace(rest[:end]))
	display = strings.TrimSpace(desc[:start] + rest[end+1:])
	return display, name
}

// Old data files encode double quotes inside text as backticks.
func unquoteBackticks(s string) string {
	return strings.ReplaceAll(s, "`", `"`)
}
