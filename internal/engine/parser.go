package engine

import (
	"strings"

	"github.com/kirilian/tui-advent/internal/datafile"
)

// directionNames are the fixed movement words, indexed by exit slot.
var directionNames = [datafile.NumExits]string{
	"NORTH", "SOUTH", "EAST", "WEST", "UP", "DOWN",
}

// abbreviations expand the usual one-letter shortcuts to canonical words
// before vocabulary matching.
var abbreviations = map[string]string{
	"n": "NORTH",
	"s": "SOUTH",
	"e": "EAST",
	"w": "WEST",
	"u": "UP",
	"d": "DOWN",
	"l": "LOOK",
	"i": "INVENTORY",
}

// Command is a player line resolved against the vocabulary. Verb 0 means
// the input did not match anything. NounWord keeps the raw second token for
// the name-based get/drop handlers and the print-noun instruction.
type Command struct {
	Verb     int
	Noun     int
	NounWord string
}

// parse splits the input into at most two tokens, expands abbreviations,
// resolves both words, and falls back to treating a lone direction word as
// a full "go" command.
func (e *Engine) parse(input string) Command {
	fields := strings.Fields(input)

	verbWord, nounWord := "", ""
	if len(fields) > 0 {
		verbWord = fields[0]
	}
	if len(fields) > 1 {
		nounWord = fields[1]
	}

	if full, ok := abbreviations[strings.ToLower(verbWord)]; ok {
		verbWord = full
	}

	cmd := Command{
		Verb:     datafile.FindWord(verbWord, e.prog.Words.Verbs, e.wordLength),
		Noun:     datafile.FindWord(nounWord, e.prog.Words.Nouns, e.wordLength),
		NounWord: nounWord,
	}

	// A bare direction (or other noun) typed on its own becomes "go X".
	if cmd.Verb == 0 && nounWord == "" {
		if noun := e.resolveLoneNoun(verbWord); noun != 0 {
			cmd.Verb = e.goVerbIndex()
			cmd.Noun = noun
			cmd.NounWord = verbWord
		}
	}
	return cmd
}

func (e *Engine) resolveLoneNoun(word string) int {
	if n := datafile.FindWord(word, e.prog.Words.Nouns, e.wordLength); n != 0 {
		return n
	}
	// Vocabulary miss; the fixed direction words still work.
	up := truncateUpper(word, e.wordLength)
	for d, name := range directionNames {
		if up == truncateUpper(name, e.wordLength) {
			return d + 1
		}
	}
	return 0
}

// goVerbIndex resolves the canonical movement verb, preferring the
// vocabulary entry and falling back to the format's fixed slot.
func (e *Engine) goVerbIndex() int {
	if v := datafile.FindWord("GO", e.prog.Words.Verbs, e.wordLength); v != 0 {
		return v
	}
	return VerbGo
}
