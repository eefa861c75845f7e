package datafile

// The on-disk action table packs several values into single integers. The
// arithmetic here is part of the format contract with the original 1978
// interpreters and must not change.
const (
	wordFactor      = 150 // verb*150 + noun, also splits instruction pairs
	conditionFactor = 20  // value*20 + op
)

// UnpackVerbNoun splits an action's first value into its trigger pair.
func UnpackVerbNoun(raw int) (verb, noun int) {
	return raw / wordFactor, raw % wordFactor
}

// PackVerbNoun is the inverse of UnpackVerbNoun, used by tests and tools
// that synthesize data files.
func PackVerbNoun(verb, noun int) int {
	return verb*wordFactor + noun
}

// UnpackCondition splits a raw condition slot. Op zero means the slot is
// not a condition at all: its value is a literal argument for the action's
// instruction list.
func UnpackCondition(raw int) (op, value int) {
	return raw % conditionFactor, raw / conditionFactor
}

// PackCondition is the inverse of UnpackCondition.
func PackCondition(op, value int) int {
	return value*conditionFactor + op
}

// UnpackInstructions splits a packed instruction value into its two
// sub-codes. A zero sub-code is a skipped slot.
func UnpackInstructions(raw int) (first, second int) {
	return raw / wordFactor, raw % wordFactor
}

// PackInstructions is the inverse of UnpackInstructions.
func PackInstructions(first, second int) int {
	return first*wordFactor + second
}
