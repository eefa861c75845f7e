package datafile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Reader failure taxonomy. Load-time callers treat any of these as fatal;
// everyone else defaults the value to zero and carries on.
var (
	ErrPastEndOfFile   = errors.New("datafile: read past end of file")
	ErrIntegerExpected = errors.New("datafile: integer expected")
)

// Reader tokenizes a game data file into integers and logical strings on
// demand. It works over an in-memory copy of the file split into physical
// lines with carriage returns and tabs stripped.
type Reader struct {
	lines []string
	pos   int
	// pending holds text left over after the closing quote of the last
	// logical string (the quote-then-number idiom). ReadInt drains it
	// before touching the next physical line.
	pending string
}

// NewReader builds a Reader over the raw file contents.
func NewReader(data string) *Reader {
	data = strings.ReplaceAll(data, "\r", "")
	data = strings.ReplaceAll(data, "\t", "")
	return &Reader{lines: strings.Split(data, "\n")}
}

// Reset rewinds to the first line, discarding any pending tail.
func (r *Reader) Reset() {
	r.pos = 0
	r.pending = ""
}

func (r *Reader) nextPhysical() (string, bool) {
	if r.pos >= len(r.lines) {
		return "", false
	}
	line := r.lines[r.pos]
	r.pos++
	return line, true
}

// ReadInt consumes and parses the next integer. A pending quote-then-number
// tail is consumed first; otherwise one physical line is taken.
func (r *Reader) ReadInt() (int, error) {
	text := strings.TrimSpace(r.pending)
	r.pending = ""
	if text == "" {
		line, ok := r.nextPhysical()
		if !ok {
			return 0, ErrPastEndOfFile
		}
		text = strings.TrimSpace(line)
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrIntegerExpected, text)
	}
	return n, nil
}

// NextLineIsNumeric peeks without consuming and reports whether the next
// value is a bare integer. Used by the loader to spot an item location that
// landed on its own line.
func (r *Reader) NextLineIsNumeric() bool {
	text := strings.TrimSpace(r.pending)
	if text == "" {
		if r.pos >= len(r.lines) {
			return false
		}
		text = strings.TrimSpace(r.lines[r.pos])
	}
	if text == "" {
		return false
	}
	_, err := strconv.Atoi(text)
	return err == nil
}

// NextLine assembles the next logical string value. Quoted values may span
// several physical lines; the text between the outer quotes is returned
// with interior newlines preserved. Text trailing the closing quote stays
// pending for a later ReadInt. Malformed double slashes are normalized so
// item name sub-tokens parse with a single slash.
func (r *Reader) NextLine() (string, error) {
	line, ok := r.nextPhysical()
	if !ok {
		return "", ErrPastEndOfFile
	}

	open := strings.Index(line, `"`)
	if open < 0 {
		// Unquoted record; take the line as-is.
		return normalizeSlashes(strings.TrimSpace(line)), nil
	}

	body := line[open+1:]
	for !strings.Contains(body, `"`) {
		cont, ok := r.nextPhysical()
		if !ok {
			return "", ErrPastEndOfFile
		}
		body += "\n" + cont
	}

	end := strings.Index(body, `"`)
	tail := strings.TrimSpace(body[end+1:])
	if tail != "" {
		r.pending = tail
	}
	return normalizeSlashes(body[:end]), nil
}

func normalizeSlashes(s string) string {
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	return s
}
