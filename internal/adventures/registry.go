// Package adventures is the catalog of bundled game data files. Bundled
// adventures ship embedded in the binary so `advent play demo` works with
// no external file; anything else is opened from disk by path.
package adventures

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed data/demo.dat
var demoData string

// Info describes one bundled adventure.
type Info struct {
	ID    string
	Title string
}

var bundled = map[string]struct {
	title string
	data  string
}{
	"demo": {title: "The Cellar Caper", data: demoData},
}

// List returns the bundled adventures sorted by ID.
func List() []Info {
	result := make([]Info, 0, len(bundled))
	for id, b := range bundled {
		result = append(result, Info{ID: id, Title: b.title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Exists checks whether an ID names a bundled adventure.
func Exists(id string) bool {
	_, ok := bundled[id]
	return ok
}

// Open resolves an adventure by bundled ID or filesystem path and returns
// its identifier plus the raw data file contents.
func Open(idOrPath string) (id, data string, err error) {
	if b, ok := bundled[idOrPath]; ok {
		return idOrPath, b.data, nil
	}
	raw, err := os.ReadFile(idOrPath)
	if err != nil {
		return "", "", fmt.Errorf("adventures: cannot open %q: %w", idOrPath, err)
	}
	return idFromPath(idOrPath), string(raw), nil
}

// Title returns the display title for a bundled ID, or the ID itself.
func Title(id string) string {
	if b, ok := bundled[id]; ok {
		return b.title
	}
	return id
}

func idFromPath(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
