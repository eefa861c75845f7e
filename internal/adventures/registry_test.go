package adventures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kirilian/tui-advent/internal/datafile"
)

func TestBundledAdventuresParse(t *testing.T) {
	for _, info := range List() {
		_, data, err := Open(info.ID)
		if err != nil {
			t.Fatalf("Open(%q) failed: %v", info.ID, err)
		}
		if _, err := datafile.Load(data); err != nil {
			t.Errorf("Bundled adventure %q does not parse: %v", info.ID, err)
		}
	}
}

func TestDemoAdventureShape(t *testing.T) {
	_, data, err := Open("demo")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	p, err := datafile.Load(data)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if p.Header.NumTreasures != 1 {
		t.Errorf("Demo should have one treasure, got %d", p.Header.NumTreasures)
	}
	treasures := 0
	for _, it := range p.Items {
		if it.IsTreasure() {
			treasures++
		}
	}
	if treasures != p.Header.NumTreasures {
		t.Errorf("Header promises %d treasures, items carry %d", p.Header.NumTreasures, treasures)
	}
	if p.Header.StartRoom < 1 || p.Header.StartRoom >= len(p.Rooms) {
		t.Errorf("Start room %d out of range", p.Header.StartRoom)
	}
}

func TestExistsAndTitle(t *testing.T) {
	if !Exists("demo") {
		t.Error("demo should be bundled")
	}
	if Exists("no-such-adventure") {
		t.Error("Exists() should reject unknown IDs")
	}
	if Title("demo") == "demo" {
		t.Error("Bundled adventures should have a display title")
	}
	if Title("mystery") != "mystery" {
		t.Error("Unknown IDs fall back to themselves")
	}
}

func TestOpenFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.dat")
	if err := os.WriteFile(path, []byte("1\n2\n3\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	id, data, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if id != "custom" {
		t.Errorf("ID = %q, want the file stem", id)
	}
	if data != "1\n2\n3\n" {
		t.Errorf("Data = %q, want the raw file contents", data)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, _, err := Open(filepath.Join(t.TempDir(), "gone.dat")); err == nil {
		t.Error("Open() should fail for a missing path")
	}
}
