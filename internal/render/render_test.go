package render

import (
	"strings"
	"testing"

	"github.com/vovakirdan/chipsim/internal/engine"
)

func testLevel(t *testing.T, chipX int) *engine.Level {
	t.Helper()
	d := &engine.Descriptor{Timer: 10, ChipsLeft: 1}
	d.Foreground[engine.Pos(chipX, 1)] = engine.ChipDown
	d.Foreground[engine.Pos(chipX+1, 1)] = engine.ComputerChip
	d.Foreground[engine.Pos(chipX+2, 1)] = engine.BugLeft
	d.Movers = []engine.Position{engine.Pos(chipX+2, 1)}

	lvl, err := engine.NewLevel(d)
	if err != nil {
		t.Fatalf("NewLevel() failed: %v", err)
	}
	return lvl
}

func TestBoardPlain(t *testing.T) {
	out := Board(testLevel(t, 1), Options{})
	lines := strings.Split(out, "\n")

	if len(lines) != engine.BoardWidth+1 {
		t.Fatalf("Expected %d lines, got %d", engine.BoardWidth+1, len(lines))
	}
	wantHeader := "tick 0  chips 1  time 10.0  keys 0/0/0/0  boots 0/0/0/0  state playing"
	if lines[0] != wantHeader {
		t.Errorf("Expected header %q, got %q", wantHeader, lines[0])
	}
	wantRow := ".@$b" + strings.Repeat(".", engine.BoardWidth-4)
	if lines[2] != wantRow {
		t.Errorf("Expected row %q, got %q", wantRow, lines[2])
	}
}

func TestBoardCropsAroundChip(t *testing.T) {
	lines := strings.Split(Board(testLevel(t, 1), Options{Width: 8}), "\n")
	if got := len(lines[2]); got != 8 {
		t.Fatalf("Expected 8 columns, got %d", got)
	}
	if !strings.HasPrefix(lines[2], ".@$b") {
		t.Errorf("Expected crop at the left edge, got %q", lines[2])
	}

	lines = strings.Split(Board(testLevel(t, 29), Options{Width: 8}), "\n")
	if lines[2] != ".....@$b" {
		t.Errorf("Expected crop at the right edge, got %q", lines[2])
	}
}

func TestBoardLegend(t *testing.T) {
	out := Board(testLevel(t, 1), Options{Names: true})
	for _, want := range []string{". floor", "@ chip_down", "$ computer_chip", "b bug_left"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected legend to contain %q", want)
		}
	}
}

func TestBoardColorKeepsGlyphs(t *testing.T) {
	out := Board(testLevel(t, 1), Options{Color: true})
	if !strings.Contains(out, "@") || !strings.Contains(out, "b") {
		t.Error("Expected styled board to keep chip and bug glyphs")
	}
}

func TestGlyphCoversEveryTile(t *testing.T) {
	for i := range engine.TileCount {
		tile := engine.Tile(i)
		if tile == engine.Overlay || tile == engine.Unused36 || tile == engine.Unused37 {
			continue
		}
		if Glyph(tile) == ' ' {
			t.Errorf("Expected a glyph for %s", tile)
		}
	}
}
