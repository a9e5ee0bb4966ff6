package replay

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vovakirdan/chipsim/internal/levels"
	"github.com/vovakirdan/chipsim/internal/levels/formats"
)

func testLoader() *levels.Loader {
	_, filename, _, _ := runtime.Caller(0)
	return levels.NewLoader(filepath.Join(filepath.Dir(filename), "..", "levels", "testdata"))
}

func loadLevel(t *testing.T, id string) levels.Level {
	t.Helper()
	lvl, err := testLoader().LoadByID(id)
	if err != nil {
		t.Fatalf("LoadByID(%q) failed: %v", id, err)
	}
	return lvl
}

func TestParse(t *testing.T) {
	inputs, err := Parse("ud lr-")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(inputs) != 6 {
		t.Errorf("Expected 6 inputs, got %d", len(inputs))
	}

	if _, err := Parse("uux"); !errors.Is(err, ErrUnknownMove) {
		t.Errorf("Expected ErrUnknownMove, got %v", err)
	}
}

// Recorded solutions reproduce at the exact recorded tick.
func TestVerifyRecordedSolutions(t *testing.T) {
	for _, id := range []string{"lesson-1", "slide"} {
		lvl := loadLevel(t, id)
		for _, sol := range lvl.Solutions {
			res, err := Verify(&lvl, sol)
			if err != nil {
				t.Errorf("%s: %v", id, err)
				continue
			}
			if res.Tick != sol.Tick {
				t.Errorf("%s: expected tick %d, got %d", id, sol.Tick, res.Tick)
			}
		}
	}
}

func TestLessonResult(t *testing.T) {
	lvl := loadLevel(t, "lesson-1")
	l, err := lvl.NewLevel()
	if err != nil {
		t.Fatalf("NewLevel failed: %v", err)
	}

	res, err := Play(l, "rrrrrrrr")
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if !res.Complete || res.Dead {
		t.Fatalf("Expected completion, got %+v", res)
	}
	if res.Played != 4 {
		t.Errorf("Expected play to stop after 4 inputs, got %d", res.Played)
	}
	if res.Tick != 7 || res.ChipsLeft != 0 || res.TimeLeft != 993 {
		t.Errorf("Expected tick 7, 0 chips, 993 time left, got %+v", res)
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	lvl := loadLevel(t, "lesson-1")
	sol := lvl.Solutions[0]
	sol.Tick++
	if _, err := Verify(&lvl, sol); !errors.Is(err, ErrMismatch) {
		t.Errorf("Expected ErrMismatch for a wrong tick, got %v", err)
	}

	sol = formats.Solution{Moves: "rr"}
	if _, err := Verify(&lvl, sol); !errors.Is(err, ErrMismatch) {
		t.Errorf("Expected ErrMismatch for an unfinished run, got %v", err)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	lvl := loadLevel(t, "walker-hall")
	a, _ := lvl.NewLevel()
	b, _ := lvl.NewLevel()

	ra, err := Play(a, "rrr  rrrr")
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	rb, _ := Play(b, "rrr  rrrr")
	if ra != rb {
		t.Errorf("Expected identical results, got %+v and %+v", ra, rb)
	}
}
