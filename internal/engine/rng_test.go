package engine

import "testing"

func TestRNGAdvanceSequence(t *testing.T) {
	r := NewRNG(12345)
	want := []uint32{1406932606, 654583775, 1449466924, 229283573, 1109335178}
	for i, w := range want {
		if got := r.advance(); got != w {
			t.Fatalf("Step %d: expected %d, got %d", i, w, got)
		}
	}
}

func TestRNGRandom4(t *testing.T) {
	r := NewRNG(1)
	want := []int{2, 0, 1, 2, 3, 0, 2, 0}
	for i, w := range want {
		if got := r.Random4(); got != w {
			t.Errorf("Draw %d: expected %d, got %d", i, w, got)
		}
	}
}

func TestRNGPermutations(t *testing.T) {
	tests := []struct {
		seed  uint32
		want3 [3]Direction
		want4 [4]Direction
		after uint32
	}{
		{0, [3]Direction{Down, Up, Left}, [4]Direction{Right, Up, Left, Down}, 12345},
		{7, [3]Direction{Up, Left, Down}, [4]Direction{Right, Left, Down, Up}, 1282168116},
		{99999, [3]Direction{Up, Down, Left}, [4]Direction{Up, Down, Left, Right}, 1973744620},
	}

	for _, tt := range tests {
		r := NewRNG(tt.seed)
		a3 := [3]Direction{Up, Left, Down}
		r.Permutation3(&a3)
		if a3 != tt.want3 {
			t.Errorf("Seed %d: expected permutation3 %v, got %v", tt.seed, tt.want3, a3)
		}
		if r.State() != tt.after {
			t.Errorf("Seed %d: expected state %d after one call, got %d", tt.seed, tt.after, r.State())
		}

		r.SetState(tt.seed)
		a4 := [4]Direction{Up, Left, Down, Right}
		r.Permutation4(&a4)
		if a4 != tt.want4 {
			t.Errorf("Seed %d: expected permutation4 %v, got %v", tt.seed, tt.want4, a4)
		}
	}
}

func TestRNGStateRoundTrip(t *testing.T) {
	r := NewRNG(42)
	r.Random4()
	saved := r.State()
	a := r.Random4()
	r.SetState(saved)
	if b := r.Random4(); a != b {
		t.Errorf("Expected %d after restoring state, got %d", a, b)
	}
}
