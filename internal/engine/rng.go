package engine

// RNG is the legacy linear congruential generator. Its permutation routines
// are intentionally biased; recorded seeds depend on the exact arithmetic.
type RNG struct {
	state uint32
}

// NewRNG returns a generator seeded with seed.
func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// State returns the raw generator state.
func (r *RNG) State() uint32 {
	return r.state
}

// SetState replaces the raw generator state.
func (r *RNG) SetState(s uint32) {
	r.state = s
}

func (r *RNG) advance() uint32 {
	r.state = (r.state*1103515245 + 12345) & 0x7FFFFFFF
	return r.state
}

// Random4 returns a value in [0,3] taken from the top bits of the next state.
func (r *RNG) Random4() int {
	return int(r.advance() >> 29)
}

// Permutation3 shuffles a in place using a single advance.
func (r *RNG) Permutation3(a *[3]Direction) {
	v := r.advance()
	n := v >> 30
	a[n], a[1] = a[1], a[n]
	n = (3 * (v & 0x0FFFFFFF)) >> 28
	a[n], a[2] = a[2], a[n]
}

// Permutation4 shuffles a in place using a single advance.
func (r *RNG) Permutation4(a *[4]Direction) {
	v := r.advance()
	n := v >> 30
	a[n], a[1] = a[1], a[n]
	n = (3 * (v & 0x0FFFFFFF)) >> 28
	a[n], a[2] = a[2], a[n]
	n = (v >> 28) & 3
	a[n], a[3] = a[3], a[n]
}
