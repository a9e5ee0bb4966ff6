package engine

// Layer is one 32x32 sheet of tiles stored in row-major order.
type Layer [BoardSize]Tile

// Get returns the tile at p. Off-board positions read as Wall.
func (l *Layer) Get(p Position) Tile {
	if !p.Valid() {
		return Wall
	}
	return l[p]
}

// Set replaces the tile at p. Off-board positions are ignored.
func (l *Layer) Set(p Position, t Tile) {
	if p.Valid() {
		l[p] = t
	}
}

// Bytes returns the layer as raw tile bytes.
func (l *Layer) Bytes() []byte {
	b := make([]byte, BoardSize)
	for i, t := range l {
		b[i] = byte(t)
	}
	return b
}

// Count returns the number of cells holding t.
func (l *Layer) Count(t Tile) int {
	n := 0
	for _, c := range l {
		if c == t {
			n++
		}
	}
	return n
}

// Find returns every position holding t, in index order.
func (l *Layer) Find(t Tile) []Position {
	var ps []Position
	for i, c := range l {
		if c == t {
			ps = append(ps, Position(i))
		}
	}
	return ps
}

// board is the two-deep playfield: foreground on top of the buried background.
type board struct {
	fg Layer
	bg Layer
}

// pop removes the foreground tile at p, revealing the buried one.
func (b *board) pop(p Position) {
	b.fg[p] = b.bg[p]
	b.bg[p] = Floor
}

// insert places t on top of p, burying the current foreground tile.
func (b *board) insert(p Position, t Tile) {
	b.bg[p] = b.fg[p]
	b.fg[p] = t
}

// occupied counts non-floor cells across both layers.
func (b *board) occupied() int {
	n := 0
	for i := range b.fg {
		if b.fg[i] != Floor {
			n++
		}
		if b.bg[i] != Floor {
			n++
		}
	}
	return n
}
