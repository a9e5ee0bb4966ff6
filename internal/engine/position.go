package engine

import "fmt"

const (
	// BoardWidth is the number of columns and rows of the board.
	BoardWidth = 32
	// BoardSize is the number of cells in a layer.
	BoardSize = BoardWidth * BoardWidth
	// overflowEnd bounds the row past the board, reachable only as a
	// red button target.
	overflowEnd = BoardSize + BoardWidth
)

// Position is a cell index, y*32 + x.
type Position int

// NoPosition is the off-board sentinel.
const NoPosition Position = -1

// Pos builds a Position from coordinates. Coordinates off the board
// yield NoPosition.
func Pos(x, y int) Position {
	if x < 0 || x >= BoardWidth || y < 0 || y >= BoardWidth {
		return NoPosition
	}
	return Position(y*BoardWidth + x)
}

// X returns the column.
func (p Position) X() int {
	return int(p) % BoardWidth
}

// Y returns the row.
func (p Position) Y() int {
	return int(p) / BoardWidth
}

// Valid reports whether p is on the board.
func (p Position) Valid() bool {
	return p >= 0 && p < BoardSize
}

// String returns a string representation of the position.
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(off:%d)", int(p))
	}
	return fmt.Sprintf("(%d,%d)", p.X(), p.Y())
}

// Move returns the neighbouring cell in direction d, or NoPosition when the
// step would leave the board.
func (p Position) Move(d Direction) Position {
	if !p.Valid() {
		return NoPosition
	}
	dx, dy := d.Delta()
	return Pos(p.X()+dx, p.Y()+dy)
}

// Seek returns the directions that lead from p toward target: the axis with
// the larger distance first, vertical first on ties. Aligned axes are omitted.
func (p Position) Seek(target Position) []Direction {
	dx := target.X() - p.X()
	dy := target.Y() - p.Y()

	var horizontal, vertical []Direction
	switch {
	case dx < 0:
		horizontal = []Direction{Left}
	case dx > 0:
		horizontal = []Direction{Right}
	}
	switch {
	case dy < 0:
		vertical = []Direction{Up}
	case dy > 0:
		vertical = []Direction{Down}
	}

	if abs(dx) > abs(dy) {
		return append(horizontal, vertical...)
	}
	return append(vertical, horizontal...)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
