// Package engine implements the deterministic tick engine for the chip puzzle
// board: tiles, creatures, buttons, sliding and the per-tick orchestration.
// This package is UI-agnostic and performs no I/O.
package engine

// Direction is one of the four cardinal directions.
// The numeric order matches the facing bits of creature tiles.
type Direction uint8

const (
	Up Direction = iota
	Left
	Down
	Right
)

// Turn is a rotation relative to a facing.
type Turn uint8

const (
	TurnForward Turn = iota
	TurnLeft
	TurnAround
	TurnRight
)

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Left:
		return "Left"
	case Down:
		return "Down"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Turn rotates d by t.
func (d Direction) Turn(t Turn) Direction {
	return (d + Direction(t)) & 3
}

// Turns resolves an ordered list of relative turns against d.
func (d Direction) Turns(ts ...Turn) []Direction {
	dirs := make([]Direction, len(ts))
	for i, t := range ts {
		dirs[i] = d.Turn(t)
	}
	return dirs
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	return d.Turn(TurnAround)
}

// Delta returns the (dx, dy) offset for one step. Up decreases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Left:
		return -1, 0
	case Down:
		return 0, 1
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}
