package engine

import "fmt"

// Input is one player input for a half-tick.
type Input byte

const (
	InputUp       Input = 'u'
	InputLeft     Input = 'l'
	InputDown     Input = 'd'
	InputRight    Input = 'r'
	InputWait     Input = ' '
	InputHalfWait Input = '-'
	InputClick    Input = 'c'
)

// ParseInput converts a move-string character to an Input.
func ParseInput(b byte) (Input, error) {
	switch in := Input(b); in {
	case InputUp, InputLeft, InputDown, InputRight, InputWait, InputHalfWait, InputClick:
		return in, nil
	}
	return 0, fmt.Errorf("engine: unknown input %q", b)
}

// Direction returns the direction of a key input.
func (in Input) Direction() (Direction, bool) {
	switch in {
	case InputUp:
		return Up, true
	case InputLeft:
		return Left, true
	case InputDown:
		return Down, true
	case InputRight:
		return Right, true
	}
	return 0, false
}

type moveKind uint8

const (
	moveHalfWait moveKind = iota
	moveKey
	moveClickEarly
	moveClickLate
)

// monsterTurn reports whether monsters act on the current half-tick.
func (l *Level) monsterTurn() bool {
	return (l.tickNumber+int(l.step))%2 == 0
}

// slowTurn reports whether teeth and blobs act on the current monster turn.
func (l *Level) slowTurn() bool {
	return (l.tickNumber+int(l.step))&2 == 0
}

func (l *Level) classify(in Input) moveKind {
	switch in {
	case InputHalfWait:
		return moveHalfWait
	case InputClick:
		if l.mouseTarget == NoPosition {
			return moveKey
		}
		if l.monsterTurn() {
			return moveClickLate
		}
		return moveClickEarly
	}
	return moveKey
}

// Tick advances the level by one half-tick. dirs overrides the directions
// of a key input; when nil they come from in. It returns false for a
// half-wait and whenever the level is over, and true otherwise, in which
// case the caller is expected to follow up with a half-wait.
func (l *Level) Tick(in Input, dirs []Direction) bool {
	if l.Over() {
		return false
	}

	l.resetSliding()
	kind := l.classify(in)
	if kind == moveKey && dirs == nil {
		if d, ok := in.Direction(); ok {
			dirs = []Direction{d}
		}
	}

	l.creatures.initialise(l.slowTurn())
	if l.monsterTurn() {
		l.creatures.tick(l)
	}

	if l.Timed() && l.TimeLeft() <= 0 && l.chip.Alive() {
		l.killChip()
	}
	if !l.chip.Alive() {
		return false
	}

	onForce := l.bg[l.chip.Pos].IsFF()
	override := kind == moveKey && len(dirs) > 0 && onForce
	if l.chip.Sliding && !override {
		l.slide(l.chip)
	}

	reached := false
	if kind == moveClickEarly && l.chip.Alive() {
		reached = l.seekMouse()
	}

	l.tickNumber++
	l.slips.tick(l)

	if l.chip.Alive() && !l.Complete() {
		switch kind {
		case moveKey:
			if len(dirs) > 0 && (!l.chip.Sliding || l.bg[l.chip.Pos].IsFF()) {
				l.moveChip(dirs)
			}
		case moveClickLate:
			reached = l.seekMouse()
		}
	}

	l.creatures.finalise()
	l.finaliseTraps()

	if kind == moveKey || reached {
		l.mouseTarget = NoPosition
	}
	return kind != moveHalfWait
}

// moveChip tries dirs in order. When every direction fails chip still
// turns to face the first one.
func (l *Level) moveChip(dirs []Direction) bool {
	for _, d := range dirs {
		if l.moveCreature(l.chip, d) {
			return true
		}
		if !l.chip.Alive() {
			return false
		}
	}
	if !l.chip.Sliding {
		l.chip.Dir = dirs[0]
		l.redraw(l.chip)
	}
	return false
}

// seekMouse steps chip toward the mouse target and reports whether the
// target should be cleared: it was reached or chip could not move.
func (l *Level) seekMouse() bool {
	if l.chip.Sliding && !l.bg[l.chip.Pos].IsFF() {
		return false
	}
	dirs := l.chip.Pos.Seek(l.mouseTarget)
	if len(dirs) == 0 {
		return true
	}
	if !l.moveChip(dirs) {
		return true
	}
	return l.chip.Pos == l.mouseTarget
}
