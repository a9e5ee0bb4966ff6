package engine

import "fmt"

// Button is a fixed (button, target) wiring. Green and blue buttons act on
// the whole board and carry NoPosition as their target.
type Button struct {
	Pos    Position
	Target Position
}

// brownWire is a brown button wiring; it additionally owns a stable slot in
// the trap-open bitset.
type brownWire struct {
	Button
	Index int
}

// Connection is a raw button wiring from a level descriptor.
type Connection struct {
	Button Position
	Target Position
}

// buttonNetwork holds every button of a level. It is immutable after load.
type buttonNetwork struct {
	green   []Button
	blue    []Button
	red     []Button
	brown   []brownWire
	redAt   map[Position][]int
	brownAt map[Position][]int
	trapAt  map[Position][]int
}

func newButtonNetwork(b *board, traps, cloners []Connection) (*buttonNetwork, error) {
	n := &buttonNetwork{
		redAt:   make(map[Position][]int),
		brownAt: make(map[Position][]int),
		trapAt:  make(map[Position][]int),
	}

	for i := 0; i < BoardSize; i++ {
		p := Position(i)
		switch {
		case b.fg[p] == GreenButton || b.bg[p] == GreenButton:
			n.green = append(n.green, Button{Pos: p, Target: NoPosition})
		case b.fg[p] == BlueButton || b.bg[p] == BlueButton:
			n.blue = append(n.blue, Button{Pos: p, Target: NoPosition})
		}
	}

	for _, c := range traps {
		if !c.Button.Valid() || !c.Target.Valid() {
			return nil, fmt.Errorf("%w: trap connection %s -> %s out of range", ErrInvalidLevel, c.Button, c.Target)
		}
		if b.fg[c.Button] != BrownButton && b.bg[c.Button] != BrownButton {
			return nil, fmt.Errorf("%w: trap connection at %s is not a brown button", ErrInvalidLevel, c.Button)
		}
		idx := len(n.brown)
		n.brown = append(n.brown, brownWire{Button: Button{Pos: c.Button, Target: c.Target}, Index: idx})
		n.brownAt[c.Button] = append(n.brownAt[c.Button], idx)
		n.trapAt[c.Target] = append(n.trapAt[c.Target], idx)
	}

	for _, c := range cloners {
		if !c.Button.Valid() || c.Target < 0 || c.Target >= overflowEnd {
			return nil, fmt.Errorf("%w: clone connection %s -> %s out of range", ErrInvalidLevel, c.Button, c.Target)
		}
		if b.fg[c.Button] != RedButton && b.bg[c.Button] != RedButton {
			return nil, fmt.Errorf("%w: clone connection at %s is not a red button", ErrInvalidLevel, c.Button)
		}
		n.redAt[c.Button] = append(n.redAt[c.Button], len(n.red))
		n.red = append(n.red, Button{Pos: c.Button, Target: c.Target})
	}

	return n, nil
}

// trapBits is the trap-open bitset, one bit per brown button.
type trapBits []byte

func newTrapBits(n int) trapBits {
	return make(trapBits, (n+7)/8)
}

func (t trapBits) get(i int) bool {
	return t[i/8]&(1<<(i%8)) != 0
}

func (t trapBits) set(i int, open bool) {
	if open {
		t[i/8] |= 1 << (i % 8)
	} else {
		t[i/8] &^= 1 << (i % 8)
	}
}

// press is a queued button activation.
type press struct {
	kind Tile
	pos  Position
}

// queuePress records a button activation to be applied once the current
// move has completed.
func (l *Level) queuePress(kind Tile, p Position) {
	l.presses = append(l.presses, press{kind: kind, pos: p})
}

// flushPresses applies the presses queued after mark, in order.
func (l *Level) flushPresses(mark int) {
	if len(l.presses) <= mark {
		return
	}
	pending := append([]press(nil), l.presses[mark:]...)
	l.presses = l.presses[:mark]
	for _, pr := range pending {
		l.applyPress(pr)
	}
}

func (l *Level) applyPress(pr press) {
	switch pr.kind {
	case GreenButton:
		l.toggleWalls()
	case BlueButton:
		l.turnTanks()
	case RedButton:
		for _, i := range l.buttons.redAt[pr.pos] {
			l.cloneFrom(l.buttons.red[i].Target)
		}
	case BrownButton:
		for _, i := range l.buttons.brownAt[pr.pos] {
			l.traps.set(i, true)
		}
	}
}

// toggleWalls swaps every toggle wall and toggle floor on both layers.
func (l *Level) toggleWalls() {
	for i := range l.fg {
		l.fg[i] = toggled(l.fg[i])
		l.bg[i] = toggled(l.bg[i])
	}
}

func toggled(t Tile) Tile {
	switch t {
	case ToggleClosed:
		return ToggleOpen
	case ToggleOpen:
		return ToggleClosed
	default:
		return t
	}
}

// turnTanks reverses every rostered tank that is not sliding and sets it
// moving again. Tanks carried by ice or force floors keep their facing.
func (l *Level) turnTanks() {
	for _, c := range l.creatures.list {
		if !c.Alive() || !c.Type.IsTank() || c.Sliding {
			continue
		}
		c.Dir = c.Dir.Opposite()
		c.Type = TankMoving
		l.redraw(c)
	}
}

// cloneFrom spawns a copy of the template standing on the clone machine at
// target and lets it step off in its facing.
func (l *Level) cloneFrom(target Position) {
	if target >= BoardSize {
		l.dataReset(target)
		return
	}
	if l.bg[target] != CloneMachine || l.creatures.cloned(target) {
		return
	}
	c, ok := creatureFromTile(l.fg[target], target)
	if !ok || c.Type.IsChip() {
		return
	}
	l.creatures.markCloned(target)
	if !l.moveCreature(c, c.Dir) {
		return
	}
	if c.Alive() && c.Type.IsMonster() {
		l.creatures.queueClone(c)
	}
}

// dataReset emulates cloning from the row past the board, which the legacy
// engine read as level metadata: the chip counter is restored from it.
func (l *Level) dataReset(target Position) {
	if target < BoardSize || target >= overflowEnd {
		return
	}
	l.chipsLeft = l.initialChipsLeft
}

// trapOpen reports whether any brown button wired to the trap at p is held.
func (l *Level) trapOpen(p Position) bool {
	for _, i := range l.buttons.trapAt[p] {
		if l.traps.get(i) {
			return true
		}
	}
	return false
}

// finaliseTraps recomputes trap state from which brown buttons are held.
func (l *Level) finaliseTraps() {
	for _, b := range l.buttons.brown {
		held := l.bg[b.Pos] == BrownButton && l.fg[b.Pos].IsCreature()
		l.traps.set(b.Index, held)
	}
}
