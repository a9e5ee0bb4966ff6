package engine

import (
	"fmt"
	"hash/fnv"
)

// Ruleset selects the behavior family of the simulation.
type Ruleset uint8

const (
	// RulesetMS is the only ruleset implemented.
	RulesetMS Ruleset = iota
)

// String returns the ruleset name.
func (r Ruleset) String() string {
	switch r {
	case RulesetMS:
		return "ms"
	default:
		return fmt.Sprintf("Ruleset(%d)", uint8(r))
	}
}

// Step selects the half-tick parity on which monsters move.
type Step uint8

const (
	StepEven Step = iota
	StepOdd
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepEven:
		return "even"
	case StepOdd:
		return "odd"
	default:
		return fmt.Sprintf("Step(%d)", uint8(s))
	}
}

// TicksPerSecond is the number of half-ticks in one second of level time.
const TicksPerSecond = 10

// Descriptor is the parsed, level-file-independent form of a level.
type Descriptor struct {
	Number     int
	Title      string
	Password   string
	Hint       string
	Timer      int // seconds, 0 for untimed
	ChipsLeft  int
	Foreground Layer
	Background Layer
	Movers     []Position
	Traps      []Connection
	Cloners    []Connection
	// Teleports lists the teleport order. When nil it is derived from the
	// layers in index order.
	Teleports []Position
	Seed      uint32
	Step      Step
	Ruleset   Ruleset
}

// Level is the whole mutable simulation state. It is not safe for
// concurrent use; run independent levels on independent goroutines.
type Level struct {
	Number   int
	Title    string
	Password string
	Hint     string

	board
	inventory

	chip      *Creature
	creatures *CreatureList
	slips     *SlipList
	rng       *RNG
	buttons   *buttonNetwork
	traps     trapBits
	teleports []Position
	presses   []press

	tickNumber       int
	timer            int
	initialChipsLeft int
	mouseTarget      Position
	step             Step
	ruleset          Ruleset
}

// NewLevel validates d and builds its starting state.
func NewLevel(d *Descriptor) (*Level, error) {
	if d.Ruleset != RulesetMS {
		return nil, fmt.Errorf("%w: unsupported ruleset %s", ErrInvalidLevel, d.Ruleset)
	}
	if d.Step > StepOdd {
		return nil, fmt.Errorf("%w: step %d", ErrInvalidLevel, d.Step)
	}
	if d.ChipsLeft < 0 || d.ChipsLeft > 0xFFFF {
		return nil, fmt.Errorf("%w: chips left %d", ErrInvalidLevel, d.ChipsLeft)
	}
	if d.Timer < 0 || d.Timer > 0xFFFF {
		return nil, fmt.Errorf("%w: timer %d", ErrInvalidLevel, d.Timer)
	}

	l := &Level{
		Number:           d.Number,
		Title:            d.Title,
		Password:         d.Password,
		Hint:             d.Hint,
		board:            board{fg: d.Foreground, bg: d.Background},
		inventory:        inventory{chipsLeft: d.ChipsLeft},
		rng:              NewRNG(d.Seed),
		slips:            &SlipList{},
		timer:            d.Timer,
		initialChipsLeft: d.ChipsLeft,
		mouseTarget:      NoPosition,
		step:             d.Step,
		ruleset:          d.Ruleset,
	}

	chip := NoPosition
	for i := 0; i < BoardSize; i++ {
		p := Position(i)
		if !l.fg[p].Valid() || !l.bg[p].Valid() {
			return nil, fmt.Errorf("%w: unknown tile at %s", ErrInvalidLevel, p)
		}
		if l.fg[p].IsPlayer() {
			if chip != NoPosition {
				return nil, fmt.Errorf("%w: second chip at %s", ErrInvalidLevel, p)
			}
			chip = p
		}
	}
	if chip == NoPosition {
		return nil, fmt.Errorf("%w: no chip on the board", ErrInvalidLevel)
	}
	l.chip, _ = creatureFromTile(l.fg[chip], chip)

	roster := make([]*Creature, 0, len(d.Movers))
	seen := make(map[Position]bool, len(d.Movers))
	for _, p := range d.Movers {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: mover %s out of range", ErrInvalidLevel, p)
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: mover %s listed twice", ErrInvalidLevel, p)
		}
		seen[p] = true
		c, ok := creatureFromTile(l.fg[p], p)
		if !ok || c.Type.IsChip() {
			return nil, fmt.Errorf("%w: mover %s is %s", ErrInvalidLevel, p, l.fg[p])
		}
		roster = append(roster, c)
	}
	l.creatures = newCreatureList(roster)

	buttons, err := newButtonNetwork(&l.board, d.Traps, d.Cloners)
	if err != nil {
		return nil, err
	}
	l.buttons = buttons
	l.traps = newTrapBits(len(buttons.brown))

	if d.Teleports == nil {
		for i := 0; i < BoardSize; i++ {
			if l.fg[i] == Teleport || l.bg[i] == Teleport {
				l.teleports = append(l.teleports, Position(i))
			}
		}
	} else {
		seenTP := make(map[Position]bool, len(d.Teleports))
		for _, p := range d.Teleports {
			if !p.Valid() || seenTP[p] {
				return nil, fmt.Errorf("%w: teleport %s", ErrInvalidLevel, p)
			}
			if l.fg[p] != Teleport && l.bg[p] != Teleport {
				return nil, fmt.Errorf("%w: teleport %s is %s", ErrInvalidLevel, p, l.fg[p])
			}
			seenTP[p] = true
			l.teleports = append(l.teleports, p)
		}
	}

	l.finaliseTraps()
	return l, nil
}

// TickNumber returns the number of half-ticks played.
func (l *Level) TickNumber() int {
	return l.tickNumber
}

// Timed reports whether the level has a time limit.
func (l *Level) Timed() bool {
	return l.timer > 0
}

// TimeLeft returns the remaining half-ticks on a timed level.
func (l *Level) TimeLeft() int {
	if !l.Timed() {
		return 0
	}
	return l.timer*TicksPerSecond - l.tickNumber
}

// ChipsLeft returns the chip counter.
func (l *Level) ChipsLeft() int {
	return l.chipsLeft
}

// Keys returns the key counts, in blue, red, green, yellow order.
func (l *Level) Keys() [4]uint16 {
	return l.keys
}

// Boots returns the boot flags, in water, fire, ice, force order.
func (l *Level) Boots() [4]uint8 {
	return l.boots
}

// Chip returns a copy of the player creature.
func (l *Level) Chip() Creature {
	return *l.chip
}

// Foreground returns a copy of the active layer.
func (l *Level) Foreground() Layer {
	return l.fg
}

// Background returns a copy of the buried layer.
func (l *Level) Background() Layer {
	return l.bg
}

// Creatures returns copies of the rostered creatures, in roster order.
func (l *Level) Creatures() []Creature {
	cs := make([]Creature, len(l.creatures.list))
	for i, c := range l.creatures.list {
		cs[i] = *c
	}
	return cs
}

// Sliders returns copies of the sliding creatures, oldest first.
func (l *Level) Sliders() []Creature {
	cs := make([]Creature, len(l.slips.list))
	for i, c := range l.slips.list {
		cs[i] = *c
	}
	return cs
}

// RNGState returns the generator state.
func (l *Level) RNGState() uint32 {
	return l.rng.State()
}

// Step returns the monster parity.
func (l *Level) Step() Step {
	return l.step
}

// Teleports returns the teleport search order.
func (l *Level) Teleports() []Position {
	return append([]Position(nil), l.teleports...)
}

// TrapOpen reports whether the trap at p is currently open.
func (l *Level) TrapOpen(p Position) bool {
	return l.trapOpen(p)
}

// MouseTarget returns the click target, or NoPosition.
func (l *Level) MouseTarget() Position {
	return l.mouseTarget
}

// SetMouseTarget sets the cell chip walks toward on click input. NoPosition
// clears it.
func (l *Level) SetMouseTarget(p Position) error {
	if p != NoPosition && !p.Valid() {
		return fmt.Errorf("engine: mouse target %d out of range", p)
	}
	l.mouseTarget = p
	return nil
}

// ChipDead reports whether chip has died.
func (l *Level) ChipDead() bool {
	return !l.chip.Alive()
}

// Complete reports whether chip has reached the exit.
func (l *Level) Complete() bool {
	return l.chip.Alive() && l.fg[l.chip.Pos] == ExitedChip
}

// Over reports whether the level has ended either way.
func (l *Level) Over() bool {
	return l.ChipDead() || l.Complete()
}

// Hash returns a digest of the full simulation state.
func (l *Level) Hash() uint64 {
	h := fnv.New64a()
	h.Write(l.SaveUncompressed())
	return h.Sum64()
}

// Clone returns a deep copy that shares only immutable level data.
func (l *Level) Clone() *Level {
	n := *l
	n.rng = NewRNG(l.rng.State())
	n.traps = append(trapBits(nil), l.traps...)
	n.presses = nil

	copies := make(map[*Creature]*Creature, len(l.creatures.list)+len(l.slips.list)+1)
	dup := func(c *Creature) *Creature {
		if d, ok := copies[c]; ok {
			return d
		}
		d := *c
		copies[c] = &d
		return &d
	}
	n.chip = dup(l.chip)
	roster := make([]*Creature, len(l.creatures.list))
	for i, c := range l.creatures.list {
		roster[i] = dup(c)
	}
	n.creatures = newCreatureList(roster)
	n.slips = &SlipList{list: make([]*Creature, len(l.slips.list))}
	for i, c := range l.slips.list {
		n.slips.list[i] = dup(c)
	}
	return &n
}
