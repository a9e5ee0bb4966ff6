package engine

// CreatureList is the ordered roster of creatures that act on monster turns.
// Order decides who moves first. Additions and removals are deferred to
// finalise so the roster is stable while it is being walked.
type CreatureList struct {
	list     []*Creature
	clones   []*Creature
	cloners  []Position
	slowTurn bool
}

func newCreatureList(cs []*Creature) *CreatureList {
	return &CreatureList{list: cs}
}

// Len returns the roster size.
func (cl *CreatureList) Len() int {
	return len(cl.list)
}

// At returns the i-th rostered creature.
func (cl *CreatureList) At(i int) *Creature {
	return cl.list[i]
}

// initialise clears per-tick bookkeeping and records whether slow movers
// get to act this turn.
func (cl *CreatureList) initialise(slowTurn bool) {
	cl.clones = cl.clones[:0]
	cl.cloners = cl.cloners[:0]
	cl.slowTurn = slowTurn
}

// tick lets every eligible creature try to move, in roster order.
func (cl *CreatureList) tick(l *Level) {
	for _, c := range cl.list {
		if !c.Alive() || c.Sliding || c.Type.IsBlock() {
			continue
		}
		if c.Type.slowMover() && !cl.slowTurn {
			continue
		}
		l.moveMonster(c)
	}
}

// finalise drops dead creatures and resting blocks, then appends the clones
// made this tick. Calling it twice in a row is a no-op.
func (cl *CreatureList) finalise() {
	kept := cl.list[:0]
	for _, c := range cl.list {
		if c.Alive() && !(c.Type.IsBlock() && !c.Sliding) {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(cl.list); i++ {
		cl.list[i] = nil
	}
	cl.list = kept
	for _, c := range cl.clones {
		if c.Alive() {
			cl.list = append(cl.list, c)
		}
	}
	cl.clones = cl.clones[:0]
}

func (cl *CreatureList) queueClone(c *Creature) {
	cl.clones = append(cl.clones, c)
}

func (cl *CreatureList) cloned(p Position) bool {
	for _, q := range cl.cloners {
		if q == p {
			return true
		}
	}
	return false
}

func (cl *CreatureList) markCloned(p Position) {
	cl.cloners = append(cl.cloners, p)
}

// blockAt returns the rostered live block at p, if any.
func (cl *CreatureList) blockAt(p Position) *Creature {
	for _, c := range cl.list {
		if c.Pos == p && c.Alive() && c.Type.IsBlock() {
			return c
		}
	}
	return nil
}

// moveMonster runs one creature's turn: pick the candidate directions and
// take the first that works.
func (l *Level) moveMonster(c *Creature) {
	var dirs []Direction
	switch l.bg[c.Pos] {
	case CloneMachine:
		c.forcedPriority(l.rng)
		return
	case Trap:
		dirs = c.forcedPriority(l.rng)
	default:
		dirs = c.DirectionPriority(l.chip.Pos, l.rng)
	}

	for _, d := range dirs {
		if l.moveCreature(c, d) || !c.Alive() {
			return
		}
	}
	if c.Type == Teeth && len(dirs) > 0 {
		c.Dir = dirs[0]
		l.redraw(c)
	}
}
