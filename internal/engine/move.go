package engine

// inventory is chip's carried state.
type inventory struct {
	chipsLeft int
	keys      [4]uint16
	boots     [4]uint8
}

const (
	bootWater = iota
	bootFire
	bootIce
	bootForce
)

func (inv *inventory) has(boot int) bool {
	return inv.boots[boot] != 0
}

// canLeave reports whether the floor under c lets it exit toward d.
func (l *Level) canLeave(c *Creature, d Direction) bool {
	switch l.bg[c.Pos] {
	case ThinWallUp:
		return d != Up
	case ThinWallLeft:
		return d != Left
	case ThinWallDown:
		return d != Down
	case ThinWallRight:
		return d != Right
	case ThinWallDownRight:
		return d != Down && d != Right
	case Trap:
		return l.trapOpen(c.Pos)
	}
	return true
}

// destination is the tile a creature entering p has to deal with. A clone
// machine anywhere in the cell makes it impassable, and a chip buried under
// a monster still counts as chip.
func (l *Level) destination(p Position) Tile {
	if l.fg[p] == CloneMachine || l.bg[p] == CloneMachine {
		return CloneMachine
	}
	if l.fg[p].IsMonster() && l.bg[p].IsPlayer() {
		return l.bg[p]
	}
	return l.fg[p]
}

// edgeOpen handles the directional tiles every creature respects: thin
// walls block entry across their edge and ice corners block entry through
// their walled sides.
func edgeOpen(t Tile, d Direction) (open, handled bool) {
	switch t {
	case ThinWallUp:
		return d != Down, true
	case ThinWallLeft:
		return d != Right, true
	case ThinWallDown:
		return d != Up, true
	case ThinWallRight:
		return d != Left, true
	case ThinWallDownRight:
		return d != Up && d != Left, true
	case IceSlideDownRight:
		return d != Up && d != Left, true
	case IceSlideDownLeft:
		return d != Up && d != Right, true
	case IceSlideUpLeft:
		return d != Down && d != Right, true
	case IceSlideUpRight:
		return d != Down && d != Left, true
	}
	return false, false
}

// canEnter is the pure query table: may c step onto t moving in d.
func canEnter(c *Creature, d Direction, t Tile, inv *inventory) bool {
	if open, ok := edgeOpen(t, d); ok {
		return open
	}
	switch {
	case c.Type.IsChip():
		return chipCanEnter(t, inv)
	case c.Type.IsBlock():
		return blockCanEnter(t)
	default:
		return monsterCanEnter(c.Type, t)
	}
}

func chipCanEnter(t Tile, inv *inventory) bool {
	switch t {
	case Floor, ComputerChip, Water, Fire, Dirt, Ice, Exit, BlueWallFake,
		Thief, GreenButton, RedButton, BrownButton, BlueButton, ToggleOpen,
		Teleport, Bomb, Trap, Gravel, PopUpWall, Hint, Block, IceBlock:
		return true
	case BlueDoor, RedDoor, GreenDoor, YellowDoor:
		return inv.keys[t-BlueDoor] > 0
	case Socket:
		return inv.chipsLeft == 0
	}
	return t.IsFF() || t.IsCloneBlock() || t.IsMonster() || t.IsKey() || t.IsBoot()
}

func monsterCanEnter(ct CreatureType, t Tile) bool {
	switch t {
	case Floor, Water, Ice, GreenButton, RedButton, BrownButton, BlueButton,
		ToggleOpen, Teleport, Bomb, Trap:
		return true
	case Fire:
		return ct != Bug && ct != Walker
	}
	return t.IsFF() || t.IsPlayer() || t.IsKey()
}

func blockCanEnter(t Tile) bool {
	switch t {
	case Floor, Water, Fire, Ice, GreenButton, RedButton, BrownButton,
		BlueButton, ToggleOpen, Teleport, Bomb, Trap, Gravel, IceBlock:
		return true
	}
	return t.IsFF() || t.IsPlayer()
}

// moveCreature runs the enter protocol for c stepping toward d and reports
// whether c left its cell.
func (l *Level) moveCreature(c *Creature, d Direction) bool {
	if !l.canLeave(c, d) {
		return false
	}
	to := c.Pos.Move(d)
	if !to.Valid() {
		return false
	}
	dest := l.destination(to)
	if !canEnter(c, d, dest, &l.inventory) {
		if c.Type.IsChip() {
			l.bump(to, dest)
		}
		return false
	}
	if dest.IsBlock() {
		if !l.pushBlock(to, d) {
			return false
		}
		dest = l.destination(to)
		if !canEnter(c, d, dest, &l.inventory) {
			return false
		}
	}

	mark := len(l.presses)
	l.vacate(c)
	c.Pos = to
	c.Dir = d
	switch {
	case c.Type.IsChip():
		l.chipEnters(c, dest)
	case c.Type.IsBlock():
		l.blockEnters(c, dest)
	default:
		l.monsterEnters(c, dest)
	}
	l.settle(c, d)
	l.flushPresses(mark)
	return true
}

// bump applies the side effects of chip walking into something solid.
func (l *Level) bump(p Position, t Tile) {
	switch t {
	case HiddenWall, BlueWallReal:
		l.fg[p] = Wall
	}
}

// pushBlock moves the block at p one cell toward d.
func (l *Level) pushBlock(p Position, d Direction) bool {
	b := l.slips.blockAt(p)
	if b == nil {
		b = l.creatures.blockAt(p)
	}
	if b == nil {
		var ok bool
		if b, ok = creatureFromTile(l.fg[p], p); !ok {
			return false
		}
	}
	return l.moveCreature(b, d)
}

// vacate lifts c off its cell. Clone machines keep their template.
func (l *Level) vacate(c *Creature) {
	if l.bg[c.Pos] == CloneMachine {
		return
	}
	l.pop(c.Pos)
}

// occupy puts c's tile on top of its cell.
func (l *Level) occupy(c *Creature) {
	l.insert(c.Pos, c.Tile())
	l.redraw(c)
}

// redraw refreshes the foreground tile of a live creature after its facing
// or archetype changed.
func (l *Level) redraw(c *Creature) {
	if !c.Alive() {
		return
	}
	if c.Type.IsChip() {
		switch {
		case l.fg[c.Pos] == ExitedChip:
			return
		case l.bg[c.Pos] == Water:
			l.fg[c.Pos] = ChipSwimmingUp.WithFacing(c.Dir)
			return
		}
	}
	l.fg[c.Pos] = c.Tile()
}

func (l *Level) killChip() {
	l.chip.Type = Dead
	l.stopSliding(l.chip)
}

// chipEnters is chip's apply table.
func (l *Level) chipEnters(c *Creature, dest Tile) {
	p := c.Pos
	switch {
	case dest == Water:
		if !l.has(bootWater) {
			l.fg[p] = DrownedChip
			l.killChip()
			return
		}
	case dest == Fire:
		if !l.has(bootFire) {
			l.fg[p] = BurnedChip
			l.killChip()
			return
		}
	case dest == Bomb:
		l.fg[p] = BombedChip
		l.killChip()
		return
	case dest.IsMonster():
		l.killChip()
		return
	case dest == ComputerChip:
		if l.chipsLeft > 0 {
			l.chipsLeft--
		}
		l.fg[p] = Floor
	case dest.IsKey():
		l.keys[dest-KeyBlue]++
		l.fg[p] = Floor
	case dest.IsBoot():
		l.boots[dest-BootsWater] = 1
		l.fg[p] = Floor
	case dest.IsDoor():
		if dest != GreenDoor {
			l.keys[dest-BlueDoor]--
		}
		l.fg[p] = Floor
	case dest == Dirt, dest == BlueWallFake, dest == Socket:
		l.fg[p] = Floor
	case dest == Thief:
		l.boots = [4]uint8{}
	case dest == PopUpWall:
		l.fg[p] = Wall
	case dest == Exit:
		l.insert(p, ExitedChip)
		return
	case dest.IsButton():
		l.queuePress(dest, p)
	}
	l.occupy(c)
}

// monsterEnters is the monster apply table.
func (l *Level) monsterEnters(c *Creature, dest Tile) {
	p := c.Pos
	switch {
	case dest == Water && c.Type != Glider,
		dest == Fire && c.Type != Fireball:
		c.Type = Dead
		return
	case dest == Bomb:
		l.fg[p] = Floor
		c.Type = Dead
		return
	case dest.IsPlayer():
		l.killChip()
	case dest.IsKey():
		// Monsters walk over keys and leave them buried.
	case dest.IsButton():
		l.queuePress(dest, p)
	}
	l.occupy(c)
}

// blockEnters is the block apply table.
func (l *Level) blockEnters(c *Creature, dest Tile) {
	p := c.Pos
	switch {
	case dest == Water:
		if c.Type == IceBlockCreature {
			l.fg[p] = Ice
		} else {
			l.fg[p] = Dirt
		}
		c.Type = Dead
		return
	case dest == Fire && c.Type == IceBlockCreature:
		l.fg[p] = Water
		c.Type = Dead
		return
	case dest == Bomb:
		l.fg[p] = Floor
		c.Type = Dead
		return
	case dest.IsPlayer():
		l.killChip()
	case dest.IsButton():
		l.queuePress(dest, p)
	}
	l.occupy(c)
}

// settle re-derives the sliding state of c after it entered a new cell.
func (l *Level) settle(c *Creature, d Direction) {
	if !c.Alive() {
		l.stopSliding(c)
		return
	}
	floor := l.bg[c.Pos]
	if c.Type.IsChip() && l.fg[c.Pos] == ExitedChip {
		l.stopSliding(c)
		return
	}
	switch {
	case floor.IsIceCorner():
		if c.Type.IsChip() && l.has(bootIce) {
			break
		}
		c.Dir = deflect(floor, d)
		l.startSliding(c)
		l.redraw(c)
		return
	case floor == Ice:
		if c.Type.IsChip() && l.has(bootIce) {
			break
		}
		l.startSliding(c)
		l.redraw(c)
		return
	case floor.IsFF():
		if c.Type.IsChip() && l.has(bootForce) {
			break
		}
		if floor == ForceRandom {
			c.Dir = Direction(l.rng.Random4())
		} else {
			c.Dir, _ = floor.ForceDirection()
		}
		l.startSliding(c)
		l.redraw(c)
		return
	case floor == Teleport:
		l.startSliding(c)
		l.teleport(c)
		return
	case floor == Trap && c.Type.IsBlock():
		l.startSliding(c)
		return
	}
	l.stopSliding(c)
}

// deflect returns the direction a creature leaves an ice corner in.
func deflect(corner Tile, d Direction) Direction {
	switch corner {
	case IceSlideDownRight:
		if d == Down {
			return Left
		}
		return Up
	case IceSlideDownLeft:
		if d == Down {
			return Right
		}
		return Up
	case IceSlideUpLeft:
		if d == Up {
			return Right
		}
		return Down
	case IceSlideUpRight:
		if d == Up {
			return Left
		}
		return Down
	}
	return d
}

// teleport searches backward through the teleport table for a usable exit
// and relocates c there. c stays put when nothing works.
func (l *Level) teleport(c *Creature) {
	n := len(l.teleports)
	start := -1
	for i, p := range l.teleports {
		if p == c.Pos {
			start = i
			break
		}
	}
	if start < 0 {
		return
	}
	for i := 1; i <= n; i++ {
		exit := l.teleports[((start-i)%n+n)%n]
		if exit == c.Pos {
			// Back at its own teleport a monster stays put either way, but
			// trying the exit still pushes a block sitting past it.
			if !c.Type.IsChip() {
				_ = l.teleportExitWorks(c, exit)
			}
			return
		}
		if l.fg[exit] != Teleport {
			continue
		}
		if l.teleportExitWorks(c, exit) {
			l.vacate(c)
			c.Pos = exit
			l.occupy(c)
			return
		}
	}
}

// teleportExitWorks reports whether c could step out of exit in its facing.
// Chip pushes blocks standing in the way.
func (l *Level) teleportExitWorks(c *Creature, exit Position) bool {
	target := exit.Move(c.Dir)
	if !target.Valid() {
		return false
	}
	dest := l.destination(target)
	if !canEnter(c, c.Dir, dest, &l.inventory) {
		return false
	}
	if dest.IsBlock() {
		return l.pushBlock(target, c.Dir)
	}
	return true
}
