package engine

import "fmt"

// CreatureType is the closed set of creature archetypes. The ordinal values
// are the type bits of the packed snapshot word.
type CreatureType uint8

const (
	Bug CreatureType = iota
	Fireball
	PinkBall
	TankMoving
	Glider
	Teeth
	Walker
	Blob
	Paramecium
	TankStationary
	BlockCreature
	IceBlockCreature
	Chip
	ChipSliding
	Dead

	creatureTypeCount
)

var creatureNames = [creatureTypeCount]string{
	"Bug", "Fireball", "PinkBall", "TankMoving", "Glider", "Teeth", "Walker",
	"Blob", "Paramecium", "TankStationary", "Block", "IceBlock", "Chip",
	"ChipSliding", "Dead",
}

// String returns the archetype name.
func (t CreatureType) String() string {
	if t >= creatureTypeCount {
		return "Unknown"
	}
	return creatureNames[t]
}

// IsMonster reports the monster archetypes.
func (t CreatureType) IsMonster() bool {
	return t <= TankStationary
}

// IsBlock reports pushable blocks.
func (t CreatureType) IsBlock() bool {
	return t == BlockCreature || t == IceBlockCreature
}

// IsChip reports both player variants.
func (t CreatureType) IsChip() bool {
	return t == Chip || t == ChipSliding
}

// IsTank reports both tank variants.
func (t CreatureType) IsTank() bool {
	return t == TankMoving || t == TankStationary
}

// slowMover reports archetypes that only act on every other monster turn.
func (t CreatureType) slowMover() bool {
	return t == Teeth || t == Blob
}

// monsterBase maps monster archetypes to their upward-facing tile.
var monsterBase = map[CreatureType]Tile{
	Bug:            BugUp,
	Fireball:       FireballUp,
	PinkBall:       BallUp,
	TankMoving:     TankUp,
	TankStationary: TankUp,
	Glider:         GliderUp,
	Teeth:          TeethUp,
	Walker:         WalkerUp,
	Blob:           BlobUp,
	Paramecium:     ParameciumUp,
}

// Creature is a moving entity on the board.
type Creature struct {
	Type    CreatureType
	Dir     Direction
	Pos     Position
	Sliding bool
}

// String returns a compact description of the creature.
func (c *Creature) String() string {
	return fmt.Sprintf("%s %s at %s", c.Type, c.Dir, c.Pos)
}

// Tile returns the foreground tile that represents c.
func (c *Creature) Tile() Tile {
	switch {
	case c.Type.IsMonster():
		return monsterBase[c.Type].WithFacing(c.Dir)
	case c.Type == BlockCreature:
		return Block
	case c.Type == IceBlockCreature:
		return IceBlock
	case c.Type.IsChip():
		return ChipUp.WithFacing(c.Dir)
	default:
		return Floor
	}
}

// Alive reports whether c has not been killed.
func (c *Creature) Alive() bool {
	return c.Type != Dead
}

// creatureFromTile builds the creature a foreground tile stands for.
func creatureFromTile(t Tile, p Position) (*Creature, bool) {
	c := &Creature{Pos: p}
	switch {
	case t.IsMonster():
		c.Type = CreatureType((t - BugUp) / 4)
		c.Dir = t.Facing()
	case t == Block:
		c.Type = BlockCreature
	case t == IceBlock:
		c.Type = IceBlockCreature
	case t.IsCloneBlock():
		c.Type = BlockCreature
		c.Dir = t.Facing()
	case t.IsPlayer():
		c.Type = Chip
		c.Dir = t.Facing()
	default:
		return nil, false
	}
	return c, true
}

// DirectionPriority returns the ordered directions c tries this turn.
// Walkers and blobs consume exactly one permutation call.
func (c *Creature) DirectionPriority(chip Position, rng *RNG) []Direction {
	switch c.Type {
	case Bug:
		return c.Dir.Turns(TurnLeft, TurnForward, TurnRight, TurnAround)
	case Fireball:
		return c.Dir.Turns(TurnForward, TurnRight, TurnLeft, TurnAround)
	case PinkBall:
		return c.Dir.Turns(TurnForward, TurnAround)
	case TankMoving:
		return []Direction{c.Dir}
	case Glider:
		return c.Dir.Turns(TurnForward, TurnLeft, TurnRight, TurnAround)
	case Teeth:
		return c.Pos.Seek(chip)
	case Walker:
		rest := [3]Direction{c.Dir.Turn(TurnLeft), c.Dir.Turn(TurnAround), c.Dir.Turn(TurnRight)}
		rng.Permutation3(&rest)
		return []Direction{c.Dir, rest[0], rest[1], rest[2]}
	case Blob:
		all := [4]Direction{Up, Right, Down, Left}
		rng.Permutation4(&all)
		return all[:]
	case Paramecium:
		return c.Dir.Turns(TurnRight, TurnForward, TurnLeft, TurnAround)
	default:
		return nil
	}
}

// forcedPriority is used when c stands on a trap or clone machine: only the
// current facing is tried, but random movers still draw from the generator.
func (c *Creature) forcedPriority(rng *RNG) []Direction {
	switch c.Type {
	case Walker:
		rest := [3]Direction{}
		rng.Permutation3(&rest)
	case Blob:
		all := [4]Direction{}
		rng.Permutation4(&all)
	case TankStationary:
		return nil
	}
	return []Direction{c.Dir}
}

const (
	wordDirShift  = 14
	wordTypeShift = 10
	wordPosMask   = 0x3FF
)

// packCreature encodes c as the legacy 16-bit word: dir | type | position.
func packCreature(c *Creature) uint16 {
	return uint16(c.Dir)<<wordDirShift | uint16(c.Type)<<wordTypeShift | uint16(c.Pos)&wordPosMask
}

// unpackCreature decodes a legacy creature word.
func unpackCreature(w uint16) (*Creature, error) {
	t := CreatureType((w >> wordTypeShift) & 0xF)
	if t >= creatureTypeCount {
		return nil, fmt.Errorf("%w: creature type %d", ErrCorruptState, t)
	}
	return &Creature{
		Type: t,
		Dir:  Direction(w >> wordDirShift),
		Pos:  Position(w & wordPosMask),
	}, nil
}
