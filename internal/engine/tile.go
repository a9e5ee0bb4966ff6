package engine

// Tile is one of the 112 board tile kinds. The ordinal values are part of
// the snapshot format and must not change.
type Tile uint8

const (
	Floor Tile = iota
	Wall
	ComputerChip
	Water
	Fire
	InvisibleWall
	ThinWallUp
	ThinWallLeft
	ThinWallDown
	ThinWallRight
	Block
	Dirt
	Ice
	ForceDown
	CloneBlockUp
	CloneBlockLeft
	CloneBlockDown
	CloneBlockRight
	ForceUp
	ForceRight
	ForceLeft
	Exit
	BlueDoor
	RedDoor
	GreenDoor
	YellowDoor
	IceSlideDownRight
	IceSlideDownLeft
	IceSlideUpLeft
	IceSlideUpRight
	BlueWallFake
	BlueWallReal
	Overlay
	Thief
	Socket
	GreenButton
	RedButton
	ToggleClosed
	ToggleOpen
	BrownButton
	BlueButton
	Teleport
	Bomb
	Trap
	HiddenWall
	Gravel
	PopUpWall
	Hint
	ThinWallDownRight
	CloneMachine
	ForceRandom
	DrownedChip
	BurnedChip
	BombedChip
	Unused36
	Unused37
	IceBlock
	ExitedChip
	ExitExtra1
	ExitExtra2
	ChipSwimmingUp
	ChipSwimmingLeft
	ChipSwimmingDown
	ChipSwimmingRight
	BugUp
	BugLeft
	BugDown
	BugRight
	FireballUp
	FireballLeft
	FireballDown
	FireballRight
	BallUp
	BallLeft
	BallDown
	BallRight
	TankUp
	TankLeft
	TankDown
	TankRight
	GliderUp
	GliderLeft
	GliderDown
	GliderRight
	TeethUp
	TeethLeft
	TeethDown
	TeethRight
	WalkerUp
	WalkerLeft
	WalkerDown
	WalkerRight
	BlobUp
	BlobLeft
	BlobDown
	BlobRight
	ParameciumUp
	ParameciumLeft
	ParameciumDown
	ParameciumRight
	KeyBlue
	KeyRed
	KeyGreen
	KeyYellow
	BootsWater
	BootsFire
	BootsIce
	BootsForce
	ChipUp
	ChipLeft
	ChipDown
	ChipRight

	// TileCount is the number of tile kinds.
	TileCount = int(ChipRight) + 1
)

var tileNames = [TileCount]string{
	"floor", "wall", "computer_chip", "water", "fire", "invisible_wall",
	"thin_wall_up", "thin_wall_left", "thin_wall_down", "thin_wall_right",
	"block", "dirt", "ice", "force_down",
	"clone_block_up", "clone_block_left", "clone_block_down", "clone_block_right",
	"force_up", "force_right", "force_left", "exit",
	"blue_door", "red_door", "green_door", "yellow_door",
	"ice_down_right", "ice_down_left", "ice_up_left", "ice_up_right",
	"blue_wall_fake", "blue_wall_real", "overlay", "thief", "socket",
	"green_button", "red_button", "toggle_closed", "toggle_open",
	"brown_button", "blue_button", "teleport", "bomb", "trap",
	"hidden_wall", "gravel", "popup_wall", "hint", "thin_wall_down_right",
	"clone_machine", "force_random", "drowned_chip", "burned_chip", "bombed_chip",
	"unused_36", "unused_37", "ice_block", "exited_chip", "exit_extra_1", "exit_extra_2",
	"chip_swimming_up", "chip_swimming_left", "chip_swimming_down", "chip_swimming_right",
	"bug_up", "bug_left", "bug_down", "bug_right",
	"fireball_up", "fireball_left", "fireball_down", "fireball_right",
	"ball_up", "ball_left", "ball_down", "ball_right",
	"tank_up", "tank_left", "tank_down", "tank_right",
	"glider_up", "glider_left", "glider_down", "glider_right",
	"teeth_up", "teeth_left", "teeth_down", "teeth_right",
	"walker_up", "walker_left", "walker_down", "walker_right",
	"blob_up", "blob_left", "blob_down", "blob_right",
	"paramecium_up", "paramecium_left", "paramecium_down", "paramecium_right",
	"key_blue", "key_red", "key_green", "key_yellow",
	"boots_water", "boots_fire", "boots_ice", "boots_force",
	"chip_up", "chip_left", "chip_down", "chip_right",
}

// String returns the tile's canonical name.
func (t Tile) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return tileNames[t]
}

// ParseTile returns the tile with the given canonical name.
func ParseTile(name string) (Tile, bool) {
	for i, n := range tileNames {
		if n == name {
			return Tile(i), true
		}
	}
	return 0, false
}

// Valid reports whether t is a known tile kind.
func (t Tile) Valid() bool {
	return int(t) < TileCount
}

// IsMonster covers the nine monster kinds in all four facings.
func (t Tile) IsMonster() bool {
	return t >= BugUp && t <= ParameciumRight
}

// IsChip covers the walking player tiles.
func (t Tile) IsChip() bool {
	return t >= ChipUp && t <= ChipRight
}

// IsSwimmingChip covers the player tiles drawn over water.
func (t Tile) IsSwimmingChip() bool {
	return t >= ChipSwimmingUp && t <= ChipSwimmingRight
}

// IsPlayer reports any live player tile.
func (t Tile) IsPlayer() bool {
	return t.IsChip() || t.IsSwimmingChip()
}

// IsDeadChip covers the three death tiles.
func (t Tile) IsDeadChip() bool {
	return t >= DrownedChip && t <= BombedChip
}

// IsCloneBlock covers the directed blocks used as clone templates.
func (t Tile) IsCloneBlock() bool {
	return t >= CloneBlockUp && t <= CloneBlockRight
}

// IsBlock reports pushable block tiles.
func (t Tile) IsBlock() bool {
	return t == Block || t == IceBlock || t.IsCloneBlock()
}

// IsCreature reports tiles that stand for a creature on the foreground.
func (t Tile) IsCreature() bool {
	return t.IsMonster() || t.IsPlayer() || t.IsBlock()
}

// IsTransparent reports tiles drawn over whatever lies in the buried layer.
func (t Tile) IsTransparent() bool {
	return t.IsMonster() || t.IsChip()
}

// IsIce covers plain ice and the four ice corners.
func (t Tile) IsIce() bool {
	return t == Ice || (t >= IceSlideDownRight && t <= IceSlideUpRight)
}

// IsIceCorner covers the four diagonal ice slides.
func (t Tile) IsIceCorner() bool {
	return t >= IceSlideDownRight && t <= IceSlideUpRight
}

// IsFF covers every force floor, including the random one.
func (t Tile) IsFF() bool {
	return t == ForceDown || (t >= ForceUp && t <= ForceLeft) || t == ForceRandom
}

// IsSliding reports tiles that start a slide on entry.
func (t Tile) IsSliding() bool {
	return t.IsIce() || t.IsFF() || t == Teleport
}

// IsKey covers the four keys.
func (t Tile) IsKey() bool {
	return t >= KeyBlue && t <= KeyYellow
}

// IsBoot covers the four boots.
func (t Tile) IsBoot() bool {
	return t >= BootsWater && t <= BootsForce
}

// IsPickup reports tiles chip collects on entry.
func (t Tile) IsPickup() bool {
	return t == ComputerChip || t.IsKey() || t.IsBoot()
}

// IsDoor covers the four coloured doors.
func (t Tile) IsDoor() bool {
	return t >= BlueDoor && t <= YellowDoor
}

// IsButton covers the four button kinds.
func (t Tile) IsButton() bool {
	return t == GreenButton || t == RedButton || t == BrownButton || t == BlueButton
}

// IsThinWall covers the five single-edge walls.
func (t Tile) IsThinWall() bool {
	return (t >= ThinWallUp && t <= ThinWallRight) || t == ThinWallDownRight
}

// Facing returns the direction encoded in a directed tile. Monster, player
// and swimming tiles are aligned on four; clone blocks are not.
func (t Tile) Facing() Direction {
	if t.IsCloneBlock() {
		return Direction(t - CloneBlockUp)
	}
	return Direction(t & 3)
}

// WithFacing returns the directed tile of the same kind facing d.
func (t Tile) WithFacing(d Direction) Tile {
	if t.IsCloneBlock() {
		return CloneBlockUp + Tile(d)
	}
	return (t &^ 3) | Tile(d)
}

// ForceDirection returns the push direction of a fixed force floor.
func (t Tile) ForceDirection() (Direction, bool) {
	switch t {
	case ForceUp:
		return Up, true
	case ForceLeft:
		return Left, true
	case ForceDown:
		return Down, true
	case ForceRight:
		return Right, true
	default:
		return 0, false
	}
}
