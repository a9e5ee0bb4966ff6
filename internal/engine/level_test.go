package engine

import (
	"errors"
	"testing"
)

func TestNewLevelRejectsBadDescriptors(t *testing.T) {
	tests := []struct {
		name string
		mut  func(d *Descriptor)
	}{
		{"no chip", func(d *Descriptor) { d.Foreground[0] = Floor }},
		{"two chips", func(d *Descriptor) { d.Foreground[5] = ChipUp }},
		{"unknown tile", func(d *Descriptor) { d.Background[9] = Tile(200) }},
		{"mover on floor", func(d *Descriptor) { d.Movers = []Position{Pos(4, 4)} }},
		{"mover off board", func(d *Descriptor) { d.Movers = []Position{2000} }},
		{"trap target off board", func(d *Descriptor) {
			d.Foreground[Pos(2, 2)] = BrownButton
			d.Traps = []Connection{{Button: Pos(2, 2), Target: 4000}}
		}},
		{"trap wired to a wall", func(d *Descriptor) {
			d.Foreground[Pos(2, 2)] = Wall
			d.Traps = []Connection{{Button: Pos(2, 2), Target: Pos(3, 3)}}
		}},
		{"cloner past the overflow row", func(d *Descriptor) {
			d.Foreground[Pos(2, 2)] = RedButton
			d.Cloners = []Connection{{Button: Pos(2, 2), Target: overflowEnd}}
		}},
		{"negative chips", func(d *Descriptor) { d.ChipsLeft = -1 }},
		{"bad step", func(d *Descriptor) { d.Step = 7 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := layout("C")
			tt.mut(d)
			_, err := NewLevel(d)
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("Expected ErrInvalidLevel, got %v", err)
			}
		})
	}
}

func TestChipWalksToExit(t *testing.T) {
	l := mustLevel(t, layout("C.E"))

	move(l, InputRight)
	if l.Chip().Pos != Pos(1, 0) {
		t.Fatalf("Expected chip at (1,0), got %v", l.Chip().Pos)
	}
	if l.fg[Pos(1, 0)] != ChipRight || l.fg[Pos(0, 0)] != Floor {
		t.Errorf("Unexpected board after move: %s / %s", l.fg[Pos(0, 0)], l.fg[Pos(1, 0)])
	}

	move(l, InputRight)
	if !l.Complete() {
		t.Fatal("Expected level to be complete")
	}
	if l.TickNumber() != 3 {
		t.Errorf("Expected completion at tick 3, got %d", l.TickNumber())
	}
	if l.Tick(InputRight, nil) {
		t.Error("Tick on a finished level should report false")
	}
}

func TestTickReturnValue(t *testing.T) {
	l := mustLevel(t, layout("C."))
	if l.Tick(InputHalfWait, nil) {
		t.Error("Half-wait should return false")
	}
	if !l.Tick(InputWait, nil) {
		t.Error("Full wait should return true")
	}
	if !l.Tick(InputUp, nil) {
		t.Error("Blocked key move should still return true")
	}
	if l.Chip().Dir != Up {
		t.Errorf("Chip should face the blocked direction, got %s", l.Chip().Dir)
	}
}

// A seeking monster blocked on its main axis takes its secondary axis.
func TestTeethFallsBackToSecondaryAxis(t *testing.T) {
	d := layout(
		"...",
		"#..",
		"...",
		"..C",
	)
	d.Foreground[Pos(0, 0)] = TeethUp
	d.Movers = []Position{Pos(0, 0)}
	l := mustLevel(t, d)

	l.Tick(InputWait, nil)

	teeth := l.creatures.At(0)
	if teeth.Pos != Pos(1, 0) {
		t.Fatalf("Expected teeth at (1,0), got %v", teeth.Pos)
	}
	if teeth.Dir != Right || l.fg[Pos(1, 0)] != TeethRight {
		t.Errorf("Expected teeth facing right, got %s / %s", teeth.Dir, l.fg[Pos(1, 0)])
	}
}

func TestTeethTurnsWhenStuck(t *testing.T) {
	d := layout(
		".#",
		"#.",
		"..C",
	)
	d.Foreground[Pos(0, 0)] = TeethUp
	d.Movers = []Position{Pos(0, 0)}
	l := mustLevel(t, d)

	l.Tick(InputWait, nil)
	if l.fg[Pos(0, 0)] != TeethDown {
		t.Errorf("Expected stuck teeth to face its first choice, got %s", l.fg[Pos(0, 0)])
	}
}

// Chip slides on ice unless wearing skates.
func TestChipSlidesOnIce(t *testing.T) {
	l := mustLevel(t, layout("CII."))
	move(l, InputRight)

	chip := l.Chip()
	if !chip.Sliding || chip.Type != ChipSliding {
		t.Fatalf("Expected chip to be sliding, got %+v", chip)
	}
	if !l.slips.Contains(l.chip) {
		t.Fatal("Expected chip in the slip list")
	}
	if chip.Pos != Pos(2, 0) {
		t.Errorf("Expected chip carried to (2,0) by the half-wait, got %v", chip.Pos)
	}

	l.Tick(InputHalfWait, nil)
	if l.Chip().Sliding || l.Chip().Pos != Pos(3, 0) {
		t.Errorf("Expected chip to stop at (3,0), got %+v", l.Chip())
	}
	if l.slips.Len() != 0 {
		t.Errorf("Expected empty slip list, got %d", l.slips.Len())
	}

	l = mustLevel(t, layout("CII."))
	l.boots[bootIce] = 1
	l.Tick(InputRight, nil)
	if l.Chip().Sliding || l.slips.Len() != 0 {
		t.Error("Chip with skates should not slide")
	}
}

func TestIceBounceOffWall(t *testing.T) {
	l := mustLevel(t, layout(".CI#"))
	l.Tick(InputRight, nil)
	l.Tick(InputHalfWait, nil)
	chip := l.Chip()
	if chip.Pos != Pos(2, 0) || chip.Dir != Left {
		t.Errorf("Expected chip bounced at (2,0) facing left, got %+v", chip)
	}
	l.Tick(InputHalfWait, nil)
	if l.Chip().Pos != Pos(1, 0) || l.Chip().Sliding {
		t.Errorf("Expected chip back on floor at (1,0), got %+v", l.Chip())
	}
}

func TestIceCornerDeflects(t *testing.T) {
	d := layout(
		"C.",
		"..",
	)
	d.Foreground[Pos(1, 0)] = IceSlideUpRight
	l := mustLevel(t, d)
	l.Tick(InputRight, nil)
	if l.Chip().Dir != Down {
		t.Fatalf("Expected deflection down, got %s", l.Chip().Dir)
	}
	l.Tick(InputHalfWait, nil)
	if l.Chip().Pos != Pos(1, 1) {
		t.Errorf("Expected chip at (1,1), got %v", l.Chip().Pos)
	}
}

func TestForceFloorCarriesChip(t *testing.T) {
	l := mustLevel(t, layout("C>>.."))
	move(l, InputRight)
	move(l, InputWait)
	if l.Chip().Pos != Pos(3, 0) || l.Chip().Sliding {
		t.Errorf("Expected chip dropped at (3,0), got %+v", l.Chip())
	}
}

func TestKeyMoveOverridesForceFloor(t *testing.T) {
	l := mustLevel(t, layout(
		"C>>..",
		".....",
	))
	l.Tick(InputRight, nil)
	l.Tick(InputHalfWait, nil)
	if l.Chip().Pos != Pos(2, 0) {
		t.Fatalf("Expected chip at (2,0), got %v", l.Chip().Pos)
	}
	l.Tick(InputDown, nil)
	if l.Chip().Pos != Pos(2, 1) {
		t.Errorf("Expected key move to step off the force floor, got %v", l.Chip().Pos)
	}
}

// A block pushed onto a closed trap waits there and leaves in its original
// direction once the trap opens.
func TestBlockPendingOnTrap(t *testing.T) {
	d := layout(
		"CBP..",
		".....",
		".b...",
	)
	d.Traps = []Connection{{Button: Pos(1, 2), Target: Pos(2, 0)}}
	l := mustLevel(t, d)

	move(l, InputRight)
	if l.fg[Pos(2, 0)] != Block || l.bg[Pos(2, 0)] != Trap {
		t.Fatalf("Expected block on trap, got %s over %s", l.fg[Pos(2, 0)], l.bg[Pos(2, 0)])
	}
	if l.slips.Len() != 1 {
		t.Fatalf("Expected pending block in the slip list, got %d entries", l.slips.Len())
	}

	move(l, InputDown)
	if l.fg[Pos(2, 0)] != Block {
		t.Fatal("Block should stay pinned while the trap is closed")
	}

	l.Tick(InputDown, nil)
	if !l.TrapOpen(Pos(2, 0)) {
		t.Fatal("Expected trap to be open while chip holds the button")
	}
	l.Tick(InputHalfWait, nil)

	if l.fg[Pos(3, 0)] != Block {
		t.Errorf("Expected block released to the right, got %s at (3,0)", l.fg[Pos(3, 0)])
	}
	if l.fg[Pos(2, 0)] != Trap {
		t.Errorf("Expected bare trap, got %s", l.fg[Pos(2, 0)])
	}
	if l.slips.Len() != 0 {
		t.Errorf("Expected empty slip list, got %d", l.slips.Len())
	}
}

func TestTrapClosesWhenButtonReleased(t *testing.T) {
	d := layout("Cb.")
	d.Foreground[Pos(0, 3)] = Trap
	d.Traps = []Connection{{Button: Pos(1, 0), Target: Pos(0, 3)}}
	l := mustLevel(t, d)

	move(l, InputRight)
	if !l.TrapOpen(Pos(0, 3)) {
		t.Fatal("Expected trap open")
	}
	move(l, InputRight)
	if l.TrapOpen(Pos(0, 3)) {
		t.Error("Expected trap closed after chip left the button")
	}
}

func TestTrapStartsOpenWhenButtonHeld(t *testing.T) {
	d := layout("C.")
	d.Foreground[Pos(1, 1)] = BugUp
	d.Background[Pos(1, 1)] = BrownButton
	d.Foreground[Pos(5, 5)] = Trap
	d.Traps = []Connection{{Button: Pos(1, 1), Target: Pos(5, 5)}}
	l := mustLevel(t, d)
	if !l.TrapOpen(Pos(5, 5)) {
		t.Error("Expected trap open at load time")
	}
}

func TestPushBlockIntoWater(t *testing.T) {
	l := mustLevel(t, layout("CBW"))
	move(l, InputRight)
	if l.fg[Pos(2, 0)] != Dirt {
		t.Errorf("Expected dirt, got %s", l.fg[Pos(2, 0)])
	}
	if l.Chip().Pos != Pos(1, 0) {
		t.Errorf("Expected chip at (1,0), got %v", l.Chip().Pos)
	}
}

func TestPushChains(t *testing.T) {
	l := mustLevel(t, layout("CBK."))
	move(l, InputRight)
	if l.fg[Pos(2, 0)] != Block || l.fg[Pos(3, 0)] != IceBlock {
		t.Errorf("Expected block to push the ice block, got %s %s", l.fg[Pos(2, 0)], l.fg[Pos(3, 0)])
	}

	l = mustLevel(t, layout("CBB."))
	move(l, InputRight)
	if l.Chip().Pos != Pos(0, 0) {
		t.Error("Two plain blocks should not move")
	}
}

func TestIceBlockMeltsInFire(t *testing.T) {
	l := mustLevel(t, layout("CKF"))
	move(l, InputRight)
	if l.fg[Pos(2, 0)] != Water {
		t.Errorf("Expected water, got %s", l.fg[Pos(2, 0)])
	}
}

func TestChipDrowns(t *testing.T) {
	l := mustLevel(t, layout("CW"))
	move(l, InputRight)
	if !l.ChipDead() {
		t.Fatal("Expected chip to drown")
	}
	if l.fg[Pos(1, 0)] != DrownedChip {
		t.Errorf("Expected drowned chip tile, got %s", l.fg[Pos(1, 0)])
	}
	if l.Tick(InputRight, nil) {
		t.Error("Dead chip should not tick")
	}

	l = mustLevel(t, layout("CW"))
	l.boots[bootWater] = 1
	move(l, InputRight)
	if l.ChipDead() || l.fg[Pos(1, 0)] != ChipSwimmingRight {
		t.Errorf("Expected swimming chip, got %s", l.fg[Pos(1, 0)])
	}
}

func TestBlueWallRevealedOnBump(t *testing.T) {
	d := layout("C")
	d.Foreground[Pos(1, 0)] = BlueWallReal
	l := mustLevel(t, d)

	move(l, InputRight)
	if l.fg[Pos(1, 0)] != Wall {
		t.Errorf("Expected real blue wall to become wall, got %s", l.fg[Pos(1, 0)])
	}
	if l.Chip().Pos != Pos(0, 0) {
		t.Errorf("Expected chip to stay at (0,0), got %v", l.Chip().Pos)
	}
}

func TestBugKillsChip(t *testing.T) {
	d := layout("C")
	d.Foreground[Pos(1, 0)] = BugLeft
	d.Foreground[Pos(1, 1)] = Wall
	d.Movers = []Position{Pos(1, 0)}
	l := mustLevel(t, d)

	l.Tick(InputWait, nil)
	if !l.ChipDead() {
		t.Errorf("Expected the bug to kill chip, board has %s", l.fg[Pos(0, 0)])
	}
}

func TestKeysDoorsAndSocket(t *testing.T) {
	d := layout("Ck$DS.E")
	d.ChipsLeft = 1
	l := mustLevel(t, d)

	move(l, InputRight)
	if l.Keys()[0] != 1 {
		t.Fatalf("Expected one blue key, got %d", l.Keys()[0])
	}
	move(l, InputRight)
	if l.ChipsLeft() != 0 {
		t.Fatalf("Expected no chips left, got %d", l.ChipsLeft())
	}
	move(l, InputRight)
	if l.Keys()[0] != 0 || l.Chip().Pos != Pos(3, 0) {
		t.Fatalf("Expected the door to eat the key, chip at %v", l.Chip().Pos)
	}
	move(l, InputRight)
	move(l, InputRight)
	move(l, InputRight)
	if !l.Complete() {
		t.Error("Expected level complete")
	}
}

func TestSocketNeedsAllChips(t *testing.T) {
	d := layout("CS")
	d.ChipsLeft = 2
	l := mustLevel(t, d)
	move(l, InputRight)
	if l.Chip().Pos != Pos(0, 0) {
		t.Error("Socket should stay closed while chips remain")
	}
}

func TestHiddenWallRevealedOnBump(t *testing.T) {
	l := mustLevel(t, layout("CH"))
	move(l, InputRight)
	if l.fg[Pos(1, 0)] != Wall || l.Chip().Pos != Pos(0, 0) {
		t.Errorf("Expected revealed wall and chip in place, got %s", l.fg[Pos(1, 0)])
	}
}

func TestThinWallBlocksEntry(t *testing.T) {
	d := layout("C.")
	d.Foreground[Pos(1, 0)] = ThinWallLeft
	l := mustLevel(t, d)
	move(l, InputRight)
	if l.Chip().Pos != Pos(0, 0) {
		t.Error("Thin wall on the left edge should block entry from the left")
	}
}

func TestTeleportSearchesBackward(t *testing.T) {
	d := layout("CT........T..")
	l := mustLevel(t, d)

	l.Tick(InputRight, nil)
	chip := l.Chip()
	if chip.Pos != Pos(10, 0) {
		t.Fatalf("Expected chip at the other teleport, got %v", chip.Pos)
	}
	if l.fg[Pos(1, 0)] != Teleport {
		t.Errorf("Expected the entry teleport restored, got %s", l.fg[Pos(1, 0)])
	}
	l.Tick(InputHalfWait, nil)
	if l.Chip().Pos != Pos(11, 0) || l.Chip().Sliding {
		t.Errorf("Expected chip out of the teleport at (11,0), got %+v", l.Chip())
	}
}

func TestTeleportSkipsBlockedExit(t *testing.T) {
	d := layout("CT...T..T#")
	l := mustLevel(t, d)
	l.Tick(InputRight, nil)
	if l.Chip().Pos != Pos(5, 0) {
		t.Errorf("Expected chip to skip the walled teleport, got %v", l.Chip().Pos)
	}
}

func TestChipStaysOnOwnTeleport(t *testing.T) {
	d := layout("CT#")
	l := mustLevel(t, d)
	l.Tick(InputRight, nil)
	if l.Chip().Pos != Pos(1, 0) {
		t.Fatalf("Expected chip on its own teleport, got %v", l.Chip().Pos)
	}
	l.Tick(InputHalfWait, nil)
	if l.Chip().Sliding {
		t.Error("Chip should stop sliding once the teleport exit is blocked")
	}
}

func TestBlockOnLoneTeleportPushesPastIt(t *testing.T) {
	d := layout("CBTK")
	l := mustLevel(t, d)

	l.Tick(InputRight, nil)
	if l.fg[Pos(2, 0)] != Block {
		t.Fatalf("Expected the block to stay on its own teleport, got %s", l.fg[Pos(2, 0)])
	}
	if l.fg[Pos(4, 0)] != IceBlock {
		t.Errorf("Expected the ice block pushed to (4,0), got %s", l.fg[Pos(4, 0)])
	}
	if l.Chip().Pos != Pos(1, 0) {
		t.Errorf("Expected chip at (1,0), got %v", l.Chip().Pos)
	}
}

func TestRedButtonClones(t *testing.T) {
	d := layout(
		"C.",
		".",
		"r",
	)
	d.Foreground[Pos(5, 5)] = BugRight
	d.Background[Pos(5, 5)] = CloneMachine
	d.Movers = []Position{Pos(5, 5)}
	d.Cloners = []Connection{{Button: Pos(0, 2), Target: Pos(5, 5)}}
	l := mustLevel(t, d)

	move(l, InputDown)
	move(l, InputDown)

	if l.fg[Pos(6, 5)] != BugRight {
		t.Errorf("Expected a bug clone at (6,5), got %s", l.fg[Pos(6, 5)])
	}
	if l.fg[Pos(5, 5)] != BugRight || l.bg[Pos(5, 5)] != CloneMachine {
		t.Errorf("Expected the template to stay, got %s over %s", l.fg[Pos(5, 5)], l.bg[Pos(5, 5)])
	}
	if l.creatures.Len() != 2 {
		t.Errorf("Expected the clone appended to the roster, got %d creatures", l.creatures.Len())
	}
	if l.creatures.At(0).Pos != Pos(5, 5) {
		t.Error("Template should keep its roster slot and never move")
	}
}

func TestRedButtonDataReset(t *testing.T) {
	d := layout("C$r")
	d.ChipsLeft = 4
	d.Cloners = []Connection{{Button: Pos(2, 0), Target: BoardSize + 3}}
	l := mustLevel(t, d)

	move(l, InputRight)
	if l.ChipsLeft() != 3 {
		t.Fatalf("Expected 3 chips left, got %d", l.ChipsLeft())
	}
	move(l, InputRight)
	if l.ChipsLeft() != 4 {
		t.Errorf("Expected the overflow clone to restore 4 chips, got %d", l.ChipsLeft())
	}
}

func TestGreenButtonTogglesBothLayers(t *testing.T) {
	d := layout("Cg.x")
	d.Foreground[Pos(4, 4)] = Block
	d.Background[Pos(4, 4)] = ToggleOpen
	l := mustLevel(t, d)

	move(l, InputRight)
	if l.fg[Pos(3, 0)] != ToggleOpen {
		t.Errorf("Expected open toggle wall, got %s", l.fg[Pos(3, 0)])
	}
	if l.bg[Pos(4, 4)] != ToggleClosed {
		t.Errorf("Expected buried toggle floor to close, got %s", l.bg[Pos(4, 4)])
	}
}

func TestBlueButtonTurnsTanks(t *testing.T) {
	d := layout("Cu")
	d.Foreground[Pos(5, 5)] = TankRight
	d.Foreground[Pos(6, 5)] = Wall
	d.Movers = []Position{Pos(5, 5)}
	l := mustLevel(t, d)

	l.Tick(InputWait, nil)
	l.Tick(InputHalfWait, nil)
	tank := l.creatures.At(0)
	if tank.Pos != Pos(5, 5) {
		t.Fatalf("Blocked tank should stay, got %v", tank.Pos)
	}

	l.Tick(InputRight, nil)
	if tank.Dir != Left || tank.Type != TankMoving {
		t.Fatalf("Expected tank reversed, got %s %s", tank.Type, tank.Dir)
	}
	if l.fg[Pos(5, 5)] != TankLeft {
		t.Errorf("Expected tank tile facing left, got %s", l.fg[Pos(5, 5)])
	}
	l.Tick(InputHalfWait, nil)
	l.Tick(InputWait, nil)
	if tank.Pos != Pos(4, 5) {
		t.Errorf("Expected tank to drive left, got %v", tank.Pos)
	}
}

func TestBlueButtonSkipsSlidingTanks(t *testing.T) {
	d := layout("Cu")
	d.Foreground[Pos(5, 5)] = TankRight
	d.Background[Pos(5, 5)] = Ice
	d.Foreground[Pos(5, 7)] = TankUp
	d.Movers = []Position{Pos(5, 5), Pos(5, 7)}
	l := mustLevel(t, d)

	slider, standing := l.creatures.At(0), l.creatures.At(1)
	l.startSliding(slider)
	l.turnTanks()

	if slider.Dir != Right {
		t.Errorf("Expected sliding tank to keep facing right, got %s", slider.Dir)
	}
	if l.fg[Pos(5, 5)] != TankRight {
		t.Errorf("Expected sliding tank tile unchanged, got %s", l.fg[Pos(5, 5)])
	}
	if standing.Dir != Down || l.fg[Pos(5, 7)] != TankDown {
		t.Errorf("Expected standing tank reversed to down, got %s (%s)", standing.Dir, l.fg[Pos(5, 7)])
	}
}

func TestTimerExpiryKillsChip(t *testing.T) {
	d := layout("C")
	d.Timer = 1
	l := mustLevel(t, d)
	for i := 0; i < TicksPerSecond; i++ {
		l.Tick(InputHalfWait, nil)
	}
	if l.ChipDead() {
		t.Fatal("Chip should survive until the clock reaches zero")
	}
	l.Tick(InputHalfWait, nil)
	if !l.ChipDead() {
		t.Error("Expected chip to die when time runs out")
	}
}

func TestMouseClickWalksChip(t *testing.T) {
	l := mustLevel(t, layout("C..."))
	if err := l.SetMouseTarget(Pos(2, 0)); err != nil {
		t.Fatalf("SetMouseTarget failed: %v", err)
	}
	for i := 0; i < 6 && l.MouseTarget() != NoPosition; i++ {
		l.Tick(InputClick, nil)
	}
	if l.Chip().Pos != Pos(2, 0) {
		t.Errorf("Expected chip at the target, got %v", l.Chip().Pos)
	}
	if l.MouseTarget() != NoPosition {
		t.Error("Expected target cleared once reached")
	}
	if err := l.SetMouseTarget(2000); err == nil {
		t.Error("Expected error for an off-board target")
	}
}

func TestDeterminism(t *testing.T) {
	build := func() *Level {
		d := layout(
			"C.........",
			"..........",
			"..........",
			"..........",
		)
		d.Foreground[Pos(5, 2)] = WalkerUp
		d.Foreground[Pos(8, 3)] = BlobLeft
		d.Movers = []Position{Pos(5, 2), Pos(8, 3)}
		d.Seed = 424242
		return mustLevel(t, d)
	}
	a, b := build(), build()
	for i := 0; i < 40; i++ {
		a.Tick(InputWait, nil)
		b.Tick(InputWait, nil)
		if a.Hash() != b.Hash() {
			t.Fatalf("Levels diverged at tick %d", i)
		}
	}
	if a.RNGState() == 424242 {
		t.Error("Expected the random movers to draw from the generator")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := layout("C....")
	d.Foreground[Pos(3, 3)] = GliderUp
	d.Movers = []Position{Pos(3, 3)}
	l := mustLevel(t, d)

	c := l.Clone()
	if c.Hash() != l.Hash() {
		t.Fatal("Clone should hash the same as the original")
	}
	move(c, InputRight)
	if l.Chip().Pos != Pos(0, 0) || l.creatures.At(0).Pos != Pos(3, 3) {
		t.Error("Ticking the clone should not touch the original")
	}
	move(l, InputRight)
	if c.Hash() != l.Hash() {
		t.Error("Same inputs should bring clone and original back in step")
	}
}
