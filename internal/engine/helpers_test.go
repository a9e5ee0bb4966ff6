package engine

import "testing"

var legend = map[rune]Tile{
	'.': Floor,
	'#': Wall,
	'$': ComputerChip,
	'W': Water,
	'F': Fire,
	'B': Block,
	'K': IceBlock,
	'I': Ice,
	'E': Exit,
	'S': Socket,
	'H': HiddenWall,
	'T': Teleport,
	'P': Trap,
	'O': Bomb,
	'M': CloneMachine,
	'D': BlueDoor,
	'k': KeyBlue,
	'b': BrownButton,
	'r': RedButton,
	'g': GreenButton,
	'u': BlueButton,
	'x': ToggleClosed,
	'o': ToggleOpen,
	'>': ForceRight,
	'<': ForceLeft,
	'^': ForceUp,
	'v': ForceDown,
	'C': ChipDown,
}

// layout builds a descriptor from rows drawn at the top-left corner.
func layout(rows ...string) *Descriptor {
	d := &Descriptor{}
	for y, row := range rows {
		for x, ch := range row {
			t, ok := legend[ch]
			if !ok {
				panic("unknown legend rune " + string(ch))
			}
			d.Foreground[Pos(x, y)] = t
		}
	}
	return d
}

func mustLevel(t *testing.T, d *Descriptor) *Level {
	t.Helper()
	l, err := NewLevel(d)
	if err != nil {
		t.Fatalf("NewLevel failed: %v", err)
	}
	return l
}

// move plays a key input followed by the forced half-wait.
func move(l *Level, in Input) {
	if l.Tick(in, nil) {
		l.Tick(InputHalfWait, nil)
	}
}
