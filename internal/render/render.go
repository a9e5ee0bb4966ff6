// Package render draws a level as styled text for terminal output.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chipsim/internal/engine"
)

// Options controls a board dump.
type Options struct {
	Color bool // apply lipgloss styles
	Width int  // visible columns; 0 or >= 32 shows the whole board
	Names bool // append a legend of the tiles on screen
}

// Theme holds the styles used for each tile group.
type Theme struct {
	Floor   lipgloss.Style
	Wall    lipgloss.Style
	Water   lipgloss.Style
	Fire    lipgloss.Style
	Ice     lipgloss.Style
	Force   lipgloss.Style
	Chip    lipgloss.Style
	Monster lipgloss.Style
	Block   lipgloss.Style
	Item    lipgloss.Style
	Button  lipgloss.Style
	Exit    lipgloss.Style
	Dead    lipgloss.Style

	HUDTitle lipgloss.Style
	HUDValue lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Floor:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Wall:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Water:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		Fire:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Ice:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Force:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Chip:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Monster: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Block:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		Item:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Button:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Exit:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Dead:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),

		HUDTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	}
}

var monsterGlyphs = [...]rune{'b', 'f', 'a', 't', 'g', 'e', 'w', 'o', 'p'}

var arrowGlyphs = [4]rune{'^', '<', 'v', '>'}

// Glyph returns the character drawn for t.
func Glyph(t engine.Tile) rune {
	switch {
	case t.IsChip():
		return '@'
	case t.IsSwimmingChip():
		return '%'
	case t.IsDeadChip():
		return 'X'
	case t.IsMonster():
		return monsterGlyphs[(t-engine.BugUp)/4]
	case t.IsCloneBlock():
		return arrowGlyphs[t.Facing()]
	case t.IsIceCorner():
		return '/'
	case t.IsThinWall():
		return '|'
	case t.IsKey():
		return 'K'
	case t.IsBoot():
		return 'Z'
	case t.IsDoor():
		return 'D'
	}
	if d, ok := t.ForceDirection(); ok {
		return arrowGlyphs[d]
	}

	switch t {
	case engine.Floor:
		return '.'
	case engine.Wall, engine.BlueWallReal, engine.BlueWallFake, engine.InvisibleWall, engine.HiddenWall, engine.PopUpWall:
		return '#'
	case engine.ComputerChip:
		return '$'
	case engine.Water:
		return '~'
	case engine.Fire:
		return '&'
	case engine.Block, engine.IceBlock:
		return 'B'
	case engine.Dirt:
		return ':'
	case engine.Gravel:
		return '='
	case engine.Ice:
		return '_'
	case engine.ForceRandom:
		return '*'
	case engine.Exit, engine.ExitExtra1, engine.ExitExtra2, engine.ExitedChip:
		return 'E'
	case engine.Socket:
		return 'S'
	case engine.Thief:
		return '!'
	case engine.Hint:
		return '?'
	case engine.Teleport:
		return 'T'
	case engine.Trap:
		return 'P'
	case engine.Bomb:
		return 'O'
	case engine.CloneMachine:
		return 'M'
	case engine.ToggleClosed:
		return 'x'
	case engine.ToggleOpen:
		return ','
	case engine.GreenButton, engine.RedButton, engine.BrownButton, engine.BlueButton:
		return 'n'
	}
	return ' '
}

type group int

const (
	groupPlain group = iota
	groupFloor
	groupWall
	groupWater
	groupFire
	groupIce
	groupForce
	groupChip
	groupMonster
	groupBlock
	groupItem
	groupButton
	groupExit
	groupDead
)

func groupOf(t engine.Tile) group {
	switch {
	case t.IsPlayer():
		return groupChip
	case t.IsDeadChip():
		return groupDead
	case t.IsMonster():
		return groupMonster
	case t.IsBlock():
		return groupBlock
	case t.IsIce():
		return groupIce
	case t.IsFF():
		return groupForce
	case t.IsPickup(), t.IsDoor():
		return groupItem
	case t.IsButton():
		return groupButton
	case t.IsThinWall():
		return groupWall
	}
	switch t {
	case engine.Floor:
		return groupFloor
	case engine.Water:
		return groupWater
	case engine.Fire, engine.Bomb:
		return groupFire
	case engine.Exit, engine.ExitedChip:
		return groupExit
	case engine.Wall, engine.BlueWallReal, engine.HiddenWall, engine.InvisibleWall:
		return groupWall
	}
	return groupPlain
}

func (th Theme) style(g group) lipgloss.Style {
	switch g {
	case groupFloor:
		return th.Floor
	case groupWall:
		return th.Wall
	case groupWater:
		return th.Water
	case groupFire:
		return th.Fire
	case groupIce:
		return th.Ice
	case groupForce:
		return th.Force
	case groupChip:
		return th.Chip
	case groupMonster:
		return th.Monster
	case groupBlock:
		return th.Block
	case groupItem:
		return th.Item
	case groupButton:
		return th.Button
	case groupExit:
		return th.Exit
	case groupDead:
		return th.Dead
	}
	return lipgloss.NewStyle()
}

// Board renders the foreground layer with a status header.
func Board(lvl *engine.Level, opts Options) string {
	th := DefaultTheme()
	fg := lvl.Foreground()
	first, last := columns(lvl.Chip().Pos.X(), opts.Width)

	var sb strings.Builder
	sb.WriteString(header(lvl, th, opts.Color))
	sb.WriteRune('\n')

	used := make(map[engine.Tile]bool)
	for y := range engine.BoardWidth {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same style
		x := first
		for x < last {
			g := groupOf(fg.Get(engine.Pos(x, y)))
			var run strings.Builder
			for x < last {
				t := fg.Get(engine.Pos(x, y))
				if opts.Color && groupOf(t) != g {
					break
				}
				used[t] = true
				run.WriteRune(Glyph(t))
				x++
			}
			if opts.Color {
				sb.WriteString(th.style(g).Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
		}
	}

	if opts.Names {
		sb.WriteString("\n\n")
		sb.WriteString(legend(used))
	}
	return sb.String()
}

// columns picks the visible column range, centred on the player when the
// board is wider than width.
func columns(center, width int) (int, int) {
	if width <= 0 || width >= engine.BoardWidth {
		return 0, engine.BoardWidth
	}
	first := center - width/2
	first = max(first, 0)
	first = min(first, engine.BoardWidth-width)
	return first, first + width
}

func header(lvl *engine.Level, th Theme, color bool) string {
	field := func(name string, value any) string {
		if !color {
			return fmt.Sprintf("%s %v", name, value)
		}
		return th.HUDTitle.Render(name) + " " + th.HUDValue.Render(fmt.Sprint(value))
	}

	timeLeft := "--"
	if lvl.Timed() {
		timeLeft = fmt.Sprintf("%d.%d", lvl.TimeLeft()/engine.TicksPerSecond, lvl.TimeLeft()%engine.TicksPerSecond)
	}
	state := "playing"
	switch {
	case lvl.Complete():
		state = "complete"
	case lvl.ChipDead():
		state = "dead"
	}

	parts := []string{
		field("tick", lvl.TickNumber()),
		field("chips", lvl.ChipsLeft()),
		field("time", timeLeft),
		field("keys", formatCounts(lvl.Keys())),
		field("boots", formatBoots(lvl.Boots())),
		field("state", state),
	}
	return strings.Join(parts, "  ")
}

func formatCounts(keys [4]uint16) string {
	return fmt.Sprintf("%d/%d/%d/%d", keys[0], keys[1], keys[2], keys[3])
}

func formatBoots(boots [4]uint8) string {
	return fmt.Sprintf("%d/%d/%d/%d", boots[0], boots[1], boots[2], boots[3])
}

func legend(used map[engine.Tile]bool) string {
	tiles := make([]engine.Tile, 0, len(used))
	for t := range used {
		tiles = append(tiles, t)
	}
	sort.Slice(tiles, func(i, j int) bool { return tiles[i] < tiles[j] })

	lines := make([]string, len(tiles))
	for i, t := range tiles {
		lines[i] = fmt.Sprintf("%c %s", Glyph(t), t)
	}
	return strings.Join(lines, "\n")
}
