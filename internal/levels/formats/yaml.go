// Package formats provides level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/chipsim/internal/engine"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Number    int               `yaml:"number"`
	Title     string            `yaml:"title"`
	Password  string            `yaml:"password,omitempty"`
	Hint      string            `yaml:"hint,omitempty"`
	Time      int               `yaml:"time"`
	Chips     int               `yaml:"chips"`
	Seed      uint32            `yaml:"seed"`
	Step      string            `yaml:"step,omitempty"`
	Legend    map[string]string `yaml:"legend,omitempty"`
	Map       []string          `yaml:"map"`
	Under     []string          `yaml:"under,omitempty"`
	Movers    []YAMLPoint       `yaml:"movers,omitempty"`
	Traps     []YAMLWire        `yaml:"traps,omitempty"`
	Cloners   []YAMLWire        `yaml:"cloners,omitempty"`
	Teleports []YAMLPoint       `yaml:"teleports,omitempty"`
	Solutions []YAMLSolution    `yaml:"solutions,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLPoint is a board coordinate.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLWire connects a button to its target cell.
type YAMLWire struct {
	Button YAMLPoint `yaml:"button"`
	Target YAMLPoint `yaml:"target"`
}

// YAMLSolution is a recorded move list with the conditions it was played under.
type YAMLSolution struct {
	Moves     string `yaml:"moves"`
	Seed      uint32 `yaml:"seed"`
	Step      string `yaml:"step,omitempty"`
	Tick      int    `yaml:"tick"`
	ChipsLeft int    `yaml:"chips_left"`
	TimeLeft  int    `yaml:"time_left"`
}

// Solution is a parsed recorded solution.
type Solution struct {
	Moves     string
	Seed      uint32
	Step      engine.Step
	Tick      int
	ChipsLeft int
	TimeLeft  int
}

// Level represents a parsed level ready for use.
type Level struct {
	ID         string
	Descriptor engine.Descriptor
	Solutions  []Solution
	Metadata   map[string]string
}

// DefaultLegend maps map characters to tile names. Files extend or override
// it with their own legend section.
var DefaultLegend = map[rune]string{
	'.': "floor",
	' ': "floor",
	'#': "wall",
	'$': "computer_chip",
	'W': "water",
	'F': "fire",
	'B': "block",
	'K': "ice_block",
	'I': "ice",
	'E': "exit",
	'S': "socket",
	'H': "hidden_wall",
	'T': "teleport",
	'P': "trap",
	'O': "bomb",
	'M': "clone_machine",
	'=': "gravel",
	'?': "hint",
	'!': "thief",
	'D': "dirt",
	'^': "force_up",
	'v': "force_down",
	'<': "force_left",
	'>': "force_right",
	'*': "force_random",
	'g': "green_button",
	'r': "red_button",
	'n': "brown_button",
	'u': "blue_button",
	'x': "toggle_closed",
	'o': "toggle_open",
	'C': "chip_down",
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	legend, err := buildLegend(yl.Legend)
	if err != nil {
		return Level{}, err
	}
	step, err := ParseStep(yl.Step)
	if err != nil {
		return Level{}, err
	}

	level := Level{
		ID:       yl.ID,
		Metadata: yl.Metadata,
		Descriptor: engine.Descriptor{
			Number:    yl.Number,
			Title:     yl.Title,
			Password:  yl.Password,
			Hint:      yl.Hint,
			Timer:     yl.Time,
			ChipsLeft: yl.Chips,
			Seed:      yl.Seed,
			Step:      step,
			Ruleset:   engine.RulesetMS,
		},
	}
	if level.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	if err := drawRows(&level.Descriptor.Foreground, yl.Map, legend); err != nil {
		return Level{}, fmt.Errorf("map: %w", err)
	}
	if err := drawRows(&level.Descriptor.Background, yl.Under, legend); err != nil {
		return Level{}, fmt.Errorf("under: %w", err)
	}

	seen := mapset.New[engine.Position]()
	for _, p := range yl.Movers {
		pos, err := p.position()
		if err != nil {
			return Level{}, fmt.Errorf("movers: %w", err)
		}
		if seen.Has(pos) {
			return Level{}, fmt.Errorf("movers: %s listed twice", pos)
		}
		seen.Put(pos)
		level.Descriptor.Movers = append(level.Descriptor.Movers, pos)
	}

	if level.Descriptor.Traps, err = wires(yl.Traps, false); err != nil {
		return Level{}, fmt.Errorf("traps: %w", err)
	}
	if level.Descriptor.Cloners, err = wires(yl.Cloners, true); err != nil {
		return Level{}, fmt.Errorf("cloners: %w", err)
	}

	if len(yl.Teleports) > 0 {
		tps := mapset.New[engine.Position]()
		for _, p := range yl.Teleports {
			pos, err := p.position()
			if err != nil {
				return Level{}, fmt.Errorf("teleports: %w", err)
			}
			if tps.Has(pos) {
				return Level{}, fmt.Errorf("teleports: %s listed twice", pos)
			}
			tps.Put(pos)
			level.Descriptor.Teleports = append(level.Descriptor.Teleports, pos)
		}
	}

	for i, s := range yl.Solutions {
		st, err := ParseStep(s.Step)
		if err != nil {
			return Level{}, fmt.Errorf("solution %d: %w", i, err)
		}
		level.Solutions = append(level.Solutions, Solution{
			Moves:     s.Moves,
			Seed:      s.Seed,
			Step:      st,
			Tick:      s.Tick,
			ChipsLeft: s.ChipsLeft,
			TimeLeft:  s.TimeLeft,
		})
	}

	return level, nil
}

// ParseStep parses "even" or "odd". The empty string means even.
func ParseStep(s string) (engine.Step, error) {
	switch strings.ToLower(s) {
	case "", "even":
		return engine.StepEven, nil
	case "odd":
		return engine.StepOdd, nil
	default:
		return 0, fmt.Errorf("unknown step %q", s)
	}
}

func buildLegend(extra map[string]string) (map[rune]engine.Tile, error) {
	legend := make(map[rune]engine.Tile, len(DefaultLegend)+len(extra))
	for r, name := range DefaultLegend {
		t, _ := engine.ParseTile(name)
		legend[r] = t
	}
	for key, name := range extra {
		runes := []rune(key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("legend key %q must be a single character", key)
		}
		t, ok := engine.ParseTile(name)
		if !ok {
			return nil, fmt.Errorf("legend %q: unknown tile %q", key, name)
		}
		legend[runes[0]] = t
	}
	return legend, nil
}

func drawRows(layer *engine.Layer, rows []string, legend map[rune]engine.Tile) error {
	if len(rows) > engine.BoardWidth {
		return fmt.Errorf("%d rows, board has %d", len(rows), engine.BoardWidth)
	}
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) > engine.BoardWidth {
			return fmt.Errorf("row %d is %d cells wide", y, len(runes))
		}
		for x, r := range runes {
			t, ok := legend[r]
			if !ok {
				return fmt.Errorf("row %d: unknown character %q", y, r)
			}
			layer.Set(engine.Pos(x, y), t)
		}
	}
	return nil
}

func wires(ws []YAMLWire, overflow bool) ([]engine.Connection, error) {
	var conns []engine.Connection
	for _, w := range ws {
		button, err := w.Button.position()
		if err != nil {
			return nil, err
		}
		var target engine.Position
		if overflow && w.Target.Y == engine.BoardWidth && w.Target.X >= 0 && w.Target.X < engine.BoardWidth {
			target = engine.Position(engine.BoardSize + w.Target.X)
		} else if target, err = w.Target.position(); err != nil {
			return nil, err
		}
		conns = append(conns, engine.Connection{Button: button, Target: target})
	}
	return conns, nil
}

func (p YAMLPoint) position() (engine.Position, error) {
	pos := engine.Pos(p.X, p.Y)
	if pos == engine.NoPosition {
		return pos, fmt.Errorf("point (%d,%d) is off the board", p.X, p.Y)
	}
	return pos, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
