package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chipsim/internal/render"
	"github.com/vovakirdan/chipsim/internal/replay"
)

var (
	flagShowNames bool
	flagShowColor string
	flagShowSeed  uint32
)

var showCmd = &cobra.Command{
	Use:   "show <level> [moves]",
	Short: "Draw a level, optionally after playing moves",
	Long: `Draw the foreground layer of a level as text.

Moves use u, l, d, r for steps, a space for a full wait and - for a half wait.
When stdout is a terminal narrower than the board, the view is cropped around
the player.

Examples:
  chipsim show lesson-1
  chipsim show lesson-1 rr --names
  chipsim show walker "rrr" --seed 7`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&flagShowNames, "names", false, "Append a legend of tile names")
	showCmd.Flags().StringVar(&flagShowColor, "color", "", "Color output: auto, always or never (overrides config)")
	showCmd.Flags().Uint32Var(&flagShowSeed, "seed", 0, "RNG seed (defaults to the level's seed)")
}

func runShow(cmd *cobra.Command, args []string) {
	lvl, err := loadLevel(args[0])
	exitOn(err, "cannot load level")

	seed := lvl.Descriptor.Seed
	if cmd.Flags().Changed("seed") {
		seed = flagShowSeed
	}
	sim, err := lvl.NewLevelWith(seed, lvl.Descriptor.Step)
	exitOn(err, "cannot start level")

	if len(args) == 2 {
		res, err := replay.Play(sim, args[1])
		exitOn(err, "cannot play moves")
		logger.Debug("moves played", "played", res.Played, "tick", res.Tick)
	}

	opts := render.Options{Names: flagShowNames || cfg.Render.Names}
	fd := int(os.Stdout.Fd())
	isTerm := term.IsTerminal(fd)
	if isTerm {
		if w, _, err := term.GetSize(fd); err == nil {
			opts.Width = w
		}
	}

	mode := cfg.Render.Color
	if flagShowColor != "" {
		mode = flagShowColor
	}
	switch mode {
	case "always":
		opts.Color = true
	case "never":
		opts.Color = false
	default:
		opts.Color = isTerm
	}

	fmt.Printf("%s (%s)\n", lvl.Title(), lvl.ID)
	fmt.Println(render.Board(sim, opts))
}
