package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chipsim/internal/levels"
	"github.com/vovakirdan/chipsim/internal/levels/formats"
	"github.com/vovakirdan/chipsim/internal/replay"
	"github.com/vovakirdan/chipsim/internal/storage"
)

var (
	flagReplaySeed uint32
	flagReplayStep string
	flagReplaySave bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <level> [moves]",
	Short: "Play a move string or verify recorded solutions",
	Long: `With a move string, play it on the level and report the result.
Without one, verify every solution recorded in the level file.

Each non-half input is followed by the forced half-wait, so one step
takes two ticks.

Examples:
  chipsim replay lesson-1
  chipsim replay lesson-1 rrrr --save
  chipsim replay walker rrrrrrr --seed 12 --step odd`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().Uint32Var(&flagReplaySeed, "seed", 0, "RNG seed (defaults to the level's seed)")
	replayCmd.Flags().StringVar(&flagReplayStep, "step", "", "Step parity: even or odd (defaults to the level's step)")
	replayCmd.Flags().BoolVar(&flagReplaySave, "save", false, "Store completed runs in the solutions table")
}

func runReplay(cmd *cobra.Command, args []string) {
	lvl, err := loadLevel(args[0])
	exitOn(err, "cannot load level")

	if len(args) == 1 {
		verifySolutions(&lvl)
		return
	}

	sol := formats.Solution{
		Moves: args[1],
		Seed:  lvl.Descriptor.Seed,
		Step:  lvl.Descriptor.Step,
	}
	if cmd.Flags().Changed("seed") {
		sol.Seed = flagReplaySeed
	}
	if flagReplayStep != "" {
		sol.Step, err = formats.ParseStep(flagReplayStep)
		exitOn(err, "invalid step")
	}

	sim, err := lvl.NewLevelWith(sol.Seed, sol.Step)
	exitOn(err, "cannot start level")
	res, err := replay.Play(sim, sol.Moves)
	exitOn(err, "cannot play moves")

	printResult(res)

	if flagReplaySave && res.Complete {
		store, err := openStore()
		exitOn(err, "cannot open database")
		defer store.Close()

		id, err := store.SaveSolution(storage.SolutionEntry{
			LevelID:   lvl.ID,
			Moves:     sol.Moves,
			Seed:      sol.Seed,
			Step:      sol.Step.String(),
			Tick:      res.Tick,
			ChipsLeft: res.ChipsLeft,
			TimeLeft:  res.TimeLeft,
		})
		exitOn(err, "cannot save solution")
		logger.Info("solution saved", "level", lvl.ID, "id", id, "tick", res.Tick)
	}
}

func verifySolutions(lvl *levels.Level) {
	if len(lvl.Solutions) == 0 {
		fmt.Printf("No solutions recorded for %s.\n", lvl.ID)
		return
	}

	failed := 0
	for i, sol := range lvl.Solutions {
		res, err := replay.Verify(lvl, sol)
		if err != nil {
			failed++
			fmt.Printf("  #%d  FAIL  %v\n", i+1, err)
			continue
		}
		fmt.Printf("  #%d  ok    tick %d, time left %d\n", i+1, res.Tick, res.TimeLeft)
	}

	fmt.Println()
	fmt.Printf("%d/%d solutions reproduce.\n", len(lvl.Solutions)-failed, len(lvl.Solutions))
	if failed > 0 {
		os.Exit(1)
	}
}

func printResult(res replay.Result) {
	state := "unfinished"
	switch {
	case res.Complete:
		state = "complete"
	case res.Dead:
		state = "dead"
	}

	fmt.Printf("Result:     %s\n", state)
	fmt.Printf("Tick:       %d\n", res.Tick)
	fmt.Printf("Chips left: %d\n", res.ChipsLeft)
	fmt.Printf("Time left:  %d\n", res.TimeLeft)
	fmt.Printf("Inputs:     %d\n", res.Played)
	fmt.Printf("Hash:       %016x\n", res.Hash)
}
