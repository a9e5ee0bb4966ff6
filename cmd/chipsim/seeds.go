package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chipsim/internal/levels/formats"
	"github.com/vovakirdan/chipsim/internal/search"
	"github.com/vovakirdan/chipsim/internal/storage"
)

var (
	flagSeedsFirst     uint32
	flagSeedsCount     int
	flagSeedsWorkers   int
	flagSeedsStopAfter int
	flagSeedsStep      string
	flagSeedsPersist   bool
)

var seedsCmd = &cobra.Command{
	Use:   "seeds <level> <moves>",
	Short: "Search RNG seeds that let a move string win",
	Long: `Replay one move string against the level once per seed and report the
seeds that complete it. Seeds are split across a pool of workers; Ctrl+C
stops the search and prints the partial result.

Examples:
  chipsim seeds walker rrrrrrr
  chipsim seeds walker rrrrrrr --first 1000 --count 5000 --workers 4
  chipsim seeds walker rrrrrrr --stop-after 1 --persist`,
	Args: cobra.ExactArgs(2),
	Run:  runSeeds,
}

func init() {
	seedsCmd.Flags().Uint32Var(&flagSeedsFirst, "first", 0, "First seed (overrides config)")
	seedsCmd.Flags().IntVar(&flagSeedsCount, "count", 0, "Number of seeds (overrides config)")
	seedsCmd.Flags().IntVar(&flagSeedsWorkers, "workers", 0, "Worker goroutines (overrides config)")
	seedsCmd.Flags().IntVar(&flagSeedsStopAfter, "stop-after", 0, "Stop after this many winning seeds (overrides config)")
	seedsCmd.Flags().StringVar(&flagSeedsStep, "step", "", "Step parity: even or odd (defaults to the level's step)")
	seedsCmd.Flags().BoolVar(&flagSeedsPersist, "persist", false, "Store per-seed results in the database")
}

func runSeeds(cmd *cobra.Command, args []string) {
	lvl, err := loadLevel(args[0])
	exitOn(err, "cannot load level")
	moves := args[1]

	opts := search.Options{
		Workers:   cfg.Search.Workers,
		First:     cfg.Search.First,
		Count:     uint32(cfg.Search.Count),
		Step:      lvl.Descriptor.Step,
		StopAfter: cfg.Search.StopAfter,
		Logger:    logger,
	}
	flags := cmd.Flags()
	if flags.Changed("first") {
		opts.First = flagSeedsFirst
	}
	if flags.Changed("count") {
		opts.Count = uint32(max(flagSeedsCount, 0))
	}
	if flags.Changed("workers") {
		opts.Workers = flagSeedsWorkers
	}
	if flags.Changed("stop-after") {
		opts.StopAfter = flagSeedsStopAfter
	}
	if flagSeedsStep != "" {
		opts.Step, err = formats.ParseStep(flagSeedsStep)
		exitOn(err, "invalid step")
	}
	persist := cfg.Search.Persist || flagSeedsPersist

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := search.Run(ctx, &lvl, moves, opts)
	exitOn(err, "search failed")

	winners := report.Winners()
	fmt.Printf("Seeds searched: %d\n", len(report.Outcomes))
	fmt.Printf("Winning seeds:  %d\n", report.Successes)
	fmt.Printf("Distinct ends:  %d\n", report.Distinct)
	if len(report.Failed) > 0 {
		fmt.Printf("Failed seeds:   %d\n", len(report.Failed))
	}
	if report.Cancelled {
		fmt.Println("Search stopped early.")
	}

	if len(winners) > 0 {
		fmt.Println()
		fmt.Printf("  %-10s  %-6s  %s\n", "Seed", "Tick", "Time left")
		fmt.Printf("  %-10s  %-6s  %s\n", "----", "----", "---------")
		for i, o := range winners {
			if i == 20 {
				fmt.Printf("  ... and %d more\n", len(winners)-i)
				break
			}
			fmt.Printf("  %-10d  %-6d  %d\n", o.Seed, o.Tick, o.TimeLeft)
		}
	}

	if !persist {
		return
	}

	store, err := openStore()
	exitOn(err, "cannot open database")
	defer store.Close()

	results := make([]storage.SeedResult, len(report.Outcomes))
	for i, o := range report.Outcomes {
		results[i] = storage.SeedResult{
			LevelID:  lvl.ID,
			Moves:    moves,
			Step:     report.Step.String(),
			Seed:     o.Seed,
			Complete: o.Complete,
			Tick:     o.Tick,
		}
	}
	exitOn(store.SaveSeedResults(results), "cannot save seed results")
	logger.Info("seed results saved", "level", lvl.ID, "count", len(results))
}
