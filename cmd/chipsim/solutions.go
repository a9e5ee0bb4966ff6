package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagSolutionsLimit int
	flagSolutionsMoves string
)

var solutionsCmd = &cobra.Command{
	Use:   "solutions <level>",
	Short: "Show stored solutions for a level",
	Long: `Display the fastest stored solutions for the specified level.
With --moves, list the stored winning seeds of that move string instead.

Examples:
  chipsim solutions lesson-1
  chipsim solutions walker --moves rrrrrrr`,
	Args: cobra.ExactArgs(1),
	Run:  runSolutions,
}

func init() {
	solutionsCmd.Flags().IntVar(&flagSolutionsLimit, "limit", 10, "Number of solutions to show")
	solutionsCmd.Flags().StringVar(&flagSolutionsMoves, "moves", "", "Show stored winning seeds for this move string")
}

func runSolutions(cmd *cobra.Command, args []string) {
	levelID := args[0]

	store, err := openStore()
	exitOn(err, "cannot open database")
	defer store.Close()

	if flagSolutionsMoves != "" {
		results, err := store.SeedResults(levelID, flagSolutionsMoves, true)
		exitOn(err, "cannot retrieve seed results")

		fmt.Printf("Winning seeds - %s %q\n", levelID, flagSolutionsMoves)
		fmt.Println()
		if len(results) == 0 {
			fmt.Println("No winning seeds stored.")
			return
		}
		fmt.Printf("  %-10s  %-5s  %-6s  %s\n", "Seed", "Step", "Tick", "Date")
		fmt.Printf("  %-10s  %-5s  %-6s  %s\n", "----", "----", "----", "----")
		for _, r := range results {
			fmt.Printf("  %-10d  %-5s  %-6d  %s\n", r.Seed, r.Step, r.Tick, r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return
	}

	entries, err := store.BestSolutions(levelID, flagSolutionsLimit)
	exitOn(err, "cannot retrieve solutions")

	fmt.Printf("Solutions - %s\n", levelID)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No solutions recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'chipsim replay %s <moves> --save' to store one.\n", levelID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-10s  %-5s  %-16s  %s\n", "Rank", "Tick", "Seed", "Step", "Date", "Moves")
	fmt.Printf("  %-4s  %-6s  %-10s  %-5s  %-16s  %s\n", "----", "----", "----", "----", "----", "-----")

	for i, e := range entries {
		dateStr := e.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-10d  %-5s  %-16s  %q\n", i+1, e.Tick, e.Seed, e.Step, dateStr, e.Moves)
	}

	best, err := store.BestSolution(levelID)
	if err == nil && best != nil {
		fmt.Println()
		fmt.Printf("Best: tick %d (%d.%d s)\n", best.Tick, best.Tick/10, best.Tick%10)
	}
}
