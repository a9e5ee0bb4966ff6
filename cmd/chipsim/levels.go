package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long:  `Shows every level file found in the level directory.`,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	all, err := levelsLoader().LoadAll()
	exitOn(err, "cannot load levels")

	if len(all) == 0 {
		fmt.Printf("No levels found in %s.\n", cfg.Levels.Dir)
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range all {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	// Print header
	fmt.Printf("  %-4s  %-*s  %-5s  %-5s  %-4s  %s\n", "No", maxIDLen, "ID", "Chips", "Time", "Sols", "Title")
	fmt.Printf("  %-4s  %-*s  %-5s  %-5s  %-4s  %s\n", "--", maxIDLen, "--", "-----", "----", "----", "-----")

	// Print levels
	for _, l := range all {
		timer := "-"
		if l.Descriptor.Timer > 0 {
			timer = fmt.Sprint(l.Descriptor.Timer)
		}
		fmt.Printf("  %-4d  %-*s  %-5d  %-5s  %-4d  %s\n",
			l.Descriptor.Number, maxIDLen, l.ID, l.Descriptor.ChipsLeft, timer, len(l.Solutions), l.Title())
	}

	fmt.Println()
	fmt.Println("Run 'chipsim show <id>' to draw a level.")
}
