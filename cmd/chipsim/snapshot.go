package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chipsim/internal/render"
	"github.com/vovakirdan/chipsim/internal/replay"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save and restore level states",
	Long: `Store the state of a level after a move string under a name, and
restore it later to continue playing.

Examples:
  chipsim snapshot save lesson-1 half rr
  chipsim snapshot load lesson-1 half rr
  chipsim snapshot list lesson-1
  chipsim snapshot delete lesson-1 half`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <level> <name> [moves]",
	Short: "Play moves and store the resulting state",
	Args:  cobra.RangeArgs(2, 3),
	Run:   runSnapshotSave,
}

var snapshotLoadCmd = &cobra.Command{
	Use:   "load <level> <name> [moves]",
	Short: "Restore a stored state, play more moves and draw the board",
	Args:  cobra.RangeArgs(2, 3),
	Run:   runSnapshotLoad,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list <level>",
	Short: "List stored snapshots of a level",
	Args:  cobra.ExactArgs(1),
	Run:   runSnapshotList,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <level> <name>",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(2),
	Run:   runSnapshotDelete,
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotLoadCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
}

func runSnapshotSave(cmd *cobra.Command, args []string) {
	lvl, err := loadLevel(args[0])
	exitOn(err, "cannot load level")
	sim, err := lvl.NewLevel()
	exitOn(err, "cannot start level")

	if len(args) == 3 {
		_, err := replay.Play(sim, args[2])
		exitOn(err, "cannot play moves")
	}

	data := sim.SaveUncompressed()
	if cfg.Snapshot.Compress {
		data = sim.Save()
	}

	store, err := openStore()
	exitOn(err, "cannot open database")
	defer store.Close()

	exitOn(store.SaveSnapshot(lvl.ID, args[1], sim.TickNumber(), data), "cannot save snapshot")
	logger.Info("snapshot saved", "level", lvl.ID, "name", args[1], "tick", sim.TickNumber(), "bytes", len(data))
}

func runSnapshotLoad(cmd *cobra.Command, args []string) {
	lvl, err := loadLevel(args[0])
	exitOn(err, "cannot load level")
	sim, err := lvl.NewLevel()
	exitOn(err, "cannot start level")

	store, err := openStore()
	exitOn(err, "cannot open database")
	defer store.Close()

	entry, err := store.LoadSnapshot(lvl.ID, args[1])
	exitOn(err, "cannot read snapshot")
	if entry == nil {
		exitOn(fmt.Errorf("no snapshot %q for %s", args[1], lvl.ID), "cannot read snapshot")
	}
	exitOn(sim.Load(entry.Data), "cannot restore snapshot")

	if len(args) == 3 {
		res, err := replay.Play(sim, args[2])
		exitOn(err, "cannot play moves")
		logger.Debug("moves played", "played", res.Played, "tick", res.Tick)
	}

	fmt.Printf("%s (%s) from snapshot %q\n", lvl.Title(), lvl.ID, args[1])
	fmt.Println(render.Board(sim, render.Options{}))
}

func runSnapshotList(cmd *cobra.Command, args []string) {
	store, err := openStore()
	exitOn(err, "cannot open database")
	defer store.Close()

	entries, err := store.ListSnapshots(args[0])
	exitOn(err, "cannot list snapshots")

	if len(entries) == 0 {
		fmt.Printf("No snapshots stored for %s.\n", args[0])
		return
	}

	fmt.Printf("  %-16s  %-6s  %s\n", "Name", "Tick", "Date")
	fmt.Printf("  %-16s  %-6s  %s\n", "----", "----", "----")
	for _, e := range entries {
		fmt.Printf("  %-16s  %-6d  %s\n", e.Name, e.Tick, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runSnapshotDelete(cmd *cobra.Command, args []string) {
	store, err := openStore()
	exitOn(err, "cannot open database")
	defer store.Close()

	exitOn(store.DeleteSnapshot(args[0], args[1]), "cannot delete snapshot")
	logger.Info("snapshot deleted", "level", args[0], "name", args[1])
}
