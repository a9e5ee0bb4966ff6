// chipsim replays, searches and inspects levels on the tick engine.
//
// Usage:
//
//	chipsim levels                         - List available levels
//	chipsim show <level> [moves]           - Draw the board after optional moves
//	chipsim replay <level> [moves]         - Play moves or verify recorded solutions
//	chipsim seeds <level> <moves>          - Search RNG seeds for a move string
//	chipsim solutions <level>              - Show stored solutions
//	chipsim snapshot save|load|list|delete - Manage stored snapshots
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.chipsim, ./configs)
//	--db <path>         - Set database path (default: ~/.chipsim/chipsim.db)
//	--levels <dir>      - Level directory
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chipsim/internal/config"
	"github.com/vovakirdan/chipsim/internal/levels"
	"github.com/vovakirdan/chipsim/internal/storage"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLevelsDir string
	flagLogLevel  string

	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chipsim",
	Short: "chipsim - deterministic tile puzzle simulator",
	Long: `chipsim runs levels on a deterministic tick engine that reproduces
the legacy game's rules, so recorded move lists and RNG seeds give the same
outcome every time.

Available commands:
  levels     - Show all available levels
  show       - Draw a level, optionally after playing moves
  replay     - Play a move string or verify recorded solutions
  seeds      - Search RNG seeds that let a move string win
  solutions  - View stored solutions
  snapshot   - Save and restore level states

Examples:
  chipsim levels
  chipsim show lesson-1 rr
  chipsim replay lesson-1
  chipsim seeds walker rrrrrrr --count 1000
  chipsim snapshot save lesson-1 start rr`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Level directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(seedsCmd)
	rootCmd.AddCommand(solutionsCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Database.Path = flagDBPath
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "chipsim",
		Level:           level,
	})
	return nil
}

// loadLevel resolves a level by ID in the level directory, or by file path.
func loadLevel(ref string) (levels.Level, error) {
	loader := levelsLoader()
	if ext := filepath.Ext(ref); ext != "" {
		if _, err := os.Stat(ref); err == nil {
			return loader.LoadFile(ref)
		}
	}
	lvl, err := loader.LoadByID(ref)
	if err != nil {
		if ids, listErr := loader.ListIDs(); listErr == nil {
			logger.Debug("known levels", "dir", cfg.Levels.Dir, "ids", ids)
		}
		return levels.Level{}, err
	}
	return lvl, nil
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	logger.Debug("database opened", "path", cfg.Database.Path)
	return store, nil
}

// exitOn logs err and exits when it is non-nil.
func exitOn(err error, msg string) {
	if err == nil {
		return
	}
	logger.Error(msg, "err", err)
	os.Exit(1)
}

func levelsLoader() *levels.Loader {
	return levels.NewLoader(cfg.Levels.Dir)
}
