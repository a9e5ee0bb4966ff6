// Package levels loads level descriptors from disk.
// This package depends on engine but engine does not depend on levels.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/chipsim/internal/engine"
	"github.com/vovakirdan/chipsim/internal/levels/formats"
)

// Level represents a complete level definition.
type Level struct {
	ID         string
	Descriptor engine.Descriptor
	Solutions  []formats.Solution
	Metadata   map[string]string
	FilePath   string
}

// Title returns the level title, falling back to the ID.
func (l *Level) Title() string {
	if l.Descriptor.Title != "" {
		return l.Descriptor.Title
	}
	return l.ID
}

// NewLevel builds a fresh simulation of the level.
func (l *Level) NewLevel() (*engine.Level, error) {
	d := l.Descriptor
	return engine.NewLevel(&d)
}

// NewLevelWith builds a fresh simulation with the seed and step replaced.
func (l *Level) NewLevelWith(seed uint32, step engine.Step) (*engine.Level, error) {
	d := l.Descriptor
	d.Seed = seed
	d.Step = step
	return engine.NewLevel(&d)
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by number, then ID, for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		a, b := levels[i].Descriptor.Number, levels[j].Descriptor.Number
		if a != b {
			return a < b
		}
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file and checks that the engine accepts it.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	lvl := Level{
		ID:         parsed.ID,
		Descriptor: parsed.Descriptor,
		Solutions:  parsed.Solutions,
		Metadata:   parsed.Metadata,
		FilePath:   path,
	}
	if _, err := lvl.NewLevel(); err != nil {
		return Level{}, fmt.Errorf("validating file %s: %w", path, err)
	}
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in load order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
