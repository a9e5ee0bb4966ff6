// Package config provides YAML-based settings for the chipsim tools.
package config

// Config contains all tool configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Levels   LevelsConfig   `yaml:"levels"`
	Search   SearchConfig   `yaml:"search"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Render   RenderConfig   `yaml:"render"`
}

// DatabaseConfig locates the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig sets the charmbracelet/log level.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn" or "error"
}

// LevelsConfig locates level descriptor files.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}

// SearchConfig defines the default seed range and worker pool.
type SearchConfig struct {
	Workers   int    `yaml:"workers"` // 0 = one per CPU
	First     uint32 `yaml:"first"`
	Count     int    `yaml:"count"`
	StopAfter int    `yaml:"stop_after"` // 0 = search the whole range
	Persist   bool   `yaml:"persist"`
}

// SnapshotConfig selects the snapshot encoding.
type SnapshotConfig struct {
	Compress bool `yaml:"compress"`
}

// RenderConfig controls the text board dump.
type RenderConfig struct {
	Color string `yaml:"color"` // "auto", "always" or "never"
	Names bool   `yaml:"names"` // append a legend of tile names
}
