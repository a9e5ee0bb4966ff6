package config

import (
	_ "embed"
)

//go:embed defaults/chipsim.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration.
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Path: "~/.chipsim/chipsim.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Levels: LevelsConfig{
			Dir: "levels",
		},
		Search: SearchConfig{
			Workers:   0,
			First:     0,
			Count:     1 << 16,
			StopAfter: 0,
			Persist:   false,
		},
		Snapshot: SnapshotConfig{
			Compress: true,
		},
		Render: RenderConfig{
			Color: "auto",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
