package config

import "time"

// Config represents the complete typejuice configuration.
// It can be loaded from .typejuice/config.yml with environment variable overrides.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
}

// PathsConfig defines where declaration files and documents live.
type PathsConfig struct {
	TypeRoot string   `yaml:"type_root" mapstructure:"type_root"` // base directory for <<< typejuice: paths
	Docs     []string `yaml:"docs" mapstructure:"docs"`           // glob patterns for documents to expand
	Ignore   []string `yaml:"ignore" mapstructure:"ignore"`       // glob patterns to ignore
}

// OutputConfig defines where built documents are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// CacheConfig sizes the rendered-declaration cache.
type CacheConfig struct {
	Capacity int `yaml:"capacity" mapstructure:"capacity"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			TypeRoot: "types",
			Docs: []string{
				"**/*.md",
			},
			Ignore: []string{
				"node_modules/**",
				".git/**",
				"dist/**",
			},
		},
		Output: OutputConfig{
			Dir: "dist/docs",
		},
		Watch: WatchConfig{
			DebounceMs: 300,
		},
		Cache: CacheConfig{
			Capacity: 1000,
		},
	}
}

// Debounce returns the watch debounce as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}
