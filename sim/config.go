package sim

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment overrides, read once at load time.
const (
	EnvOutputDir = "SIM_OUTPUT_DIR"
	EnvSeed      = "SIM_SEED"
)

// Config holds everything a Service needs at construction. It is read
// once; nothing here is hot-reloadable.
type Config struct {
	Seed       int64  `yaml:"seed"`
	OutputDir  string `yaml:"output_dir"`
	RosterPath string `yaml:"roster_path,omitempty"` // empty = embedded roster
	Timezone   string `yaml:"timezone,omitempty"`    // only "UTC" is supported
	ListenAddr string `yaml:"listen_addr,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Seed:       42,
		OutputDir:  "generated",
		Timezone:   "UTC",
		ListenAddr: ":8080",
		LogLevel:   "info",
	}
}

// LoadConfig reads a YAML config file, fills unset fields with
// defaults, and applies environment overrides. An empty path yields
// the default configuration (still subject to env overrides).
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultConfig().OutputDir
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if dir := os.Getenv(EnvOutputDir); dir != "" {
		cfg.OutputDir = dir
	}
	if raw := os.Getenv(EnvSeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: parse %s=%q: %w", EnvSeed, raw, err)
		}
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("config: output_dir is required")
	}
	if c.Timezone != "UTC" {
		return fmt.Errorf("config: unsupported timezone %q (only UTC)", c.Timezone)
	}
	if c.RosterPath != "" {
		if _, err := os.Stat(c.RosterPath); err != nil {
			return fmt.Errorf("config: roster_path: %w", err)
		}
	}
	return nil
}
