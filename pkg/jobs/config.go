// Package jobs runs generation jobs behind an HTTP interface: a client
// posts a parameter set, the server shells out to the generator for
// isolation, and the produced meshes are served per job until cleaned
// up.
package jobs

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the job server settings.
type Config struct {
	Addr           string `toml:"addr"`
	OutputDir      string `toml:"output_dir"`
	GeneratorBin   string `toml:"generator_bin"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		OutputDir:      "output",
		GeneratorBin:   "groundbox",
		TimeoutSeconds: 60,
	}
}

// LoadConfig reads a TOML config file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	if cfg.TimeoutSeconds <= 0 {
		return Config{}, fmt.Errorf("config %s: timeout_seconds must be positive", path)
	}
	return cfg, nil
}

// Timeout returns the per-job generation deadline.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
