// Package config loads the engine's ambient configuration: the namespace
// home directory, the hybrid backend's disk-spill threshold, and the REST
// listener's address (SPEC_FULL.md §1). It generalizes the teacher's
// single `-config` flag into a structured TOML document, overridable by
// the OXIDE_HOME environment variable for the home directory specifically.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the engine's top-level configuration. Per-table schema
// descriptors remain the sibling JSON documents spec.md §6 mandates; this
// struct only carries engine-wide settings.
type Config struct {
	Home                 string `toml:"home"`
	ListenAddress        string `toml:"listen_address"`
	HybridSpillThreshold int64  `toml:"hybrid_spill_threshold"`
}

// Default returns the configuration used when no file is given and no
// environment override is set.
func Default() Config {
	return Config{
		ListenAddress:        ":8080",
		HybridSpillThreshold: 1 << 20,
	}
}

// Load reads path as a TOML document, falling back to Default for any
// field the file leaves unset. An empty path skips the file read entirely.
// The OXIDE_HOME environment variable always wins over both the file and
// the default, matching oxide::home's own precedence (platform/oxide).
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "decoding config file %q", path)
		}
	}
	if home := os.Getenv("OXIDE_HOME"); home != "" {
		cfg.Home = home
	}
	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, errors.Wrap(err, "resolving default home directory")
		}
		cfg.Home = home
	}
	return cfg, nil
}
