// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Drill DrillConfig `toml:"drill"`
}

// DrillConfig maps drill settings. Nil fields were not set in the file.
type DrillConfig struct {
	Sets     *[]string `toml:"sets"`
	Duration any       `toml:"duration"`
	Bell     *bool     `toml:"bell"`
}

// TrialSeconds returns the configured trial length, or nil when duration is
// unset. Anything that is not a positive whole number of seconds yields 0.
func (c DrillConfig) TrialSeconds() *int {
	if c.Duration == nil {
		return nil
	}
	seconds := parseSeconds(c.Duration)
	return &seconds
}

func parseSeconds(v any) int {
	var n int64
	switch d := v.(type) {
	case int64:
		n = d
	case float64:
		if d != math.Trunc(d) || d > math.MaxInt32 {
			return 0
		}
		n = int64(d)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(d), 10, 32)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n <= 0 || n > math.MaxInt32 {
		return 0
	}
	return int(n)
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
