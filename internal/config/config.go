// Package config handles edgetool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Validation errors.
var (
	ErrLogLevel      = errors.New("unknown log level")
	ErrLodLevels     = errors.New("lod_levels must not be negative")
	ErrLightW        = errors.New("light w must be 0 (directional) or 1 (point)")
	ErrLightZero     = errors.New("directional light needs a non-zero direction")
	ErrDumpDir       = errors.New("dump enabled without a directory")
	ErrDumpSize      = errors.New("dump max_size_mb must be positive")
	ErrLightElements = errors.New("light needs exactly 4 components")
)

// Config holds all edgetool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Build   BuildConfig   `yaml:"build"`
	Light   LightConfig   `yaml:"light"`
	Dump    DumpConfig    `yaml:"dump"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// BuildConfig holds edge list build settings.
type BuildConfig struct {
	LodLevels            int  `yaml:"lod_levels"` // 0 builds every level
	SkipDegenerateReport bool `yaml:"skip_degenerate_report"`
}

// LightConfig holds the light used for facing and silhouette queries.
type LightConfig struct {
	// Position is x, y, z, w: w=1 for a point light, w=0 for a direction
	// towards a directional light.
	Position [4]float32 `yaml:"position"`
}

// DumpConfig holds builder dump file settings.
type DumpConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Dir       string `yaml:"dir"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Build: BuildConfig{
			LodLevels:            0,
			SkipDegenerateReport: false,
		},
		Light: LightConfig{
			Position: [4]float32{100, 500, 200, 1},
		},
		Dump: DumpConfig{
			Enabled:   false,
			Dir:       "dumps",
			MaxSizeMB: 10,
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("%w: %q", ErrLogLevel, c.Logging.Level))
	}

	if c.Build.LodLevels < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %d", ErrLodLevels, c.Build.LodLevels))
	}

	p := c.Light.Position
	switch p[3] {
	case 1:
	case 0:
		if p[0] == 0 && p[1] == 0 && p[2] == 0 {
			err = multierr.Append(err, ErrLightZero)
		}
	default:
		err = multierr.Append(err, fmt.Errorf("%w: got %g", ErrLightW, p[3]))
	}

	if c.Dump.Enabled {
		if c.Dump.Dir == "" {
			err = multierr.Append(err, ErrDumpDir)
		}
		if c.Dump.MaxSizeMB <= 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %d", ErrDumpSize, c.Dump.MaxSizeMB))
		}
	}

	return err
}
