package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

var (
	flagConfig    string
	flagDebug     bool
	flagLogFile   string
	flagLodLevels = -1
	flagLight     []float32
	flagDump      bool
	flagDumpDir   string
)

// RegisterFlags adds the config flags to fs. Commands sharing fs share the
// overrides applied by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to config file")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.StringVar(&flagLogFile, "log-file", "", "Write logs to a rotated file")
	fs.IntVar(&flagLodLevels, "lod-levels", -1, "Maximum LOD edge lists to build (0 = all)")
	fs.Float32SliceVar(&flagLight, "light", nil, "Light as x,y,z,w (w=1 point, w=0 directional)")
	fs.BoolVar(&flagDump, "dump", false, "Write edge list builder dumps")
	fs.StringVar(&flagDumpDir, "dump-dir", "", "Directory for builder dumps")
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagLogFile != "" {
		cfg.Logging.LogFile = flagLogFile
	}
	if flagLodLevels >= 0 {
		cfg.Build.LodLevels = flagLodLevels
	}
	if len(flagLight) > 0 {
		if len(flagLight) != 4 {
			return fmt.Errorf("--light: %w, got %d", ErrLightElements, len(flagLight))
		}
		copy(cfg.Light.Position[:], flagLight)
	}
	if flagDump {
		cfg.Dump.Enabled = true
	}
	if flagDumpDir != "" {
		cfg.Dump.Dir = flagDumpDir
	}
	return nil
}
