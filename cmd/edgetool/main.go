// Package main is the entry point for edgetool, which builds and inspects
// shadow volume edge lists of glTF and STL meshes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/shadowvol/internal/config"
	"github.com/Faultbox/shadowvol/internal/logger"
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "edgetool",
	Short: "Build and inspect shadow volume edge lists",
	Long: `edgetool loads glTF (.gltf/.glb) and STL meshes, builds the triangle and
edge connectivity used for stencil shadow volumes, and reports closure,
open edges and light silhouettes.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("level", cfg.Logging.Level),
		zap.Int("lodLevels", cfg.Build.LodLevels),
		zap.Bool("dump", cfg.Dump.Enabled))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
