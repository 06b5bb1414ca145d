package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/shadowvol/internal/config"
	"github.com/Faultbox/shadowvol/internal/engine/model"
	"github.com/Faultbox/shadowvol/internal/logger"
)

var errUnknownFormat = errors.New("unknown mesh format")

// loadMesh picks an importer by file extension.
func loadMesh(path string) (*model.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return model.LoadGLTF(path)
	case ".stl":
		return model.LoadSTL(path)
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownFormat, path)
	}
}

// buildMesh loads path and builds its edge lists with the configured
// options, writing builder dumps when enabled.
func buildMesh(path string, cfg *config.Config) (*model.Mesh, error) {
	mesh, err := loadMesh(path)
	if err != nil {
		return nil, err
	}

	opts := model.BuildOptions{MaxLodLevels: cfg.Build.LodLevels}
	if cfg.Dump.Enabled {
		if err := os.MkdirAll(cfg.Dump.Dir, 0755); err != nil {
			return nil, fmt.Errorf("creating dump dir: %w", err)
		}
		fileCfg := logger.DefaultFileConfig(dumpPath(cfg.Dump.Dir, path))
		fileCfg.MaxSizeMB = cfg.Dump.MaxSizeMB
		sink := logger.NewFileSink(fileCfg)
		defer sink.Close()
		opts.Dump = sink
		logger.Info("writing edge list dump", zap.String("path", fileCfg.Path))
	}

	if err := mesh.BuildEdgeLists(opts); err != nil {
		return nil, err
	}
	return mesh, nil
}

// dumpPath names the dump file after the mesh file.
func dumpPath(dir, meshPath string) string {
	base := strings.TrimSuffix(filepath.Base(meshPath), filepath.Ext(meshPath))
	return filepath.Join(dir, base+".prepshadow.log")
}
