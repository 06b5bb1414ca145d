package model

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shadowvol/internal/logger"
	"github.com/Faultbox/shadowvol/pkg/buffer"
	"github.com/Faultbox/shadowvol/pkg/stl"
)

// LoadSTL parses an STL file and converts it with FromSTL.
func LoadSTL(path string) (*Mesh, error) {
	m, err := stl.Parse(path)
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		m.Name = path
	}
	return FromSTL(m), nil
}

// FromSTL converts a triangle soup into a single-submesh mesh with one vertex
// per facet corner. The edge list builder welds the corners back together.
func FromSTL(m *stl.Model) *Mesh {
	positions := m.Positions()

	indices := make([]uint32, len(positions))
	for i := range indices {
		indices[i] = uint32(i)
	}

	mesh := &Mesh{Name: m.Name}
	mesh.AddSubMesh(&SubMesh{
		Name:       fmt.Sprintf("%s/0", m.Name),
		VertexData: buffer.NewPositionVertexData(positions),
		IndexData:  buffer.NewIndexData32(indices),
		Operation:  buffer.OperationTriangleList,
	})

	logger.Debug("STL mesh loaded",
		zap.String("mesh", m.Name),
		zap.Int("triangles", m.TriangleCount()))
	return mesh
}
