// Package model holds meshes made of submeshes over shared or dedicated
// vertex data, builds their per-LOD shadow edge lists and imports them
// from glTF and STL.
package model

import (
	"errors"
	"sync"

	"github.com/Faultbox/shadowvol/internal/engine/shadow"
	"github.com/Faultbox/shadowvol/pkg/buffer"
	"github.com/Faultbox/shadowvol/pkg/math"
)

// Mesh errors.
var (
	ErrNoSharedVertices = errors.New("submesh uses shared vertices but mesh has none")
	ErrNoIndexData      = errors.New("submesh has no index data")
	ErrInvalidLod       = errors.New("lod level out of range")
)

// SubMesh is one drawable part of a mesh.
type SubMesh struct {
	Name string
	// UseSharedVertices draws IndexData against Mesh.SharedVertexData
	// instead of VertexData.
	UseSharedVertices bool
	VertexData        *buffer.VertexData
	IndexData         *buffer.IndexData
	Operation         buffer.OperationType
	// LodFaceLists holds the reduced index data of LOD 1, 2, ...
	LodFaceLists []*buffer.IndexData
}

// Mesh is a set of submeshes plus the edge lists built from them.
type Mesh struct {
	Name             string
	SharedVertexData *buffer.VertexData
	SubMeshes        []*SubMesh

	mu sync.Mutex
	// edgeLists[lod] is nil until BuildEdgeLists.
	edgeLists []*shadow.EdgeData
	// vertexSets lists the vertex data of each edge list vertex set.
	vertexSets []*buffer.VertexData
}

// BuildOptions controls edge list building.
type BuildOptions struct {
	// MaxLodLevels caps the number of LOD edge lists built. 0 builds all.
	MaxLodLevels int
	// Dump receives the builder log of every LOD when set.
	Dump shadow.LogSink
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Diagonal returns the length of the box diagonal.
func (b Bounds) Diagonal() float32 {
	return b.Max.Sub(b.Min).Length()
}
