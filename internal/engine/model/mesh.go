package model

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/shadowvol/internal/engine/shadow"
	"github.com/Faultbox/shadowvol/internal/logger"
	"github.com/Faultbox/shadowvol/pkg/buffer"
	"github.com/Faultbox/shadowvol/pkg/math"
)

// AddSubMesh appends sm and returns it.
func (m *Mesh) AddSubMesh(sm *SubMesh) *SubMesh {
	m.SubMeshes = append(m.SubMeshes, sm)
	return sm
}

// NumLodLevels returns the number of detail levels including full detail.
func (m *Mesh) NumLodLevels() int {
	n := 1
	for _, sm := range m.SubMeshes {
		n = max(n, len(sm.LodFaceLists)+1)
	}
	return n
}

// faceList returns the index data sm draws at lod. A submesh with fewer
// reduced lists than the mesh keeps its lowest one.
func (sm *SubMesh) faceList(lod int) *buffer.IndexData {
	if lod == 0 || len(sm.LodFaceLists) == 0 {
		return sm.IndexData
	}
	return sm.LodFaceLists[min(lod, len(sm.LodFaceLists))-1]
}

// BuildEdgeLists builds one edge list per LOD level. It does nothing if the
// lists are already built; call FreeEdgeLists to rebuild.
func (m *Mesh) BuildEdgeLists(opts BuildOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buildEdgeListsLocked(opts)
}

func (m *Mesh) buildEdgeListsLocked(opts BuildOptions) error {
	if m.edgeLists != nil {
		return nil
	}

	levels := m.NumLodLevels()
	if opts.MaxLodLevels > 0 {
		levels = min(levels, opts.MaxLodLevels)
	}

	lists := make([]*shadow.EdgeData, levels)
	var sets []*buffer.VertexData
	for lod := range lists {
		b := shadow.NewEdgeListBuilder()
		var err error
		sets, err = m.registerGeometry(b, lod)
		if err != nil {
			return fmt.Errorf("mesh %q lod %d: %w", m.Name, lod, err)
		}

		ed, err := b.Build()
		if err != nil {
			return fmt.Errorf("mesh %q lod %d: %w", m.Name, lod, err)
		}
		if opts.Dump != nil {
			opts.Dump.LogMessage(fmt.Sprintf("Mesh %s LOD %d", m.Name, lod))
			b.Log(opts.Dump)
		}

		logger.Debug("edge list built",
			zap.String("mesh", m.Name),
			zap.Int("lod", lod),
			zap.Int("vertexSets", len(ed.EdgeGroups)),
			zap.Int("triangles", len(ed.Triangles)),
			zap.Int("edges", ed.EdgeCount()),
			zap.Bool("closed", ed.IsClosed))
		lists[lod] = ed
	}

	m.edgeLists = lists
	m.vertexSets = sets
	return nil
}

// registerGeometry adds the vertex sets and the lod index sets of m to b.
// Shared vertex data is vertex set 0; each submesh with its own vertex data
// adds the next set. Returns the vertex data of every set in order.
func (m *Mesh) registerGeometry(b *shadow.EdgeListBuilder, lod int) ([]*buffer.VertexData, error) {
	var sets []*buffer.VertexData
	shared := -1
	if m.SharedVertexData != nil {
		set, err := b.AddVertexData(m.SharedVertexData)
		if err != nil {
			return nil, fmt.Errorf("shared vertex data: %w", err)
		}
		sets = append(sets, m.SharedVertexData)
		shared = set
	}

	for i, sm := range m.SubMeshes {
		if !sm.Operation.IsTriangles() {
			logger.Debug("skipping non-triangle submesh",
				zap.String("mesh", m.Name),
				zap.Int("submesh", i),
				zap.Stringer("operation", sm.Operation))
			continue
		}

		id := sm.faceList(lod)
		if id == nil {
			return nil, fmt.Errorf("submesh %d: %w", i, ErrNoIndexData)
		}

		set := shared
		if sm.UseSharedVertices {
			if shared < 0 {
				return nil, fmt.Errorf("submesh %d: %w", i, ErrNoSharedVertices)
			}
		} else {
			var err error
			set, err = b.AddVertexData(sm.VertexData)
			if err != nil {
				return nil, fmt.Errorf("submesh %d: %w", i, err)
			}
			sets = append(sets, sm.VertexData)
		}

		if _, err := b.AddIndexData(id, set, sm.Operation); err != nil {
			return nil, fmt.Errorf("submesh %d: %w", i, err)
		}
	}
	return sets, nil
}

// EdgeList returns the edge list of lod, building all lists on first use.
func (m *Mesh) EdgeList(lod int) (*shadow.EdgeData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.buildEdgeListsLocked(BuildOptions{}); err != nil {
		return nil, err
	}
	if lod < 0 || lod >= len(m.edgeLists) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidLod, lod, len(m.edgeLists))
	}
	return m.edgeLists[lod], nil
}

// IsEdgeListBuilt reports whether BuildEdgeLists has run since the last free.
func (m *Mesh) IsEdgeListBuilt() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.edgeLists != nil
}

// FreeEdgeLists drops all built edge lists.
func (m *Mesh) FreeEdgeLists() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edgeLists = nil
	m.vertexSets = nil
}

// Deform transforms every vertex set's positions by mat into scratch buffers
// and recomputes the face planes of every LOD edge list from them. The
// mesh's own vertex data is not modified. Edge lists are built if needed.
func (m *Mesh) Deform(mat math.Mat4) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.buildEdgeListsLocked(BuildOptions{}); err != nil {
		return err
	}

	for set, vd := range m.vertexSets {
		positions, err := transformPositions(vd, mat)
		if err != nil {
			return fmt.Errorf("vertex set %d: %w", set, err)
		}
		for lod, ed := range m.edgeLists {
			if err := ed.UpdateFaceNormals(set, positions); err != nil {
				return fmt.Errorf("lod %d vertex set %d: %w", lod, set, err)
			}
		}
	}
	return nil
}

// transformPositions returns the transformed positions of vd packed into a
// 12-byte stride buffer.
func transformPositions(vd *buffer.VertexData, mat math.Mat4) (*buffer.VertexBuffer, error) {
	elem, vb, err := vd.PositionSource()
	if err != nil {
		return nil, err
	}
	data, err := vb.LockRead(0, vb.Size())
	if err != nil {
		return nil, err
	}
	defer vb.UnlockRead()

	out := make([]math.Vec3, vb.NumVertices())
	stride := vb.VertexSize()
	for i := range out {
		out[i] = mat.TransformVec3(buffer.Vec3At(data[i*stride+elem.Offset:]))
	}
	return buffer.NewPositionBuffer(out), nil
}

// Bounds returns the bounding box over all vertex data of the mesh.
// An empty mesh yields an inverted box.
func (m *Mesh) Bounds() (Bounds, error) {
	inf := float32(gomath.Inf(1))
	b := Bounds{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}

	extend := func(vd *buffer.VertexData) error {
		positions, err := transformPositions(vd, math.Identity())
		if err != nil {
			return err
		}
		data, err := positions.ReadData(0, positions.Size())
		if err != nil {
			return err
		}
		for off := 0; off+12 <= len(data); off += 12 {
			p := buffer.Vec3At(data[off:])
			b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
			b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
		}
		return nil
	}

	if m.SharedVertexData != nil {
		if err := extend(m.SharedVertexData); err != nil {
			return b, fmt.Errorf("shared vertex data: %w", err)
		}
	}
	for i, sm := range m.SubMeshes {
		if sm.UseSharedVertices || sm.VertexData == nil {
			continue
		}
		if err := extend(sm.VertexData); err != nil {
			return b, fmt.Errorf("submesh %d: %w", i, err)
		}
	}
	return b, nil
}
