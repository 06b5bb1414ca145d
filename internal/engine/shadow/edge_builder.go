// Package shadow builds the triangle/edge connectivity used for stencil
// shadow volumes and keeps the per-light facing state silhouette detection
// reads each frame.
package shadow

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/Faultbox/shadowvol/pkg/buffer"
	"github.com/Faultbox/shadowvol/pkg/math"
)

// Edge list errors.
var (
	ErrNilData              = errors.New("nil vertex or index data")
	ErrVertexStartNotZero   = errors.New("edge list building requires vertex start 0")
	ErrNoPositionElement    = errors.New("vertex data has no float3 position element")
	ErrUnsupportedOperation = errors.New("only triangle list, strip and fan are supported")
	ErrInvalidVertexSet     = errors.New("vertex set out of range")
	ErrPositionBufferSize   = errors.New("position buffer does not match vertex set")
	ErrAlreadyBuilt         = errors.New("edge list already built")
)

// geometry is one registered index set.
type geometry struct {
	vertexSet int
	indexSet  int
	indexData *buffer.IndexData
	op        buffer.OperationType
}

// edgeRef locates an edge waiting for its second triangle.
type edgeRef struct {
	group int
	edge  int
}

// EdgeListBuilder turns vertex sets and index sets into an EdgeData.
// A builder is used once: register everything, call Build, discard.
type EdgeListBuilder struct {
	vertexData []*buffer.VertexData
	geometries []geometry
	vertices   commonVertices

	edgeData *EdgeData
	// pending maps a directed shared-vertex pair to its unmatched edge.
	pending map[[2]int]edgeRef
	// open counts edges still missing their second triangle.
	open  int
	built bool
}

// NewEdgeListBuilder creates an empty builder.
func NewEdgeListBuilder() *EdgeListBuilder {
	return &EdgeListBuilder{
		vertices: newCommonVertices(),
		pending:  make(map[[2]int]edgeRef),
	}
}

// AddVertexData registers a vertex set and returns its index.
func (b *EdgeListBuilder) AddVertexData(vd *buffer.VertexData) (int, error) {
	if vd == nil || vd.Declaration == nil || vd.Binding == nil {
		return 0, ErrNilData
	}
	if vd.Start != 0 {
		return 0, fmt.Errorf("%w: start is %d", ErrVertexStartNotZero, vd.Start)
	}
	elem, ok := vd.Declaration.FindElementBySemantic(buffer.SemanticPosition, 0)
	if !ok || elem.Type != buffer.TypeFloat3 {
		return 0, ErrNoPositionElement
	}
	b.vertexData = append(b.vertexData, vd)
	return len(b.vertexData) - 1, nil
}

// AddIndexData registers an index set drawn with op against vertexSet and
// returns the index set id. Registration order defines the id; processing
// order is by vertex set.
func (b *EdgeListBuilder) AddIndexData(id *buffer.IndexData, vertexSet int, op buffer.OperationType) (int, error) {
	if id == nil || id.Buffer == nil {
		return 0, ErrNilData
	}
	if !op.IsTriangles() {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedOperation, op)
	}
	if vertexSet < 0 || vertexSet >= len(b.vertexData) {
		return 0, fmt.Errorf("%w: %d of %d", ErrInvalidVertexSet, vertexSet, len(b.vertexData))
	}
	g := geometry{
		vertexSet: vertexSet,
		indexSet:  len(b.geometries),
		indexData: id,
		op:        op,
	}
	b.geometries = append(b.geometries, g)
	return g.indexSet, nil
}

// Build constructs the edge list. Degenerate triangles are dropped and
// open or non-manifold edges are left degenerate; neither is an error.
func (b *EdgeListBuilder) Build() (*EdgeData, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	b.built = true

	// Triangles of one vertex set must be contiguous.
	sorted := slices.Clone(b.geometries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].vertexSet != sorted[j].vertexSet {
			return sorted[i].vertexSet < sorted[j].vertexSet
		}
		return sorted[i].indexSet < sorted[j].indexSet
	})

	b.edgeData = &EdgeData{
		EdgeGroups: make([]EdgeGroup, len(b.vertexData)),
	}
	for i, vd := range b.vertexData {
		b.edgeData.EdgeGroups[i] = EdgeGroup{VertexSet: i, VertexData: vd}
	}

	for _, g := range sorted {
		if err := b.buildTrianglesEdges(g); err != nil {
			return nil, fmt.Errorf("index set %d: %w", g.indexSet, err)
		}
	}

	b.edgeData.TriangleLightFacings = make([]bool, len(b.edgeData.Triangles))
	// A duplicated triangle leaves degenerate edges with no pending entry.
	b.edgeData.IsClosed = b.open == 0
	return b.edgeData, nil
}

// CommonVertices returns the welded vertex table built so far.
func (b *EdgeListBuilder) CommonVertices() []CommonVertex {
	return b.vertices.list
}

func (b *EdgeListBuilder) buildTrianglesEdges(g geometry) error {
	elem, vb, err := b.vertexData[g.vertexSet].PositionSource()
	if err != nil {
		return err
	}
	vdata, err := vb.LockRead(0, vb.Size())
	if err != nil {
		return fmt.Errorf("locking vertices: %w", err)
	}
	defer vb.UnlockRead()
	positions := positionReader{data: vdata, stride: vb.VertexSize(), offset: elem.Offset}

	indices, err := g.indexData.Lock()
	if err != nil {
		return err
	}
	defer g.indexData.Unlock()

	ed := b.edgeData
	eg := &ed.EdgeGroups[g.vertexSet]
	triIndex := len(ed.Triangles)
	if eg.TriCount == 0 {
		eg.TriStart = triIndex
	}

	iterations := triangleCount(g.op, indices.Len())
	ed.Triangles = slices.Grow(ed.Triangles, iterations)
	ed.TriangleFaceNormals = slices.Grow(ed.TriangleFaceNormals, iterations)

	err = walkTriangles(indices, g.op, func(idx [3]uint32) error {
		tri := Triangle{IndexSet: g.indexSet, VertexSet: g.vertexSet, VertIndex: idx}
		var v [3]math.Vec3
		for i := range idx {
			p, err := positions.at(idx[i])
			if err != nil {
				return err
			}
			v[i] = p
			tri.SharedVertIndex[i] = b.vertices.resolve(p, g.vertexSet, g.indexSet, idx[i])
		}

		s := tri.SharedVertIndex
		if s[0] == s[1] || s[1] == s[2] || s[2] == s[0] {
			return nil
		}

		ed.TriangleFaceNormals = append(ed.TriangleFaceNormals, math.FacePlane(v[0], v[1], v[2]))
		ed.Triangles = append(ed.Triangles, tri)

		b.connectOrCreateEdge(g.vertexSet, triIndex, idx[0], idx[1], s[0], s[1])
		b.connectOrCreateEdge(g.vertexSet, triIndex, idx[1], idx[2], s[1], s[2])
		b.connectOrCreateEdge(g.vertexSet, triIndex, idx[2], idx[0], s[2], s[0])
		triIndex++
		return nil
	})

	eg.TriCount = triIndex - eg.TriStart
	return err
}

// connectOrCreateEdge completes the pending edge running shared1->shared0,
// or records a new pending edge shared0->shared1 in vertexSet's group.
// A completed edge leaves the pending map, so a third triangle on the same
// edge starts a new one.
func (b *EdgeListBuilder) connectOrCreateEdge(vertexSet, triIndex int, vert0, vert1 uint32, shared0, shared1 int) {
	reverse := [2]int{shared1, shared0}
	if ref, ok := b.pending[reverse]; ok {
		e := &b.edgeData.EdgeGroups[ref.group].Edges[ref.edge]
		e.TriIndex[1] = triIndex
		e.Degenerate = false
		delete(b.pending, reverse)
		b.open--
		return
	}

	eg := &b.edgeData.EdgeGroups[vertexSet]
	key := [2]int{shared0, shared1}
	// A same-direction duplicate never displaces the edge already waiting.
	if _, ok := b.pending[key]; !ok {
		b.pending[key] = edgeRef{group: vertexSet, edge: len(eg.Edges)}
	}
	eg.Edges = append(eg.Edges, Edge{
		TriIndex:        [2]int{triIndex, InvalidIndex},
		VertIndex:       [2]uint32{vert0, vert1},
		SharedVertIndex: [2]int{shared0, shared1},
		Degenerate:      true,
	})
	b.open++
}
