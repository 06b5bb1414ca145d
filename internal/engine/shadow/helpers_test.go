package shadow

import (
	"testing"

	"github.com/Faultbox/shadowvol/pkg/buffer"
	"github.com/Faultbox/shadowvol/pkg/math"
)

// Tetrahedron with outward-facing counter-clockwise triangles.
var (
	tetraPositions = []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 50, Y: 0, Z: 0},
		{X: 0, Y: 100, Z: 0},
		{X: 0, Y: 0, Z: -50},
	}
	tetraIndices = []uint16{0, 1, 2, 0, 2, 3, 1, 3, 2, 0, 3, 1}
)

type indexSet struct {
	data      *buffer.IndexData
	vertexSet int
	op        buffer.OperationType
}

func listSet(vertexSet int, indices ...uint16) indexSet {
	return indexSet{data: buffer.NewIndexData16(indices), vertexSet: vertexSet, op: buffer.OperationTriangleList}
}

// build registers vertex sets and index sets in order and builds.
func build(t *testing.T, vertexSets []*buffer.VertexData, indexSets []indexSet) (*EdgeListBuilder, *EdgeData) {
	t.Helper()
	b := NewEdgeListBuilder()
	for i, vd := range vertexSets {
		if _, err := b.AddVertexData(vd); err != nil {
			t.Fatalf("AddVertexData(%d): %v", i, err)
		}
	}
	for i, is := range indexSets {
		if _, err := b.AddIndexData(is.data, is.vertexSet, is.op); err != nil {
			t.Fatalf("AddIndexData(%d): %v", i, err)
		}
	}
	ed, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return b, ed
}

func buildTetra(t *testing.T) *EdgeData {
	t.Helper()
	_, ed := build(t,
		[]*buffer.VertexData{buffer.NewPositionVertexData(tetraPositions)},
		[]indexSet{listSet(0, tetraIndices...)})
	return ed
}

// checkInvariants verifies properties every built EdgeData must satisfy.
func checkInvariants(t *testing.T, ed *EdgeData) {
	t.Helper()

	triTotal := 0
	for _, eg := range ed.EdgeGroups {
		triTotal += eg.TriCount
		for i := eg.TriStart; i < eg.TriStart+eg.TriCount; i++ {
			if ed.Triangles[i].VertexSet != eg.VertexSet {
				t.Errorf("triangle %d in group %d has vertex set %d", i, eg.VertexSet, ed.Triangles[i].VertexSet)
			}
		}
		for i, e := range eg.Edges {
			if e.Degenerate != (e.TriIndex[1] == InvalidIndex) {
				t.Errorf("group %d edge %d: degenerate=%t but triIndex=%v", eg.VertexSet, i, e.Degenerate, e.TriIndex)
			}
			if ed.IsClosed && e.Degenerate {
				t.Errorf("closed edge data has degenerate edge %d in group %d", i, eg.VertexSet)
			}
		}
	}
	if triTotal != len(ed.Triangles) {
		t.Errorf("sum of TriCount = %d, triangles = %d", triTotal, len(ed.Triangles))
	}
	if len(ed.TriangleFaceNormals) != len(ed.Triangles) {
		t.Errorf("%d face normals for %d triangles", len(ed.TriangleFaceNormals), len(ed.Triangles))
	}
	if len(ed.TriangleLightFacings) != len(ed.Triangles) {
		t.Errorf("%d light facings for %d triangles", len(ed.TriangleLightFacings), len(ed.Triangles))
	}
	for i, tri := range ed.Triangles {
		if tri.VertexSet < 0 || tri.VertexSet >= len(ed.EdgeGroups) {
			t.Errorf("triangle %d vertex set %d out of range", i, tri.VertexSet)
		}
	}
}
