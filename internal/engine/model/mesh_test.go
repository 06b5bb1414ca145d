package model

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Faultbox/shadowvol/internal/engine/shadow"
	"github.com/Faultbox/shadowvol/pkg/buffer"
	"github.com/Faultbox/shadowvol/pkg/math"
)

var (
	tetraPositions = []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 50, Y: 0, Z: 0},
		{X: 0, Y: 100, Z: 0},
		{X: 0, Y: 0, Z: -50},
	}
	tetraIndices = []uint16{0, 1, 2, 0, 2, 3, 1, 3, 2, 0, 3, 1}
)

func sharedTetra() *Mesh {
	m := &Mesh{Name: "tetra", SharedVertexData: buffer.NewPositionVertexData(tetraPositions)}
	m.AddSubMesh(&SubMesh{
		UseSharedVertices: true,
		IndexData:         buffer.NewIndexData16(tetraIndices[:6]),
		Operation:         buffer.OperationTriangleList,
	})
	m.AddSubMesh(&SubMesh{
		UseSharedVertices: true,
		IndexData:         buffer.NewIndexData16(tetraIndices[6:]),
		Operation:         buffer.OperationTriangleList,
		LodFaceLists:      []*buffer.IndexData{buffer.NewIndexData16(tetraIndices[6:9])},
	})
	return m
}

func TestEdgeListSharedVertices(t *testing.T) {
	m := sharedTetra()

	ed, err := m.EdgeList(0)
	if err != nil {
		t.Fatalf("EdgeList: %v", err)
	}
	if len(ed.EdgeGroups) != 1 {
		t.Errorf("expected 1 vertex set, got %d", len(ed.EdgeGroups))
	}
	if len(ed.Triangles) != 4 || ed.EdgeCount() != 6 || !ed.IsClosed {
		t.Errorf("lod 0: %d triangles, %d edges, closed=%t", len(ed.Triangles), ed.EdgeCount(), ed.IsClosed)
	}
	if !m.IsEdgeListBuilt() {
		t.Error("EdgeList should build the lists")
	}
}

func TestEdgeListLodLevels(t *testing.T) {
	m := sharedTetra()

	if got := m.NumLodLevels(); got != 2 {
		t.Fatalf("expected 2 lod levels, got %d", got)
	}

	ed, err := m.EdgeList(1)
	if err != nil {
		t.Fatalf("EdgeList(1): %v", err)
	}
	// Submesh 0 has no reduced list and keeps its full faces.
	if len(ed.Triangles) != 3 {
		t.Errorf("lod 1: expected 3 triangles, got %d", len(ed.Triangles))
	}
	if ed.IsClosed {
		t.Error("lod 1 should be open")
	}

	for _, lod := range []int{-1, 2} {
		if _, err := m.EdgeList(lod); !errors.Is(err, ErrInvalidLod) {
			t.Errorf("EdgeList(%d): expected ErrInvalidLod, got %v", lod, err)
		}
	}
}

func TestBuildEdgeListsMaxLodLevels(t *testing.T) {
	m := sharedTetra()
	if err := m.BuildEdgeLists(BuildOptions{MaxLodLevels: 1}); err != nil {
		t.Fatalf("BuildEdgeLists: %v", err)
	}
	if _, err := m.EdgeList(1); !errors.Is(err, ErrInvalidLod) {
		t.Errorf("expected ErrInvalidLod past the cap, got %v", err)
	}
}

func TestBuildEdgeListsOwnVertexData(t *testing.T) {
	m := &Mesh{Name: "split", SharedVertexData: buffer.NewPositionVertexData(tetraPositions)}
	m.AddSubMesh(&SubMesh{
		UseSharedVertices: true,
		IndexData:         buffer.NewIndexData16(tetraIndices[:9]),
		Operation:         buffer.OperationTriangleList,
	})
	m.AddSubMesh(&SubMesh{
		Name:      "lines",
		IndexData: buffer.NewIndexData16([]uint16{0, 1}),
		Operation: buffer.OperationLineList,
	})
	m.AddSubMesh(&SubMesh{
		VertexData: buffer.NewPositionVertexData([]math.Vec3{tetraPositions[0], tetraPositions[3], tetraPositions[1]}),
		IndexData:  buffer.NewIndexData16([]uint16{0, 1, 2}),
		Operation:  buffer.OperationTriangleList,
	})

	ed, err := m.EdgeList(0)
	if err != nil {
		t.Fatalf("EdgeList: %v", err)
	}
	if len(ed.EdgeGroups) != 2 {
		t.Fatalf("expected shared set plus one own set, got %d groups", len(ed.EdgeGroups))
	}
	if ed.EdgeGroups[1].VertexData != m.SubMeshes[2].VertexData {
		t.Error("vertex set 1 should be the last submesh's vertex data")
	}
	if ed.EdgeGroups[0].TriCount != 3 || ed.EdgeGroups[1].TriCount != 1 {
		t.Errorf("tri counts = %d, %d; want 3, 1", ed.EdgeGroups[0].TriCount, ed.EdgeGroups[1].TriCount)
	}
	if ed.EdgeCount() != 6 || !ed.IsClosed {
		t.Errorf("%d edges, closed=%t; want 6, true", ed.EdgeCount(), ed.IsClosed)
	}
}

func TestBuildEdgeListsErrors(t *testing.T) {
	t.Run("no shared vertices", func(t *testing.T) {
		m := &Mesh{Name: "broken"}
		m.AddSubMesh(&SubMesh{
			UseSharedVertices: true,
			IndexData:         buffer.NewIndexData16(tetraIndices),
			Operation:         buffer.OperationTriangleList,
		})
		if err := m.BuildEdgeLists(BuildOptions{}); !errors.Is(err, ErrNoSharedVertices) {
			t.Errorf("expected ErrNoSharedVertices, got %v", err)
		}
		if m.IsEdgeListBuilt() {
			t.Error("failed build should leave no edge lists")
		}
	})

	t.Run("no index data", func(t *testing.T) {
		m := &Mesh{Name: "broken"}
		m.AddSubMesh(&SubMesh{
			VertexData: buffer.NewPositionVertexData(tetraPositions),
			Operation:  buffer.OperationTriangleList,
		})
		if err := m.BuildEdgeLists(BuildOptions{}); !errors.Is(err, ErrNoIndexData) {
			t.Errorf("expected ErrNoIndexData, got %v", err)
		}
	})

	t.Run("vertex start", func(t *testing.T) {
		vd := buffer.NewPositionVertexData(tetraPositions)
		vd.Start = 2
		m := &Mesh{Name: "broken", SharedVertexData: vd}
		if err := m.BuildEdgeLists(BuildOptions{}); !errors.Is(err, shadow.ErrVertexStartNotZero) {
			t.Errorf("expected ErrVertexStartNotZero, got %v", err)
		}
	})
}

func TestFreeEdgeLists(t *testing.T) {
	m := sharedTetra()
	first, err := m.EdgeList(0)
	if err != nil {
		t.Fatalf("EdgeList: %v", err)
	}

	m.FreeEdgeLists()
	if m.IsEdgeListBuilt() {
		t.Fatal("lists should be freed")
	}

	second, err := m.EdgeList(0)
	if err != nil {
		t.Fatalf("EdgeList after free: %v", err)
	}
	if first == second {
		t.Error("expected a rebuilt edge list")
	}
	if second.EdgeCount() != first.EdgeCount() {
		t.Errorf("rebuilt edge count %d, want %d", second.EdgeCount(), first.EdgeCount())
	}
}

func TestEdgeListConcurrent(t *testing.T) {
	m := sharedTetra()

	var wg sync.WaitGroup
	results := make([]*shadow.EdgeData, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ed, err := m.EdgeList(0)
			if err != nil {
				t.Errorf("EdgeList: %v", err)
			}
			results[i] = ed
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent callers got different edge lists")
		}
	}
}

func TestBuildEdgeListsDump(t *testing.T) {
	m := sharedTetra()

	var lines []string
	sink := shadow.LogSinkFunc(func(msg string) { lines = append(lines, msg) })
	if err := m.BuildEdgeLists(BuildOptions{Dump: sink}); err != nil {
		t.Fatalf("BuildEdgeLists: %v", err)
	}

	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Mesh tetra LOD 0", "Mesh tetra LOD 1", "EdgeListBuilder Log", "closed: true", "closed: false"} {
		if !strings.Contains(joined, want) {
			t.Errorf("dump is missing %q", want)
		}
	}
}

func TestDeform(t *testing.T) {
	m := sharedTetra()

	tests := []struct {
		name string
		mat  math.Mat4
	}{
		{"scale", math.Scale(2, 2, 2)},
		{"translate", math.Translate(10, -5, 3)},
		{"rotate", math.RotateY(0.7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := m.Deform(tt.mat); err != nil {
				t.Fatalf("Deform: %v", err)
			}
			for lod := 0; lod < m.NumLodLevels(); lod++ {
				ed, err := m.EdgeList(lod)
				if err != nil {
					t.Fatalf("EdgeList(%d): %v", lod, err)
				}
				for i, tri := range ed.Triangles {
					v := tri.VertIndex
					want := math.FacePlane(
						tt.mat.TransformVec3(tetraPositions[v[0]]),
						tt.mat.TransformVec3(tetraPositions[v[1]]),
						tt.mat.TransformVec3(tetraPositions[v[2]]))
					if ed.TriangleFaceNormals[i] != want {
						t.Errorf("lod %d triangle %d plane = %v, want %v", lod, i, ed.TriangleFaceNormals[i], want)
					}
				}
			}
		})
	}

	// Source positions are untouched.
	_, vb, _ := m.SharedVertexData.PositionSource()
	data, err := vb.ReadData(0, 12)
	if err != nil {
		t.Fatalf("ReadData: %v", err)
	}
	if got := buffer.Vec3At(data); got != tetraPositions[0] {
		t.Errorf("vertex 0 moved to %v", got)
	}
}

func TestDeformSilhouetteFollowsRotation(t *testing.T) {
	m := sharedTetra()
	ed, err := m.EdgeList(0)
	if err != nil {
		t.Fatalf("EdgeList: %v", err)
	}
	light := math.Point(math.Vec3{X: -1000, Y: 1000, Z: 1000})

	ed.UpdateTriangleLightFacing(light)
	if !ed.TriangleLightFacings[0] {
		t.Fatal("z=0 face should face the light")
	}

	// Half a turn about Y points the z=0 face at -z.
	if err := m.Deform(math.RotateY(3.14159265)); err != nil {
		t.Fatalf("Deform: %v", err)
	}
	ed.UpdateTriangleLightFacing(light)
	if ed.TriangleLightFacings[0] {
		t.Error("rotated z=0 face should face away from the light")
	}
	if !ed.TriangleLightFacings[2] {
		t.Error("rotated slanted face should face the light")
	}
	if got := len(ed.Silhouette()); got != 3 {
		t.Errorf("expected a 3-edge silhouette, got %d", got)
	}
}

func TestBounds(t *testing.T) {
	m := sharedTetra()
	m.AddSubMesh(&SubMesh{
		VertexData: buffer.NewPositionVertexData([]math.Vec3{{X: -7, Y: 1, Z: 200}}),
		IndexData:  buffer.NewIndexData16([]uint16{0, 0, 0}),
		Operation:  buffer.OperationTriangleList,
	})

	b, err := m.Bounds()
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	want := Bounds{Min: math.Vec3{X: -7, Y: 0, Z: -50}, Max: math.Vec3{X: 50, Y: 100, Z: 200}}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
	if c := b.Center(); c != (math.Vec3{X: 21.5, Y: 50, Z: 75}) {
		t.Errorf("center = %+v, want (21.5, 50, 75)", c)
	}
	// sqrt(57² + 100² + 250²)
	if d := b.Diagonal(); d < 275.22 || d > 275.23 {
		t.Errorf("diagonal = %g, want ~275.225", d)
	}
}
