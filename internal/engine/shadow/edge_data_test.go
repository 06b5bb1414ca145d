package shadow

import (
	"errors"
	"testing"

	"github.com/Faultbox/shadowvol/pkg/buffer"
	"github.com/Faultbox/shadowvol/pkg/math"
)

func TestFacePlanes(t *testing.T) {
	ed := buildTetra(t)

	for i, tri := range ed.Triangles {
		v := tri.VertIndex
		want := math.FacePlane(tetraPositions[v[0]], tetraPositions[v[1]], tetraPositions[v[2]])
		if ed.TriangleFaceNormals[i] != want {
			t.Errorf("triangle %d plane = %v, want %v", i, ed.TriangleFaceNormals[i], want)
		}
	}
	// Outward normals: the z=0 face points +z, the x=0 face -x.
	if n := ed.TriangleFaceNormals[0]; n[2] <= 0 {
		t.Errorf("triangle 0 normal %v should point +z", n)
	}
	if n := ed.TriangleFaceNormals[1]; n[0] >= 0 {
		t.Errorf("triangle 1 normal %v should point -x", n)
	}
}

func TestUpdateTriangleLightFacing(t *testing.T) {
	ed := buildTetra(t)

	tests := []struct {
		name  string
		light math.Vec4
		want  []bool
	}{
		{"point above", math.Point(math.Vec3{X: 0, Y: 0, Z: 1000}), []bool{true, false, false, false}},
		{"directional +z", math.Direction(math.Vec3{X: 0, Y: 0, Z: 1}), []bool{true, false, false, false}},
		{"point +x", math.Point(math.Vec3{X: 1000, Y: 0, Z: 0}), []bool{false, false, true, false}},
		{"directional -x", math.Direction(math.Vec3{X: -1, Y: 0, Z: 0}), []bool{false, true, false, false}},
		{"point inside", math.Point(math.Vec3{X: 5, Y: 5, Z: -5}), []bool{false, false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed.UpdateTriangleLightFacing(tt.light)
			for i, want := range tt.want {
				if ed.TriangleLightFacings[i] != want {
					t.Errorf("triangle %d facing = %t, want %t", i, ed.TriangleLightFacings[i], want)
				}
			}
		})
	}
}

func TestUpdateFaceNormals(t *testing.T) {
	ed := buildTetra(t)

	scaled := make([]math.Vec3, len(tetraPositions))
	for i, p := range tetraPositions {
		scaled[i] = p.Scale(2)
	}
	if err := ed.UpdateFaceNormals(0, buffer.NewPositionBuffer(scaled)); err != nil {
		t.Fatalf("UpdateFaceNormals: %v", err)
	}
	for i, tri := range ed.Triangles {
		v := tri.VertIndex
		want := math.FacePlane(scaled[v[0]], scaled[v[1]], scaled[v[2]])
		if ed.TriangleFaceNormals[i] != want {
			t.Errorf("triangle %d plane = %v, want %v", i, ed.TriangleFaceNormals[i], want)
		}
	}
	if ed.TriangleFaceNormals[0] != (math.Vec4{0, 0, 20000, 0}) {
		t.Errorf("scaled z=0 face plane = %v", ed.TriangleFaceNormals[0])
	}
}

func TestUpdateFaceNormalsSingleVertexSet(t *testing.T) {
	var vertexSets []*buffer.VertexData
	var sets []indexSet
	for i := 0; i < 4; i++ {
		tri := tetraIndices[i*3 : i*3+3]
		vertexSets = append(vertexSets, buffer.NewPositionVertexData([]math.Vec3{
			tetraPositions[tri[0]], tetraPositions[tri[1]], tetraPositions[tri[2]],
		}))
		sets = append(sets, listSet(i, 0, 1, 2))
	}
	_, ed := build(t, vertexSets, sets)
	before := append([]math.Vec4(nil), ed.TriangleFaceNormals...)

	moved := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	if err := ed.UpdateFaceNormals(2, buffer.NewPositionBuffer(moved)); err != nil {
		t.Fatalf("UpdateFaceNormals: %v", err)
	}
	for i := range ed.TriangleFaceNormals {
		if i == 2 {
			if want := math.FacePlane(moved[0], moved[1], moved[2]); ed.TriangleFaceNormals[i] != want {
				t.Errorf("triangle 2 plane = %v, want %v", ed.TriangleFaceNormals[i], want)
			}
			continue
		}
		if ed.TriangleFaceNormals[i] != before[i] {
			t.Errorf("triangle %d plane changed from %v to %v", i, before[i], ed.TriangleFaceNormals[i])
		}
	}
}

func TestUpdateFaceNormalsErrors(t *testing.T) {
	ed := buildTetra(t)

	tests := []struct {
		name      string
		vertexSet int
		positions *buffer.VertexBuffer
		want      error
	}{
		{"negative set", -1, buffer.NewPositionBuffer(tetraPositions), ErrInvalidVertexSet},
		{"set past end", 1, buffer.NewPositionBuffer(tetraPositions), ErrInvalidVertexSet},
		{"interleaved stride", 0, buffer.NewVertexBuffer(24, 4), ErrPositionBufferSize},
		{"too few positions", 0, buffer.NewPositionBuffer(tetraPositions[:3]), ErrPositionBufferSize},
		{"nil positions", 0, nil, ErrPositionBufferSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ed.UpdateFaceNormals(tt.vertexSet, tt.positions)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestClone(t *testing.T) {
	ed := buildTetra(t)
	c := ed.Clone()

	c.EdgeGroups[0].Edges[0].TriIndex[1] = 99
	c.Triangles[0].IndexSet = 5
	c.TriangleFaceNormals[0][0] = 1
	c.TriangleLightFacings[0] = true

	if ed.EdgeGroups[0].Edges[0].TriIndex[1] == 99 {
		t.Error("clone shares edges")
	}
	if ed.Triangles[0].IndexSet == 5 {
		t.Error("clone shares triangles")
	}
	if ed.TriangleFaceNormals[0][0] == 1 {
		t.Error("clone shares face normals")
	}
	if ed.TriangleLightFacings[0] {
		t.Error("clone shares light facings")
	}
	if c.EdgeGroups[0].VertexData != ed.EdgeGroups[0].VertexData {
		t.Error("clone should keep the vertex data reference")
	}
	if c.IsClosed != ed.IsClosed || c.EdgeCount() != ed.EdgeCount() {
		t.Error("clone lost summary state")
	}
}
