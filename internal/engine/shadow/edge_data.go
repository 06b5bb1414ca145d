package shadow

import (
	"fmt"

	"github.com/Faultbox/shadowvol/pkg/buffer"
	"github.com/Faultbox/shadowvol/pkg/math"
)

// InvalidIndex marks the missing second triangle of an unmatched edge.
const InvalidIndex = -1

// Triangle is one non-degenerate triangle of the edge list.
type Triangle struct {
	IndexSet        int       // index set the triangle came from
	VertexSet       int       // vertex set its original indices refer to
	VertIndex       [3]uint32 // original vertex indices
	SharedVertIndex [3]int    // welded common vertex indices
}

// Edge connects up to two triangles.
//
// SharedVertIndex runs in the winding direction of TriIndex[0]; TriIndex[1],
// when set, traverses the same edge in the opposite direction.
type Edge struct {
	TriIndex        [2]int
	VertIndex       [2]uint32 // original indices, in TriIndex[0]'s vertex set
	SharedVertIndex [2]int
	// Degenerate is true while only one triangle owns the edge.
	Degenerate bool
}

// EdgeGroup holds the edges created by triangles of one vertex set.
// Triangles of the set occupy Triangles[TriStart : TriStart+TriCount].
type EdgeGroup struct {
	VertexSet  int
	VertexData *buffer.VertexData
	TriStart   int
	TriCount   int
	Edges      []Edge
}

// EdgeData is the built edge list of a mesh.
//
// TriangleFaceNormals and TriangleLightFacings run parallel to Triangles.
// Face normals are unnormalized planes: XYZ is (v1-v0) x (v2-v1), W is
// -(n . v0).
type EdgeData struct {
	EdgeGroups           []EdgeGroup
	Triangles            []Triangle
	TriangleFaceNormals  []math.Vec4
	TriangleLightFacings []bool
	// IsClosed is true when every edge is shared by exactly two triangles.
	IsClosed bool
}

// EdgeCount returns the number of edges over all groups.
func (ed *EdgeData) EdgeCount() int {
	n := 0
	for i := range ed.EdgeGroups {
		n += len(ed.EdgeGroups[i].Edges)
	}
	return n
}

// UpdateTriangleLightFacing recomputes TriangleLightFacings for a light in
// homogeneous form: W=1 for a point light position, W=0 for a directional
// light given as the direction towards the light.
func (ed *EdgeData) UpdateTriangleLightFacing(light math.Vec4) {
	for i, plane := range ed.TriangleFaceNormals {
		ed.TriangleLightFacings[i] = plane.Dot(light) > 0
	}
}

// UpdateFaceNormals recomputes the face planes of the triangles belonging to
// vertexSet from deformed positions. positions must hold tightly packed
// float3 values (12-byte stride) covering every original index used by the
// set's triangles.
func (ed *EdgeData) UpdateFaceNormals(vertexSet int, positions *buffer.VertexBuffer) error {
	if vertexSet < 0 || vertexSet >= len(ed.EdgeGroups) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidVertexSet, vertexSet, len(ed.EdgeGroups))
	}
	if positions == nil {
		return fmt.Errorf("%w: no positions", ErrPositionBufferSize)
	}
	if positions.VertexSize() != 12 {
		return fmt.Errorf("%w: vertex size %d, want 12", ErrPositionBufferSize, positions.VertexSize())
	}

	eg := &ed.EdgeGroups[vertexSet]
	tris := ed.Triangles[eg.TriStart : eg.TriStart+eg.TriCount]

	numVertices := positions.NumVertices()
	for i := range tris {
		for _, idx := range tris[i].VertIndex {
			if int(idx) >= numVertices {
				return fmt.Errorf("%w: index %d with %d positions", ErrPositionBufferSize, idx, numVertices)
			}
		}
	}

	data, err := positions.LockRead(0, numVertices*12)
	if err != nil {
		return fmt.Errorf("locking positions: %w", err)
	}
	defer positions.UnlockRead()

	for i := range tris {
		idx := tris[i].VertIndex
		v0 := buffer.Vec3At(data[int(idx[0])*12:])
		v1 := buffer.Vec3At(data[int(idx[1])*12:])
		v2 := buffer.Vec3At(data[int(idx[2])*12:])
		ed.TriangleFaceNormals[eg.TriStart+i] = math.FacePlane(v0, v1, v2)
	}
	return nil
}

// Clone returns a deep copy. Vertex data references are shared.
func (ed *EdgeData) Clone() *EdgeData {
	c := &EdgeData{
		EdgeGroups:           make([]EdgeGroup, len(ed.EdgeGroups)),
		Triangles:            append([]Triangle(nil), ed.Triangles...),
		TriangleFaceNormals:  append([]math.Vec4(nil), ed.TriangleFaceNormals...),
		TriangleLightFacings: append([]bool(nil), ed.TriangleLightFacings...),
		IsClosed:             ed.IsClosed,
	}
	for i, eg := range ed.EdgeGroups {
		eg.Edges = append([]Edge(nil), eg.Edges...)
		c.EdgeGroups[i] = eg
	}
	return c
}
