package shadow

import "github.com/Faultbox/shadowvol/pkg/math"

// CommonVertex is a welded vertex: one per distinct position.
// VertexSet, IndexSet and OriginalIndex record the first occurrence only.
type CommonVertex struct {
	Index         int
	Position      math.Vec3
	VertexSet     int
	IndexSet      int
	OriginalIndex uint32
}

// commonVertices welds positions by exact component equality. Two unrelated
// vertices that happen to coincide are welded too; closed-hull detection
// relies on seam duplicates welding, so no tolerance is applied.
type commonVertices struct {
	list  []CommonVertex
	index map[math.Vec3]int
}

func newCommonVertices() commonVertices {
	return commonVertices{index: make(map[math.Vec3]int)}
}

// resolve returns the common index for pos, creating it on first sight.
func (c *commonVertices) resolve(pos math.Vec3, vertexSet, indexSet int, originalIndex uint32) int {
	if i, ok := c.index[pos]; ok {
		return i
	}
	i := len(c.list)
	c.list = append(c.list, CommonVertex{
		Index:         i,
		Position:      pos,
		VertexSet:     vertexSet,
		IndexSet:      indexSet,
		OriginalIndex: originalIndex,
	})
	c.index[pos] = i
	return i
}
