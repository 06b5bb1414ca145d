package shadow

import "fmt"

// LogSink receives diagnostic dump lines.
type LogSink interface {
	LogMessage(msg string)
}

// LogSinkFunc adapts a function to LogSink.
type LogSinkFunc func(msg string)

// LogMessage calls f(msg).
func (f LogSinkFunc) LogMessage(msg string) {
	f(msg)
}

// Log dumps the registered sets, the common vertex table and, once built,
// the edge data.
func (b *EdgeListBuilder) Log(sink LogSink) {
	sink.LogMessage("EdgeListBuilder Log")
	sink.LogMessage("-------------------")
	sink.LogMessage(fmt.Sprintf("Number of vertex sets: %d", len(b.vertexData)))
	sink.LogMessage(fmt.Sprintf("Number of index sets: %d", len(b.geometries)))

	for i, vd := range b.vertexData {
		sink.LogMessage(fmt.Sprintf("Vertex set %d: vertex count %d", i, vd.Count))
	}
	for _, g := range b.geometries {
		width := "?"
		if g.indexData.Buffer != nil {
			width = g.indexData.Buffer.Type().String()
		}
		sink.LogMessage(fmt.Sprintf("Index set %d: vertex set %d, %s, start %d, count %d, %s",
			g.indexSet, g.vertexSet, g.op, g.indexData.Start, g.indexData.Count, width))
	}

	sink.LogMessage(fmt.Sprintf("Common vertex count: %d", len(b.vertices.list)))
	for _, cv := range b.vertices.list {
		sink.LogMessage(fmt.Sprintf("Common vertex %d: vertex set %d, index set %d, original index %d, position (%g, %g, %g)",
			cv.Index, cv.VertexSet, cv.IndexSet, cv.OriginalIndex, cv.Position.X, cv.Position.Y, cv.Position.Z))
	}

	if b.edgeData != nil {
		b.edgeData.Log(sink)
	}
}

// Log dumps edge groups, their triangles and edges.
func (ed *EdgeData) Log(sink LogSink) {
	sink.LogMessage("Edge Data")
	sink.LogMessage("---------")
	sink.LogMessage(fmt.Sprintf("Edge groups: %d, triangles: %d, edges: %d, closed: %t",
		len(ed.EdgeGroups), len(ed.Triangles), ed.EdgeCount(), ed.IsClosed))

	for g := range ed.EdgeGroups {
		eg := &ed.EdgeGroups[g]
		sink.LogMessage(fmt.Sprintf("Edge group %d: vertex set %d, triangles [%d, +%d), edges %d",
			g, eg.VertexSet, eg.TriStart, eg.TriCount, len(eg.Edges)))

		for t := eg.TriStart; t < eg.TriStart+eg.TriCount && t < len(ed.Triangles); t++ {
			tri := ed.Triangles[t]
			sink.LogMessage(fmt.Sprintf("  Triangle %d: index set %d, vertex set %d, original (%d, %d, %d), shared (%d, %d, %d)",
				t, tri.IndexSet, tri.VertexSet,
				tri.VertIndex[0], tri.VertIndex[1], tri.VertIndex[2],
				tri.SharedVertIndex[0], tri.SharedVertIndex[1], tri.SharedVertIndex[2]))
		}

		for i, e := range eg.Edges {
			state := "shared"
			if e.Degenerate {
				state = "degenerate"
			}
			sink.LogMessage(fmt.Sprintf("  Edge %d: triangles (%d, %d), original (%d, %d), shared (%d, %d), %s",
				i, e.TriIndex[0], e.TriIndex[1], e.VertIndex[0], e.VertIndex[1],
				e.SharedVertIndex[0], e.SharedVertIndex[1], state))
		}
	}
}
