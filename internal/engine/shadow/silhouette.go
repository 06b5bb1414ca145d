package shadow

// SilhouetteEdge is an edge on the light/shadow boundary.
// VertIndex is ordered so that it follows the winding of the light-facing
// triangle; the extruded quad built from it faces away from the mesh.
type SilhouetteEdge struct {
	VertexSet int
	Edge      int
	VertIndex [2]uint32
	// Open is true for a degenerate edge whose only triangle faces the light.
	Open bool
}

// Silhouette scans the edge groups using the current TriangleLightFacings.
// Call UpdateTriangleLightFacing first.
func (ed *EdgeData) Silhouette() []SilhouetteEdge {
	var out []SilhouetteEdge
	for g := range ed.EdgeGroups {
		eg := &ed.EdgeGroups[g]
		for i := range eg.Edges {
			e := &eg.Edges[i]
			facing := ed.TriangleLightFacings[e.TriIndex[0]]
			if e.Degenerate {
				if !facing {
					continue
				}
			} else if facing == ed.TriangleLightFacings[e.TriIndex[1]] {
				continue
			}

			v := e.VertIndex
			if !facing {
				v[0], v[1] = v[1], v[0]
			}
			out = append(out, SilhouetteEdge{
				VertexSet: eg.VertexSet,
				Edge:      i,
				VertIndex: v,
				Open:      e.Degenerate,
			})
		}
	}
	return out
}
