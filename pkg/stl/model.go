// Package stl reads ASCII and binary STL triangle soups.
package stl

import "github.com/Faultbox/shadowvol/pkg/math"

// Triangle is one STL facet. The stored normal is kept as read; consumers
// that care about winding recompute it from the vertices.
type Triangle struct {
	Normal   math.Vec3
	Vertices [3]math.Vec3
}

// Model is a parsed STL file.
type Model struct {
	Name      string
	Triangles []Triangle
}

// NewModel creates an empty model.
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddTriangle appends a facet.
func (m *Model) AddTriangle(t Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// TriangleCount returns the number of facets.
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Positions returns the facet corners in order, three per triangle.
func (m *Model) Positions() []math.Vec3 {
	out := make([]math.Vec3, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		out = append(out, t.Vertices[0], t.Vertices[1], t.Vertices[2])
	}
	return out
}
