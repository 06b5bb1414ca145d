// Package math provides the float32 vector and matrix types used by the
// edge-list builder and the mesh layer.
package math

import "math"

// Vec3 is a 3D vector.
//
// Vec3 is comparable; two positions are the same vertex only when all three
// components compare equal with ==.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// FacePlane returns the unnormalized plane of triangle (v0, v1, v2).
// XYZ holds (v1-v0) x (v2-v1), whose length is twice the triangle area;
// W holds -(n . v0) so that FacePlane(...).Dot(point, 1) is the scaled
// signed distance of point from the plane.
func FacePlane(v0, v1, v2 Vec3) Vec4 {
	n := v1.Sub(v0).Cross(v2.Sub(v1))
	return Vec4{n.X, n.Y, n.Z, -n.Dot(v0)}
}
