package math

// Vec4 is a 4-component vector.
// Used for homogeneous positions (W=1 point, W=0 direction) and planes.
type Vec4 [4]float32

// Point returns the homogeneous form of a position (W=1).
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Direction returns the homogeneous form of a direction (W=0).
func Direction(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 0}
}

// Dot returns the 4D dot product.
func (v Vec4) Dot(other Vec4) float32 {
	return v[0]*other[0] + v[1]*other[1] + v[2]*other[2] + v[3]*other[3]
}
