// Package lighting converts light descriptions into the homogeneous vectors
// used for triangle light facing.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/shadowvol/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun. Longitude rotates around the Y axis,
// latitude is the elevation above the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * gomath.Pi / 180.0
	latRad := float64(latitude) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(latRad) * gomath.Sin(lonRad)),
		Y: float32(gomath.Sin(latRad)),
		Z: float32(gomath.Cos(latRad) * gomath.Cos(lonRad)),
	}
}

// Sun returns the directional light for the given sun angles (W=0).
func Sun(longitude, latitude float32) math.Vec4 {
	return math.Direction(SunDirection(longitude, latitude))
}

// PointLight returns the light for a point light at pos (W=1).
func PointLight(pos math.Vec3) math.Vec4 {
	return math.Point(pos)
}
