// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction converts longitude/latitude angles (degrees) to a normalized
// light direction. Longitude is rotation around the Y axis, latitude the
// elevation from the horizon. The vector points from the light toward the
// scene.
func Direction(longitude, latitude float32) mgl32.Vec3 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return mgl32.Vec3{-x, -y, -z}
}

// Default is the key light used for every stage: high, slightly to the
// camera's right.
func Default() mgl32.Vec3 {
	return Direction(30, 55)
}
