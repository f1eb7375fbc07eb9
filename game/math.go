package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// Float32ApproxEq determines whether two floating point numbers are close enough
// to each other by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec2ApproxEq determines whether two vectors are component-wise equal within
// a threshold of 1e-5.
func Vec2ApproxEq(a, b mgl32.Vec2) bool {
	return Float32ApproxEq(a[0], b[0]) && Float32ApproxEq(a[1], b[1])
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// RoundVec32 will round a 32-bit vector to a given precision.
func RoundVec32(v mgl32.Vec3, p int) mgl32.Vec3 {
	return mgl32.Vec3{Round32(v.X(), p), Round32(v.Y(), p), Round32(v.Z(), p)}
}

// HeadingVectors returns the forward and right unit vectors on the horizontal
// plane for the given yaw in degrees.
func HeadingVectors(yaw float32) (forward, right mgl32.Vec3) {
	rad := mgl32.DegToRad(yaw)
	sin, cos := math32.Sin(rad), math32.Cos(rad)
	forward = mgl32.Vec3{-sin, 0, cos}
	right = mgl32.Vec3{cos, 0, sin}
	return forward, right
}
