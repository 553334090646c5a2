package vmath

import (
	"math"
)

// Vec3 is a float64 3D vector
// Orbit geometry is continuous and never touches a grid, so the whole
// pipeline stays float-native; no fixed-point conversion overhead in hot paths
type Vec3 struct {
	X, Y, Z float64
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3Dist returns Euclidean distance between two points
func V3Dist(a, b Vec3) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// V3DistSq returns squared distance; use for comparisons to skip the sqrt
func V3DistSq(a, b Vec3) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return dx*dx + dy*dy + dz*dz
}

// V3ClampMagnitude limits vector magnitude
func V3ClampMagnitude(v Vec3, maxMag float64) Vec3 {
	magSq := V3MagSq(v)
	if magSq <= maxMag*maxMag {
		return v
	}
	return V3Scale(V3Normalize(v), maxMag)
}

// V3Lerp interpolates between a and b, t in [0,1]
func V3Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}
