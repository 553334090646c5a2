package sphere

import (
	"math"

	"github.com/lixenwraith/communion/vmath"
)

// GoldenAngle is pi*(3-sqrt(5)), the azimuthal step of the Fibonacci lattice
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// pole is the canonical fallback direction for degenerate inputs
var pole = vmath.Vec3{X: 0, Y: 1, Z: 0}

// Point returns the unit direction for lattice slot index of total points
// Deterministic and pure: the same (index,total) always yields the same point,
// which is what makes slot-index stability translate into visual stability
//
// Construction: y descends linearly from +1 to -1, azimuth advances by the
// golden angle per index; yields near-uniform spacing for total >= ~10
//
// Degenerate inputs return finite canonical outputs, never NaN:
// total <= 1 and index <= 0 map to the +Y pole, index >= total clamps
func Point(index, total int) vmath.Vec3 {
	if total <= 1 || index <= 0 {
		return pole
	}
	if index >= total {
		index = total - 1
	}

	y := 1 - 2*float64(index)/float64(total-1)
	radiusAtY := math.Sqrt(math.Max(0, 1-y*y))
	azimuth := GoldenAngle * float64(index)

	return vmath.Vec3{
		X: math.Cos(azimuth) * radiusAtY,
		Y: y,
		Z: math.Sin(azimuth) * radiusAtY,
	}
}
