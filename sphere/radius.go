package sphere

import (
	"math"

	"github.com/lixenwraith/communion/parameter"
)

// MinSafeRadius returns the smallest orbit radius that is collision-free for
// shards placed on a lattice of latticeTotal points; the floor all dynamic
// radius animation must respect
//
// latticeTotal is the full lattice size (slot capacity), not the number of
// occupied points: slots keep their lattice index for life, so any subset of
// indices can be occupied at once — including neighbors near the pole, where
// the lattice packs tightest. The spacing constraint must therefore hold for
// the densest pair of the whole lattice
//
// Two constraints, the larger wins:
//  1. Globe clearance: globeRadius + shardRadius + buffer
//  2. Lattice spacing: worst-case nearest-neighbor gap of the Fibonacci
//     lattice is approximately spacingFactor/sqrt(latticeTotal) per unit
//     radius, so the radius where 2*shardRadius + wobbleMargin fits that
//     gap is (2*shardRadius + wobbleMargin) * sqrt(latticeTotal) / spacingFactor
func MinSafeRadius(latticeTotal int, shardRadius, globeRadius, buffer float64) float64 {
	clearance := globeRadius + shardRadius + buffer

	if latticeTotal < 2 {
		return clearance
	}

	required := 2*shardRadius + parameter.WobbleMargin
	spacing := required * math.Sqrt(float64(latticeTotal)) / parameter.SphereSpacingFactor

	return math.Max(clearance, spacing)
}

// ShardRadius scales shard size down with population as 1/sqrt(n),
// clamped to [ShardRadiusMin, ShardRadiusMax]
func ShardRadius(population int) float64 {
	if population < 1 {
		population = 1
	}
	r := parameter.ShardRadiusBase / math.Sqrt(float64(population))
	if r < parameter.ShardRadiusMin {
		return parameter.ShardRadiusMin
	}
	if r > parameter.ShardRadiusMax {
		return parameter.ShardRadiusMax
	}
	return r
}
