package physics

import (
	"math"

	"github.com/lixenwraith/communion/vmath"
)

// SpacingResult reports the closest shard pair for one materialized frame
// Failure is data, not an error: tests assert on it, runtime tunes from it
type SpacingResult struct {
	HasCollision bool

	// PairA, PairB are offsets into the checked position slice (-1 if
	// fewer than two positions)
	PairA, PairB int

	// Distance is the measured center distance of the closest pair
	Distance float64

	// Required is the minimum legal center distance (2*shardRadius)
	Required float64

	// Overlap is max(0, Required-Distance)
	Overlap float64
}

// ClearanceResult reports the worst shard-to-globe surface distance
type ClearanceResult struct {
	HasCollision bool

	// Index is the offset of the worst offender (-1 if no positions)
	Index int

	// Distance is the worst measured gap between shard center and globe surface
	Distance float64

	// Required is the minimum legal gap (shardRadius)
	Required float64
}

// CheckShardSpacing finds the closest pair among positions
// O(n²) pairwise; fine at the hundreds-of-shards scale this system targets
func CheckShardSpacing(positions []vmath.Vec3, shardRadius float64) SpacingResult {
	result := SpacingResult{
		PairA:    -1,
		PairB:    -1,
		Distance: math.MaxFloat64,
		Required: 2 * shardRadius,
	}
	if len(positions) < 2 {
		return result
	}

	closestSq := math.MaxFloat64
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			dSq := vmath.V3DistSq(positions[i], positions[j])
			if dSq < closestSq {
				closestSq = dSq
				result.PairA = i
				result.PairB = j
			}
		}
	}

	result.Distance = math.Sqrt(closestSq)
	if result.Distance < result.Required {
		result.HasCollision = true
		result.Overlap = result.Required - result.Distance
	}
	return result
}

// CheckGlobeClearance verifies every shard clears the globe surface
func CheckGlobeClearance(positions []vmath.Vec3, shardRadius, globeRadius float64) ClearanceResult {
	result := ClearanceResult{
		Index:    -1,
		Distance: math.MaxFloat64,
		Required: shardRadius,
	}

	for i, p := range positions {
		gap := vmath.V3Mag(p) - globeRadius
		if gap < result.Distance {
			result.Distance = gap
			result.Index = i
		}
	}

	if result.Index >= 0 && result.Distance < result.Required {
		result.HasCollision = true
	}
	return result
}
