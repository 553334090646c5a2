package physics

import (
	"github.com/lixenwraith/communion/parameter"
)

// SweepResult carries the single worst case found across the sweep
// Collisions surface at specific depth/time combinations, not at rest,
// so both checks are evaluated over the full grid
type SweepResult struct {
	HasCollision bool

	// Spacing is the worst shard-pair result and the depth/time it occurred at
	Spacing           SpacingResult
	SpacingDepth      float64
	SpacingWobbleTime float64

	// Clearance is the worst globe-gap result and the depth/time it occurred at
	Clearance           ClearanceResult
	ClearanceDepth      float64
	ClearanceWobbleTime float64
}

// VerifySweep materializes positions across a discretized grid of breath
// depth [0,1] and one full wobble period, running both collision checks
// at every sample and keeping the worst of each
//
// indices are the lattice indices to place, total the lattice size,
// baseRadius the orbit floor the depth swell builds on
func VerifySweep(indices []int, total int, shardRadius, globeRadius, baseRadius float64) SweepResult {
	result := SweepResult{
		Spacing:   SpacingResult{PairA: -1, PairB: -1, Distance: -1},
		Clearance: ClearanceResult{Index: -1, Distance: -1},
	}

	first := true
	for di := 0; di < parameter.SweepDepthSamples; di++ {
		depth := float64(di) / float64(parameter.SweepDepthSamples-1)
		radius := OrbitRadius(baseRadius, depth)

		for ti := 0; ti < parameter.SweepTimeSamples; ti++ {
			tSec := parameter.WobblePeriodSec * float64(ti) / float64(parameter.SweepTimeSamples)

			positions := Materialize(indices, total, radius, tSec)

			spacing := CheckShardSpacing(positions, shardRadius)
			clearance := CheckGlobeClearance(positions, shardRadius, globeRadius)

			if first || spacing.Distance < result.Spacing.Distance {
				result.Spacing = spacing
				result.SpacingDepth = depth
				result.SpacingWobbleTime = tSec
			}
			if first || clearance.Distance < result.Clearance.Distance {
				result.Clearance = clearance
				result.ClearanceDepth = depth
				result.ClearanceWobbleTime = tSec
			}
			first = false
		}
	}

	result.HasCollision = result.Spacing.HasCollision || result.Clearance.HasCollision
	return result
}
