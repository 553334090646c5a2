package physics

import (
	"math"

	"github.com/lixenwraith/communion/parameter"
	"github.com/lixenwraith/communion/sphere"
	"github.com/lixenwraith/communion/vmath"
)

// OrbitalVelocity returns tangential speed for a shard at the given radius
// and lung depth, Keplerian-style: v = sqrt(GM_eff / r)
//
// GM_eff = GM_base * (1 + k*(2*depth-1)) so full lungs pull shards faster
// and empty lungs release them slower; normalized so that speed equals
// OrbitBaseSpeed at OrbitReferenceRadius with neutral breath
//
// The raw ratio is clamped to [VelocityFactorMin, VelocityFactorMax];
// clamped reports whether the clamp engaged (tuning signal, not control flow)
func OrbitalVelocity(radius, depth float64) (speed float64, clamped bool) {
	if radius <= 0 {
		radius = parameter.OrbitReferenceRadius
	}
	depth = vmath.Clamp01(depth)

	gm := 1 + parameter.OrbitBreathCoupling*(2*depth-1)
	if gm < 0 {
		gm = 0
	}

	ratio := math.Sqrt(gm * parameter.OrbitReferenceRadius / radius)

	if ratio < parameter.VelocityFactorMin {
		return parameter.VelocityFactorMin * parameter.OrbitBaseSpeed, true
	}
	if ratio > parameter.VelocityFactorMax {
		return parameter.VelocityFactorMax * parameter.OrbitBaseSpeed, true
	}
	return ratio * parameter.OrbitBaseSpeed, false
}

// OrbitRadius swells the orbit with lung depth, never below the safe floor
func OrbitRadius(safeRadius, depth float64) float64 {
	r := safeRadius * (1 + parameter.OrbitSwellFraction*vmath.Clamp01(depth))
	if r < safeRadius {
		return safeRadius
	}
	return r
}

// TrackSafeRadius moves the animated orbit radius toward its target floor
//
// Asymmetric on purpose: a rising floor snaps immediately (the orbit must
// never sit below the collision-free floor, not even for one enter
// animation), a falling floor eases down so a departure wave does not
// collapse the swarm inward in a single frame
func TrackSafeRadius(current, target, dtSec float64) float64 {
	if target >= current {
		return target
	}
	return vmath.Lerp(current, target, vmath.Clamp01(dtSec*parameter.OrbitSettleRate))
}

// WobbleOffset is the ambient radial oscillation for one lattice index
// Phase-shifted per index by the golden angle so neighbors never wobble
// in unison; bounded by WobbleAmplitude which WobbleMargin accounts for
func WobbleOffset(index int, tSec float64) float64 {
	phase := 2*math.Pi*tSec/parameter.WobblePeriodSec + sphere.GoldenAngle*float64(index)
	return parameter.WobbleAmplitude * math.Sin(phase)
}

// Materialize produces world-space positions for the given lattice indices
// at one orbit radius and wobble time; the orbital spin itself is a rigid
// rotation of the whole swarm and cannot change pairwise distances, so it
// is omitted here and applied by the renderer
func Materialize(indices []int, total int, orbitRadius, tSec float64) []vmath.Vec3 {
	positions := make([]vmath.Vec3, len(indices))
	for i, idx := range indices {
		dir := sphere.Point(idx, total)
		positions[i] = vmath.V3Scale(dir, orbitRadius+WobbleOffset(idx, tSec))
	}
	return positions
}
