package parameter

// Keplerian Orbit Model
// Purely aesthetic orbital mechanics; not a physical simulation
const (
	// OrbitBaseSpeed is angular surface speed (world units/sec) at the
	// reference radius with neutral breath
	OrbitBaseSpeed = 1.6

	// OrbitReferenceRadius normalizes the velocity curve; v = OrbitBaseSpeed here
	OrbitReferenceRadius = 14.0

	// OrbitBreathCoupling modulates effective GM with lung depth:
	// GM_eff = GM * (1 + k*(2*depth-1))
	// Inhale pulls shards faster, exhale releases them slower
	OrbitBreathCoupling = 0.35

	// Velocity factor clamp, applied to the raw ratio before scaling
	VelocityFactorMin = 0.4
	VelocityFactorMax = 2.5

	// OrbitSettleRate is the per-second easing rate when the orbit radius
	// descends toward a lowered floor; rising floors snap instead
	OrbitSettleRate = 1.5
)

// Collision Sweep
const (
	// SweepDepthSamples across the breath depth range [0,1]
	SweepDepthSamples = 12

	// SweepTimeSamples across one wobble period
	SweepTimeSamples = 8
)
