package parameter

// Globe And Shard Geometry (world units)
const (
	GlobeRadius = 10.0

	// Shard radius shrinks with population as 1/sqrt(n), clamped to this range
	ShardRadiusMax = 1.2
	ShardRadiusMin = 0.25

	// ShardRadiusBase is the radius at population 1 before clamping
	ShardRadiusBase = 1.2
)

// Orbit Spacing
const (
	// SphereSpacingFactor approximates worst-case nearest-neighbor spacing of
	// the Fibonacci lattice in points-per-radius
	// Empirical, not a closed-form spherical-code bound; open tuning parameter
	SphereSpacingFactor = 1.95

	// OrbitClearanceBuffer is extra gap between shard and globe surface
	OrbitClearanceBuffer = 0.8

	// WobbleMargin reserves room for ambient wobble in the spacing constraint
	WobbleMargin = 0.6
)

// Ambient Wobble
const (
	WobbleAmplitude = 0.25
	// WobblePeriodSec is one full oscillation; the collision sweep samples
	// across exactly this span
	WobblePeriodSec = 5.0
)

// Breath-Driven Orbit Swell
const (
	// OrbitSwellFraction is the fractional radius growth from empty to full lungs
	OrbitSwellFraction = 0.18
)
