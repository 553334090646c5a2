package parameter

import "time"

// Breath Cycle Timing
// Phase durations follow an extended-exhale pattern; exhale longer than inhale
// keeps the visual settle gentle
const (
	BreathInhale  = 4 * time.Second
	BreathHoldIn  = 2 * time.Second
	BreathExhale  = 6 * time.Second
	BreathHoldOut = 2 * time.Second

	BreathCycle = BreathInhale + BreathHoldIn + BreathExhale + BreathHoldOut
)

// Breath Depth Shaping
const (
	// BreathDepthFloor keeps the globe from collapsing fully at end of exhale
	BreathDepthFloor = 0.08
)
