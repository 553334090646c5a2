package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
)

// Breath Drone
const (
	// DroneFrequency is a low hum; gain tracks lung depth
	DroneFrequency = 110.0
	DroneGainMin   = 0.02
	DroneGainMax   = 0.16
)

// Shard Chimes
const (
	ChimeEnterFrequency = 660.0
	ChimeExitFrequency  = 440.0
	ChimeDuration       = 350 * time.Millisecond
	ChimeAttack         = 8 * time.Millisecond
	ChimeRelease        = 180 * time.Millisecond
	ChimeGain           = 0.10

	// MinChimeGap throttles chimes when a reconciliation moves many shards
	MinChimeGap = 120 * time.Millisecond
)
