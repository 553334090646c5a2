package parameter

import "time"

// Presence Feed
const (
	// PresencePollInterval is the fallback roster poll when no push arrives
	PresencePollInterval = 3 * time.Second

	PresenceConnectTimeout = 5 * time.Second
	PresenceReadTimeout    = 30 * time.Second
	PresenceWriteTimeout   = 5 * time.Second
	PresenceReconnectDelay = 2 * time.Second

	// PresenceLineMax bounds a single roster line on the wire
	PresenceLineMax = 64 * 1024
)

// Local Simulator Churn
const (
	SimulatorBasePopulation = 24
	SimulatorMaxPopulation  = 240

	// Per-tick probabilities (tick = one reconciliation opportunity)
	SimulatorJoinChance  = 0.35
	SimulatorLeaveChance = 0.20
	SimulatorMoodChance  = 0.10
)
