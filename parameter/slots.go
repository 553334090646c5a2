package parameter

import "time"

// Slot Table
const (
	// SlotCapacityDefault bounds concurrent visible shards
	// Population above this waits for a free slot (or eviction, below)
	SlotCapacityDefault = 200
)

// Slot Lifecycle Animation
const (
	// Enter is snappier than exit; arrivals should feel immediate,
	// departures should dissolve
	SlotEnterDuration = 900 * time.Millisecond
	SlotExitDuration  = 1600 * time.Millisecond
)

// Overflow Eviction
const (
	// SlotEvictWhenFull enables freeing the oldest-assigned active slot when
	// arrivals are starved by a persistently full table
	SlotEvictWhenFull = true

	// SlotEvictMaxPerCycle bounds churn introduced by eviction in one reconciliation
	SlotEvictMaxPerCycle = 4
)
