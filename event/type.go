package event

import (
	"github.com/lixenwraith/communion/presence"
)

// Type identifies an event kind
type Type uint8

const (
	TypeNone Type = iota

	// TypeRosterUpdated carries a fresh roster snapshot from a presence feed
	TypeRosterUpdated

	// TypeShardEntered / TypeShardExited fire per slot on reconciliation
	TypeShardEntered
	TypeShardExited

	// TypeCycleCompleted fires when the breath clock rolls a cycle
	TypeCycleCompleted

	// TypePresenceLost / TypePresenceRestored track feed connectivity
	TypePresenceLost
	TypePresenceRestored
)

func (t Type) String() string {
	switch t {
	case TypeRosterUpdated:
		return "roster_updated"
	case TypeShardEntered:
		return "shard_entered"
	case TypeShardExited:
		return "shard_exited"
	case TypeCycleCompleted:
		return "cycle_completed"
	case TypePresenceLost:
		return "presence_lost"
	case TypePresenceRestored:
		return "presence_restored"
	default:
		return "none"
	}
}

// Event is the queue element; payload types are fixed per event type
type Event struct {
	Type    Type
	Payload any
}

// RosterUpdatedPayload delivers an immutable roster snapshot
type RosterUpdatedPayload struct {
	Roster presence.Roster
}

// ShardPayload identifies one slot transition
type ShardPayload struct {
	SlotIndex int
	Mood      presence.Mood
}

// CycleCompletedPayload marks a finished breathing cycle
type CycleCompletedPayload struct {
	Cycle int64
}
