package slot

import (
	"time"

	"github.com/lixenwraith/communion/presence"
)

// State is the slot lifecycle
// Cyclic: Empty -> Entering -> Active -> Exiting -> Empty, no other transitions
type State uint8

const (
	StateEmpty State = iota
	StateEntering
	StateActive
	StateExiting
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateEntering:
		return "entering"
	case StateActive:
		return "active"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Slot is one stable placeholder in the fixed-capacity table
// Index doubles as the Fibonacci lattice index, so a slot's visual position
// never moves while its participant stays
type Slot struct {
	// Index is immutable once the slot is created
	Index int

	State State

	// ParticipantID and Mood are defined whenever State != StateEmpty
	// Mood is cached independently of the live participant record so an
	// exiting shard fades out in its own color, not a default
	ParticipantID string
	Mood          presence.Mood

	// Progress is raw animation progress in [0,1] for Entering/Exiting
	Progress float64

	// animElapsed accumulates UpdateAnimations deltas since the last
	// state transition
	animElapsed time.Duration

	// assignedSeq orders assignments for the eviction policy; higher = newer
	assignedSeq uint64
}

// Stats counts slots per lifecycle state
type Stats struct {
	Empty    int
	Entering int
	Active   int
	Exiting  int

	// Visible is all non-empty slots (Entering+Active+Exiting)
	Visible int
}

// ReconciliationResult is the transient outcome of one Reconcile call
// Produced and discarded every reconciliation; never persisted
type ReconciliationResult struct {
	// Skipped is true when the roster signature matched the previous one
	// and no work was performed
	Skipped bool

	// Entered, Exited, Unchanged hold slot indices by outcome
	Entered   []int
	Exited    []int
	Unchanged []int

	// Evicted holds slots force-transitioned to Exiting by the overflow policy
	Evicted []int

	// Unassigned counts participants left waiting for a free slot
	Unassigned int

	// VisibleCount is non-empty slots after the reconciliation
	VisibleCount int
}
