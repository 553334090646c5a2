package presence

// Source produces roster snapshots for the frame loop
// Implementations own their delivery mechanics (simulation, network);
// the slot core only ever sees the ordered Participant list
type Source interface {
	// Start begins producing rosters; idempotent
	Start() error

	// Stop releases resources; safe to call more than once
	Stop()

	// Roster returns the latest snapshot; never nil, may be empty
	// The returned slice is immutable, callers must not modify it
	Roster() Roster
}
