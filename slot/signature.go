package slot

import (
	"github.com/lixenwraith/communion/presence"
)

// FNV-1a 64-bit constants
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// Signature produces a compact structural hash of a roster: id and mood of
// every participant in list order
//
// Used to skip reconciliation when a polling feed re-delivers an unchanged
// list; not stored, not wire-visible, so hash collisions only cost one
// deferred reconciliation
func Signature(participants []presence.Participant) uint64 {
	h := uint64(fnvOffset)
	for _, p := range participants {
		for i := 0; i < len(p.ID); i++ {
			h ^= uint64(p.ID[i])
			h *= fnvPrime
		}
		h ^= uint64(p.Mood)
		h *= fnvPrime
		// Separator keeps ["ab","c"] distinct from ["a","bc"]
		h ^= 0x1f
		h *= fnvPrime
	}
	return h
}
