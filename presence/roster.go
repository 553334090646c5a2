package presence

import (
	"fmt"
	"sort"
)

// Mood is the small closed category a participant breathes with
// Closed set; the renderer maps each to a fixed color
type Mood uint8

const (
	MoodCalm Mood = iota
	MoodJoy
	MoodSorrow
	MoodHope
	MoodWeary

	MoodCount
)

func (m Mood) String() string {
	switch m {
	case MoodCalm:
		return "calm"
	case MoodJoy:
		return "joy"
	case MoodSorrow:
		return "sorrow"
	case MoodHope:
		return "hope"
	case MoodWeary:
		return "weary"
	default:
		return "unknown"
	}
}

// ParseMood maps a wire token to a Mood; unknown tokens fall back to calm
// rather than erroring, a malformed mood should never drop a participant
func ParseMood(s string) Mood {
	switch s {
	case "calm":
		return MoodCalm
	case "joy":
		return MoodJoy
	case "sorrow":
		return MoodSorrow
	case "hope":
		return MoodHope
	case "weary":
		return MoodWeary
	default:
		return MoodCalm
	}
}

// Participant is one present person as delivered by the presence feed
// Immutable value; the slot core reads it once per reconciliation
type Participant struct {
	// ID is the stable identity across roster updates
	ID string

	Mood Mood

	// JoinedAt is arrival time in unix milliseconds, used only to break
	// ties in slot assignment order
	JoinedAt int64
}

func (p Participant) String() string {
	return fmt.Sprintf("%s(%s@%d)", p.ID, p.Mood, p.JoinedAt)
}

// Roster is an ordered participant list snapshot
// Treated as immutable once produced; feeds hand out fresh slices
type Roster []Participant

// SortedByJoin returns a copy ordered by JoinedAt ascending, ID as the
// deterministic tie-break
func (r Roster) SortedByJoin() Roster {
	out := make(Roster, len(r))
	copy(out, r)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].JoinedAt != out[j].JoinedAt {
			return out[i].JoinedAt < out[j].JoinedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}
