package presence

import (
	"fmt"
	"strconv"
	"strings"
)

// Wire format: one roster per line, full-state replacement
//
//	ROSTER <id>:<mood>:<joinedAtMs> <id>:<mood>:<joinedAtMs> ...
//
// Full snapshots instead of deltas keep the client trivially resumable
// after a reconnect; the slot manager diffs anyway

const rosterVerb = "ROSTER"

// pollVerb is sent by the client to request a snapshot when push is quiet
const pollVerb = "POLL"

// ParseRosterLine decodes a ROSTER line; returns ok=false for any other verb
// Malformed entries are skipped, not fatal: a partially readable roster is
// better than a dropped one
func ParseRosterLine(line string) (Roster, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != rosterVerb {
		return nil, false
	}

	roster := make(Roster, 0, len(fields)-1)
	for _, entry := range fields[1:] {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" {
			continue
		}
		joinedAt, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			continue
		}
		roster = append(roster, Participant{
			ID:       parts[0],
			Mood:     ParseMood(parts[1]),
			JoinedAt: joinedAt,
		})
	}
	return roster, true
}

// FormatRosterLine encodes a roster for the wire
func FormatRosterLine(roster Roster) string {
	var b strings.Builder
	b.WriteString(rosterVerb)
	for _, p := range roster {
		fmt.Fprintf(&b, " %s:%s:%d", p.ID, p.Mood, p.JoinedAt)
	}
	return b.String()
}
