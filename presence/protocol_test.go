package presence

import (
	"testing"
)

// TestParseRosterLine verifies a well-formed line decodes field by field
func TestParseRosterLine(t *testing.T) {
	roster, ok := ParseRosterLine("ROSTER alice:joy:1000 bob:sorrow:2000")
	if !ok {
		t.Fatal("Expected ROSTER verb to parse")
	}
	if len(roster) != 2 {
		t.Fatalf("Expected 2 participants, got %d", len(roster))
	}
	if roster[0].ID != "alice" || roster[0].Mood != MoodJoy || roster[0].JoinedAt != 1000 {
		t.Errorf("First entry mismatch: %v", roster[0])
	}
	if roster[1].ID != "bob" || roster[1].Mood != MoodSorrow || roster[1].JoinedAt != 2000 {
		t.Errorf("Second entry mismatch: %v", roster[1])
	}
}

// TestParseRosterLineEmpty verifies a bare ROSTER means an empty room,
// which is a valid state, not an error
func TestParseRosterLineEmpty(t *testing.T) {
	roster, ok := ParseRosterLine("ROSTER")
	if !ok {
		t.Fatal("Expected bare ROSTER to parse")
	}
	if len(roster) != 0 {
		t.Errorf("Expected empty roster, got %d entries", len(roster))
	}
}

// TestParseRosterLineWrongVerb verifies non-roster lines are rejected
func TestParseRosterLineWrongVerb(t *testing.T) {
	for _, line := range []string{"", "POLL", "HELLO alice:joy:1", "roster a:joy:1"} {
		if _, ok := ParseRosterLine(line); ok {
			t.Errorf("Line %q should not parse as a roster", line)
		}
	}
}

// TestParseRosterLineSkipsMalformed verifies bad entries drop without
// poisoning the rest of the line
func TestParseRosterLineSkipsMalformed(t *testing.T) {
	roster, ok := ParseRosterLine("ROSTER alice:joy:1000 broken bob:hope bad:calm:xx :joy:5 carol:weary:3000")
	if !ok {
		t.Fatal("Expected line to parse despite bad entries")
	}
	if len(roster) != 2 {
		t.Fatalf("Expected 2 survivors, got %d: %v", len(roster), roster)
	}
	if roster[0].ID != "alice" || roster[1].ID != "carol" {
		t.Errorf("Wrong survivors: %v", roster)
	}
}

// TestParseRosterLineUnknownMood verifies an unrecognized mood token falls
// back to calm instead of dropping the participant
func TestParseRosterLineUnknownMood(t *testing.T) {
	roster, ok := ParseRosterLine("ROSTER dave:ecstatic:500")
	if !ok || len(roster) != 1 {
		t.Fatalf("Expected one participant, got %v", roster)
	}
	if roster[0].Mood != MoodCalm {
		t.Errorf("Expected calm fallback, got %v", roster[0].Mood)
	}
}

// TestFormatRosterRoundTrip verifies the encoder output re-parses to the
// same roster
func TestFormatRosterRoundTrip(t *testing.T) {
	in := Roster{
		{ID: "alice", Mood: MoodJoy, JoinedAt: 1000},
		{ID: "bob", Mood: MoodWeary, JoinedAt: 2500},
	}

	out, ok := ParseRosterLine(FormatRosterLine(in))
	if !ok {
		t.Fatal("Encoded line failed to parse")
	}
	if len(out) != len(in) {
		t.Fatalf("Round trip changed length: %d -> %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("Entry %d changed: %v -> %v", i, in[i], out[i])
		}
	}
}

// TestSortedByJoin verifies ordering by join time with ID tie-break, and
// that the receiver is left untouched
func TestSortedByJoin(t *testing.T) {
	r := Roster{
		{ID: "c", JoinedAt: 300},
		{ID: "b", JoinedAt: 100},
		{ID: "a", JoinedAt: 100},
	}

	sorted := r.SortedByJoin()
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, sorted[i].ID)
		}
	}
	if r[0].ID != "c" {
		t.Error("SortedByJoin mutated the receiver")
	}
}
