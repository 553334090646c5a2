package slot

import (
	"fmt"
	"testing"
	"time"

	"github.com/lixenwraith/communion/breath"
	"github.com/lixenwraith/communion/presence"
)

// roster builds a test roster with sequential ids and join times
func roster(n int) presence.Roster {
	r := make(presence.Roster, n)
	for i := 0; i < n; i++ {
		r[i] = presence.Participant{
			ID:       fmt.Sprintf("p%02d", i),
			Mood:     presence.Mood(i % int(presence.MoodCount)),
			JoinedAt: int64(1000 + i),
		}
	}
	return r
}

// settle runs animations long enough to complete any enter or exit
func settle(m *Manager) {
	m.UpdateAnimations(10 * time.Second)
}

// TestReconcileBijection verifies N participants map to exactly N distinct slots
func TestReconcileBijection(t *testing.T) {
	m := NewManager(50)
	participants := roster(10)

	result := m.Reconcile(participants, 0)

	if result.VisibleCount != 10 {
		t.Fatalf("Expected 10 visible slots, got %d", result.VisibleCount)
	}

	seen := make(map[string]int)
	for _, s := range m.Slots() {
		if s.State == StateEmpty {
			continue
		}
		if prev, dup := seen[s.ParticipantID]; dup {
			t.Errorf("Participant %s held by slots %d and %d", s.ParticipantID, prev, s.Index)
		}
		seen[s.ParticipantID] = s.Index
	}
	if len(seen) != 10 {
		t.Errorf("Expected 10 distinct participants, got %d", len(seen))
	}

	for _, p := range participants {
		if _, ok := m.SlotOf(p.ID); !ok {
			t.Errorf("Participant %s has no slot", p.ID)
		}
	}
}

// TestReconcileStability verifies an unchanged roster causes no slot movement
func TestReconcileStability(t *testing.T) {
	m := NewManager(50)
	participants := roster(10)

	m.Reconcile(participants, 0)
	settle(m)

	before := make(map[string]int)
	for _, p := range participants {
		idx, _ := m.SlotOf(p.ID)
		before[p.ID] = idx
	}

	result := m.Reconcile(participants, 1)
	if !result.Skipped {
		t.Error("Expected identical roster to skip reconciliation")
	}

	for _, p := range participants {
		idx, ok := m.SlotOf(p.ID)
		if !ok || idx != before[p.ID] {
			t.Errorf("Participant %s moved from slot %d to %d", p.ID, before[p.ID], idx)
		}
	}
}

// TestArrivalOrder verifies lowest JoinedAt claims the lowest empty index
func TestArrivalOrder(t *testing.T) {
	m := NewManager(2)
	m.SetEvictionPolicy(false)

	participants := presence.Roster{
		{ID: "A", Mood: presence.MoodCalm, JoinedAt: 100},
		{ID: "B", Mood: presence.MoodCalm, JoinedAt: 50},
		{ID: "C", Mood: presence.MoodCalm, JoinedAt: 150},
	}

	result := m.Reconcile(participants, 0)

	idxB, okB := m.SlotOf("B")
	idxA, okA := m.SlotOf("A")
	_, okC := m.SlotOf("C")

	if !okB || idxB != 0 {
		t.Errorf("Expected B (earliest join) in slot 0, got %d ok=%v", idxB, okB)
	}
	if !okA || idxA != 1 {
		t.Errorf("Expected A in slot 1, got %d ok=%v", idxA, okA)
	}
	if okC {
		t.Error("Expected C to wait for a free slot")
	}
	if result.Unassigned != 1 {
		t.Errorf("Expected 1 unassigned participant, got %d", result.Unassigned)
	}
}

// TestLifecycleScenario walks the full enter/active/exit/empty cycle:
// 50 slots, 10 join, all activate, 5 leave, exits complete
func TestLifecycleScenario(t *testing.T) {
	m := NewManager(50)
	participants := roster(10)

	result := m.Reconcile(participants, 0)
	if result.VisibleCount != 10 {
		t.Fatalf("Expected visibleCount 10 after join, got %d", result.VisibleCount)
	}
	if got := m.Stats().Entering; got != 10 {
		t.Fatalf("Expected 10 entering slots, got %d", got)
	}

	m.UpdateAnimations(1 * time.Second)
	if got := m.Stats().Active; got != 10 {
		t.Fatalf("Expected 10 active slots after 1s, got %d", got)
	}

	// Record indices of the 5 retained participants
	retained := participants[:5]
	indices := make(map[string]int)
	for _, p := range retained {
		idx, _ := m.SlotOf(p.ID)
		indices[p.ID] = idx
	}

	result = m.Reconcile(retained, 1)
	if got := len(result.Exited); got != 5 {
		t.Fatalf("Expected 5 exited slots, got %d", got)
	}
	// Exiting shards still count as visible until their animation completes
	if result.VisibleCount != 10 {
		t.Errorf("Expected visibleCount 10 during exit, got %d", result.VisibleCount)
	}

	// Exiting slots keep id and mood for the fade-out
	for _, idx := range result.Exited {
		s := m.Slots()[idx]
		if s.ParticipantID == "" {
			t.Errorf("Slot %d lost participant id during exit", idx)
		}
	}

	m.UpdateAnimations(2 * time.Second)
	stats := m.Stats()
	if stats.Visible != 5 {
		t.Errorf("Expected visibleCount 5 after exits completed, got %d", stats.Visible)
	}
	if stats.Active != 5 {
		t.Errorf("Expected 5 active slots, got %d", stats.Active)
	}

	// Retained participants never moved
	for _, p := range retained {
		idx, ok := m.SlotOf(p.ID)
		if !ok || idx != indices[p.ID] {
			t.Errorf("Retained %s moved from slot %d to %d", p.ID, indices[p.ID], idx)
		}
	}
}

// TestMoodRefreshInPlace verifies a mood change mutates the slot without
// touching state or index
func TestMoodRefreshInPlace(t *testing.T) {
	m := NewManager(10)
	participants := presence.Roster{
		{ID: "A", Mood: presence.MoodCalm, JoinedAt: 1},
	}
	m.Reconcile(participants, 0)
	settle(m)

	idx, _ := m.SlotOf("A")

	participants[0].Mood = presence.MoodJoy
	result := m.Reconcile(participants, 1)
	if result.Skipped {
		t.Fatal("Mood change must not be skipped by the signature gate")
	}

	newIdx, _ := m.SlotOf("A")
	if newIdx != idx {
		t.Errorf("Mood update moved A from slot %d to %d", idx, newIdx)
	}
	s := m.Slots()[idx]
	if s.State != StateActive {
		t.Errorf("Mood update changed state to %v", s.State)
	}
	if s.Mood != presence.MoodJoy {
		t.Errorf("Expected mood joy, got %v", s.Mood)
	}
	if len(result.Entered) != 0 || len(result.Exited) != 0 {
		t.Errorf("Mood update produced entered=%d exited=%d", len(result.Entered), len(result.Exited))
	}
}

// TestExitClearsSlot verifies Exiting->Empty removes the identity mapping
func TestExitClearsSlot(t *testing.T) {
	m := NewManager(10)
	m.Reconcile(roster(3), 0)
	settle(m)

	m.Reconcile(presence.Roster{}, 1)
	settle(m)

	stats := m.Stats()
	if stats.Empty != 10 {
		t.Errorf("Expected all 10 slots empty, got %d", stats.Empty)
	}
	for _, s := range m.Slots() {
		if s.ParticipantID != "" {
			t.Errorf("Slot %d retained participant id after exit", s.Index)
		}
	}
	if _, ok := m.SlotOf("p00"); ok {
		t.Error("Departed participant still resolvable")
	}
}

// TestShouldReconcileGating verifies hold-phase and once-per-cycle gating
func TestShouldReconcileGating(t *testing.T) {
	m := NewManager(10)

	if m.ShouldReconcile(breath.PhaseInhale, 0) {
		t.Error("Must not reconcile during inhale")
	}
	if m.ShouldReconcile(breath.PhaseExhale, 0) {
		t.Error("Must not reconcile during exhale")
	}
	if !m.ShouldReconcile(breath.PhaseHoldIn, 0) {
		t.Error("Expected reconcile eligibility during hold-in")
	}

	m.Reconcile(roster(2), 0)

	if m.ShouldReconcile(breath.PhaseHoldOut, 0) {
		t.Error("Must not reconcile twice in the same cycle")
	}
	if !m.ShouldReconcile(breath.PhaseHoldOut, 1) {
		t.Error("Expected reconcile eligibility on the next cycle")
	}
}

// TestCapacityOverflow verifies excess participants wait without error and
// are assigned once slots free up
func TestCapacityOverflow(t *testing.T) {
	m := NewManager(3)
	m.SetEvictionPolicy(false)

	result := m.Reconcile(roster(5), 0)
	if result.VisibleCount != 3 {
		t.Fatalf("Expected 3 visible at capacity, got %d", result.VisibleCount)
	}
	if result.Unassigned != 2 {
		t.Fatalf("Expected 2 waiting, got %d", result.Unassigned)
	}
	settle(m)

	// Two of the assigned leave; the waiting pair takes their place next cycle
	remaining := presence.Roster{roster(5)[0], roster(5)[3], roster(5)[4]}
	m.Reconcile(remaining, 1)
	settle(m)

	result = m.Reconcile(remaining, 2)
	if result.VisibleCount != 3 {
		t.Errorf("Expected 3 visible after retry, got %d", result.VisibleCount)
	}
	for _, p := range remaining {
		if _, ok := m.SlotOf(p.ID); !ok {
			t.Errorf("Participant %s still unassigned after slots freed", p.ID)
		}
	}
}

// TestEvictionFreesOldestActive verifies the overflow policy starts exits
// on the oldest assignments
func TestEvictionFreesOldestActive(t *testing.T) {
	m := NewManager(3)
	m.SetEvictionPolicy(true)

	first := roster(3)
	m.Reconcile(first, 0)
	settle(m)

	// Two newcomers on top of a full table
	overflow := append(presence.Roster{}, first...)
	overflow = append(overflow,
		presence.Participant{ID: "n1", JoinedAt: 9000},
		presence.Participant{ID: "n2", JoinedAt: 9001},
	)
	result := m.Reconcile(overflow, 1)

	if len(result.Evicted) != 2 {
		t.Fatalf("Expected 2 evictions, got %d", len(result.Evicted))
	}
	// Oldest assignments are p00 and p01 (assigned in join order)
	for _, idx := range result.Evicted {
		s := m.Slots()[idx]
		if s.State != StateExiting {
			t.Errorf("Evicted slot %d not exiting, state %v", idx, s.State)
		}
		if s.ParticipantID != "p00" && s.ParticipantID != "p01" {
			t.Errorf("Evicted %s, expected an oldest assignment", s.ParticipantID)
		}
	}

	settle(m)

	// The evicted pair has left by the next cycle; the newcomers take the
	// freed slots
	next := presence.Roster{first[2],
		{ID: "n1", JoinedAt: 9000},
		{ID: "n2", JoinedAt: 9001},
	}
	m.Reconcile(next, 2)
	if _, ok := m.SlotOf("n1"); !ok {
		t.Error("n1 still unassigned after eviction freed slots")
	}
	if _, ok := m.SlotOf("n2"); !ok {
		t.Error("n2 still unassigned after eviction freed slots")
	}
}

// TestResizePreservesByIndex verifies capacity re-issue keeps non-empty slots
func TestResizePreservesByIndex(t *testing.T) {
	m := NewManager(10)
	m.Reconcile(roster(4), 0)
	settle(m)

	idx, _ := m.SlotOf("p02")

	m.Resize(20)
	if m.Capacity() != 20 {
		t.Fatalf("Expected capacity 20, got %d", m.Capacity())
	}
	newIdx, ok := m.SlotOf("p02")
	if !ok || newIdx != idx {
		t.Errorf("Resize moved p02 from slot %d to %d (ok=%v)", idx, newIdx, ok)
	}
	if m.Stats().Visible != 4 {
		t.Errorf("Expected 4 visible after grow, got %d", m.Stats().Visible)
	}

	// Shrinking below an occupied index releases it
	m.Resize(2)
	if m.Stats().Visible > 2 {
		t.Errorf("Expected at most 2 visible after shrink, got %d", m.Stats().Visible)
	}
	if _, ok := m.SlotOf("p02"); ok && idx >= 2 {
		t.Error("Participant beyond shrunk capacity still resolvable")
	}
}

// TestUnknownLookup verifies absent ids return ok=false, not a panic
func TestUnknownLookup(t *testing.T) {
	m := NewManager(5)

	if _, ok := m.SlotOf("ghost"); ok {
		t.Error("Unknown participant resolved to a slot")
	}
	if m.Scale(-1) != 0 || m.Scale(99) != 0 {
		t.Error("Out-of-range index returned nonzero scale")
	}
	if _, ok := m.Mood(99); ok {
		t.Error("Out-of-range index returned a mood")
	}
	if m.Visible(-1) {
		t.Error("Negative index reported visible")
	}
}

// TestScaleCurve verifies scale easing endpoints per state
func TestScaleCurve(t *testing.T) {
	m := NewManager(5)
	m.Reconcile(roster(1), 0)

	idx, _ := m.SlotOf("p00")
	if s := m.Scale(idx); s != 0 {
		t.Errorf("Expected scale 0 at enter start, got %f", s)
	}

	m.UpdateAnimations(450 * time.Millisecond)
	mid := m.Scale(idx)
	if mid <= 0 || mid >= 1 {
		t.Errorf("Expected mid-enter scale in (0,1), got %f", mid)
	}

	settle(m)
	if s := m.Scale(idx); s != 1 {
		t.Errorf("Expected scale 1 when active, got %f", s)
	}

	m.Reconcile(presence.Roster{}, 1)
	if s := m.Scale(idx); s != 1 {
		t.Errorf("Expected scale 1 at exit start, got %f", s)
	}
	m.UpdateAnimations(800 * time.Millisecond)
	midExit := m.Scale(idx)
	if midExit <= 0 || midExit >= 1 {
		t.Errorf("Expected mid-exit scale in (0,1), got %f", midExit)
	}
}

// TestIndexImmutable verifies slot indices never change across churn
func TestIndexImmutable(t *testing.T) {
	m := NewManager(8)
	m.Reconcile(roster(8), 0)
	settle(m)
	m.Reconcile(roster(3), 1)
	settle(m)
	m.Reconcile(roster(8), 2)

	for i, s := range m.Slots() {
		if s.Index != i {
			t.Errorf("Slot at position %d carries index %d", i, s.Index)
		}
	}
}
