package slot

import (
	"time"

	"github.com/lixenwraith/communion/breath"
	"github.com/lixenwraith/communion/parameter"
	"github.com/lixenwraith/communion/presence"
	"github.com/lixenwraith/communion/vmath"
)

// Manager owns the fixed-capacity slot table and reconciles it against the
// presence roster
//
// Single-writer, frame-driven: UpdateAnimations runs every tick, Reconcile at
// most once per breathing cycle (and only during a hold phase). All reads are
// plain accessors safe between frame updates; there are no locks because
// there is exactly one writer
type Manager struct {
	slots         []Slot
	byParticipant map[string]int

	enterDuration time.Duration
	exitDuration  time.Duration
	evictWhenFull bool

	// lastReconciledCycle gates reconciliation to once per breath cycle
	lastReconciledCycle int64

	lastSignature uint64
	haveSignature bool

	// assignSeq orders assignments for the eviction policy
	assignSeq uint64
}

// NewManager allocates the slot table; slots live for the manager lifetime
func NewManager(capacity int) *Manager {
	if capacity < 1 {
		capacity = 1
	}
	m := &Manager{
		byParticipant:       make(map[string]int, capacity),
		enterDuration:       parameter.SlotEnterDuration,
		exitDuration:        parameter.SlotExitDuration,
		evictWhenFull:       parameter.SlotEvictWhenFull,
		lastReconciledCycle: -1,
	}
	m.slots = make([]Slot, capacity)
	for i := range m.slots {
		m.slots[i].Index = i
	}
	return m
}

// Resize re-issues capacity; non-empty slots are preserved by index, the
// rest are (re)created empty. Slots falling beyond a smaller capacity are
// released along with their identity map entries
func (m *Manager) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == len(m.slots) {
		return
	}

	next := make([]Slot, capacity)
	for i := range next {
		if i < len(m.slots) && m.slots[i].State != StateEmpty {
			next[i] = m.slots[i]
		} else {
			next[i].Index = i
		}
	}
	for i := capacity; i < len(m.slots); i++ {
		if m.slots[i].State != StateEmpty {
			delete(m.byParticipant, m.slots[i].ParticipantID)
		}
	}
	m.slots = next

	// Roster contents changed shape; force the next reconcile to run
	m.haveSignature = false
}

// SetEvictionPolicy toggles overflow eviction at runtime
func (m *Manager) SetEvictionPolicy(enabled bool) {
	m.evictWhenFull = enabled
}

// ShouldReconcile gates reconciliation: only during a hold phase (shards must
// not reshuffle mid-inhale or mid-exhale) and at most once per full cycle
//
// This is the core trade: arrivals are not instantly visible, in exchange the
// swarm never jitters from population churn mid-breath
func (m *Manager) ShouldReconcile(phase breath.Phase, cycle int64) bool {
	return phase.IsHold() && cycle != m.lastReconciledCycle
}

// Reconcile diffs the slot table against the incoming roster
//
// Three ordered passes:
//  1. Departures: assigned slots whose participant vanished begin Exiting,
//     retaining id and mood for the fade-out
//  2. Mood refresh: in-place mood update for participants still present
//  3. Arrivals: unassigned participants sorted by JoinedAt ascending take
//     the lowest empty indices; first-come gets the most polar position
//
// Overflow arrivals are left unassigned (soft fail, retried next cycle);
// when eviction is enabled the oldest-assigned active slots begin Exiting
// to free room for them
func (m *Manager) Reconcile(participants presence.Roster, cycle int64) ReconciliationResult {
	m.lastReconciledCycle = cycle

	// Skip only when nothing changed AND nobody is waiting: an unchanged
	// roster may still hold overflow participants whose retry depends on
	// this pass running
	sig := Signature(participants)
	if m.haveSignature && sig == m.lastSignature && m.fullyAssigned(participants) {
		return ReconciliationResult{
			Skipped:      true,
			VisibleCount: m.visibleCount(),
		}
	}
	m.lastSignature = sig
	m.haveSignature = true

	present := make(map[string]presence.Participant, len(participants))
	for _, p := range participants {
		present[p.ID] = p
	}

	var result ReconciliationResult

	// Pass 1: departures
	for i := range m.slots {
		s := &m.slots[i]
		if s.State == StateEmpty || s.State == StateExiting {
			continue
		}
		if _, ok := present[s.ParticipantID]; !ok {
			m.beginExit(s)
			result.Exited = append(result.Exited, i)
		}
	}

	// Pass 2: mood refresh for everyone still present
	for i := range m.slots {
		s := &m.slots[i]
		if s.State == StateEmpty {
			continue
		}
		p, ok := present[s.ParticipantID]
		if !ok {
			continue
		}
		s.Mood = p.Mood
		if s.State == StateEntering || s.State == StateActive {
			result.Unchanged = append(result.Unchanged, i)
		}
	}

	// Pass 3: arrivals, oldest join first
	var waiting presence.Roster
	for _, p := range participants {
		if _, assigned := m.byParticipant[p.ID]; !assigned {
			waiting = append(waiting, p)
		}
	}
	waiting = waiting.SortedByJoin()

	cursor := 0
	for _, p := range waiting {
		idx, ok := m.nextEmpty(&cursor)
		if !ok {
			break
		}
		m.assign(idx, p)
		result.Entered = append(result.Entered, idx)
	}

	unassigned := len(waiting) - len(result.Entered)
	result.Unassigned = unassigned
	if unassigned > 0 && m.evictWhenFull {
		result.Evicted = m.evictOldest(unassigned)
	}

	result.VisibleCount = m.visibleCount()
	return result
}

// UpdateAnimations advances enter/exit animations and performs the
// Entering->Active and Exiting->Empty transitions at progress >= 1
// Bounded work proportional to slot count; never blocks
func (m *Manager) UpdateAnimations(delta time.Duration) {
	for i := range m.slots {
		s := &m.slots[i]
		switch s.State {
		case StateEntering:
			s.animElapsed += delta
			s.Progress = animProgress(s.animElapsed, m.enterDuration)
			if s.Progress >= 1 {
				s.State = StateActive
				s.Progress = 1
				s.animElapsed = 0
			}
		case StateExiting:
			s.animElapsed += delta
			s.Progress = animProgress(s.animElapsed, m.exitDuration)
			if s.Progress >= 1 {
				delete(m.byParticipant, s.ParticipantID)
				s.State = StateEmpty
				s.ParticipantID = ""
				s.Mood = 0
				s.Progress = 0
				s.animElapsed = 0
			}
		}
	}
}

// --- Read surface (pure, no synchronization needed under the single-writer model) ---

// Slots exposes the table for rendering; callers must treat it as read-only
func (m *Manager) Slots() []Slot {
	return m.slots
}

func (m *Manager) Capacity() int {
	return len(m.slots)
}

// Scale returns the render scale for a slot: eased 0..1 during lifecycle
// transitions, 0 for empty or out-of-range indices
func (m *Manager) Scale(index int) float64 {
	if index < 0 || index >= len(m.slots) {
		return 0
	}
	s := &m.slots[index]
	switch s.State {
	case StateEntering:
		return vmath.CubicEaseOut(s.Progress)
	case StateActive:
		return 1
	case StateExiting:
		return 1 - vmath.CubicEaseIn(s.Progress)
	default:
		return 0
	}
}

// Mood returns the slot's cached mood; ok is false for empty or
// out-of-range slots
func (m *Manager) Mood(index int) (presence.Mood, bool) {
	if index < 0 || index >= len(m.slots) || m.slots[index].State == StateEmpty {
		return 0, false
	}
	return m.slots[index].Mood, true
}

// Visible reports whether the slot currently represents a participant
// (including one mid-exit)
func (m *Manager) Visible(index int) bool {
	return index >= 0 && index < len(m.slots) && m.slots[index].State != StateEmpty
}

// VisibleIndices returns indices of all non-empty slots in index order
func (m *Manager) VisibleIndices() []int {
	out := make([]int, 0, len(m.byParticipant))
	for i := range m.slots {
		if m.slots[i].State != StateEmpty {
			out = append(out, i)
		}
	}
	return out
}

// SlotOf looks up the slot holding a participant; absent ids return ok=false
func (m *Manager) SlotOf(participantID string) (int, bool) {
	idx, ok := m.byParticipant[participantID]
	return idx, ok
}

// Stats counts slots per state
func (m *Manager) Stats() Stats {
	var st Stats
	for i := range m.slots {
		switch m.slots[i].State {
		case StateEmpty:
			st.Empty++
		case StateEntering:
			st.Entering++
		case StateActive:
			st.Active++
		case StateExiting:
			st.Exiting++
		}
	}
	st.Visible = st.Entering + st.Active + st.Exiting
	return st
}

// LastReconciledCycle returns the cycle number of the latest reconciliation
func (m *Manager) LastReconciledCycle() int64 {
	return m.lastReconciledCycle
}

// --- internals ---

func (m *Manager) beginExit(s *Slot) {
	// ParticipantID and Mood deliberately retained through the fade-out;
	// the identity map entry stays until Exiting completes, which also
	// keeps a returning participant from double-claiming a second slot
	s.State = StateExiting
	s.Progress = 0
	s.animElapsed = 0
}

func (m *Manager) assign(index int, p presence.Participant) {
	s := &m.slots[index]
	m.assignSeq++
	s.State = StateEntering
	s.ParticipantID = p.ID
	s.Mood = p.Mood
	s.Progress = 0
	s.animElapsed = 0
	s.assignedSeq = m.assignSeq
	m.byParticipant[p.ID] = index
}

// nextEmpty scans forward from cursor for the first empty slot
func (m *Manager) nextEmpty(cursor *int) (int, bool) {
	for ; *cursor < len(m.slots); *cursor++ {
		if m.slots[*cursor].State == StateEmpty {
			idx := *cursor
			*cursor++
			return idx, true
		}
	}
	return 0, false
}

// evictOldest transitions up to SlotEvictMaxPerCycle of the oldest-assigned
// active slots to Exiting so starved arrivals find room next cycle
func (m *Manager) evictOldest(want int) []int {
	if want > parameter.SlotEvictMaxPerCycle {
		want = parameter.SlotEvictMaxPerCycle
	}

	var evicted []int
	for n := 0; n < want; n++ {
		oldest := -1
		var oldestSeq uint64
		for i := range m.slots {
			s := &m.slots[i]
			if s.State != StateActive {
				continue
			}
			if oldest < 0 || s.assignedSeq < oldestSeq {
				oldest = i
				oldestSeq = s.assignedSeq
			}
		}
		if oldest < 0 {
			break
		}
		m.beginExit(&m.slots[oldest])
		evicted = append(evicted, oldest)
	}
	return evicted
}

// fullyAssigned reports whether every roster member already holds a slot
func (m *Manager) fullyAssigned(participants presence.Roster) bool {
	for _, p := range participants {
		if _, ok := m.byParticipant[p.ID]; !ok {
			return false
		}
	}
	return true
}

func (m *Manager) visibleCount() int {
	count := 0
	for i := range m.slots {
		if m.slots[i].State != StateEmpty {
			count++
		}
	}
	return count
}

func animProgress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(duration)
	if p > 1 {
		return 1
	}
	return p
}
