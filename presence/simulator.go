package presence

import (
	"fmt"

	"github.com/lixenwraith/communion/parameter"
	"github.com/lixenwraith/communion/vmath"
)

// Simulator is a local stand-in presence source: a roster that churns
// with random arrivals, departures and mood drift
// Deterministic per seed; the frame loop drives it by calling Advance
// once per breathing cycle
type Simulator struct {
	rng    *vmath.FastRand
	roster Roster

	nextID   uint64
	clockMs  int64
	maxCount int
}

// NewSimulator seeds the roster with the base population
func NewSimulator(seed uint64) *Simulator {
	s := &Simulator{
		rng:      vmath.NewFastRand(seed),
		maxCount: parameter.SimulatorMaxPopulation,
	}
	for i := 0; i < parameter.SimulatorBasePopulation; i++ {
		s.join()
	}
	return s
}

// Start satisfies Source; the simulator has nothing to launch
func (s *Simulator) Start() error { return nil }

// Stop satisfies Source
func (s *Simulator) Stop() {}

// Roster returns the current snapshot as a fresh immutable copy
func (s *Simulator) Roster() Roster {
	out := make(Roster, len(s.roster))
	copy(out, s.roster)
	return out
}

// Advance applies one churn step: possible join, leave, and mood drift
func (s *Simulator) Advance() {
	s.clockMs += 1000 + int64(s.rng.Intn(4000))

	if s.rng.Float64() < parameter.SimulatorJoinChance && len(s.roster) < s.maxCount {
		s.join()
	}
	if s.rng.Float64() < parameter.SimulatorLeaveChance && len(s.roster) > 1 {
		s.leave()
	}
	for i := range s.roster {
		if s.rng.Float64() < parameter.SimulatorMoodChance {
			s.roster[i].Mood = Mood(s.rng.Intn(int(MoodCount)))
		}
	}
}

func (s *Simulator) join() {
	s.nextID++
	s.roster = append(s.roster, Participant{
		ID:       fmt.Sprintf("sim-%04d", s.nextID),
		Mood:     Mood(s.rng.Intn(int(MoodCount))),
		JoinedAt: s.clockMs,
	})
	s.clockMs++
}

func (s *Simulator) leave() {
	idx := s.rng.Intn(len(s.roster))
	s.roster = append(s.roster[:idx], s.roster[idx+1:]...)
}
