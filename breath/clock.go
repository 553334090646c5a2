package breath

import (
	"time"

	"github.com/lixenwraith/communion/parameter"
	"github.com/lixenwraith/communion/vmath"
)

// Phase identifies a segment of the breathing cycle
type Phase uint8

const (
	PhaseInhale Phase = iota
	PhaseHoldIn
	PhaseExhale
	PhaseHoldOut
)

func (p Phase) String() string {
	switch p {
	case PhaseInhale:
		return "inhale"
	case PhaseHoldIn:
		return "hold-in"
	case PhaseExhale:
		return "exhale"
	case PhaseHoldOut:
		return "hold-out"
	default:
		return "unknown"
	}
}

// IsHold reports whether the phase is one of the still segments
// Slot reconciliation is gated to hold phases only
func (p Phase) IsHold() bool {
	return p == PhaseHoldIn || p == PhaseHoldOut
}

// State is the breath clock output for one tick
// Passed by value to consumers; no component queries a live clock mid-frame
type State struct {
	Phase Phase

	// Cycle counts completed full cycles since the clock epoch
	Cycle int64

	// RawProgress is [0,1) position within the current phase, unshaped
	RawProgress float64

	// Depth is eased lung fullness in [DepthFloor,1]
	// 1 = fully inhaled; drives orbit swell, drone gain, globe scale
	Depth float64
}

// Clock derives breath state from elapsed wall time
// Stateless between calls; all outputs are functions of (epoch, now)
type Clock struct {
	epoch time.Time

	inhale  time.Duration
	holdIn  time.Duration
	exhale  time.Duration
	holdOut time.Duration
	cycle   time.Duration
}

// NewClock builds a clock with the default phase durations anchored at epoch
func NewClock(epoch time.Time) *Clock {
	return NewClockWithDurations(epoch,
		parameter.BreathInhale, parameter.BreathHoldIn,
		parameter.BreathExhale, parameter.BreathHoldOut)
}

// NewClockWithDurations builds a clock with explicit phase durations
// Non-positive durations are treated as zero-length phases
func NewClockWithDurations(epoch time.Time, inhale, holdIn, exhale, holdOut time.Duration) *Clock {
	if inhale < 0 {
		inhale = 0
	}
	if holdIn < 0 {
		holdIn = 0
	}
	if exhale < 0 {
		exhale = 0
	}
	if holdOut < 0 {
		holdOut = 0
	}
	c := &Clock{
		epoch:   epoch,
		inhale:  inhale,
		holdIn:  holdIn,
		exhale:  exhale,
		holdOut: holdOut,
		cycle:   inhale + holdIn + exhale + holdOut,
	}
	if c.cycle == 0 {
		// Degenerate config: fall back to a one-second cycle of pure inhale
		c.inhale = time.Second
		c.cycle = time.Second
	}
	return c
}

// CycleDuration returns the full cycle length
func (c *Clock) CycleDuration() time.Duration {
	return c.cycle
}

// StateAt computes breath state for an arbitrary instant
// Instants before the epoch clamp to cycle 0, phase start
func (c *Clock) StateAt(now time.Time) State {
	elapsed := now.Sub(c.epoch)
	if elapsed < 0 {
		elapsed = 0
	}

	cycleNum := int64(elapsed / c.cycle)
	within := elapsed % c.cycle

	var phase Phase
	var progress float64

	switch {
	case within < c.inhale:
		phase = PhaseInhale
		progress = phaseProgress(within, c.inhale)
	case within < c.inhale+c.holdIn:
		phase = PhaseHoldIn
		progress = phaseProgress(within-c.inhale, c.holdIn)
	case within < c.inhale+c.holdIn+c.exhale:
		phase = PhaseExhale
		progress = phaseProgress(within-c.inhale-c.holdIn, c.exhale)
	default:
		phase = PhaseHoldOut
		progress = phaseProgress(within-c.inhale-c.holdIn-c.exhale, c.holdOut)
	}

	return State{
		Phase:       phase,
		Cycle:       cycleNum,
		RawProgress: progress,
		Depth:       depth(phase, progress),
	}
}

func phaseProgress(offset, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	return vmath.Clamp01(float64(offset) / float64(duration))
}

// depth shapes raw phase progress into lung fullness
// SmoothStep on the moving phases avoids velocity discontinuities at
// phase boundaries (depth derivative is zero entering and leaving holds)
func depth(phase Phase, progress float64) float64 {
	floor := parameter.BreathDepthFloor
	switch phase {
	case PhaseInhale:
		return vmath.Lerp(floor, 1, vmath.SmoothStep(progress))
	case PhaseHoldIn:
		return 1
	case PhaseExhale:
		return vmath.Lerp(1, floor, vmath.SmoothStep(progress))
	default:
		return floor
	}
}
