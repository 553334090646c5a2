package status

import (
	"fmt"
	"sync/atomic"
)

// Tracker aggregates runtime counters for the debug log
// All fields are atomics: the frame loop and the presence goroutine both
// write without coordination, the logger reads a consistent-enough snapshot
type Tracker struct {
	Frames          atomic.Int64
	Reconciliations atomic.Int64
	Entered         atomic.Int64
	Exited          atomic.Int64
	Evicted         atomic.Int64
	SkippedCycles   atomic.Int64
	VelocityClamps  atomic.Int64
	SweepViolations atomic.Int64
	Reconnects      atomic.Int64

	Population  atomic.Int64
	OrbitRadius AtomicFloat
	WorstGap    AtomicFloat

	Connected atomic.Bool
}

// Snapshot formats one log line with all counters
func (t *Tracker) Snapshot() string {
	return fmt.Sprintf(
		"frames=%d reconciles=%d (skipped=%d) entered=%d exited=%d evicted=%d "+
			"vclamps=%d violations=%d reconnects=%d pop=%d orbit=%.2f gap=%.3f connected=%v",
		t.Frames.Load(), t.Reconciliations.Load(), t.SkippedCycles.Load(),
		t.Entered.Load(), t.Exited.Load(), t.Evicted.Load(),
		t.VelocityClamps.Load(), t.SweepViolations.Load(), t.Reconnects.Load(),
		t.Population.Load(), t.OrbitRadius.Get(), t.WorstGap.Get(), t.Connected.Load())
}
