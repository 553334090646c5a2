package status

import (
	"strings"
	"sync"
	"testing"
)

// TestAtomicFloat verifies set/get round the bit conversion
func TestAtomicFloat(t *testing.T) {
	var f AtomicFloat
	if f.Get() != 0 {
		t.Errorf("Zero value should read 0, got %f", f.Get())
	}
	f.Set(3.25)
	if f.Get() != 3.25 {
		t.Errorf("Expected 3.25, got %f", f.Get())
	}
	f.Set(-0.5)
	if f.Get() != -0.5 {
		t.Errorf("Expected -0.5, got %f", f.Get())
	}
}

// TestAtomicFloatConcurrent verifies a torn read is impossible: every
// loaded value is one that was actually stored
func TestAtomicFloatConcurrent(t *testing.T) {
	var f AtomicFloat
	stored := map[float64]bool{0: true, 1.5: true, 2.5: true}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			f.Set(1.5)
			f.Set(2.5)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if v := f.Get(); !stored[v] {
				t.Errorf("Read %f, which was never stored", v)
				return
			}
		}
	}()
	wg.Wait()
}

// TestTrackerSnapshot verifies the log line carries the counters
func TestTrackerSnapshot(t *testing.T) {
	tr := &Tracker{}
	tr.Frames.Add(30)
	tr.Population.Store(12)
	tr.Connected.Store(true)

	s := tr.Snapshot()
	for _, want := range []string{"frames=30", "pop=12", "connected=true"} {
		if !strings.Contains(s, want) {
			t.Errorf("Snapshot %q missing %q", s, want)
		}
	}
}
