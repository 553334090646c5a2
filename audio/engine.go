package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/communion/parameter"
	"github.com/lixenwraith/communion/vmath"
)

// Engine owns the speaker, the breath drone and shard chimes
// All methods are no-ops before Initialize succeeds, so the visualization
// runs fine on machines without audio
type Engine struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	drone       *droneStreamer
	lastChime   time.Time
	initialized bool
}

func NewEngine() *Engine {
	return &Engine{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the drone at minimum gain
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	e.drone = newDroneStreamer(parameter.DroneFrequency)
	e.mixer.Add(e.drone)
	speaker.Play(e.mixer)

	e.initialized = true
	return nil
}

// Cleanup silences everything; beep has no speaker close
func (e *Engine) Cleanup() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	e.initialized = false
}

// SetBreathDepth maps lung depth to drone gain; called every frame
func (e *Engine) SetBreathDepth(depth float64) {
	if e.drone == nil {
		return
	}
	gain := vmath.Lerp(parameter.DroneGainMin, parameter.DroneGainMax, vmath.Clamp01(depth))
	e.drone.SetGain(gain)
}

// PlayEnter chimes an arrival; throttled so a large reconciliation does
// not stack dozens of pings
func (e *Engine) PlayEnter() {
	e.playChime(parameter.ChimeEnterFrequency)
}

// PlayExit chimes a departure
func (e *Engine) PlayExit() {
	e.playChime(parameter.ChimeExitFrequency)
}

func (e *Engine) playChime(freq float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	now := time.Now()
	if now.Sub(e.lastChime) < parameter.MinChimeGap {
		return
	}
	e.lastChime = now

	speaker.Lock()
	e.mixer.Add(newChimeStreamer(freq))
	speaker.Unlock()
}
