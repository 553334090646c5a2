package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/communion/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// droneStreamer is an endless low sine whose gain follows lung depth
// Gain is stored as float bits so the frame loop can set it without
// touching the speaker lock
type droneStreamer struct {
	phase    float64
	phaseInc float64
	gainBits atomic.Uint64

	// smoothed tracks the target gain with a one-pole filter to avoid
	// zipper noise on depth changes
	smoothed float64
}

func newDroneStreamer(freq float64) *droneStreamer {
	d := &droneStreamer{
		phaseInc: freq / float64(sampleRate),
	}
	d.SetGain(parameter.DroneGainMin)
	return d
}

// SetGain is safe to call from any goroutine
func (d *droneStreamer) SetGain(gain float64) {
	d.gainBits.Store(math.Float64bits(gain))
}

func (d *droneStreamer) Stream(samples [][2]float64) (int, bool) {
	target := math.Float64frombits(d.gainBits.Load())
	for i := range samples {
		d.smoothed += (target - d.smoothed) * 0.0005
		v := math.Sin(2*math.Pi*d.phase) * d.smoothed
		samples[i][0] = v
		samples[i][1] = v
		d.phase += d.phaseInc
		if d.phase >= 1 {
			d.phase -= 1
		}
	}
	return len(samples), true
}

func (d *droneStreamer) Err() error { return nil }

// chimeStreamer is a finite sine ping with attack/release envelope
type chimeStreamer struct {
	phase    float64
	phaseInc float64
	pos      int
	total    int
	attack   int
	release  int
	gain     float64
}

func newChimeStreamer(freq float64) *chimeStreamer {
	return &chimeStreamer{
		phaseInc: freq / float64(sampleRate),
		total:    sampleRate.N(parameter.ChimeDuration),
		attack:   sampleRate.N(parameter.ChimeAttack),
		release:  sampleRate.N(parameter.ChimeRelease),
		gain:     parameter.ChimeGain,
	}
}

func (c *chimeStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.pos >= c.total {
		return 0, false
	}

	n := len(samples)
	if remain := c.total - c.pos; remain < n {
		n = remain
	}

	releaseStart := c.total - c.release
	for i := 0; i < n; i++ {
		env := 1.0
		switch {
		case c.pos < c.attack:
			env = float64(c.pos) / float64(c.attack)
		case c.pos >= releaseStart:
			env = float64(c.total-c.pos) / float64(c.release)
		}

		v := math.Sin(2*math.Pi*c.phase) * env * c.gain
		samples[i][0] = v
		samples[i][1] = v

		c.phase += c.phaseInc
		if c.phase >= 1 {
			c.phase -= 1
		}
		c.pos++
	}
	return n, true
}

func (c *chimeStreamer) Err() error { return nil }
