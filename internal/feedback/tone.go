package feedback

import (
	"math"

	"github.com/faiface/beep"
)

// tone is a finite sine streamer with a linear attack and release so the cue
// starts and stops without clicks.
type tone struct {
	rate  beep.SampleRate
	freq  float64
	total int
	ramp  int
	pos   int
	amp   float64
}

func newTone(rate beep.SampleRate, freq float64, samples int, amp float64) *tone {
	ramp := rate.N(rampDuration)
	if ramp*2 > samples {
		ramp = samples / 2
	}
	return &tone{rate: rate, freq: freq, total: samples, ramp: ramp, amp: amp}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}

	n := 0
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		v := t.amp * t.envelope(t.pos) * math.Sin(2*math.Pi*t.freq*float64(t.pos)/float64(t.rate))
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

func (t *tone) envelope(i int) float64 {
	switch {
	case t.ramp == 0:
		return 1
	case i < t.ramp:
		return float64(i) / float64(t.ramp)
	case i >= t.total-t.ramp:
		return float64(t.total-i) / float64(t.ramp)
	default:
		return 1
	}
}
