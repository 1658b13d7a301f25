package sparktrail

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// DefaultSampleRate is used by the audio devices and WAV export when no
// rate is given.
const DefaultSampleRate = 48000

// ToneConfig describes the click cue: a falling sine chirp under a short
// attack/decay envelope.
type ToneConfig struct {
	// StartFreq sweeps exponentially to EndFreq over Sweep, then holds.
	StartFreq float64
	EndFreq   float64
	Sweep     time.Duration
	// Peak is reached linearly over Attack, then the gain decays
	// exponentially to Floor over Decay and holds there.
	Peak   float64
	Floor  float64
	Attack time.Duration
	Decay  time.Duration
	// Duration is the total sounding time; the oscillator stops after it.
	Duration time.Duration
	// Volume scales the whole cue. Zero or less is silent.
	Volume float64
}

// DefaultToneConfig returns the "water drop" cue.
func DefaultToneConfig() ToneConfig {
	return ToneConfig{
		StartFreq: 600,
		EndFreq:   200,
		Sweep:     100 * time.Millisecond,
		Peak:      0.5,
		Floor:     0.01,
		Attack:    10 * time.Millisecond,
		Decay:     140 * time.Millisecond,
		Duration:  200 * time.Millisecond,
		Volume:    1,
	}
}

// NewCue builds one click cue as a finite stream at the given rate.
func NewCue(cfg ToneConfig, rate beep.SampleRate) beep.Streamer {
	osc := newSweep(cfg.StartFreq, cfg.EndFreq, cfg.Sweep, cfg.Duration, rate)
	env := newDecayEnvelope(osc, cfg.Peak, cfg.Floor, cfg.Attack, cfg.Decay, rate)
	return newVolume(env, cfg.Volume)
}

// sweep is a sine oscillator whose frequency falls exponentially.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	sweepN   int
	total    int
	position int
	phase    float64
}

func newSweep(from, to float64, sweepDur, total time.Duration, rate beep.SampleRate) *sweep {
	// Exponential ramps are undefined through zero.
	from = math.Max(from, 1)
	to = math.Max(to, 1)
	return &sweep{
		rate:   rate,
		from:   from,
		to:     to,
		sweepN: rate.N(sweepDur),
		total:  rate.N(total),
	}
}

func (s *sweep) freqAt(pos int) float64 {
	if pos >= s.sweepN || s.sweepN == 0 {
		return s.to
	}
	return s.from * math.Pow(s.to/s.from, float64(pos)/float64(s.sweepN))
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.position >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.position >= s.total {
			return i, true
		}
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.freqAt(s.position) / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// decayEnvelope shapes a stream with a linear attack followed by an
// exponential decay to a held floor.
type decayEnvelope struct {
	streamer beep.Streamer
	position int
	attackN  int
	decayN   int
	peak     float64
	floor    float64
}

func newDecayEnvelope(s beep.Streamer, peak, floor float64, attack, decay time.Duration, rate beep.SampleRate) *decayEnvelope {
	if floor <= 0 {
		floor = 1e-4
	}
	return &decayEnvelope{
		streamer: s,
		attackN:  rate.N(attack),
		decayN:   rate.N(decay),
		peak:     peak,
		floor:    floor,
	}
}

// gainAt returns the envelope gain at sample pos.
func (e *decayEnvelope) gainAt(pos int) float64 {
	if pos < e.attackN {
		return e.peak * float64(pos) / float64(e.attackN)
	}
	k := pos - e.attackN
	if k >= e.decayN || e.peak <= 0 {
		return math.Min(e.floor, e.peak)
	}
	return e.peak * math.Pow(e.floor/e.peak, float64(k)/float64(e.decayN))
}

func (e *decayEnvelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gainAt(e.position)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *decayEnvelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear volume. math.Log2(0) is -Inf, so zero
// maps to silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// drain reads s to the end.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		out = append(out, chunk[:n]...)
		if !ok || n == 0 {
			return out
		}
	}
}

// WriteCueWAV renders one cue as 16-bit mono PCM WAV. A sampleRate of zero
// uses DefaultSampleRate.
func WriteCueWAV(w io.WriteSeeker, cfg ToneConfig, sampleRate int) error {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	frames := drain(NewCue(cfg, beep.SampleRate(sampleRate)))

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(frames)),
		SourceBitDepth: 16,
	}
	for i, f := range frames {
		v := math.Max(-1, math.Min(1, f[0]))
		buf.Data[i] = int(math.Round(v * math.MaxInt16))
	}

	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write cue wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close cue wav: %w", err)
	}
	return nil
}
