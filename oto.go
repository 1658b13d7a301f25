package sparktrail

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep"
)

// oto allows a single context per process; every device shares it.
var (
	otoCtx      *oto.Context
	otoRate     int
	otoInitOnce sync.Once
	otoInitErr  error
	otoPower    sharedPower

	// inFlight keeps scheduled players reachable until they finish so a
	// cue outlives the device that started it.
	inFlightMu sync.Mutex
	inFlight   []*oto.Player
)

// ensureOtoContext initializes the oto context on first use. The rate of
// the first call wins.
func ensureOtoContext(sampleRate int) (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
			BufferSize:   20 * time.Millisecond,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		otoRate = sampleRate
		otoPower.ctl = otoCtx
		<-ready
	})
	return otoCtx, otoInitErr
}

// powerControl is the part of *oto.Context that pauses output.
type powerControl interface {
	Suspend() error
	Resume() error
}

// sharedPower is the suspend state of the process-wide context. Device
// handles come and go; the state belongs to the context they share.
type sharedPower struct {
	mu        sync.Mutex
	ctl       powerControl
	suspended bool
}

func (p *sharedPower) isSuspended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.suspended
}

func (p *sharedPower) suspend() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.suspended {
		return nil
	}
	if err := p.ctl.Suspend(); err != nil {
		return fmt.Errorf("suspend: %w", err)
	}
	p.suspended = true
	return nil
}

func (p *sharedPower) resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.suspended {
		return nil
	}
	if err := p.ctl.Resume(); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	p.suspended = false
	return nil
}

// otoDevice is an AudioDevice handle on the process-wide oto context.
type otoDevice struct {
	ctx   *oto.Context
	rate  beep.SampleRate
	power *sharedPower
}

// OpenOtoDevice returns a DeviceOpener backed by oto. A sampleRate of zero
// uses DefaultSampleRate.
func OpenOtoDevice(sampleRate int) DeviceOpener {
	return func() (AudioDevice, error) {
		if sampleRate <= 0 {
			sampleRate = DefaultSampleRate
		}
		ctx, err := ensureOtoContext(sampleRate)
		if err != nil {
			return nil, fmt.Errorf("oto audio not available: %w", err)
		}
		return &otoDevice{ctx: ctx, rate: beep.SampleRate(otoRate), power: &otoPower}, nil
	}
}

func (d *otoDevice) SampleRate() beep.SampleRate { return d.rate }

func (d *otoDevice) Suspended() bool { return d.power.isSuspended() }

func (d *otoDevice) Suspend() error { return d.power.suspend() }

func (d *otoDevice) Resume() error { return d.power.resume() }

// Play renders s to float32 PCM and starts a new player for it.
func (d *otoDevice) Play(s beep.Streamer) error {
	if d.ctx == nil {
		return errors.New("oto context not initialized")
	}
	if err := d.ctx.Err(); err != nil {
		return fmt.Errorf("oto context: %w", err)
	}
	p := d.ctx.NewPlayer(bytes.NewReader(encodeF32(drain(s))))
	p.Play()

	inFlightMu.Lock()
	inFlight = append(pruneFinished(inFlight), p)
	inFlightMu.Unlock()
	return nil
}

// Close drops the handle. The shared context and any in-flight players
// stay alive.
func (d *otoDevice) Close() error {
	inFlightMu.Lock()
	inFlight = pruneFinished(inFlight)
	inFlightMu.Unlock()
	return nil
}

// pruneFinished closes and removes players that have stopped.
func pruneFinished(players []*oto.Player) []*oto.Player {
	w := 0
	for _, p := range players {
		if p.IsPlaying() {
			players[w] = p
			w++
			continue
		}
		_ = p.Close()
	}
	clear(players[w:])
	return players[:w]
}

// encodeF32 converts stereo frames to little-endian float32 bytes.
func encodeF32(frames [][2]float64) []byte {
	out := make([]byte, len(frames)*8)
	for i, f := range frames {
		binary.LittleEndian.PutUint32(out[i*8:], math.Float32bits(float32(f[0])))
		binary.LittleEndian.PutUint32(out[i*8+4:], math.Float32bits(float32(f[1])))
	}
	return out
}
