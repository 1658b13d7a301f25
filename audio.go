package sparktrail

import (
	"fmt"

	"github.com/gopxl/beep"
	"go.uber.org/zap"
)

// AudioDevice is a real-time audio output. Play schedules a finite stream
// and returns without waiting for it; a scheduled stream keeps playing after
// Close.
type AudioDevice interface {
	SampleRate() beep.SampleRate
	Suspended() bool
	Suspend() error
	Resume() error
	Play(s beep.Streamer) error
	Close() error
}

// DeviceOpener acquires an AudioDevice. The engine calls it lazily on the
// first press and keeps the result until Teardown.
type DeviceOpener func() (AudioDevice, error)

// cuePlayer owns the lazily opened device and turns presses into cues.
// Every failure is logged and swallowed.
type cuePlayer struct {
	open  DeviceOpener
	tone  ToneConfig
	log   *zap.Logger
	dev   AudioDevice
	opens int
	plays int
}

func newCuePlayer(open DeviceOpener, tone ToneConfig, log *zap.Logger) *cuePlayer {
	return &cuePlayer{open: open, tone: tone, log: log}
}

// device returns the shared device, opening it on first use.
func (c *cuePlayer) device() (AudioDevice, error) {
	if c.dev != nil {
		return c.dev, nil
	}
	if c.open == nil {
		return nil, nil
	}
	c.opens++
	dev, err := c.open()
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	c.dev = dev
	return dev, nil
}

// trigger synthesizes and schedules one cue.
func (c *cuePlayer) trigger() {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("audio cue panicked", zap.Any("panic", r))
		}
	}()

	dev, err := c.device()
	if err != nil {
		c.log.Warn("audio unavailable, cue skipped", zap.Error(err))
		return
	}
	if dev == nil {
		return
	}
	if dev.Suspended() {
		if err := dev.Resume(); err != nil {
			c.log.Warn("resume audio device", zap.Error(err))
		}
	}
	if err := dev.Play(NewCue(c.tone, dev.SampleRate())); err != nil {
		c.log.Warn("schedule audio cue", zap.Error(err))
		return
	}
	c.plays++
}

// suspend forwards a host power-state change. Does not open a device.
func (c *cuePlayer) suspend() {
	if c.dev == nil || c.dev.Suspended() {
		return
	}
	if err := c.dev.Suspend(); err != nil {
		c.log.Warn("suspend audio device", zap.Error(err))
	}
}

// close releases the device handle. In-flight cues finish on their own.
func (c *cuePlayer) close() {
	if c.dev == nil {
		return
	}
	if err := c.dev.Close(); err != nil {
		c.log.Warn("close audio device", zap.Error(err))
	}
	c.dev = nil
}
