package sparktrail

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errTest = errors.New("test failure")

// fakeDevice records calls instead of producing sound.
type fakeDevice struct {
	suspended bool
	resumes   int
	suspends  int
	closes    int
	played    int
	frames    int
	playErr   error
	resumeErr error
	panicPlay bool
}

func (d *fakeDevice) SampleRate() beep.SampleRate { return 8000 }
func (d *fakeDevice) Suspended() bool             { return d.suspended }

func (d *fakeDevice) Suspend() error {
	d.suspends++
	d.suspended = true
	return nil
}

func (d *fakeDevice) Resume() error {
	d.resumes++
	if d.resumeErr != nil {
		return d.resumeErr
	}
	d.suspended = false
	return nil
}

func (d *fakeDevice) Play(s beep.Streamer) error {
	if d.panicPlay {
		panic("device exploded")
	}
	if d.playErr != nil {
		return d.playErr
	}
	d.played++
	d.frames += len(drain(s))
	return nil
}

func (d *fakeDevice) Close() error {
	d.closes++
	return nil
}

func openerFor(dev *fakeDevice, calls *int) DeviceOpener {
	return func() (AudioDevice, error) {
		*calls++
		return dev, nil
	}
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestCuePlayerOpensLazilyOnce(t *testing.T) {
	dev := &fakeDevice{}
	calls := 0
	c := newCuePlayer(openerFor(dev, &calls), DefaultToneConfig(), zap.NewNop())

	if calls != 0 {
		t.Fatal("device opened before first trigger")
	}
	c.trigger()
	c.trigger()
	if calls != 1 || c.opens != 1 {
		t.Errorf("opens = %d (opener calls %d), want 1", c.opens, calls)
	}
	if dev.played != 2 || c.plays != 2 {
		t.Errorf("played = %d, plays = %d, want 2", dev.played, c.plays)
	}
	if dev.frames != 2*1600 {
		t.Errorf("frames = %d, want %d (two 0.2s cues at 8kHz)", dev.frames, 2*1600)
	}
}

func TestCuePlayerResumesSuspendedDevice(t *testing.T) {
	dev := &fakeDevice{suspended: true}
	calls := 0
	c := newCuePlayer(openerFor(dev, &calls), DefaultToneConfig(), zap.NewNop())

	c.trigger()
	if dev.resumes != 1 {
		t.Errorf("resumes = %d, want 1", dev.resumes)
	}
	if dev.played != 1 {
		t.Errorf("played = %d, want 1", dev.played)
	}

	c.trigger()
	if dev.resumes != 1 {
		t.Errorf("running device resumed again, resumes = %d", dev.resumes)
	}
}

func TestCuePlayerResumeFailureStillPlays(t *testing.T) {
	dev := &fakeDevice{suspended: true, resumeErr: errors.New("denied")}
	calls := 0
	log, logs := observedLogger()
	c := newCuePlayer(openerFor(dev, &calls), DefaultToneConfig(), log)

	c.trigger()
	if dev.played != 1 {
		t.Errorf("played = %d, want 1", dev.played)
	}
	if logs.FilterMessage("resume audio device").Len() != 1 {
		t.Errorf("expected resume warning, got %v", logs.All())
	}
}

func TestCuePlayerOpenFailureLoggedAndRetried(t *testing.T) {
	calls := 0
	dev := &fakeDevice{}
	fail := true
	open := func() (AudioDevice, error) {
		calls++
		if fail {
			return nil, errors.New("no audio hardware")
		}
		return dev, nil
	}
	log, logs := observedLogger()
	c := newCuePlayer(open, DefaultToneConfig(), log)

	c.trigger()
	if c.plays != 0 {
		t.Errorf("plays = %d, want 0", c.plays)
	}
	entries := logs.FilterMessage("audio unavailable, cue skipped").All()
	if len(entries) != 1 {
		t.Fatalf("warnings = %d, want 1", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entries[0].Level)
	}

	fail = false
	c.trigger()
	if calls != 2 || dev.played != 1 {
		t.Errorf("opener calls = %d played = %d, want 2 and 1", calls, dev.played)
	}
}

func TestCuePlayerPlayErrorSwallowed(t *testing.T) {
	dev := &fakeDevice{playErr: errors.New("buffer full")}
	calls := 0
	log, logs := observedLogger()
	c := newCuePlayer(openerFor(dev, &calls), DefaultToneConfig(), log)

	c.trigger()
	if c.plays != 0 {
		t.Errorf("plays = %d, want 0", c.plays)
	}
	if logs.FilterMessage("schedule audio cue").Len() != 1 {
		t.Errorf("expected schedule warning, got %v", logs.All())
	}
}

func TestCuePlayerRecoversPanic(t *testing.T) {
	dev := &fakeDevice{panicPlay: true}
	calls := 0
	log, logs := observedLogger()
	c := newCuePlayer(openerFor(dev, &calls), DefaultToneConfig(), log)

	c.trigger()
	if logs.FilterMessage("audio cue panicked").Len() != 1 {
		t.Errorf("expected panic to be logged, got %v", logs.All())
	}
}

func TestCuePlayerNilOpener(t *testing.T) {
	c := newCuePlayer(nil, DefaultToneConfig(), zap.NewNop())
	c.trigger()
	if c.opens != 0 || c.plays != 0 {
		t.Errorf("opens = %d plays = %d, want 0", c.opens, c.plays)
	}
}

func TestCuePlayerSuspendAndClose(t *testing.T) {
	dev := &fakeDevice{}
	calls := 0
	c := newCuePlayer(openerFor(dev, &calls), DefaultToneConfig(), zap.NewNop())

	c.suspend()
	if calls != 0 {
		t.Error("suspend should not open a device")
	}

	c.trigger()
	c.suspend()
	c.suspend()
	if dev.suspends != 1 {
		t.Errorf("suspends = %d, want 1", dev.suspends)
	}

	c.close()
	c.close()
	if dev.closes != 1 {
		t.Errorf("closes = %d, want 1", dev.closes)
	}

	// A press after close reopens.
	c.trigger()
	if calls != 2 {
		t.Errorf("opener calls = %d, want 2", calls)
	}
}

func TestEncodeF32(t *testing.T) {
	got := encodeF32([][2]float64{{1, -1}})
	want := []byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x80, 0xbf}
	if string(got) != string(want) {
		t.Errorf("encodeF32 = % x, want % x", got, want)
	}
}
