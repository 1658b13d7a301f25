package sparktrail

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTPS = 60

// Config configures an Engine. Start from DefaultConfig. A zero Trail,
// Cursor or Tone is replaced by its default as a whole; MaxParticles, TPS,
// Logger and palette entries fall back individually.
type Config struct {
	Trail   TrailConfig
	Cursor  CursorConfig
	Tone    ToneConfig
	Palette Palette

	// TPS is the frame rate the host ticks at. The spring filter and the
	// glyph tween step by 1/TPS; the trail integrates per tick.
	TPS int

	// OpenAudio acquires the output device on the first press. Nil disables
	// the click cue.
	OpenAudio DeviceOpener

	// Logger receives audio failures, skipped events and, with Debug set,
	// per-frame stats. Defaults to a no-op logger.
	Logger *zap.Logger
	Debug  bool

	// Rand overrides the spark randomness source.
	Rand *rand.Rand
}

// DefaultConfig returns the tuned trail, cursor and cue with audio routed
// through oto.
func DefaultConfig() Config {
	return Config{
		Trail:     DefaultTrailConfig(),
		Cursor:    DefaultCursorConfig(),
		Tone:      DefaultToneConfig(),
		Palette:   DefaultPalette,
		TPS:       defaultTPS,
		OpenAudio: OpenOtoDevice(DefaultSampleRate),
	}
}

// Frame is the read-only per-frame view handed to a render sink.
type Frame struct {
	// Particles are the live sparks, oldest first.
	Particles []Particle
	// Palette resolves Particle.Swatch to a color.
	Palette [2]Color
	// Cursor is the smoothed glyph position.
	Cursor Vec2
	// Scale is the eased glyph scale.
	Scale float64
	InteractionState
}

// ColorOf returns the palette color for p.
func (f *Frame) ColorOf(p Particle) Color {
	return f.Palette[p.Swatch]
}

// Engine is the pointer trail and click cue engine. All methods must be
// called from the host's event goroutine.
type Engine struct {
	cfg     Config
	log     *zap.Logger
	rng     *rand.Rand
	palette [2]Color
	dt      float32

	host    Host
	handles []CallbackHandle
	frame   CallbackHandle
	mounted bool

	store  particleStore
	nextID uint64
	last   Vec2

	filter pointerFilter
	cursor Vec2
	state  InteractionState
	scale  scaleTween
	audio  *cuePlayer

	stats frameStats
}

// New creates an unmounted Engine.
func New(cfg Config) *Engine {
	if cfg.Trail == (TrailConfig{}) {
		cfg.Trail = DefaultTrailConfig()
	}
	if cfg.Cursor == (CursorConfig{}) {
		cfg.Cursor = DefaultCursorConfig()
	}
	if cfg.Tone == (ToneConfig{}) {
		cfg.Tone = DefaultToneConfig()
	}
	if cfg.Trail.MaxParticles <= 0 {
		cfg.Trail.MaxParticles = 80
	}
	if cfg.TPS <= 0 {
		cfg.TPS = defaultTPS
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("session", uuid.NewString()))

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	palette, err := cfg.Palette.resolve()
	if err != nil {
		log.Warn("invalid palette, using defaults", zap.Error(err))
	}

	e := &Engine{
		cfg:     cfg,
		log:     log,
		rng:     rng,
		palette: palette,
		dt:      float32(1.0 / float64(cfg.TPS)),
		store:   newParticleStore(cfg.Trail.MaxParticles),
		filter:  newPointerFilter(cfg.TPS, cfg.Cursor),
		cursor:  cfg.Cursor.Start,
		scale:   newScaleTween(cfg.Cursor.ScaleDuration),
		audio:   newCuePlayer(cfg.OpenAudio, cfg.Tone, log),
	}
	return e
}

// Mount subscribes the engine to h. On a touch-primary host nothing is
// registered and Mount returns false. Mounting an already mounted engine
// is a no-op that returns true.
func (e *Engine) Mount(h Host) bool {
	if e.mounted {
		return true
	}
	if h.TouchPrimary() {
		e.log.Info("touch-primary host, cursor effects disabled")
		return false
	}
	e.handles = append(e.handles[:0],
		h.OnPointerMove(e.handleMove),
		h.OnPointerOver(e.handleOver),
		h.OnPointerDown(e.handleDown),
		h.OnPointerUp(e.handleUp),
	)
	e.frame = h.RequestFrame(e.tick)
	e.host = h
	e.mounted = true
	return true
}

// Mounted reports whether the engine is attached to a host.
func (e *Engine) Mounted() bool {
	return e.mounted
}

// Teardown removes every subscription and the frame callback together,
// clears the trail and pointer state, and releases the audio device. A cue
// already scheduled keeps playing. Safe to call more than once.
func (e *Engine) Teardown() {
	if !e.mounted {
		return
	}
	for _, h := range e.handles {
		h.Remove()
	}
	e.frame.Remove()
	e.handles = e.handles[:0]
	e.frame = CallbackHandle{}
	e.host = nil
	e.mounted = false

	e.audio.close()
	e.resetPointer()
}

// resetPointer returns the trail, sample, filter and glyph to their
// unmounted state. Particle IDs keep counting.
func (e *Engine) resetPointer() {
	e.store.reset()
	e.last = Vec2{}
	e.filter = newPointerFilter(e.cfg.TPS, e.cfg.Cursor)
	e.cursor = e.cfg.Cursor.Start
	e.state = InteractionState{}
	e.scale = newScaleTween(e.cfg.Cursor.ScaleDuration)
}

// SuspendAudio forwards a host power-state change to the audio device, if
// one has been opened. The next press resumes it.
func (e *Engine) SuspendAudio() {
	e.audio.suspend()
}

// Snapshot returns the current frame. Live particles are appended to dst,
// which may be reused across frames.
func (e *Engine) Snapshot(dst []Particle) Frame {
	return Frame{
		Particles:        e.store.appendTo(dst[:0]),
		Palette:          e.palette,
		Cursor:           e.cursor,
		Scale:            e.scale.value,
		InteractionState: e.state,
	}
}

// ParticleCount returns the number of live particles.
func (e *Engine) ParticleCount() int {
	return e.store.Len()
}

// handleMove samples the raw pointer, feeds the filter target and spawns
// sparks at the unfiltered position.
func (e *Engine) handleMove(ev PointerEvent) {
	pos := ev.Pos()
	if !pos.finite() {
		e.stats.skipped++
		e.log.Debug("skipping pointer move without coordinates",
			zap.Float64("x", ev.X), zap.Float64("y", ev.Y))
		return
	}
	speed := math.Hypot(pos.X-e.last.X, pos.Y-e.last.Y)
	e.last = pos
	e.filter.setTarget(pos)
	e.spawn(pos, speed)
}

// spawn emits the burst for one move event.
func (e *Engine) spawn(pos Vec2, speed float64) {
	n := e.cfg.Trail.burstCount(speed)
	for i := 0; i < n; i++ {
		p := e.cfg.Trail.newParticle(e.rng, pos)
		p.ID = e.nextID
		e.nextID++
		if e.store.push(p) {
			e.stats.evicted++
		}
	}
	e.stats.spawned += n
}

func (e *Engine) handleOver(ev PointerEvent) {
	e.state.Hovering = IsInteractive(ev.Target)
	e.scale.retarget(e.state.glyphScale(e.cfg.Cursor))
}

func (e *Engine) handleDown(PointerEvent) {
	e.state.Pressed = true
	e.scale.retarget(e.state.glyphScale(e.cfg.Cursor))
	e.audio.trigger()
}

func (e *Engine) handleUp(PointerEvent) {
	e.state.Pressed = false
	e.scale.retarget(e.state.glyphScale(e.cfg.Cursor))
}

// tick is the frame callback: integrate the trail, then advance the cursor
// spring and the glyph scale.
func (e *Engine) tick() {
	var t0 time.Time
	if e.cfg.Debug {
		t0 = time.Now()
	}

	e.stats.expired += e.cfg.Trail.integrate(&e.store)
	e.cursor = e.filter.step()
	e.scale.update(e.dt)

	if e.cfg.Debug {
		e.stats.tickTime = time.Since(t0)
		e.stats.live = e.store.Len()
		e.debugLog()
	}
}
