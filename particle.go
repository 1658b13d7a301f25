package sparktrail

import (
	"math"
	"math/rand/v2"
)

// lifeEpsilon absorbs float rounding in the repeated life decrement so a
// particle with Decay 0.02 expires on exactly its 50th tick.
const lifeEpsilon = 1e-9

// Particle is one spark of the pointer trail. ID is unique for the lifetime
// of the Engine and increases with insertion order.
type Particle struct {
	ID     uint64
	Pos    Vec2
	Vel    Vec2
	Life   float64 // in (0, 1], decreases every tick
	Swatch Swatch
}

// Size returns the rendered diameter in pixels.
func (p Particle) Size() float64 {
	return math.Max(1, p.Life*3)
}

// Glow returns the glow radius in pixels.
func (p Particle) Glow() float64 {
	return p.Life * 4
}

// TrailConfig controls how sparks are spawned and integrated. All velocities
// and accelerations are per tick, not per second.
type TrailConfig struct {
	// MaxParticles caps the store. Pushing past the cap evicts the oldest.
	MaxParticles int
	// SpeedPerParticle is the pointer distance that buys one extra spark.
	SpeedPerParticle float64
	// MaxBurst caps the extra sparks per move event; the total is MaxBurst+1.
	MaxBurst int
	// LaunchSpeed is the range of the radial launch magnitude.
	LaunchSpeed Range
	// Jitter is added to the horizontal launch velocity.
	Jitter Range
	// Lift is added to the vertical launch velocity (negative is up).
	Lift float64
	// Fall is added directly to the vertical position every tick.
	Fall float64
	// Gravity is accumulated into the vertical velocity every tick.
	Gravity float64
	// Drag multiplies the horizontal velocity every tick.
	Drag float64
	// Decay is subtracted from life every tick.
	Decay float64
	// AccentChance is the probability a spark uses SwatchAccent.
	AccentChance float64
}

// DefaultTrailConfig returns the tuned gold spark trail.
func DefaultTrailConfig() TrailConfig {
	return TrailConfig{
		MaxParticles:     80,
		SpeedPerParticle: 2,
		MaxBurst:         10,
		LaunchSpeed:      Range{0, 2},
		Jitter:           Range{-0.5, 0.5},
		Lift:             -1,
		Fall:             0.2,
		Gravity:          0.15,
		Drag:             0.95,
		Decay:            0.02,
		AccentChance:     0.7,
	}
}

// burstCount returns how many sparks a move of the given speed spawns.
func (c *TrailConfig) burstCount(speed float64) int {
	extra := 0
	if c.SpeedPerParticle > 0 && speed > 0 {
		f := math.Floor(speed / c.SpeedPerParticle)
		if f >= float64(c.MaxBurst) {
			extra = c.MaxBurst
		} else {
			extra = int(f)
		}
	}
	return extra + 1
}

// newParticle initializes a spark at pos. The caller assigns the ID.
func (c *TrailConfig) newParticle(rng *rand.Rand, pos Vec2) Particle {
	angle := rng.Float64() * 2 * math.Pi
	speed := c.LaunchSpeed.sample(rng)
	jitter := c.Jitter.sample(rng)

	sw := SwatchNeutral
	if rng.Float64() < c.AccentChance {
		sw = SwatchAccent
	}
	return Particle{
		Pos: pos,
		Vel: Vec2{
			X: math.Cos(angle)*speed + jitter,
			Y: math.Sin(angle)*speed + c.Lift,
		},
		Life:   1,
		Swatch: sw,
	}
}

// integrate advances every particle in s by one tick and drops the expired
// ones. Returns the number removed.
func (c *TrailConfig) integrate(s *particleStore) int {
	return s.retain(func(p *Particle) bool {
		p.Pos.X += p.Vel.X
		p.Pos.Y += p.Vel.Y + c.Fall
		p.Vel.X *= c.Drag
		p.Vel.Y += c.Gravity
		p.Life -= c.Decay
		return p.Life > lifeEpsilon
	})
}

// sample returns a uniform value in [Min, Max).
func (r Range) sample(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// particleStore is a fixed-capacity FIFO ring of live particles, ordered
// oldest first.
type particleStore struct {
	buf  []Particle
	head int
	n    int
}

func newParticleStore(max int) particleStore {
	if max <= 0 {
		max = 80
	}
	return particleStore{buf: make([]Particle, max)}
}

// Len returns the number of live particles.
func (s *particleStore) Len() int {
	return s.n
}

// at returns the i-th oldest particle.
func (s *particleStore) at(i int) *Particle {
	return &s.buf[(s.head+i)%len(s.buf)]
}

// push appends p, evicting the oldest particle when full. Reports whether
// an eviction happened.
func (s *particleStore) push(p Particle) bool {
	evicted := false
	if s.n == len(s.buf) {
		s.head = (s.head + 1) % len(s.buf)
		s.n--
		evicted = true
	}
	s.buf[(s.head+s.n)%len(s.buf)] = p
	s.n++
	return evicted
}

// retain calls keep on every particle in order, compacting away the ones
// for which it returns false. Order of survivors is preserved.
func (s *particleStore) retain(keep func(*Particle) bool) int {
	w := 0
	for i := 0; i < s.n; i++ {
		p := s.at(i)
		if !keep(p) {
			continue
		}
		if w != i {
			*s.at(w) = *p
		}
		w++
	}
	removed := s.n - w
	s.n = w
	return removed
}

// appendTo appends the live particles, oldest first, to dst.
func (s *particleStore) appendTo(dst []Particle) []Particle {
	for i := 0; i < s.n; i++ {
		dst = append(dst, *s.at(i))
	}
	return dst
}

// reset drops every particle.
func (s *particleStore) reset() {
	s.head = 0
	s.n = 0
}
