package field

import (
	"math/rand"
	"time"

	"github.com/tanema/gween/ease"
)

// linear is the easing used by the particle opacity envelope.
var linear ease.TweenFunc = ease.Linear

// Rand is the random source consumed by the field. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Flow is an optional velocity field sampled by every particle on each update.
type Flow interface {
	// Step advances the flow by one frame.
	Step()
	// Velocity returns the flow velocity at the canvas coordinates {x, y}.
	Velocity(x, y float64) (float64, float64)
}

// Stirrer is implemented by flows which react to pointer movement.
type Stirrer interface {
	Stir(x, y, dx, dy float64)
}

// Config holds the tunables of the growth field.
// Zero valued fields are replaced by the values of DefaultConfig.
type Config struct {
	// MaxParticles is the soft population cap.
	MaxParticles int
	// BackPressure is the fraction of MaxParticles above which no new waves are spawned.
	BackPressure float64
	// SpawnInterval is the time elapsed between two waves.
	SpawnInterval time.Duration
	// SeedWaves is the number of waves spawned on initialization. Negative disables seeding.
	SeedWaves int
	// OriginX and OriginY locate the origin as a fraction of the canvas size.
	OriginX, OriginY float64
	// MaxGeneration is the depth after which particles stop multiplying.
	MaxGeneration int
	// Lift is subtracted from the vertical velocity of every particle on each frame.
	// Negative disables it.
	Lift float64
	// PointerInfluence scales the normalized pointer offset into a drift.
	// Negative disables it.
	PointerInfluence float64
	// BoundsMargin is the distance outside the canvas at which particles are
	// culled. Negative culls them right at the canvas edges.
	BoundsMargin float64
	// LinkDistance is the maximum distance between two linked particles.
	LinkDistance float64
	// OriginGlow is the radius of the glow painted at the origin.
	OriginGlow float64
	// FadeInFrames is the duration of the fade-in at the beginning of a particle's life.
	FadeInFrames int
	// FadeOutAt is the life ratio after which a particle starts fading out.
	FadeOutAt float64

	// Flow, when set, adds its velocity scaled by FlowScale to every particle.
	Flow      Flow
	FlowScale float64

	// Rand is the random source. Defaults to a time seeded *rand.Rand.
	Rand Rand
}

// DefaultConfig returns the configuration of the growth field as seen on the hero banner.
func DefaultConfig() Config {
	return Config{
		MaxParticles:     300,
		BackPressure:     0.7,
		SpawnInterval:    800 * time.Millisecond,
		SeedWaves:        5,
		OriginX:          0.08,
		OriginY:          0.5,
		MaxGeneration:    4,
		Lift:             0.002,
		PointerInfluence: 0.3,
		BoundsMargin:     50,
		LinkDistance:     60,
		OriginGlow:       40,
		FadeInFrames:     20,
		FadeOutAt:        0.7,
		FlowScale:        1,
	}
}

// withDefaults fills the zero valued fields of c.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxParticles <= 0 {
		c.MaxParticles = d.MaxParticles
	}
	if c.BackPressure <= 0 {
		c.BackPressure = d.BackPressure
	}
	if c.SpawnInterval <= 0 {
		c.SpawnInterval = d.SpawnInterval
	}
	switch {
	case c.SeedWaves < 0:
		c.SeedWaves = 0
	case c.SeedWaves == 0:
		c.SeedWaves = d.SeedWaves
	}
	if c.OriginX == 0 && c.OriginY == 0 {
		c.OriginX, c.OriginY = d.OriginX, d.OriginY
	}
	if c.MaxGeneration <= 0 {
		c.MaxGeneration = d.MaxGeneration
	}
	switch {
	case c.Lift < 0:
		c.Lift = 0
	case c.Lift == 0:
		c.Lift = d.Lift
	}
	switch {
	case c.PointerInfluence < 0:
		c.PointerInfluence = 0
	case c.PointerInfluence == 0:
		c.PointerInfluence = d.PointerInfluence
	}
	switch {
	case c.BoundsMargin < 0:
		c.BoundsMargin = 0
	case c.BoundsMargin == 0:
		c.BoundsMargin = d.BoundsMargin
	}
	if c.LinkDistance <= 0 {
		c.LinkDistance = d.LinkDistance
	}
	if c.OriginGlow <= 0 {
		c.OriginGlow = d.OriginGlow
	}
	if c.FadeInFrames <= 0 {
		c.FadeInFrames = d.FadeInFrames
	}
	if c.FadeOutAt <= 0 || c.FadeOutAt >= 1 {
		c.FadeOutAt = d.FadeOutAt
	}
	if c.FlowScale == 0 {
		c.FlowScale = d.FlowScale
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// SeqRand is a deterministic random source cycling through a fixed sequence of values.
// It is meant for tests and reproducible recordings.
type SeqRand struct {
	Values []float64
	i      int
}

// Float64 returns the next value of the sequence.
func (s *SeqRand) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.i%len(s.Values)]
	s.i++
	return v
}
