// Package field implements the growth particle field: waves of particles
// emanating from an origin, multiplying into children and fading away.
package field

import (
	"math"
	"time"
)

// Field is the particle growth simulator. Particles are spawned in waves from
// a fixed origin, they age, multiply into children and are culled once they
// expire or leave the canvas.
//
// A Field is not safe for concurrent use: spawn, update and render are all
// expected to run on the goroutine driving the frames.
type Field struct {
	cfg       Config
	rnd       Rand
	particles []Particle

	width, height    float64
	originX, originY float64

	pointerX, pointerY float64
	lastSpawn          time.Duration
}

// New creates a field sized to a {width, height} canvas and seeds it with the
// configured number of waves so the first frame is not empty.
func New(cfg Config, width, height float64) *Field {
	cfg = cfg.withDefaults()
	f := &Field{
		cfg:       cfg,
		rnd:       cfg.Rand,
		particles: make([]Particle, 0, cfg.MaxParticles),
		pointerX:  0.5,
		pointerY:  0.5,
	}
	f.Resize(width, height)

	for i := 0; i < cfg.SeedWaves; i++ {
		f.SpawnWave()
	}
	return f
}

// Config returns the effective configuration of the field.
func (f *Field) Config() Config {
	return f.cfg
}

// Resize updates the canvas size and recomputes the origin.
// Existing particles keep their absolute positions.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
	f.originX = width * f.cfg.OriginX
	f.originY = height * f.cfg.OriginY

	if r, ok := f.cfg.Flow.(interface{ Resize(w, h float64) }); ok {
		r.Resize(width, height)
	}
}

// Size returns the canvas size.
func (f *Field) Size() (float64, float64) {
	return f.width, f.height
}

// Origin returns the point all first generation particles emanate from.
func (f *Field) Origin() (float64, float64) {
	return f.originX, f.originY
}

// SetPointer updates the pointer position, normalized to the canvas size.
func (f *Field) SetPointer(nx, ny float64) {
	if s, ok := f.cfg.Flow.(Stirrer); ok {
		s.Stir(nx*f.width, ny*f.height, (nx-f.pointerX)*f.width, (ny-f.pointerY)*f.height)
	}
	f.pointerX, f.pointerY = nx, ny
}

// ResetPointer moves the pointer back to the center, where it has no influence.
func (f *Field) ResetPointer() {
	f.pointerX, f.pointerY = 0.5, 0.5
}

// Pointer returns the normalized pointer position.
func (f *Field) Pointer() (float64, float64) {
	return f.pointerX, f.pointerY
}

// Len returns the number of live particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a snapshot of the live particles.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Particle returns a pointer to the i-th live particle.
// The pointer is invalidated by the next Update or SpawnWave call.
func (f *Field) Particle(i int) *Particle {
	return &f.particles[i]
}

// Generations returns the number of live particles per generation.
func (f *Field) Generations() []int {
	gens := make([]int, f.cfg.MaxGeneration+1)
	for i := range f.particles {
		gens[f.particles[i].generation]++
	}
	return gens
}

// SpawnWave emits 3 or 4 particles from the origin, unless the population is
// already above the back pressure threshold.
func (f *Field) SpawnWave() {
	if float64(len(f.particles)) > float64(f.cfg.MaxParticles)*f.cfg.BackPressure {
		return
	}

	count := 3 + int(math.Floor(f.rnd.Float64()*2))
	for i := 0; i < count; i++ {
		angle := (f.rnd.Float64() - 0.4) * math.Pi * 0.6
		f.particles = append(f.particles, f.newParticle(f.originX, f.originY, 0, angle))
	}
}

// newParticle creates a particle at {x, y} heading towards angle.
// Speed, size and opacity decrease with the generation.
func (f *Field) newParticle(x, y float64, gen int, angle float64) Particle {
	speed := (f.rnd.Float64()*0.8 + 0.4) * (1 - float64(gen)*0.15)
	return Particle{
		x:          x,
		y:          y,
		vx:         math.Cos(angle) * speed,
		vy:         math.Sin(angle) * speed,
		size:       math.Max(1, 2.5-float64(gen)*0.4),
		alpha:      math.Max(0.15, 0.7-float64(gen)*0.12),
		maxLife:    400 + f.rnd.Float64()*200,
		generation: gen,
		multiplyAt: 80 + f.rnd.Float64()*60,
	}
}

// Update advances the field by one frame. now is the timestamp of the frame,
// measured from an arbitrary but fixed instant.
func (f *Field) Update(now time.Duration) {
	if now-f.lastSpawn > f.cfg.SpawnInterval {
		f.SpawnWave()
		f.lastSpawn = now
	}

	mx := (f.pointerX - 0.5) * f.cfg.PointerInfluence
	my := (f.pointerY - 0.5) * f.cfg.PointerInfluence

	flow := f.cfg.Flow
	if flow != nil {
		flow.Step()
	}

	// Children are appended behind the cursor, so they are first moved on the next frame.
	for i := len(f.particles) - 1; i >= 0; i-- {
		p := &f.particles[i]

		p.x += p.vx + mx*p.alpha
		p.y += p.vy + my*p.alpha
		if flow != nil {
			fx, fy := flow.Velocity(p.x, p.y)
			p.x += fx * f.cfg.FlowScale
			p.y += fy * f.cfg.FlowScale
		}
		p.vy -= f.cfg.Lift
		p.life++

		if !p.multiplied && float64(p.life) > p.multiplyAt && p.generation < f.cfg.MaxGeneration {
			f.multiply(i)
			p = &f.particles[i]
		}

		if f.expired(p) {
			f.particles = append(f.particles[:i], f.particles[i+1:]...)
		}
	}
}

// multiply spawns the children of the i-th particle. The number of children is
// drawn first; the particle only multiplies when the population has room for
// all of them, otherwise it retries on the next frame.
func (f *Field) multiply(i int) {
	if len(f.particles) >= f.cfg.MaxParticles {
		return
	}
	children := 2
	if f.rnd.Float64() > 0.6 {
		children++
	}
	if len(f.particles)+children > f.cfg.MaxParticles {
		return
	}

	parent := f.particles[i]
	f.particles[i].multiplied = true

	heading := math.Atan2(parent.vy, parent.vx)
	for c := 0; c < children; c++ {
		angle := heading + (f.rnd.Float64()-0.5)*1.2
		f.particles = append(f.particles, f.newParticle(parent.x, parent.y, parent.generation+1, angle))
	}
}

// expired reports whether p outlived its lifetime or left the canvas.
// The left edge is never checked, particles drifting left only go away once they expire.
func (f *Field) expired(p *Particle) bool {
	m := f.cfg.BoundsMargin
	return float64(p.life) > p.maxLife ||
		p.x > f.width+m ||
		p.y < -m ||
		p.y > f.height+m
}
