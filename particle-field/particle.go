package field

import "math"

// Particle defines a single point of the growth field.
type Particle struct {
	x, y       float64
	vx, vy     float64
	size       float64
	alpha      float64
	life       int
	maxLife    float64
	generation int
	multiplied bool
	multiplyAt float64
}

// GetX retrieve the particle position on the {x} axis.
func (p *Particle) GetX() float64 {
	return p.x
}

// SetX set the particle position on the {x} axis.
func (p *Particle) SetX(val float64) {
	p.x = val
}

// GetY retrieve the particle position on the {y} axis.
func (p *Particle) GetY() float64 {
	return p.y
}

// SetY set the particle position on the {y} axis.
func (p *Particle) SetY(val float64) {
	p.y = val
}

// GetVx get the particle velocity on the {x} axis.
func (p *Particle) GetVx() float64 {
	return p.vx
}

// GetVy get the particle velocity on the {y} axis.
func (p *Particle) GetVy() float64 {
	return p.vy
}

// GetSize returns the particle radius in pixels.
func (p *Particle) GetSize() float64 {
	return p.size
}

// GetAlpha returns the base opacity of the particle.
func (p *Particle) GetAlpha() float64 {
	return p.alpha
}

// GetAge get the particle age in frames.
func (p *Particle) GetAge() int {
	return p.life
}

// SetAge set the particle age in frames.
func (p *Particle) SetAge(age int) {
	p.life = age
}

// GetMaxLife returns the lifetime budget of the particle in frames.
func (p *Particle) GetMaxLife() float64 {
	return p.maxLife
}

// GetGeneration returns the depth of the particle in its multiplication tree.
func (p *Particle) GetGeneration() int {
	return p.generation
}

// HasMultiplied reports whether the particle already spawned its children.
func (p *Particle) HasMultiplied() bool {
	return p.multiplied
}

// GetMultiplyAt returns the age after which the particle multiplies.
func (p *Particle) GetMultiplyAt() float64 {
	return p.multiplyAt
}

// opacity returns the current alpha of the particle: a linear fade-in over the
// first frames of its life and a linear fade-out over the tail of its lifetime.
func (p *Particle) opacity(fadeInFrames int, fadeOutAt float64) float64 {
	ratio := float64(p.life) / p.maxLife

	fadeIn := 1.0
	if p.life < fadeInFrames {
		fadeIn = float64(linear(float32(p.life), 0, 1, float32(fadeInFrames)))
	}
	fadeOut := 1.0
	if ratio > fadeOutAt {
		fadeOut = 1 - float64(linear(float32(ratio-fadeOutAt), 0, 1, float32(1-fadeOutAt)))
	}
	return math.Max(0, p.alpha*fadeIn*fadeOut)
}
