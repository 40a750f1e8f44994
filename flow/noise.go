package flow

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
)

// Noise is a slowly evolving flow field sampled from 3D Perlin noise: two of
// the dimensions are the canvas coordinates, the third one is time.
type Noise struct {
	noise    *perlin.Perlin
	scale    float64
	strength float64
	speed    float64
	t        float64
}

// NewNoise creates a noise flow. scale is the spatial frequency in 1/pixels and
// strength the maximum displacement in pixels per frame.
func NewNoise(seed int64, scale, strength float64) *Noise {
	return &Noise{
		noise:    perlin.NewPerlin(2, 2, 3, seed),
		scale:    scale,
		strength: strength,
		speed:    0.005,
	}
}

// Step advances the noise in time.
func (n *Noise) Step() {
	n.t += n.speed
}

// Velocity returns a displacement whose heading is given by the noise at {x, y}.
func (n *Noise) Velocity(x, y float64) (float64, float64) {
	angle := n.noise.Noise3D(x*n.scale, y*n.scale, n.t) * 2 * math.Pi
	return math.Cos(angle) * n.strength, math.Sin(angle) * n.strength
}
