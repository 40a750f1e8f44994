package field

import "math"

var (
	// TrailColor is painted over the whole surface on every frame; its low
	// opacity leaves short trails behind the moving particles.
	TrailColor = RGBA(33, 60, 89, 0.12)
	// GoldColor is the base color of particles, links and the origin glow.
	GoldColor = RGBA(211, 166, 74, 1)
	// CoreColor is the color of the bright particle cores.
	CoreColor = RGBA(255, 255, 255, 1)
)

const linkWidth = 0.5

// Render draws the current state of the field onto s.
func (f *Field) Render(s Surface) {
	s.SetFillStyle(TrailColor)
	s.FillRect(0, 0, f.width, f.height)

	f.renderLinks(s)

	for i := range f.particles {
		f.renderParticle(s, &f.particles[i])
	}

	f.renderOrigin(s)
}

// renderLinks connects the particles of the same or adjacent generations
// standing closer than the link distance. Opacity fades linearly with the distance.
func (f *Field) renderLinks(s Surface) {
	maxDist := f.cfg.LinkDistance
	s.SetStrokeStyle(GoldColor.WithAlpha(0.08))
	s.SetLineWidth(linkWidth)

	for i := 0; i < len(f.particles); i++ {
		p1 := &f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			p2 := &f.particles[j]

			if abs(p1.generation-p2.generation) > 1 {
				continue
			}
			dx := p1.x - p2.x
			dy := p1.y - p2.y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist >= maxDist {
				continue
			}

			alpha := (1 - dist/maxDist) * 0.15 * math.Min(p1.alpha, p2.alpha)
			s.SetStrokeStyle(GoldColor.WithAlpha(alpha))
			s.BeginPath()
			s.MoveTo(p1.x, p1.y)
			s.LineTo(p2.x, p2.y)
			s.Stroke()
		}
	}
}

// renderParticle draws a soft glow with a bright core. Later generations are
// shifted towards a lighter hue.
func (f *Field) renderParticle(s Surface, p *Particle) {
	alpha := p.opacity(f.cfg.FadeInFrames, f.cfg.FadeOutAt)
	c := generationColor(p.generation)

	glow := NewRadialGradient(p.x, p.y, p.size*3,
		ColorStop{0, c.WithAlpha(alpha)},
		ColorStop{0.5, c.WithAlpha(alpha * 0.3)},
		ColorStop{1, c.WithAlpha(0)},
	)
	s.BeginPath()
	s.Arc(p.x, p.y, p.size*3, 0, 2*math.Pi)
	s.SetFillStyle(glow)
	s.Fill()

	s.BeginPath()
	s.Arc(p.x, p.y, p.size*0.6, 0, 2*math.Pi)
	s.SetFillStyle(CoreColor.WithAlpha(alpha * 0.9))
	s.Fill()
}

// renderOrigin paints the glow anchoring the source of growth.
func (f *Field) renderOrigin(s Surface) {
	r := f.cfg.OriginGlow
	glow := NewRadialGradient(f.originX, f.originY, r,
		ColorStop{0, GoldColor.WithAlpha(0.3)},
		ColorStop{0.5, GoldColor.WithAlpha(0.1)},
		ColorStop{1, GoldColor.WithAlpha(0)},
	)
	s.BeginPath()
	s.Arc(f.originX, f.originY, r, 0, 2*math.Pi)
	s.SetFillStyle(glow)
	s.Fill()
}

// generationColor returns the gold tint of a generation.
func generationColor(gen int) Color {
	shift := float64(gen) * 10
	return Color{
		R: uint8(math.Min(255, 211+shift)),
		G: uint8(math.Min(255, 166+shift*0.5)),
		B: uint8(math.Min(255, 74+float64(gen)*15)),
		A: 1,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
