package field

import (
	"fmt"
	"strconv"
)

// Color is an sRGB color with a floating point opacity, the way a 2D canvas context expects it.
type Color struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

// RGBA creates a new Color.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// String returns the CSS representation of the color, e.g. rgba(211, 166, 74, 0.3).
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// WithAlpha returns a copy of c with its opacity replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// ColorStop is a single stop of a gradient.
type ColorStop struct {
	Offset float64 `json:"offset"`
	Color  Color   `json:"color"`
}

// RadialGradient describes a gradient between the circle {X0, Y0, R0} and the circle {X1, Y1, R1}.
type RadialGradient struct {
	X0    float64     `json:"x0"`
	Y0    float64     `json:"y0"`
	R0    float64     `json:"r0"`
	X1    float64     `json:"x1"`
	Y1    float64     `json:"y1"`
	R1    float64     `json:"r1"`
	Stops []ColorStop `json:"stops"`
}

// NewRadialGradient creates a radial gradient centered on {x, y} spanning from the center to radius r.
func NewRadialGradient(x, y, r float64, stops ...ColorStop) *RadialGradient {
	return &RadialGradient{X0: x, Y0: y, X1: x, Y1: y, R1: r, Stops: stops}
}

// At returns the color of the gradient at the normalized offset t.
func (g *RadialGradient) At(t float64) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			k := (t - a.Offset) / span
			return Color{
				R: uint8(float64(a.Color.R) + (float64(b.Color.R)-float64(a.Color.R))*k),
				G: uint8(float64(a.Color.G) + (float64(b.Color.G)-float64(a.Color.G))*k),
				B: uint8(float64(a.Color.B) + (float64(b.Color.B)-float64(a.Color.B))*k),
				A: a.Color.A + (b.Color.A-a.Color.A)*k,
			}
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

// Style is either a Color or a *RadialGradient.
type Style interface{}

// Surface is the subset of a 2D drawing context the growth field renders onto.
// Implementations exist for the browser canvas, the desktop canvas, the terminal
// and an in-memory recorder.
type Surface interface {
	SetFillStyle(s Style)
	SetStrokeStyle(s Style)
	SetLineWidth(w float64)

	FillRect(x, y, w, h float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, r, start, end float64)
	Stroke()
	Fill()
}
