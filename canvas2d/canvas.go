// Package canvas2d draws the growth field with the HTML5 like canvas API of
// github.com/tfriedel6/canvas, either on an SDL window or on an in-memory image.
package canvas2d

import (
	"image/color"
	"math"

	"github.com/tfriedel6/canvas"

	field "github.com/esimov/growth-field/particle-field"
)

// Surface adapts a *canvas.Canvas to field.Surface.
type Surface struct {
	cv *canvas.Canvas
}

// New wraps cv.
func New(cv *canvas.Canvas) *Surface {
	return &Surface{cv: cv}
}

// Canvas returns the wrapped canvas.
func (s *Surface) Canvas() *canvas.Canvas {
	return s.cv
}

// Size returns the size of the canvas in pixels.
func (s *Surface) Size() (float64, float64) {
	return float64(s.cv.Width()), float64(s.cv.Height())
}

func (s *Surface) SetFillStyle(st field.Style) {
	if v := s.style(st); v != nil {
		s.cv.SetFillStyle(v)
	}
}

func (s *Surface) SetStrokeStyle(st field.Style) {
	if v := s.style(st); v != nil {
		s.cv.SetStrokeStyle(v)
	}
}

func (s *Surface) SetLineWidth(w float64) {
	s.cv.SetLineWidth(w)
}

func (s *Surface) FillRect(x, y, w, h float64) {
	s.cv.FillRect(x, y, w, h)
}

func (s *Surface) BeginPath() {
	s.cv.BeginPath()
}

func (s *Surface) MoveTo(x, y float64) {
	s.cv.MoveTo(x, y)
}

func (s *Surface) LineTo(x, y float64) {
	s.cv.LineTo(x, y)
}

func (s *Surface) Arc(x, y, r, start, end float64) {
	s.cv.Arc(x, y, r, start, end, false)
}

func (s *Surface) Stroke() {
	s.cv.Stroke()
}

func (s *Surface) Fill() {
	s.cv.Fill()
}

// style converts a field style into a value accepted by the canvas.
// Unknown styles yield nil and leave the current style unchanged.
func (s *Surface) style(st field.Style) interface{} {
	switch v := st.(type) {
	case field.Color:
		return nrgba(v)
	case *field.RadialGradient:
		g := s.cv.CreateRadialGradient(v.X0, v.Y0, v.R0, v.X1, v.Y1, v.R1)
		for _, stop := range v.Stops {
			g.AddColorStop(stop.Offset, nrgba(stop.Color))
		}
		return g
	}
	return nil
}

func nrgba(c field.Color) color.NRGBA {
	a := math.Round(math.Max(0, math.Min(1, c.A)) * 255)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}
