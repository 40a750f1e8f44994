//go:build js && wasm

package canvas

import (
	"syscall/js"

	field "github.com/esimov/growth-field/particle-field"
)

// Surface draws onto a browser CanvasRenderingContext2D.
type Surface struct {
	ctx js.Value
}

// NewSurface wraps the 2d context of a canvas element.
func NewSurface(ctx js.Value) *Surface {
	return &Surface{ctx: ctx}
}

func (s *Surface) SetFillStyle(st field.Style) {
	if v, ok := s.style(st); ok {
		s.ctx.Set("fillStyle", v)
	}
}

func (s *Surface) SetStrokeStyle(st field.Style) {
	if v, ok := s.style(st); ok {
		s.ctx.Set("strokeStyle", v)
	}
}

func (s *Surface) SetLineWidth(w float64) {
	s.ctx.Set("lineWidth", w)
}

func (s *Surface) FillRect(x, y, w, h float64) {
	s.ctx.Call("fillRect", x, y, w, h)
}

func (s *Surface) BeginPath() {
	s.ctx.Call("beginPath")
}

func (s *Surface) MoveTo(x, y float64) {
	s.ctx.Call("moveTo", x, y)
}

func (s *Surface) LineTo(x, y float64) {
	s.ctx.Call("lineTo", x, y)
}

func (s *Surface) Arc(x, y, r, start, end float64) {
	s.ctx.Call("arc", x, y, r, start, end)
}

func (s *Surface) Stroke() {
	s.ctx.Call("stroke")
}

func (s *Surface) Fill() {
	s.ctx.Call("fill")
}

func (s *Surface) style(st field.Style) (interface{}, bool) {
	switch v := st.(type) {
	case field.Color:
		return v.String(), true
	case *field.RadialGradient:
		g := s.ctx.Call("createRadialGradient", v.X0, v.Y0, v.R0, v.X1, v.Y1, v.R1)
		for _, stop := range v.Stops {
			g.Call("addColorStop", stop.Offset, stop.Color.String())
		}
		return g, true
	}
	return nil, false
}
