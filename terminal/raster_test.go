package terminal

import (
	"testing"

	"github.com/nsf/termbox-go"

	field "github.com/esimov/growth-field/particle-field"
)

var white = field.RGBA(255, 255, 255, 1)

func TestRasterSize(t *testing.T) {
	r := NewRaster(10, 5, CellWidth, CellHeight)
	if w, h := r.Size(); w != 80 || h != 80 {
		t.Errorf("size = %vx%v, want 80x80", w, h)
	}
	r.Resize(-1, 3)
	if c, rows := r.Grid(); c != 0 || rows != 3 {
		t.Errorf("grid = %dx%d, want 0x3", c, rows)
	}
}

func TestRasterBackgroundIsBlank(t *testing.T) {
	r := NewRaster(4, 4, CellWidth, CellHeight)
	r.SetFillStyle(field.TrailColor)
	r.FillRect(0, 0, 32, 64)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if ch, _ := r.Cell(col, row); ch != ' ' {
				t.Fatalf("cell %d,%d = %q, want blank", col, row, ch)
			}
		}
	}
}

func TestRasterFillRectFadesCells(t *testing.T) {
	r := NewRaster(2, 1, CellWidth, CellHeight)
	r.SetFillStyle(white)
	r.FillRect(0, 0, 16, 16)
	if i := r.Intensity(0, 0); i < 0.999 {
		t.Fatalf("intensity = %v, want 1", i)
	}
	r.SetFillStyle(field.TrailColor)
	r.FillRect(0, 0, 16, 16)
	if i := r.Intensity(0, 0); i <= 0 || i >= 0.999 {
		t.Errorf("intensity = %v, want the trail to partially cover the cell", i)
	}
}

func TestRasterSmallCircle(t *testing.T) {
	r := NewRaster(10, 5, CellWidth, CellHeight)
	r.SetFillStyle(white)
	r.BeginPath()
	r.Arc(20, 24, 1, 0, 6.28)
	r.Fill()

	if i := r.Intensity(2, 1); i <= 0 {
		t.Fatalf("intensity = %v, want the circle to light its cell", i)
	}
	if i := r.Intensity(3, 1); i != 0 {
		t.Errorf("neighbour intensity = %v, want 0", i)
	}
	if ch, _ := r.Cell(2, 1); ch == ' ' {
		t.Error("expected a glyph on the lit cell")
	}
}

func TestRasterGradientCircle(t *testing.T) {
	r := NewRaster(10, 5, CellWidth, CellHeight)
	r.SetFillStyle(field.NewRadialGradient(40, 40, 40,
		field.ColorStop{Offset: 0, Color: white},
		field.ColorStop{Offset: 1, Color: white.WithAlpha(0)},
	))
	r.BeginPath()
	r.Arc(40, 40, 40, 0, 6.28)
	r.Fill()

	center := r.Intensity(4, 2)
	edge := r.Intensity(1, 2)
	if center <= edge {
		t.Errorf("center = %v, edge = %v, want a brighter center", center, edge)
	}
}

func TestRasterStroke(t *testing.T) {
	r := NewRaster(10, 5, CellWidth, CellHeight)
	r.SetStrokeStyle(white)
	r.SetLineWidth(1)
	r.BeginPath()
	r.MoveTo(0, 8)
	r.LineTo(79, 8)
	r.Stroke()

	for col := 0; col < 10; col++ {
		if r.Intensity(col, 0) <= 0 {
			t.Fatalf("cell %d of the first row was not stroked", col)
		}
		if r.Intensity(col, 1) != 0 {
			t.Fatalf("cell %d of the second row was stroked", col)
		}
	}

	// A new path discards the previous segments.
	r.BeginPath()
	r.Stroke()
}

func TestColor256(t *testing.T) {
	if c := color256(rgb{255, 255, 255}); c != 232 {
		t.Errorf("white = %d, want 232", c)
	}
	if c := color256(rgb{0, 0, 0}); c != 17 {
		t.Errorf("black = %d, want 17", c)
	}
}

func TestRasterBlit(t *testing.T) {
	r := NewRaster(3, 2, CellWidth, CellHeight)
	r.SetFillStyle(white)
	r.FillRect(8, 16, 8, 16)

	buf := make([]termbox.Cell, 6)
	r.Blit(buf, 3)
	if buf[4].Ch != '@' {
		t.Errorf("lit cell = %q, want '@'", buf[4].Ch)
	}
	if buf[0].Ch != ' ' {
		t.Errorf("background cell = %q, want blank", buf[0].Ch)
	}
}
