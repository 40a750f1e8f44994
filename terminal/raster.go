package terminal

import (
	"math"

	"github.com/nsf/termbox-go"

	field "github.com/esimov/growth-field/particle-field"
)

// ramp maps increasing intensities to glyphs.
var ramp = []rune(" .:-=+*#%@")

// Default number of canvas pixels covered by a terminal cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

type rgb struct {
	r, g, b float64
}

type segment struct {
	x0, y0, x1, y1 float64
}

type arc struct {
	x, y, r float64
}

// Raster is a field.Surface drawing onto a grid of terminal cells. Every cell
// accumulates the color of the canvas pixels it covers; glyphs are picked by
// how far the cell stands out from the background.
type Raster struct {
	cols, rows int
	cw, ch     float64
	cells      []rgb
	background rgb

	fill, stroke field.Style
	lineWidth    float64

	pathX, pathY float64
	segments     []segment
	arcs         []arc
}

// NewRaster creates a raster of cols×rows cells, each covering cw×ch canvas pixels.
func NewRaster(cols, rows int, cw, ch float64) *Raster {
	r := &Raster{
		cw:         cw,
		ch:         ch,
		background: toRGB(field.TrailColor),
		lineWidth:  1,
	}
	r.Resize(cols, rows)
	return r
}

// Resize changes the number of cells and clears the raster.
func (r *Raster) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	r.cols, r.rows = cols, rows
	r.cells = make([]rgb, cols*rows)
	for i := range r.cells {
		r.cells[i] = r.background
	}
}

// Size returns the size in canvas pixels covered by the raster.
func (r *Raster) Size() (float64, float64) {
	return float64(r.cols) * r.cw, float64(r.rows) * r.ch
}

// Grid returns the number of columns and rows.
func (r *Raster) Grid() (int, int) {
	return r.cols, r.rows
}

// Intensity returns how much the cell stands out from the background, in [0, 1].
func (r *Raster) Intensity(col, row int) float64 {
	if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
		return 0
	}
	c := r.cells[row*r.cols+col]
	bl := luminance(r.background)
	l := luminance(c)
	if l <= bl {
		return 0
	}
	return math.Min(1, (l-bl)/(1-bl))
}

// Cell returns the glyph and the foreground color of a cell.
func (r *Raster) Cell(col, row int) (rune, termbox.Attribute) {
	i := r.Intensity(col, row)
	if i <= 0 {
		return ' ', termbox.ColorDefault
	}
	idx := int(math.Ceil(i*float64(len(ramp)-1)))
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	c := r.cells[row*r.cols+col]
	return ramp[idx], color256(c)
}

// Blit copies the raster into a termbox cell buffer of the same width.
func (r *Raster) Blit(buf []termbox.Cell, width int) {
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols && col < width; col++ {
			i := row*width + col
			if i >= len(buf) {
				return
			}
			ch, fg := r.Cell(col, row)
			buf[i] = termbox.Cell{Ch: ch, Fg: fg, Bg: termbox.ColorDefault}
		}
	}
}

func (r *Raster) SetFillStyle(s field.Style) {
	r.fill = s
}

func (r *Raster) SetStrokeStyle(s field.Style) {
	r.stroke = s
}

func (r *Raster) SetLineWidth(w float64) {
	r.lineWidth = w
}

// FillRect blends the fill color over every cell intersecting the rectangle.
func (r *Raster) FillRect(x, y, w, h float64) {
	c, ok := r.fill.(field.Color)
	if !ok {
		return
	}
	c0, r0 := r.cellOf(x, y)
	c1, r1 := r.cellOf(x+w-1, y+h-1)
	for row := max(r0, 0); row <= min(r1, r.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, r.cols-1); col++ {
			r.blend(col, row, toRGB(c), c.A)
		}
	}
}

func (r *Raster) BeginPath() {
	r.segments = r.segments[:0]
	r.arcs = r.arcs[:0]
}

func (r *Raster) MoveTo(x, y float64) {
	r.pathX, r.pathY = x, y
}

func (r *Raster) LineTo(x, y float64) {
	r.segments = append(r.segments, segment{r.pathX, r.pathY, x, y})
	r.pathX, r.pathY = x, y
}

// Arc adds a circle to the path. Partial arcs are drawn as full circles.
func (r *Raster) Arc(x, y, rad, start, end float64) {
	r.arcs = append(r.arcs, arc{x, y, rad})
}

// Stroke draws the line segments of the path one cell at a time.
func (r *Raster) Stroke() {
	c, ok := r.stroke.(field.Color)
	if !ok {
		return
	}
	// Thin lines only cover part of a cell.
	alpha := c.A * math.Min(1, r.lineWidth/math.Min(r.cw, r.ch)*4)
	for _, s := range r.segments {
		steps := int(math.Max(math.Abs(s.x1-s.x0)/r.cw, math.Abs(s.y1-s.y0)/r.ch)) + 1
		visited := make(map[int]bool, steps)
		for k := 0; k <= steps; k++ {
			t := float64(k) / float64(steps)
			col, row := r.cellOf(s.x0+(s.x1-s.x0)*t, s.y0+(s.y1-s.y0)*t)
			if !r.inside(col, row) || visited[row*r.cols+col] {
				continue
			}
			visited[row*r.cols+col] = true
			r.blend(col, row, toRGB(c), alpha)
		}
	}
}

// Fill paints the circles of the path. A circle smaller than a cell is
// blended into the cell holding its center, weighted by the covered area.
func (r *Raster) Fill() {
	for _, a := range r.arcs {
		c0, r0 := r.cellOf(a.x-a.r, a.y-a.r)
		c1, r1 := r.cellOf(a.x+a.r, a.y+a.r)
		if c0 == c1 && r0 == r1 {
			if !r.inside(c0, r0) {
				continue
			}
			c, alpha := r.colorAt(a, a.x, a.y)
			coverage := math.Min(1, math.Pi*a.r*a.r/(r.cw*r.ch))
			r.blend(c0, r0, c, alpha*coverage)
			continue
		}
		for row := max(r0, 0); row <= min(r1, r.rows-1); row++ {
			for col := max(c0, 0); col <= min(c1, r.cols-1); col++ {
				cx := (float64(col) + 0.5) * r.cw
				cy := (float64(row) + 0.5) * r.ch
				if math.Hypot(cx-a.x, cy-a.y) > a.r {
					continue
				}
				c, alpha := r.colorAt(a, cx, cy)
				r.blend(col, row, c, alpha)
			}
		}
	}
}

// colorAt evaluates the fill style at the canvas point {x, y} of the circle a.
func (r *Raster) colorAt(a arc, x, y float64) (rgb, float64) {
	switch s := r.fill.(type) {
	case field.Color:
		return toRGB(s), s.A
	case *field.RadialGradient:
		t := 0.0
		if s.R1 > 0 {
			t = math.Hypot(x-s.X1, y-s.Y1) / s.R1
		}
		c := s.At(t)
		return toRGB(c), c.A
	}
	return rgb{}, 0
}

func (r *Raster) cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / r.cw)), int(math.Floor(y / r.ch))
}

func (r *Raster) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < r.cols && row < r.rows
}

func (r *Raster) blend(col, row int, c rgb, alpha float64) {
	if alpha <= 0 {
		return
	}
	alpha = math.Min(alpha, 1)
	dst := &r.cells[row*r.cols+col]
	dst.r += (c.r - dst.r) * alpha
	dst.g += (c.g - dst.g) * alpha
	dst.b += (c.b - dst.b) * alpha
}

func toRGB(c field.Color) rgb {
	return rgb{float64(c.R), float64(c.G), float64(c.B)}
}

func luminance(c rgb) float64 {
	return (0.299*c.r + 0.587*c.g + 0.114*c.b) / 255
}

// color256 maps c onto the 6×6×6 color cube of a 256 color terminal.
func color256(c rgb) termbox.Attribute {
	q := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(255, v)) / 255 * 5))
	}
	return termbox.Attribute(16 + 36*q(c.r) + 6*q(c.g) + q(c.b) + 1)
}
