// Package canvas animates the growth field on the hero section of a web page.
package canvas

// Rect is the bounding box of an element in client coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// Normalize converts client coordinates into coordinates relative to the
// size of r. The reported flag is false for an empty rectangle.
func (r Rect) Normalize(clientX, clientY float64) (float64, float64, bool) {
	if r.Width <= 0 || r.Height <= 0 {
		return 0, 0, false
	}
	return (clientX - r.Left) / r.Width, (clientY - r.Top) / r.Height, true
}

// Pointer normalizes client coordinates like Normalize and clamps them to
// [0, 1], the range accepted for pointer messages.
func (r Rect) Pointer(clientX, clientY float64) (float64, float64, bool) {
	x, y, ok := r.Normalize(clientX, clientY)
	if !ok {
		return 0, 0, false
	}
	return clamp01(x), clamp01(y), true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Mirror flips a normalized horizontal coordinate, as seen in a webcam preview.
func Mirror(nx float64) float64 {
	return 1 - nx
}
