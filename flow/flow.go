// Package flow provides optional velocity fields carrying the particles of
// the growth field in addition to their own motion.
package flow

import (
	"fmt"

	field "github.com/esimov/growth-field/particle-field"
)

// Names of the available flows, as accepted by New.
const (
	NoFlow    = "none"
	NoiseFlow = "noise"
	FluidFlow = "fluid"
)

// New creates the flow called name for a {width, height} canvas.
// The "none" flow returns a nil field.Flow.
func New(name string, width, height float64, seed int64) (field.Flow, error) {
	switch name {
	case "", NoFlow:
		return nil, nil
	case NoiseFlow:
		return NewNoise(seed, 0.004, 0.35), nil
	case FluidFlow:
		return NewFluid(48, width, height), nil
	}
	return nil, fmt.Errorf("flow: unknown flow %q", name)
}
