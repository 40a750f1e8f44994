// Package detector finds faces in webcam frames with the pigo face detector.
package detector

import (
	"errors"
	"fmt"

	pigo "github.com/esimov/pigo/core"
)

// ErrNoCascade is returned when detecting faces before a cascade has been unpacked.
var ErrNoCascade = errors.New("detector: facefinder cascade not loaded")

// Detector runs the pigo face classifier over grayscale frames.
type Detector struct {
	classifier *pigo.Pigo

	MinSize, MaxSize         int
	ShiftFactor, ScaleFactor float64
	// IoU is the intersection over union threshold used to cluster detections.
	IoU float64
	// Threshold is the minimum detection score of a face.
	Threshold float32
}

// NewDetector creates a detector with settings suited to webcam frames.
func NewDetector() *Detector {
	return &Detector{
		MinSize:     100,
		MaxSize:     1200,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		IoU:         0.1,
		Threshold:   5,
	}
}

// Unpack loads the facefinder cascade. This will read the number of cascade
// trees, the tree depth, the threshold and the prediction from tree's leaf nodes.
func (d *Detector) Unpack(cascade []byte) error {
	p := pigo.NewPigo()
	classifier, err := p.Unpack(cascade)
	if err != nil {
		return fmt.Errorf("detector: cannot unpack the facefinder cascade: %w", err)
	}
	d.classifier = classifier
	return nil
}

// DetectFaces runs the cluster detection over a grayscale frame and returns
// the detected faces.
func (d *Detector) DetectFaces(gray []uint8, width, height int) ([]pigo.Detection, error) {
	if d.classifier == nil {
		return nil, ErrNoCascade
	}
	if len(gray) < width*height {
		return nil, fmt.Errorf("detector: frame has %d pixels, want %dx%d", len(gray), width, height)
	}
	cParams := pigo.CascadeParams{
		MinSize:     d.MinSize,
		MaxSize:     d.MaxSize,
		ShiftFactor: d.ShiftFactor,
		ScaleFactor: d.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: gray,
			Rows:   height,
			Cols:   width,
			Dim:    width,
		},
	}

	// The result contains quadruplets representing the row, column, scale and detection score.
	dets := d.classifier.RunCascade(cParams, 0.0)
	return d.classifier.ClusterDetections(dets, d.IoU), nil
}

// Face returns the center of the most confident face of an RGBA frame,
// normalized to the frame size.
func (d *Detector) Face(rgba []uint8, width, height int) (float64, float64, bool, error) {
	dets, err := d.DetectFaces(Grayscale(rgba, width, height), width, height)
	if err != nil {
		return 0, 0, false, err
	}
	det, ok := Best(dets, d.Threshold)
	if !ok {
		return 0, 0, false, nil
	}
	x, y := Center(det, width, height)
	return x, y, true, nil
}

// Best returns the detection with the highest score above threshold.
func Best(dets []pigo.Detection, threshold float32) (pigo.Detection, bool) {
	var best pigo.Detection
	found := false
	for _, det := range dets {
		if det.Q < threshold {
			continue
		}
		if !found || det.Q > best.Q {
			best, found = det, true
		}
	}
	return best, found
}

// Center returns the center of a detection normalized to a width×height frame.
func Center(det pigo.Detection, width, height int) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0.5, 0.5
	}
	return float64(det.Col) / float64(width), float64(det.Row) / float64(height)
}

// Grayscale converts RGBA pixels, as returned by a canvas getImageData call,
// into luma values.
func Grayscale(rgba []uint8, width, height int) []uint8 {
	n := width * height
	if len(rgba)/4 < n {
		n = len(rgba) / 4
	}
	gray := make([]uint8, n)
	for i := 0; i < n; i++ {
		r, g, b := float64(rgba[i*4]), float64(rgba[i*4+1]), float64(rgba[i*4+2])
		gray[i] = uint8(0.299*r + 0.587*g + 0.114*b + 0.5)
	}
	return gray
}
