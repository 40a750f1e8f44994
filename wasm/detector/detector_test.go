package detector

import (
	"testing"

	pigo "github.com/esimov/pigo/core"
)

func TestDetectWithoutCascade(t *testing.T) {
	d := NewDetector()
	if _, err := d.DetectFaces(make([]uint8, 16), 4, 4); err != ErrNoCascade {
		t.Errorf("err = %v, want %v", err, ErrNoCascade)
	}
	if _, _, _, err := d.Face(make([]uint8, 64), 4, 4); err != ErrNoCascade {
		t.Errorf("err = %v, want %v", err, ErrNoCascade)
	}
}

func TestGrayscale(t *testing.T) {
	rgba := []uint8{
		255, 255, 255, 255,
		0, 0, 0, 255,
		255, 0, 0, 255,
	}
	gray := Grayscale(rgba, 3, 1)
	if len(gray) != 3 {
		t.Fatalf("len = %d, want 3", len(gray))
	}
	if gray[0] != 255 || gray[1] != 0 || gray[2] != 76 {
		t.Errorf("gray = %v, want [255 0 76]", gray)
	}
	// Short buffers are truncated instead of overflowing.
	if gray := Grayscale(rgba, 10, 10); len(gray) != 3 {
		t.Errorf("len = %d, want 3", len(gray))
	}
}

func TestBest(t *testing.T) {
	dets := []pigo.Detection{
		{Row: 10, Col: 10, Scale: 50, Q: 4},
		{Row: 20, Col: 30, Scale: 80, Q: 12},
		{Row: 40, Col: 40, Scale: 60, Q: 9},
	}
	best, ok := Best(dets, 5)
	if !ok || best.Q != 12 {
		t.Errorf("best = %+v, %v, want the detection scoring 12", best, ok)
	}
	if _, ok := Best(dets, 20); ok {
		t.Error("no detection should pass a threshold of 20")
	}
}

func TestCenter(t *testing.T) {
	x, y := Center(pigo.Detection{Row: 120, Col: 160}, 640, 480)
	if x != 0.25 || y != 0.25 {
		t.Errorf("center = (%v, %v), want (0.25, 0.25)", x, y)
	}
	if x, y := Center(pigo.Detection{}, 0, 0); x != 0.5 || y != 0.5 {
		t.Errorf("center = (%v, %v), want (0.5, 0.5)", x, y)
	}
}
