package flow

import (
	"math"
	"testing"

	field "github.com/esimov/growth-field/particle-field"
)

func TestFluidStillByDefault(t *testing.T) {
	fs := NewFluid(16, 320, 160)
	for i := 0; i < 10; i++ {
		fs.Step()
	}
	if e := fs.Energy(); e != 0 {
		t.Errorf("energy = %v, want 0", e)
	}
	if vx, vy := fs.Velocity(160, 80); vx != 0 || vy != 0 {
		t.Errorf("velocity = (%v, %v), want (0, 0)", vx, vy)
	}
}

func TestFluidStir(t *testing.T) {
	fs := NewFluid(16, 320, 160)
	fs.Stir(160, 80, 40, 0)
	fs.Step()

	if e := fs.Energy(); e <= 0 {
		t.Fatalf("energy = %v, want > 0 after stirring", e)
	}
	vx, _ := fs.Velocity(160, 80)
	if vx <= 0 {
		t.Errorf("vx = %v, want the flow to follow the pointer", vx)
	}

	fs.Reset()
	if e := fs.Energy(); e != 0 {
		t.Errorf("energy = %v, want 0 after reset", e)
	}
}

func TestFluidOutOfCanvas(t *testing.T) {
	fs := NewFluid(8, 100, 100)
	// Coordinates outside the canvas are clamped onto the border cells.
	fs.Stir(-50, 500, 10, 10)
	fs.Step()
	if e := fs.Energy(); math.IsNaN(e) || math.IsInf(e, 0) || e == 0 {
		t.Fatalf("energy = %v", e)
	}
	vx, vy := fs.Velocity(-1000, 1000)
	if math.IsNaN(vx) || math.IsNaN(vy) {
		t.Errorf("velocity = (%v, %v)", vx, vy)
	}
}

func TestNoiseIsBounded(t *testing.T) {
	n := NewNoise(7, 0.01, 0.5)
	for i := 0; i < 50; i++ {
		n.Step()
		vx, vy := n.Velocity(float64(i)*13, float64(i)*7)
		if speed := math.Hypot(vx, vy); math.Abs(speed-0.5) > 1e-9 {
			t.Fatalf("speed = %v, want 0.5", speed)
		}
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", NoFlow} {
		f, err := New(name, 100, 100, 1)
		if err != nil || f != nil {
			t.Errorf("New(%q) = %v, %v, want nil flow", name, f, err)
		}
	}
	if f, err := New(NoiseFlow, 100, 100, 1); err != nil || f == nil {
		t.Errorf("New(%q) = %v, %v", NoiseFlow, f, err)
	}
	if _, err := New("vortex", 100, 100, 1); err == nil {
		t.Error("expected an error for an unknown flow")
	}
}

func TestFluidDrivenField(t *testing.T) {
	fl, err := New(FluidFlow, 400, 200, 1)
	if err != nil {
		t.Fatal(err)
	}
	cfg := field.DefaultConfig()
	cfg.Flow = fl
	cfg.Rand = &field.SeqRand{Values: []float64{0.5}}
	f := field.New(cfg, 400, 200)

	f.Resize(800, 400)
	f.SetPointer(0.6, 0.5)
	f.Update(0)

	if fl.(*Fluid).width != 800 {
		t.Errorf("fluid was not resized with the field")
	}
	if fl.(*Fluid).Energy() <= 0 {
		t.Error("pointer movement should stir the fluid")
	}
}
