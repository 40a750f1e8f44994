package field

import (
	"encoding/json"
	"math"
	"testing"
)

func TestRenderEmptyField(t *testing.T) {
	f := emptyField(0.5)
	rec := NewRecorder()
	f.Render(rec)

	if len(rec.Ops) < 2 || rec.Ops[0].Kind != OpFillStyle || rec.Ops[1].Kind != OpFillRect {
		t.Fatalf("expected the frame to start with the trail fill, got %+v", rec.Ops)
	}
	if c := rec.Ops[0].Color; c == nil || *c != TrailColor {
		t.Errorf("trail color = %v, want %v", c, TrailColor)
	}
	if args := rec.Ops[1].Args; args[2] != testWidth || args[3] != testHeight {
		t.Errorf("trail rect = %v, want full canvas", args)
	}

	if n := rec.Count(OpArc); n != 1 {
		t.Fatalf("arcs = %d, want 1 (origin glow)", n)
	}
	if n := rec.Count(OpStroke); n != 0 {
		t.Errorf("strokes = %d, want 0", n)
	}

	var glow *RadialGradient
	for _, op := range rec.Ops {
		if op.Kind == OpFillStyle && op.Gradient != nil {
			glow = op.Gradient
		}
	}
	if glow == nil {
		t.Fatal("expected the origin glow gradient")
	}
	if glow.X1 != 80 || glow.Y1 != 300 || glow.R1 != 40 {
		t.Errorf("origin glow = (%v, %v, r=%v), want (80, 300, r=40)", glow.X1, glow.Y1, glow.R1)
	}
	if len(glow.Stops) != 3 || glow.Stops[0].Color.A != 0.3 || glow.Stops[2].Color.A != 0 {
		t.Errorf("unexpected origin glow stops %+v", glow.Stops)
	}
}

func TestRenderParticles(t *testing.T) {
	f := emptyField(0.5)
	f.particles = append(f.particles, still(100, 100, 0), still(400, 400, 2))
	rec := NewRecorder()
	f.Render(rec)

	// glow + core per particle, plus the origin glow
	if n := rec.Count(OpArc); n != 5 {
		t.Errorf("arcs = %d, want 5", n)
	}
	if n := rec.Count(OpFill); n != 5 {
		t.Errorf("fills = %d, want 5", n)
	}
}

func TestRenderLinks(t *testing.T) {
	for _, tc := range []struct {
		name  string
		a, b  Particle
		links int
	}{
		{"close same generation", still(100, 100, 1), still(130, 100, 1), 1},
		{"close adjacent generation", still(100, 100, 1), still(130, 100, 2), 1},
		{"close distant generation", still(100, 100, 0), still(130, 100, 2), 0},
		{"at link distance", still(100, 100, 0), still(160, 100, 0), 0},
		{"far", still(100, 100, 0), still(400, 400, 0), 0},
	} {
		f := emptyField(0.5)
		f.particles = append(f.particles, tc.a, tc.b)
		rec := NewRecorder()
		f.Render(rec)

		if n := rec.Count(OpStroke); n != tc.links {
			t.Errorf("%s: links = %d, want %d", tc.name, n, tc.links)
		}
	}
}

func TestRenderLinkOpacity(t *testing.T) {
	f := emptyField(0.5)
	a, b := still(100, 100, 0), still(130, 100, 0)
	b.alpha = 0.4
	f.particles = append(f.particles, a, b)
	rec := NewRecorder()
	f.Render(rec)

	var strokes []Color
	for _, op := range rec.Ops {
		if op.Kind == OpStrokeStyle {
			strokes = append(strokes, *op.Color)
		}
	}
	if len(strokes) != 2 {
		t.Fatalf("stroke styles = %d, want 2", len(strokes))
	}
	want := (1 - 30.0/60) * 0.15 * 0.4
	if math.Abs(strokes[1].A-want) > 1e-12 {
		t.Errorf("link alpha = %v, want %v", strokes[1].A, want)
	}
}

func TestOpacityEnvelope(t *testing.T) {
	for _, tc := range []struct {
		life int
		want float64
	}{
		{0, 0},
		{10, 0.35},
		{20, 0.7},
		{300, 0.7},
		{425, 0.35},
		{500, 0},
	} {
		p := still(0, 0, 0)
		p.life = tc.life
		if got := p.opacity(20, 0.7); math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("life %d: opacity = %v, want %v", tc.life, got, tc.want)
		}
	}
}

func TestGenerationColor(t *testing.T) {
	if c := generationColor(0); c != GoldColor {
		t.Errorf("generation 0 color = %v, want %v", c, GoldColor)
	}
	c := generationColor(4)
	if c.R != 251 || c.G != 186 || c.B != 134 {
		t.Errorf("generation 4 color = %v, want rgba(251, 186, 134, 1)", c)
	}
}

func TestColorString(t *testing.T) {
	if s := RGBA(33, 60, 89, 0.12).String(); s != "rgba(33, 60, 89, 0.12)" {
		t.Errorf("color = %q", s)
	}
}

func TestGradientAt(t *testing.T) {
	g := NewRadialGradient(0, 0, 10,
		ColorStop{0, RGBA(200, 100, 0, 1)},
		ColorStop{0.5, RGBA(100, 50, 0, 0.5)},
		ColorStop{1, RGBA(0, 0, 0, 0)},
	)
	if c := g.At(0.25); c.R != 150 || c.G != 75 || c.A != 0.75 {
		t.Errorf("At(0.25) = %v", c)
	}
	if c := g.At(2); c.A != 0 {
		t.Errorf("At(2) = %v, want the last stop", c)
	}
}

func TestReplay(t *testing.T) {
	f := emptyField(0.5)
	f.SpawnWave()
	f.Update(0)

	rec := NewRecorder()
	f.Render(rec)
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}

	var ops []Op
	if err := json.Unmarshal(data, &ops); err != nil {
		t.Fatal(err)
	}
	replayed := NewRecorder()
	if err := Replay(ops, replayed); err != nil {
		t.Fatal(err)
	}
	if len(replayed.Ops) != len(rec.Ops) {
		t.Fatalf("replayed %d ops, want %d", len(replayed.Ops), len(rec.Ops))
	}
	for _, kind := range []OpKind{OpArc, OpFill, OpFillRect, OpStroke} {
		if replayed.Count(kind) != rec.Count(kind) {
			t.Errorf("%s: replayed %d, want %d", kind, replayed.Count(kind), rec.Count(kind))
		}
	}
}

func TestReplayRejectsMalformedOps(t *testing.T) {
	for _, ops := range [][]Op{
		{{Kind: OpArc, Args: []float64{1, 2}}},
		{{Kind: OpFillStyle}},
		{{Kind: "clip"}},
	} {
		if err := Replay(ops, NewRecorder()); err == nil {
			t.Errorf("expected an error replaying %+v", ops)
		}
	}
}
