package video

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	field "github.com/esimov/growth-field/particle-field"
)

func TestRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "growth.avi")
	cfg := field.DefaultConfig()
	cfg.Rand = &field.SeqRand{Values: []float64{0.3, 0.7, 0.5}}

	r, err := NewRecorder(path, cfg, 160, 90, 30)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Record(12); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	history := r.History()
	if len(history) != 12 {
		t.Fatalf("history = %d frames, want 12", len(history))
	}
	if history[11].Frame != 12 {
		t.Errorf("last frame = %d, want 12", history[11].Frame)
	}
	if history[0].Population == 0 {
		t.Error("expected the seed waves to be recorded")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Errorf("output is not an AVI file")
	}
}

func TestNewRecorderRejectsEmptyCanvas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.avi")
	if _, err := NewRecorder(path, field.DefaultConfig(), 0, 90, 30); err != field.ErrNoContainer {
		t.Errorf("err = %v, want %v", err, field.ErrNoContainer)
	}
}

func TestChart(t *testing.T) {
	history := []field.Stats{
		{Frame: 1, Population: 15, Generations: []int{15, 0, 0, 0, 0}},
		{Frame: 2, Population: 40, Generations: []int{10, 30, 0, 0, 0}},
		{Frame: 3, Population: 90, Generations: []int{5, 25, 60, 0, 0}},
	}
	var buf bytes.Buffer
	if err := Chart(&buf, history, 640, 320); err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 || cfg.Height != 320 {
		t.Errorf("chart = %dx%d, want 640x320", cfg.Width, cfg.Height)
	}
}

func TestChartShortHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := Chart(&buf, []field.Stats{{Frame: 1}}, 640, 320); err != ErrShortHistory {
		t.Errorf("err = %v, want %v", err, ErrShortHistory)
	}
}
