// Package video records the growth field offscreen into an MJPEG AVI file and
// charts its population over time.
package video

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"time"

	"github.com/icza/mjpeg"
	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"github.com/esimov/growth-field/canvas2d"
	field "github.com/esimov/growth-field/particle-field"
)

// Recorder renders frames at a fixed timestep on a software canvas and
// appends them to a video file.
type Recorder struct {
	backend *softwarebackend.SoftwareBackend
	loop    *field.Loop
	writer  mjpeg.AviWriter
	buf     bytes.Buffer
	opts    *jpeg.Options
	step    time.Duration
	frame   int
	history []field.Stats
}

// NewRecorder creates the video file at path for a width×height field played at fps.
func NewRecorder(path string, cfg field.Config, width, height, fps int) (*Recorder, error) {
	if width <= 0 || height <= 0 {
		return nil, field.ErrNoContainer
	}
	if fps <= 0 {
		fps = 60
	}
	backend := softwarebackend.New(width, height)
	surface := canvas2d.New(canvas.New(backend))

	// JPEG has no alpha channel: start from an opaque background.
	surface.SetFillStyle(field.TrailColor.WithAlpha(1))
	surface.FillRect(0, 0, float64(width), float64(height))

	loop, err := field.NewLoop(field.New(cfg, float64(width), float64(height)), surface)
	if err != nil {
		return nil, err
	}
	writer, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("video: cannot create %s: %w", path, err)
	}

	r := &Recorder{
		backend: backend,
		loop:    loop,
		writer:  writer,
		opts:    &jpeg.Options{Quality: 90},
		step:    time.Second / time.Duration(fps),
	}
	loop.OnFrame = func(s field.Stats) {
		r.history = append(r.history, s)
	}
	return r, nil
}

// Loop returns the loop rendering the recorded frames.
func (r *Recorder) Loop() *field.Loop {
	return r.loop
}

// Record renders and encodes n more frames.
func (r *Recorder) Record(n int) error {
	for i := 0; i < n; i++ {
		r.loop.Frame(time.Duration(r.frame) * r.step)
		r.frame++

		if err := jpeg.Encode(&r.buf, r.backend.Image, r.opts); err != nil {
			return fmt.Errorf("video: cannot encode frame %d: %w", r.frame, err)
		}
		err := r.writer.AddFrame(r.buf.Bytes())
		r.buf.Reset()
		if err != nil {
			return fmt.Errorf("video: cannot add frame %d: %w", r.frame, err)
		}
	}
	return nil
}

// History returns the statistics of every recorded frame.
func (r *Recorder) History() []field.Stats {
	return r.history
}

// Close finalizes the video file.
func (r *Recorder) Close() error {
	return r.writer.Close()
}
