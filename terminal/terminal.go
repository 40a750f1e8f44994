package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nsf/termbox-go"

	field "github.com/esimov/growth-field/particle-field"
)

// Terminal renders the growth field with termbox.
type Terminal struct {
	backbuf  []termbox.Cell
	bbw, bbh int
	logfile  *os.File
	fn       string

	raster *Raster
	loop   *field.Loop
}

// New creates a terminal frontend logging its diagnostics into debug.log,
// since the screen itself is owned by termbox.
func New() *Terminal {
	t := new(Terminal)
	t.fn = "debug.log"
	t.logfile, _ = os.OpenFile(t.fn, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)

	return t
}

// Render runs the field at fps frames per second until Esc or Ctrl-C is
// pressed or ctx is cancelled.
func (t *Terminal) Render(ctx context.Context, cfg field.Config, fps int) error {
	if t.logfile != nil {
		defer t.logfile.Close()
	}

	if err := termbox.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	termbox.SetOutputMode(termbox.Output256)

	w, h := termbox.Size()
	if err := t.setup(cfg, w, h); err != nil {
		return err
	}

	events := make(chan termbox.Event)
	done := make(chan struct{})
	go func() {
		defer close(events)
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	defer termbox.Interrupt()
	defer close(done)

	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if t.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			t.loop.Frame(now.Sub(start))
			t.redraw()
		}
	}
}

// setup creates the raster and the field for a w×h cells screen.
func (t *Terminal) setup(cfg field.Config, w, h int) error {
	t.reallocBackBuffer(w, h)
	t.raster = NewRaster(w, h, CellWidth, CellHeight)
	pw, ph := t.raster.Size()
	loop, err := field.NewLoop(field.New(cfg, pw, ph), t.raster)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	t.loop = loop
	return nil
}

// handle applies a terminal event and reports whether the frontend should quit.
func (t *Terminal) handle(ev termbox.Event) bool {
	switch ev.Type {
	case termbox.EventKey:
		switch {
		case ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC:
			return true
		case ev.Ch == 'c' || ev.Key == termbox.KeySpace:
			t.loop.Post(func(f *field.Field) { f.ResetPointer() })
		}
	case termbox.EventMouse:
		if t.bbw == 0 || t.bbh == 0 {
			return false
		}
		nx := (float64(ev.MouseX) + 0.5) / float64(t.bbw)
		ny := (float64(ev.MouseY) + 0.5) / float64(t.bbh)
		if t.logfile != nil {
			t.log(t.logfile, ev.MouseX, ev.MouseY)
		}
		t.loop.Post(func(f *field.Field) { f.SetPointer(nx, ny) })
	case termbox.EventResize:
		t.reallocBackBuffer(ev.Width, ev.Height)
		t.raster.Resize(ev.Width, ev.Height)
		pw, ph := t.raster.Size()
		t.loop.Post(func(f *field.Field) { f.Resize(pw, ph) })
	}
	return false
}

func (t *Terminal) reallocBackBuffer(w, h int) {
	t.bbw, t.bbh = w, h
	t.backbuf = make([]termbox.Cell, w*h)
}

// redraw blits the raster into the back buffer and flushes it. Clear makes
// termbox pick up a pending resize, so the back buffer and the cell buffer
// have the same size when copied.
func (t *Terminal) redraw() {
	t.raster.Blit(t.backbuf, t.bbw)
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	if !t.fits(termbox.Size()) {
		return
	}
	copy(termbox.CellBuffer(), t.backbuf)
	termbox.Flush()
}

// fits reports whether the back buffer matches a w×h screen.
func (t *Terminal) fits(w, h int) bool {
	return t.bbw == w && t.bbh == h && len(t.backbuf) == w*h
}

func (t *Terminal) log(f io.Writer, vals ...interface{}) {
	fmt.Fprintf(f, "X:%d \t Y:%d\n", vals...)
}
