// Package desktop shows the growth field in an SDL window.
package desktop

import (
	"fmt"
	"time"

	"github.com/tfriedel6/canvas/sdlcanvas"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/esimov/growth-field/canvas2d"
	field "github.com/esimov/growth-field/particle-field"
)

// Run opens a width×height window and animates the field until the window
// is closed or Escape is pressed.
func Run(cfg field.Config, width, height int, title string) error {
	wnd, cv, err := sdlcanvas.CreateWindow(width, height, title)
	if err != nil {
		return fmt.Errorf("desktop: cannot create window: %w", err)
	}
	defer wnd.Destroy()

	surface := canvas2d.New(cv)
	w, h := surface.Size()
	loop, err := field.NewLoop(field.New(cfg, w, h), surface)
	if err != nil {
		return err
	}

	in := &input{loop: loop, width: w, height: h}
	wnd.MouseMove = in.mouseMove
	wnd.SizeChange = in.sizeChange
	wnd.Event = in.event
	wnd.KeyDown = func(scancode int, rn rune, name string) {
		if name == "Escape" {
			wnd.Close()
		}
	}

	start := time.Now()
	wnd.MainLoop(func() {
		loop.Frame(time.Since(start))
	})
	return nil
}

// input translates window events into field updates.
type input struct {
	loop          *field.Loop
	width, height float64
}

func (in *input) mouseMove(x, y int) {
	if in.width <= 0 || in.height <= 0 {
		return
	}
	nx, ny := float64(x)/in.width, float64(y)/in.height
	in.loop.Post(func(f *field.Field) { f.SetPointer(nx, ny) })
}

func (in *input) sizeChange(w, h int) {
	in.width, in.height = float64(w), float64(h)
	in.loop.Post(func(f *field.Field) { f.Resize(float64(w), float64(h)) })
}

// event resets the pointer once it leaves the window.
func (in *input) event(e sdl.Event) {
	we, ok := e.(*sdl.WindowEvent)
	if !ok || we.Event != sdl.WINDOWEVENT_LEAVE {
		return
	}
	in.loop.Post(func(f *field.Field) { f.ResetPointer() })
}
