//go:build js && wasm

package canvas

import (
	"log"
	"syscall/js"
	"time"

	field "github.com/esimov/growth-field/particle-field"
	"github.com/esimov/growth-field/protocol"
	"github.com/esimov/growth-field/wasm/detector"
)

// Selectors of the canvas element and of the container it fills.
const (
	CanvasSelector    = "#neural-canvas"
	ContainerSelector = ".hero"
)

// Options configures an Engine.
type Options struct {
	Config field.Config
	// Remote replays the frames streamed by the server at ServerURL instead
	// of simulating the field locally.
	Remote    bool
	ServerURL string
	// Webcam steers the pointer with the face detected in the webcam feed.
	Webcam      bool
	CascadePath string
}

// listener is an event listener registered on a DOM target.
type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

func listen(target js.Value, event string, fn func(js.Value)) listener {
	l := listener{
		target: target,
		event:  event,
		fn: js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			ev := js.Undefined()
			if len(args) > 0 {
				ev = args[0]
			}
			fn(ev)
			return nil
		}),
	}
	target.Call("addEventListener", event, l.fn)
	return l
}

func (l listener) remove() {
	l.target.Call("removeEventListener", l.event, l.fn)
	l.fn.Release()
}

// Engine binds a growth field to the canvas of the page.
type Engine struct {
	opts Options

	window    js.Value
	canvas    js.Value
	container js.Value
	surface   *Surface

	loop   *field.Loop
	remote *Remote
	webcam *Webcam

	listeners []listener
	frame     js.Func
	frameID   js.Value
	running   bool
}

// NewEngine creates an engine. Nothing happens until Init is called.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts, window: js.Global()}
}

// Init looks up the canvas and its container, starts the animation and
// registers the input listeners. When an element is missing the animation
// is disabled and ErrNoSurface or ErrNoContainer is returned.
func (e *Engine) Init() error {
	if e.running {
		return nil
	}
	doc := e.window.Get("document")
	e.canvas = doc.Call("querySelector", CanvasSelector)
	if !e.canvas.Truthy() {
		log.Printf("growth field disabled: %s not found", CanvasSelector)
		return field.ErrNoSurface
	}
	e.container = doc.Call("querySelector", ContainerSelector)
	if !e.container.Truthy() {
		log.Printf("growth field disabled: %s not found", ContainerSelector)
		return field.ErrNoContainer
	}
	ctx := e.canvas.Call("getContext", "2d")
	if !ctx.Truthy() {
		log.Println("growth field disabled: no 2d context")
		return field.ErrNoSurface
	}
	e.surface = NewSurface(ctx)
	w, h := e.fitCanvas()

	if e.opts.Remote {
		e.remote = Dial(e.opts.ServerURL, e.surface, protocol.Message{Type: protocol.Resize, Width: w, Height: h})
	} else {
		loop, err := field.NewLoop(field.New(e.opts.Config, w, h), e.surface)
		if err != nil {
			return err
		}
		e.loop = loop
	}
	e.running = true

	e.listeners = append(e.listeners,
		listen(e.container, "mousemove", e.mouseMove),
		listen(e.container, "mouseleave", func(js.Value) {
			e.send(protocol.Message{Type: protocol.Leave})
		}),
		listen(e.window, "resize", func(js.Value) {
			w, h := e.fitCanvas()
			e.send(protocol.Message{Type: protocol.Resize, Width: w, Height: h})
		}),
	)

	if e.loop != nil {
		e.frame = js.FuncOf(e.render)
		e.frameID = e.window.Call("requestAnimationFrame", e.frame)
	}
	if e.opts.Webcam {
		e.startWebcam()
	}
	return nil
}

// Dispose stops the animation and releases every listener.
func (e *Engine) Dispose() {
	if !e.running {
		return
	}
	e.running = false

	if e.loop != nil {
		e.window.Call("cancelAnimationFrame", e.frameID)
		e.frame.Release()
	}
	for _, l := range e.listeners {
		l.remove()
	}
	e.listeners = nil
	if e.remote != nil {
		e.remote.Close()
		e.remote = nil
	}
	if e.webcam != nil {
		e.webcam.Stop()
		e.webcam = nil
	}
}

// render draws a frame and schedules the next one. The timestamp passed by
// requestAnimationFrame is in milliseconds.
func (e *Engine) render(this js.Value, args []js.Value) interface{} {
	if !e.running {
		return nil
	}
	ms := 0.0
	if len(args) > 0 {
		ms = args[0].Float()
	}
	e.loop.Frame(time.Duration(ms * float64(time.Millisecond)))
	e.frameID = e.window.Call("requestAnimationFrame", e.frame)
	return nil
}

// fitCanvas sizes the canvas to its container and returns the new size.
func (e *Engine) fitCanvas() (float64, float64) {
	w := e.container.Get("offsetWidth").Float()
	h := e.container.Get("offsetHeight").Float()
	e.canvas.Set("width", w)
	e.canvas.Set("height", h)
	return w, h
}

// mouseMove normalizes the pointer against the container the canvas is sized to.
func (e *Engine) mouseMove(ev js.Value) {
	r := e.container.Call("getBoundingClientRect")
	rect := Rect{
		Left:   r.Get("left").Float(),
		Top:    r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
	x, y, ok := rect.Pointer(ev.Get("clientX").Float(), ev.Get("clientY").Float())
	if !ok {
		return
	}
	e.send(protocol.Message{Type: protocol.Pointer, X: x, Y: y})
}

// send applies m to the local field before the next frame, or forwards it to the server.
func (e *Engine) send(m protocol.Message) {
	if e.remote != nil {
		e.remote.Send(m)
		return
	}
	if e.loop == nil {
		return
	}
	e.loop.Post(func(f *field.Field) {
		if err := m.Apply(f); err != nil {
			log.Println(err)
		}
	})
}

// startWebcam loads the face cascade and steers the pointer with the
// detected face. Failures only disable the webcam.
func (e *Engine) startWebcam() {
	cascade, err := detector.FetchCascade(e.opts.CascadePath)
	if err != nil {
		log.Println("webcam disabled:", err)
		return
	}
	det := detector.NewDetector()
	if err := det.Unpack(cascade); err != nil {
		log.Println("webcam disabled:", err)
		return
	}
	e.webcam, err = StartWebcam(det, 640, 480, func(x, y float64) {
		e.send(protocol.Message{Type: protocol.Pointer, X: x, Y: y})
	})
	if err != nil {
		log.Println("webcam disabled:", err)
	}
}
