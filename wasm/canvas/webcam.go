//go:build js && wasm

package canvas

import (
	"errors"
	"syscall/js"

	"github.com/esimov/growth-field/wasm/detector"
)

// detectEvery is the delay between two face detections, in milliseconds.
const detectEvery = 100

// Webcam feeds the frames of the user's camera to a face detector.
type Webcam struct {
	video  js.Value
	ctx    js.Value
	stream js.Value
	pixels []uint8

	width, height int
	detector      *detector.Detector
	onFace        func(x, y float64)

	tick     js.Func
	interval js.Value
}

// StartWebcam asks for the camera and calls onFace with the normalized,
// mirrored center of the most confident face found in its frames.
// It blocks until the user grants or denies the access.
func StartWebcam(det *detector.Detector, width, height int, onFace func(x, y float64)) (*Webcam, error) {
	doc := js.Global().Get("document")
	media := js.Global().Get("navigator").Get("mediaDevices")
	if !media.Truthy() {
		return nil, errors.New("webcam: media devices are not supported")
	}

	success := make(chan js.Value, 1)
	failure := make(chan error, 1)
	then := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		success <- args[0]
		return nil
	})
	defer then.Release()
	catch := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		failure <- errors.New("webcam: " + args[0].Get("message").String())
		return nil
	})
	defer catch.Release()

	constraints := map[string]interface{}{
		"audio": false,
		"video": map[string]interface{}{"width": width, "height": height},
	}
	media.Call("getUserMedia", constraints).Call("then", then).Call("catch", catch)

	w := &Webcam{
		width:    width,
		height:   height,
		detector: det,
		onFace:   onFace,
		pixels:   make([]uint8, width*height*4),
	}
	select {
	case w.stream = <-success:
	case err := <-failure:
		return nil, err
	}

	w.video = doc.Call("createElement", "video")
	w.video.Set("muted", true)
	w.video.Set("playsInline", true)
	w.video.Set("srcObject", w.stream)
	w.video.Call("play")

	offscreen := doc.Call("createElement", "canvas")
	offscreen.Set("width", width)
	offscreen.Set("height", height)
	w.ctx = offscreen.Call("getContext", "2d", map[string]interface{}{"willReadFrequently": true})

	w.tick = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		w.detect()
		return nil
	})
	w.interval = js.Global().Call("setInterval", w.tick, detectEvery)
	return w, nil
}

func (w *Webcam) detect() {
	w.ctx.Call("drawImage", w.video, 0, 0, w.width, w.height)
	data := w.ctx.Call("getImageData", 0, 0, w.width, w.height).Get("data")
	js.CopyBytesToGo(w.pixels, data)

	x, y, ok, err := w.detector.Face(w.pixels, w.width, w.height)
	if err != nil || !ok {
		return
	}
	w.onFace(Mirror(x), y)
}

// Stop stops the detection and releases the camera.
func (w *Webcam) Stop() {
	js.Global().Call("clearInterval", w.interval)
	w.tick.Release()

	tracks := w.stream.Call("getTracks")
	for i := 0; i < tracks.Length(); i++ {
		tracks.Index(i).Call("stop")
	}
	w.video.Set("srcObject", js.Null())
}
