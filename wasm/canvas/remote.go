//go:build js && wasm

package canvas

import (
	"encoding/json"
	"log"
	"syscall/js"

	field "github.com/esimov/growth-field/particle-field"
	"github.com/esimov/growth-field/protocol"
)

// Remote replays the frames streamed by the server and sends it the
// pointer and resize events of the page.
type Remote struct {
	socket  js.Value
	surface field.Surface
	hello   protocol.Message
	open    bool
	events  []listener
}

// Dial connects to the websocket endpoint at url. hello is sent as soon as
// the connection is open.
func Dial(url string, s field.Surface, hello protocol.Message) *Remote {
	r := &Remote{
		socket:  js.Global().Get("WebSocket").New(url),
		surface: s,
		hello:   hello,
	}
	r.on("open", func(js.Value) {
		r.open = true
		r.Send(r.hello)
	})
	r.on("message", func(ev js.Value) {
		var frame protocol.Frame
		if err := json.Unmarshal([]byte(ev.Get("data").String()), &frame); err != nil {
			log.Println(err)
			return
		}
		if err := field.Replay(frame.Ops, r.surface); err != nil {
			log.Println(err)
		}
	})
	r.on("close", func(js.Value) {
		r.open = false
	})
	r.on("error", func(js.Value) {
		log.Println("websocket error")
	})
	return r
}

func (r *Remote) on(event string, fn func(js.Value)) {
	r.events = append(r.events, listen(r.socket, event, fn))
}

// Send transmits m to the server. Messages are dropped while the connection is not open.
func (r *Remote) Send(m protocol.Message) {
	if m.Type == protocol.Resize {
		r.hello = m
	}
	if !r.open {
		return
	}
	data, err := json.Marshal(m)
	if err != nil {
		log.Println(err)
		return
	}
	r.socket.Call("send", string(data))
}

// Close closes the connection and releases its callbacks.
func (r *Remote) Close() {
	r.open = false
	for _, l := range r.events {
		l.remove()
	}
	r.events = nil
	r.socket.Call("close")
}
