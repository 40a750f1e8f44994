//go:build js && wasm

package main

import (
	"log"
	"net/url"
	"strings"
	"syscall/js"

	field "github.com/esimov/growth-field/particle-field"
	"github.com/esimov/growth-field/wasm/canvas"
)

func main() {
	loc := js.Global().Get("location")
	query, err := url.ParseQuery(strings.TrimPrefix(loc.Get("search").String(), "?"))
	if err != nil {
		query = url.Values{}
	}
	scheme := "ws://"
	if loc.Get("protocol").String() == "https:" {
		scheme = "wss://"
	}

	eng := canvas.NewEngine(canvas.Options{
		Config:      field.DefaultConfig(),
		Remote:      query.Get("mode") == "remote",
		ServerURL:   scheme + loc.Get("host").String() + "/ws",
		Webcam:      query.Get("webcam") != "",
		CascadePath: "/cascade/facefinder",
	})
	if err := eng.Init(); err != nil {
		log.Println(err)
		return
	}

	done := make(chan struct{})
	dispose := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		select {
		case <-done:
		default:
			eng.Dispose()
			close(done)
		}
		return nil
	})
	js.Global().Set("disposeGrowthField", dispose)

	<-done
	js.Global().Delete("disposeGrowthField")
	dispose.Release()
}
