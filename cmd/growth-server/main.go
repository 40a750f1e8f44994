package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/esimov/growth-field/flow"
	"github.com/esimov/growth-field/http"
	field "github.com/esimov/growth-field/particle-field"
	"github.com/esimov/growth-field/websocket"
)

func main() {
	p := http.DefaultParams()
	p.RegisterFlags(flag.CommandLine)
	fps := flag.Int("fps", 30, "Frames per second streamed to every client")
	flowName := flag.String("flow", flow.NoFlow, "Flow field carrying the particles: none, noise or fluid")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed of the first session")
	flag.Parse()

	// Reject unknown flows before accepting clients.
	if _, err := flow.New(*flowName, 1, 1, *seed); err != nil {
		log.Fatalln(err)
	}

	srv := websocket.NewServer(p, field.DefaultConfig(), *fps)
	srv.Seed = *seed
	srv.NewFlow = func(w, h float64, seed int64) (field.Flow, error) {
		return flow.New(*flowName, w, h, seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalln(err)
	}
}
