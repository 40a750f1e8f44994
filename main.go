package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/esimov/growth-field/flow"
	field "github.com/esimov/growth-field/particle-field"
	"github.com/esimov/growth-field/terminal"
)

var (
	fps      = flag.Int("fps", 30, "Frames per second")
	flowName = flag.String("flow", flow.NoFlow, "Flow field carrying the particles: none, noise or fluid")
	seed     = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
)

func main() {
	flag.Parse()

	// The flow is created for a nominal canvas and resized with the field.
	fl, err := flow.New(*flowName, 1, 1, *seed)
	if err != nil {
		log.Fatalln(err)
	}
	cfg := field.DefaultConfig()
	cfg.Flow = fl
	cfg.Rand = rand.New(rand.NewSource(*seed))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	term := terminal.New()
	if err := term.Render(ctx, cfg, *fps); err != nil {
		log.Fatalln(err)
	}
}
