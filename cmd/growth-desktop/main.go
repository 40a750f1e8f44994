package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/esimov/growth-field/desktop"
	"github.com/esimov/growth-field/flow"
	field "github.com/esimov/growth-field/particle-field"
)

var (
	width    = flag.Int("w", 1280, "Window width")
	height   = flag.Int("h", 720, "Window height")
	flowName = flag.String("flow", flow.NoFlow, "Flow field carrying the particles: none, noise or fluid")
	seed     = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
)

func main() {
	flag.Parse()

	fl, err := flow.New(*flowName, float64(*width), float64(*height), *seed)
	if err != nil {
		log.Fatalln(err)
	}
	cfg := field.DefaultConfig()
	cfg.Flow = fl
	cfg.Rand = rand.New(rand.NewSource(*seed))

	if err := desktop.Run(cfg, *width, *height, "Growth field"); err != nil {
		log.Fatalln(err)
	}
}
