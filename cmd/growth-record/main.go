package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/esimov/growth-field/flow"
	field "github.com/esimov/growth-field/particle-field"
	"github.com/esimov/growth-field/video"
)

var (
	width    = flag.Int("w", 960, "Video width")
	height   = flag.Int("h", 540, "Video height")
	fps      = flag.Int("fps", 60, "Frames per second")
	frames   = flag.Int("frames", 600, "Number of frames to record")
	output   = flag.String("o", "growth.avi", "Output video")
	chartOut = flag.String("chart", "", "Output PNG chart of the population, if set")
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

	rec, err := video.NewRecorder(*output, cfg, *width, *height, *fps)
	if err != nil {
		log.Fatalln(err)
	}
	start := time.Now()
	if err := rec.Record(*frames); err != nil {
		rec.Close()
		log.Fatalln(err)
	}
	if err := rec.Close(); err != nil {
		log.Fatalln(err)
	}
	log.Printf("recorded %d frames into %s in %v", *frames, *output, time.Since(start))

	if *chartOut == "" {
		return
	}
	f, err := os.Create(*chartOut)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()
	if err := video.Chart(f, rec.History(), 1024, 480); err != nil {
		log.Fatalln(err)
	}
	log.Printf("population chart written to %s", *chartOut)
}
