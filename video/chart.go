package video

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	field "github.com/esimov/growth-field/particle-field"
)

// ErrShortHistory is returned when there are not enough frames to draw a chart.
var ErrShortHistory = errors.New("video: at least two frames are needed to draw a chart")

// Chart writes a PNG line chart of the population per generation, and of the
// whole population, over the recorded frames.
func Chart(w io.Writer, history []field.Stats, width, height int) error {
	if len(history) < 2 {
		return ErrShortHistory
	}

	frames := make([]float64, len(history))
	total := make([]float64, len(history))
	gens := len(history[0].Generations)
	perGen := make([][]float64, gens)
	for g := range perGen {
		perGen[g] = make([]float64, len(history))
	}

	top := 1.0
	for i, s := range history {
		frames[i] = float64(s.Frame)
		total[i] = float64(s.Population)
		if total[i] > top {
			top = total[i]
		}
		for g := 0; g < gens && g < len(s.Generations); g++ {
			perGen[g][i] = float64(s.Generations[g])
		}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Population",
			XValues: frames,
			YValues: total,
			Style:   chart.Style{StrokeColor: chart.ColorBlack, StrokeWidth: 3.0},
		},
	}
	for g := range perGen {
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("Generation %d", g),
			XValues: frames,
			YValues: perGen[g],
			Style:   chart.Style{StrokeColor: chart.GetDefaultColor(g), StrokeWidth: 1.5},
		})
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:  "Frame",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Particles",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("video: cannot render chart: %w", err)
	}
	return nil
}
