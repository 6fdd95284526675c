package export

import (
	"fmt"
	"image/color"

	"github.com/piwi3910/BoxStack/internal/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ExportChart plots the best and mean fitness per generation to an image;
// the format follows the file extension (.png, .svg, .pdf).
func ExportChart(path string, history []model.GenerationStats) error {
	if len(history) == 0 {
		return fmt.Errorf("no generation history to plot")
	}

	p := plot.New()
	p.Title.Text = "Fitness per generation"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness (lower is better)"
	p.Add(plotter.NewGrid())

	best := make(plotter.XYs, len(history))
	mean := make(plotter.XYs, len(history))
	for i, g := range history {
		best[i].X = float64(g.Generation)
		best[i].Y = g.Best
		mean[i].X = float64(g.Generation)
		mean[i].Y = g.Mean
	}

	bestLine, err := plotter.NewLine(best)
	if err != nil {
		return fmt.Errorf("failed to build best line: %w", err)
	}
	bestLine.Width = vg.Points(1.5)

	meanLine, err := plotter.NewLine(mean)
	if err != nil {
		return fmt.Errorf("failed to build mean line: %w", err)
	}
	meanLine.Color = color.RGBA{R: 244, G: 67, B: 54, A: 255}
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(bestLine, meanLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}
