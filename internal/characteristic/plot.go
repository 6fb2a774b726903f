package characteristic

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/gridsim/internal/plog"
)

var logger = plog.New(plog.LevelInfo, nil)

// SetLogger swaps the package logger, mainly for tests.
func SetLogger(l *plog.Logger) { logger = l }

// Sample evaluates c at num evenly spaced points across [start, stop].
func Sample(c Characteristic, start, stop float64, num int) (xs, ys []float64) {
	if num < 2 {
		num = 2
	}
	xs = make([]float64, num)
	ys = make([]float64, num)
	step := (stop - start) / float64(num-1)
	for i := range xs {
		xs[i] = start + float64(i)*step
		ys[i] = c.At(xs[i])
	}
	return xs, ys
}

// Plot renders the sampled curve as an ascii chart on w. With no writer
// the sampled y-values are logged instead, so callers without a plotting
// surface still get the data.
func Plot(w io.Writer, c Characteristic, start, stop float64, num int, caption string) {
	_, ys := Sample(c, start, stop, num)
	if w == nil {
		logger.Info("no plotting backend attached. y-values: %v", ys)
		return
	}
	graph := asciigraph.Plot(ys,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(w, graph)
}

// SavePNG renders the sampled curve to an image file. The format is
// taken from the file extension (png, svg, pdf).
func SavePNG(c Characteristic, start, stop float64, num int, xlabel, ylabel, path string) error {
	xs, ys := Sample(c, start, stop, num)

	p := plot.New()
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("gridsim: building plot: %w", err)
	}
	p.Add(line, points)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
