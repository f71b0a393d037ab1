package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SavePlot writes a static chart of the recorded angles. The format follows the
// file extension (png, svg, pdf, ...).
func (r *Recorder) SavePlot(path, title string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "degrees"
	p.Y.Min = 0
	p.Y.Max = 180
	p.Add(plotter.NewGrid())

	for i, name := range r.names {
		pts := make(plotter.XYs, 0, len(r.times))
		for j, v := range r.values[name] {
			if math.IsNaN(v) {
				continue
			}
			pts = append(pts, plotter.XY{X: r.times[j], Y: v})
		}
		if len(pts) == 0 {
			continue
		}

		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("line for %s: %w", name, err)
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(name, l)
	}

	for _, t := range r.reps {
		marker, err := plotter.NewLine(plotter.XYs{{X: t, Y: 0}, {X: t, Y: 180}})
		if err != nil {
			return err
		}
		marker.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(marker)
	}

	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(12*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
